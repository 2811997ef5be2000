package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/oceania-analytics/tradedash/internal/aggregate"
	"github.com/oceania-analytics/tradedash/internal/dataset"
	"github.com/oceania-analytics/tradedash/internal/filter"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("encode response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// table fetches the prepared table, answering 500 when the dataset is
// unavailable.
func (s *Server) table(w http.ResponseWriter) (*dataset.Table, bool) {
	t, err := s.provider.Table()
	if err != nil {
		zap.L().Error("load dataset", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "dataset unavailable")
		return nil, false
	}
	return t, true
}

// yearParam requires a year query param naming one of the table's years.
// The filter engine itself never errors on an unknown year; this API
// boundary rejects it so clients cannot silently ask for data that will
// never exist.
func yearParam(r *http.Request, t *dataset.Table) (int, error) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return 0, eris.New("year is required")
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, eris.New("year must be an integer")
	}
	if !t.HasYear(year) {
		return 0, eris.Errorf("year %d not present in dataset", year)
	}
	return year, nil
}

// selectionParam reads the countries query param. Absent, empty, or
// "all" means every country; otherwise a comma-separated list of names.
func selectionParam(r *http.Request) filter.Selection {
	raw := strings.TrimSpace(r.URL.Query().Get("countries"))
	if raw == "" || strings.EqualFold(raw, "all") {
		return filter.AllCountries()
	}

	var names []string
	for _, n := range strings.Split(raw, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return filter.AllCountries()
	}
	return filter.Countries(names...)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleYears(w http.ResponseWriter, r *http.Request) {
	t, ok := s.table(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"years": t.Years()})
}

func (s *Server) handleCountries(w http.ResponseWriter, r *http.Request) {
	t, ok := s.table(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"countries": t.Countries()})
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	t, ok := s.table(w)
	if !ok {
		return
	}

	year, err := yearParam(r, t)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	view := filter.Filter(t, year, selectionParam(r))
	writeJSON(w, http.StatusOK, map[string]any{
		"count":   len(view),
		"records": view,
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	t, ok := s.table(w)
	if !ok {
		return
	}

	year, err := yearParam(r, t)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	view := filter.Filter(t, year, selectionParam(r))
	sum, ok := aggregate.Summarize(view)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"no_data": true})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"no_data": false,
		"summary": sum,
	})
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	t, ok := s.table(w)
	if !ok {
		return
	}

	points := aggregate.Trend(t, selectionParam(r))
	writeJSON(w, http.StatusOK, map[string]any{"trend": points})
}
