package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/oceania-analytics/tradedash/internal/config"
	"github.com/oceania-analytics/tradedash/internal/dataset"
)

func writeFixture(t *testing.T) string {
	t.Helper()
	rows := [][]string{
		{
			"Country", "Year", "Export", "Import", "Total", "Trade Balance",
			"GDP", "Population",
			"LPI_CUSTOM", "LPI_INFRA", "LPI_EASE", "LPI_QUALITY", "LPI_TRACK", "LPI_TIME",
		},
		{"Fiji", "2010", "1000000000", "2000000000", "3000000000", "-1000000000", "4000000000", "1000000", "3", "3", "3", "3", "3", "3"},
		{"Tonga", "2010", "500000000", "500000000", "1000000000", "0", "500000000", "100000", "2", "2", "2", "2", "2", "2"},
		{"Fiji", "2014", "1200000000", "2100000000", "3300000000", "-900000000", "4400000000", "1100000", "3", "3", "3", "3", "3", "3"},
	}

	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Sheet1")
	require.NoError(t, err)
	for _, rowData := range rows {
		row := sheet.AddRow()
		for _, cellData := range rowData {
			row.AddCell().SetString(cellData)
		}
	}
	path := filepath.Join(t.TempDir(), "trade.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	provider := dataset.NewProvider(writeFixture(t), dataset.SheetOptions{})
	srv := New(config.ServerConfig{
		Port:           8080,
		RateLimit:      1000,
		RateBurst:      1000,
		AllowedOrigins: []string{"*"},
	}, provider)
	return srv.Router()
}

func get(t *testing.T, h http.Handler, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var body map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestHandleHealth(t *testing.T) {
	h := newTestRouter(t)

	rec, body := get(t, h, "/api/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestHandleYears(t *testing.T) {
	h := newTestRouter(t)

	rec, body := get(t, h, "/api/years")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{float64(2010), float64(2014)}, body["years"])
}

func TestHandleCountries(t *testing.T) {
	h := newTestRouter(t)

	rec, body := get(t, h, "/api/countries")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{"Fiji", "Tonga"}, body["countries"])
}

func TestHandleRecords(t *testing.T) {
	h := newTestRouter(t)

	rec, body := get(t, h, "/api/records?year=2010")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), body["count"])

	rec, body = get(t, h, "/api/records?year=2010&countries=Fiji")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["count"])
	records := body["records"].([]any)
	first := records[0].(map[string]any)
	assert.Equal(t, "Fiji", first["country"])
	assert.InDelta(t, 3.0, first["avg_lpi"].(float64), 1e-9)
}

func TestHandleRecords_YearValidation(t *testing.T) {
	h := newTestRouter(t)

	rec, body := get(t, h, "/api/records")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["error"], "year is required")

	rec, body = get(t, h, "/api/records?year=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["error"], "integer")

	rec, body = get(t, h, "/api/records?year=1999")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["error"], "not present")
}

func TestHandleSummary(t *testing.T) {
	h := newTestRouter(t)

	rec, body := get(t, h, "/api/summary?year=2010")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["no_data"])

	sum := body["summary"].(map[string]any)
	assert.Equal(t, float64(2), sum["records"])
	assert.InDelta(t, 4e9, sum["total"].(float64), 1)
	assert.InDelta(t, 2.5, sum["avg_lpi"].(float64), 1e-9)
	assert.InDelta(t, 4e9/1.1e6, sum["trade_per_capita"].(float64), 1e-6)
}

func TestHandleSummary_NoData(t *testing.T) {
	h := newTestRouter(t)

	rec, body := get(t, h, "/api/summary?year=2010&countries=Atlantis")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["no_data"])
	assert.NotContains(t, body, "summary")
}

func TestHandleTrend(t *testing.T) {
	h := newTestRouter(t)

	rec, body := get(t, h, "/api/trend")
	assert.Equal(t, http.StatusOK, rec.Code)

	points := body["trend"].([]any)
	require.Len(t, points, 2)
	p2010 := points[0].(map[string]any)
	assert.Equal(t, float64(2010), p2010["year"])
	assert.InDelta(t, 1.5e9, p2010["export"].(float64), 1)

	rec, body = get(t, h, "/api/trend?countries=Tonga")
	assert.Equal(t, http.StatusOK, rec.Code)
	points = body["trend"].([]any)
	require.Len(t, points, 1)
	assert.Equal(t, float64(2010), points[0].(map[string]any)["year"])
}

func TestThrottle(t *testing.T) {
	provider := dataset.NewProvider(writeFixture(t), dataset.SheetOptions{})
	srv := New(config.ServerConfig{
		Port:           8080,
		RateLimit:      1,
		RateBurst:      1,
		AllowedOrigins: []string{"*"},
	}, provider)
	h := srv.Router()

	rec, _ := get(t, h, "/api/health")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = get(t, h, "/api/health")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestSelectionParam(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/records?year=2010", nil)
	assert.True(t, selectionParam(req).All())

	req = httptest.NewRequest(http.MethodGet, "/api/records?year=2010&countries=all", nil)
	assert.True(t, selectionParam(req).All())

	req = httptest.NewRequest(http.MethodGet, "/api/records?year=2010&countries=Fiji,%20Tonga", nil)
	sel := selectionParam(req)
	assert.False(t, sel.All())
	assert.True(t, sel.Contains("Fiji"))
	assert.True(t, sel.Contains("Tonga"))
	assert.False(t, sel.Contains("Samoa"))
}
