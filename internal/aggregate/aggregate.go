// Package aggregate computes the dashboard KPIs over filtered views.
package aggregate

import (
	"sort"

	"github.com/oceania-analytics/tradedash/internal/dataset"
	"github.com/oceania-analytics/tradedash/internal/filter"
)

// Summary holds the KPI aggregates for one filtered view.
type Summary struct {
	Records      int     `json:"records" yaml:"records"`
	Export       float64 `json:"export" yaml:"export"`
	Import       float64 `json:"import" yaml:"import"`
	Total        float64 `json:"total" yaml:"total"`
	TradeBalance float64 `json:"trade_balance" yaml:"trade_balance"`
	GDP          float64 `json:"gdp" yaml:"gdp"`
	Population   float64 `json:"population" yaml:"population"`
	AvgLPI       float64 `json:"avg_lpi" yaml:"avg_lpi"`
	// TradePerCapita is sum(Total) / sum(Population), nil when the
	// view's population sum is zero (never Inf or NaN).
	TradePerCapita *float64 `json:"trade_per_capita" yaml:"trade_per_capita"`
}

// Summarize computes the Summary for a view. ok is false for the empty
// view: sums and means over no records are undefined, and callers must
// report the "no data" state instead.
func Summarize(v filter.View) (Summary, bool) {
	if len(v) == 0 {
		return Summary{}, false
	}

	s := Summary{Records: len(v)}
	var lpiSum float64
	for _, rec := range v {
		s.Export += rec.Export
		s.Import += rec.Import
		s.Total += rec.Total
		s.TradeBalance += rec.TradeBalance
		s.GDP += rec.GDP
		s.Population += rec.Population
		lpiSum += rec.AvgLPI
	}
	s.AvgLPI = lpiSum / float64(len(v))

	if s.Population > 0 {
		tpc := s.Total / s.Population
		s.TradePerCapita = &tpc
	}

	return s, true
}

// TrendPoint is one year's export and import sums for a country
// selection.
type TrendPoint struct {
	Year   int     `json:"year"`
	Export float64 `json:"export"`
	Import float64 `json:"import"`
}

// Trend sums export and import per year across the whole table,
// restricted to the selection, ordered by year ascending. Years with no
// matching records are omitted.
func Trend(t *dataset.Table, sel filter.Selection) []TrendPoint {
	byYear := make(map[int]*TrendPoint)
	for _, rec := range t.Records() {
		if !sel.Contains(rec.Country) {
			continue
		}
		p := byYear[rec.Year]
		if p == nil {
			p = &TrendPoint{Year: rec.Year}
			byYear[rec.Year] = p
		}
		p.Export += rec.Export
		p.Import += rec.Import
	}

	points := make([]TrendPoint, 0, len(byYear))
	for _, p := range byYear {
		points = append(points, *p)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Year < points[j].Year })
	return points
}
