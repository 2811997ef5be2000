// Package dataset loads the trade/logistics spreadsheet and exposes it as
// an immutable prepared table with derived metrics.
package dataset

import "sort"

// Column names expected in the header row of the source sheet. Column
// order within the sheet does not matter; columns are located by name.
const (
	ColCountry       = "Country"
	ColYear          = "Year"
	ColExport        = "Export"
	ColImport        = "Import"
	ColTotal         = "Total"
	ColTradeBalance  = "Trade Balance"
	ColGDP           = "GDP"
	ColPopulation    = "Population"
	ColLPICustoms    = "LPI_CUSTOM"
	ColLPIInfra      = "LPI_INFRA"
	ColLPIEase       = "LPI_EASE"
	ColLPIQuality    = "LPI_QUALITY"
	ColLPITracking   = "LPI_TRACK"
	ColLPITimeliness = "LPI_TIME"
)

var requiredColumns = []string{
	ColCountry, ColYear,
	ColExport, ColImport, ColTotal, ColTradeBalance, ColGDP, ColPopulation,
	ColLPICustoms, ColLPIInfra, ColLPIEase, ColLPIQuality, ColLPITracking, ColLPITimeliness,
}

// LPI holds the six Logistics Performance Index sub-scores, each on a
// 0 to 5 scale.
type LPI struct {
	Customs        float64 `json:"customs"`
	Infrastructure float64 `json:"infrastructure"`
	Ease           float64 `json:"ease"`
	Quality        float64 `json:"quality"`
	Tracking       float64 `json:"tracking"`
	Timeliness     float64 `json:"timeliness"`
}

// Mean returns the unweighted average of the six sub-scores.
func (l LPI) Mean() float64 {
	return (l.Customs + l.Infrastructure + l.Ease + l.Quality + l.Tracking + l.Timeliness) / 6
}

// Record is one prepared country-year observation. AvgLPI and
// TradePerCapita are derived during preparation; everything else comes
// straight from the sheet.
type Record struct {
	Country      string  `json:"country"`
	Year         int     `json:"year"`
	Export       float64 `json:"export"`
	Import       float64 `json:"import"`
	Total        float64 `json:"total"`
	TradeBalance float64 `json:"trade_balance"`
	GDP          float64 `json:"gdp"`
	Population   float64 `json:"population"`
	LPI          LPI     `json:"lpi"`

	AvgLPI float64 `json:"avg_lpi"`
	// TradePerCapita is Total / Population, nil when Population is not
	// positive (never Inf or NaN).
	TradePerCapita *float64 `json:"trade_per_capita"`
}

// Table is the prepared dataset. It is built once and never mutated, so
// it is safe to share across goroutines without locking.
type Table struct {
	records   []Record
	years     []int
	countries []string
}

// Prepare derives AvgLPI and TradePerCapita for each record, verifies
// that (country, year) is unique, and returns the immutable table.
// Records keep their input order.
func Prepare(records []Record) (*Table, error) {
	type key struct {
		country string
		year    int
	}
	seen := make(map[key]bool, len(records))

	prepared := make([]Record, len(records))
	for i, rec := range records {
		k := key{rec.Country, rec.Year}
		if seen[k] {
			return nil, &LoadError{Err: errDuplicate(rec.Country, rec.Year)}
		}
		seen[k] = true

		rec.AvgLPI = rec.LPI.Mean()
		rec.TradePerCapita = nil
		if rec.Population > 0 {
			tpc := rec.Total / rec.Population
			rec.TradePerCapita = &tpc
		}
		prepared[i] = rec
	}

	t := &Table{records: prepared}
	t.indexDistinct()
	return t, nil
}

// Records returns the prepared records in sheet order. The returned
// slice is shared; callers must not modify it.
func (t *Table) Records() []Record { return t.records }

// Len returns the number of prepared records.
func (t *Table) Len() int { return len(t.records) }

// Years returns the distinct years present in the table, ascending.
func (t *Table) Years() []int {
	out := make([]int, len(t.years))
	copy(out, t.years)
	return out
}

// Countries returns the distinct country names, sorted.
func (t *Table) Countries() []string {
	out := make([]string, len(t.countries))
	copy(out, t.countries)
	return out
}

// HasYear reports whether year appears in the table.
func (t *Table) HasYear(year int) bool {
	i := sort.SearchInts(t.years, year)
	return i < len(t.years) && t.years[i] == year
}

func (t *Table) indexDistinct() {
	yearSet := make(map[int]bool)
	countrySet := make(map[string]bool)
	for _, rec := range t.records {
		yearSet[rec.Year] = true
		countrySet[rec.Country] = true
	}

	t.years = make([]int, 0, len(yearSet))
	for y := range yearSet {
		t.years = append(t.years, y)
	}
	sort.Ints(t.years)

	t.countries = make([]string, 0, len(countrySet))
	for c := range countrySet {
		t.countries = append(t.countries, c)
	}
	sort.Strings(t.countries)
}
