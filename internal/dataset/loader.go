package dataset

import (
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Load reads the spreadsheet at path and returns the prepared table. The
// first sheet row is the header; columns are matched by name in any
// order. Loading the same file twice yields equal tables.
//
// Errors are *LoadError when the source cannot be read or the natural
// (country, year) key repeats, and *SchemaError when a required column
// is missing or a cell cannot be parsed.
func Load(path string, opts SheetOptions) (*Table, error) {
	start := time.Now()

	rows, err := ReadSheet(path, opts)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	if len(rows) == 0 {
		return nil, &LoadError{Path: path, Err: eris.New("sheet has no header row")}
	}

	cols, err := mapHeader(rows[0])
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		sheetRow := i + 2
		if blankRow(row) {
			continue
		}
		rec, err := parseRecord(row, cols, sheetRow)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	t, err := Prepare(records)
	if err != nil {
		if lerr, ok := err.(*LoadError); ok {
			lerr.Path = path
		}
		return nil, err
	}

	zap.L().Info("dataset loaded",
		zap.String("path", path),
		zap.Int("records", t.Len()),
		zap.Int("years", len(t.years)),
		zap.Int("countries", len(t.countries)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return t, nil
}

func mapHeader(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, &SchemaError{Column: name, Reason: "required column missing"}
		}
	}
	return cols, nil
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func parseRecord(row []string, cols map[string]int, sheetRow int) (Record, error) {
	cell := func(col string) string {
		idx := cols[col]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var rec Record

	rec.Country = cell(ColCountry)
	if rec.Country == "" {
		return Record{}, &SchemaError{Column: ColCountry, Row: sheetRow, Reason: "empty country name"}
	}

	year, ok := parseYear(cell(ColYear))
	if !ok {
		return Record{}, &SchemaError{Column: ColYear, Row: sheetRow, Reason: "not an integer year"}
	}
	rec.Year = year

	for _, f := range []struct {
		col string
		dst *float64
	}{
		{ColExport, &rec.Export},
		{ColImport, &rec.Import},
		{ColTotal, &rec.Total},
		{ColTradeBalance, &rec.TradeBalance},
		{ColGDP, &rec.GDP},
		{ColPopulation, &rec.Population},
		{ColLPICustoms, &rec.LPI.Customs},
		{ColLPIInfra, &rec.LPI.Infrastructure},
		{ColLPIEase, &rec.LPI.Ease},
		{ColLPIQuality, &rec.LPI.Quality},
		{ColLPITracking, &rec.LPI.Tracking},
		{ColLPITimeliness, &rec.LPI.Timeliness},
	} {
		v, err := strconv.ParseFloat(cell(f.col), 64)
		if err != nil {
			return Record{}, &SchemaError{Column: f.col, Row: sheetRow, Reason: "not numeric"}
		}
		*f.dst = v
	}

	return rec, nil
}

// parseYear accepts both integer cells and integral float cells, which
// is how spreadsheet tools round-trip year columns.
func parseYear(s string) (int, bool) {
	if y, err := strconv.Atoi(s); err == nil {
		return y, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}
