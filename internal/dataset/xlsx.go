package dataset

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

// SheetOptions selects the worksheet to read.
type SheetOptions struct {
	Index int    // default 0
	Name  string // if set, overrides Index
}

// ReadSheet reads one worksheet and returns all rows, including the
// header row, as string slices.
func ReadSheet(path string, opts SheetOptions) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: open file")
	}

	sheet, err := pickSheet(f, opts)
	if err != nil {
		return nil, err
	}

	rows := make([][]string, 0, len(sheet.Rows))
	for _, row := range sheet.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		rows = append(rows, cells)
	}

	return rows, nil
}

func pickSheet(f *xlsx.File, opts SheetOptions) (*xlsx.Sheet, error) {
	if opts.Name != "" {
		sheet, ok := f.Sheet[opts.Name]
		if !ok {
			return nil, eris.Errorf("xlsx: sheet %q not found", opts.Name)
		}
		return sheet, nil
	}

	if opts.Index >= len(f.Sheets) {
		return nil, eris.Errorf("xlsx: sheet index %d out of range (file has %d sheets)", opts.Index, len(f.Sheets))
	}

	return f.Sheets[opts.Index], nil
}
