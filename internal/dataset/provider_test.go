package dataset

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"
)

func TestProvider_CachesFirstLoad(t *testing.T) {
	path := writeDataset(t, fijiRow(), tongaRow())
	p := NewProvider(path, SheetOptions{})

	t1, err := p.Table()
	require.NoError(t, err)
	t2, err := p.Table()
	require.NoError(t, err)

	assert.Same(t, t1, t2)
}

func TestProvider_ConcurrentFirstCallsShareOneTable(t *testing.T) {
	path := writeDataset(t, fijiRow(), tongaRow())
	p := NewProvider(path, SheetOptions{})

	const callers = 16
	tables := make([]*Table, callers)
	errs := make([]error, callers)

	var start, done sync.WaitGroup
	start.Add(1)
	done.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer done.Done()
			start.Wait()
			tables[i], errs[i] = p.Table()
		}(i)
	}
	start.Done()
	done.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Same(t, tables[0], tables[i])
	}
}

func TestProvider_FailureIsRetried(t *testing.T) {
	path := filepath.Join(t.TempDir(), "late.xlsx")
	p := NewProvider(path, SheetOptions{})

	_, err := p.Table()
	require.Error(t, err)

	// Write the dataset after the first failed load.
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Sheet1")
	require.NoError(t, err)
	for _, rowData := range [][]string{testHeader(), fijiRow()} {
		row := sheet.AddRow()
		for _, cellData := range rowData {
			row.AddCell().SetString(cellData)
		}
	}
	require.NoError(t, f.Save(path))

	table, err := p.Table()
	require.NoError(t, err)
	assert.Equal(t, 1, table.Len())
}
