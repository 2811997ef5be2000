package dataset

import (
	"fmt"

	"github.com/rotisserie/eris"
)

// LoadError reports a dataset source that could not be read or turned
// into a valid table. Load-time errors are fatal to startup.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("dataset: %v", e.Err)
	}
	return fmt.Sprintf("dataset: load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// SchemaError reports a required column that is missing or holds an
// unparseable value. Row is the 1-based sheet row (header is row 1);
// it is 0 when the column is absent entirely.
type SchemaError struct {
	Column string
	Row    int
	Reason string
}

func (e *SchemaError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("dataset: column %q: %s", e.Column, e.Reason)
	}
	return fmt.Sprintf("dataset: column %q, row %d: %s", e.Column, e.Row, e.Reason)
}

func errDuplicate(country string, year int) error {
	return eris.Errorf("duplicate record for %s %d", country, year)
}
