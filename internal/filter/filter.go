// Package filter selects prepared records by year and country.
package filter

import "github.com/oceania-analytics/tradedash/internal/dataset"

// Selection names the countries a view should include: either every
// country in the table, or an explicit set.
type Selection struct {
	all   bool
	names map[string]struct{}
}

// AllCountries selects every country present in the table.
func AllCountries() Selection { return Selection{all: true} }

// Countries selects an explicit set of country names. Names not present
// in the table contribute nothing to the view; they are not an error.
func Countries(names ...string) Selection {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return Selection{names: set}
}

// All reports whether the selection covers every country.
func (s Selection) All() bool { return s.all }

// Contains reports whether country is part of the selection.
func (s Selection) Contains(country string) bool {
	if s.all {
		return true
	}
	_, ok := s.names[country]
	return ok
}

// View is the subsequence of prepared records matching a selection. Each
// call produces a fresh, independently owned slice. An empty view is a
// valid result, not a failure; callers must render it as "no data"
// instead of aggregating over it.
type View []dataset.Record

// Filter returns the records for year restricted to the selection. It
// never fails: a year absent from the table or a country set disjoint
// from it both yield an empty view.
func Filter(t *dataset.Table, year int, sel Selection) View {
	view := View{}
	for _, rec := range t.Records() {
		if rec.Year != year {
			continue
		}
		if !sel.Contains(rec.Country) {
			continue
		}
		view = append(view, rec)
	}
	return view
}
