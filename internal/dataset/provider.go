package dataset

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Provider owns the once-per-process load of the prepared table.
// Concurrent first calls share a single load, the first successful
// result is cached for the process lifetime, and a failed load is
// retried on the next call rather than cached.
type Provider struct {
	path string
	opts SheetOptions

	group singleflight.Group
	mu    sync.RWMutex
	table *Table
}

// NewProvider returns a provider for the spreadsheet at path.
func NewProvider(path string, opts SheetOptions) *Provider {
	return &Provider{path: path, opts: opts}
}

// Table returns the prepared table, loading it on first use.
func (p *Provider) Table() (*Table, error) {
	p.mu.RLock()
	t := p.table
	p.mu.RUnlock()
	if t != nil {
		return t, nil
	}

	v, err, _ := p.group.Do("load", func() (any, error) {
		// Re-check under the group: a concurrent caller may have
		// completed the load while we waited.
		p.mu.RLock()
		cached := p.table
		p.mu.RUnlock()
		if cached != nil {
			return cached, nil
		}

		loaded, err := Load(p.path, p.opts)
		if err != nil {
			return nil, err
		}

		p.mu.Lock()
		p.table = loaded
		p.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Table), nil
}
