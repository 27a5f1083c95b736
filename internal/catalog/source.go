package catalog

import "sync"

// Source loads a catalog file lazily, at most once per process. Every caller
// gets the same *Catalog (or the same load error).
type Source struct {
	path string
	load func() (*Catalog, error)
}

// NewSource returns a Source for path. Nothing is read until Catalog is called.
func NewSource(path string, opts Options) *Source {
	return &Source{
		path: path,
		load: sync.OnceValues(func() (*Catalog, error) {
			return Load(path, opts)
		}),
	}
}

// Static wraps an already built catalog.
func Static(c *Catalog) *Source {
	return &Source{load: func() (*Catalog, error) { return c, nil }}
}

// Catalog returns the loaded catalog, loading it on first use.
func (s *Source) Catalog() (*Catalog, error) { return s.load() }

// Path is the file the source reads, empty for static sources.
func (s *Source) Path() string { return s.path }
