package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Paths locates the config files under a base directory.
type Paths struct {
	BaseDir string // e.g. ./config
}

// DefaultPath is the checked-in config.
func (p Paths) DefaultPath() string {
	return filepath.Join(p.BaseDir, "solver.yaml")
}

// LocalPath is an optional per-machine override.
func (p Paths) LocalPath() string {
	return filepath.Join(p.BaseDir, "solver.local.yaml")
}

// Loader reads YAML configs and merges default → local.
type Loader struct {
	paths Paths

	mu     sync.RWMutex
	cached *RawConfig
}

// NewLoader creates a config loader with the given base directory.
func NewLoader(baseDir string) *Loader {
	return &Loader{paths: Paths{BaseDir: baseDir}}
}

// Paths returns the files the loader reads.
func (l *Loader) Paths() Paths { return l.paths }

// LoadMerged loads and merges default → local. Missing files count as empty.
// It returns the merged RawConfig (without normalization).
func (l *Loader) LoadMerged() (RawConfig, error) {
	l.mu.RLock()
	if l.cached != nil {
		cfg := *l.cached
		l.mu.RUnlock()
		return cfg, nil
	}
	l.mu.RUnlock()

	defCfg, err := readYAML(l.paths.DefaultPath())
	if err != nil {
		return RawConfig{}, fmt.Errorf("read default: %w", err)
	}
	localCfg, err := readYAML(l.paths.LocalPath())
	if err != nil {
		return RawConfig{}, fmt.Errorf("read local: %w", err)
	}
	merged := mergeRaw(defCfg, localCfg)

	l.mu.Lock()
	l.cached = &merged
	l.mu.Unlock()

	return merged, nil
}

// Invalidate clears the loader's cache so the next LoadMerged rereads disk.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cached = nil
}

// Load reads baseDir, applies overrides and returns validated settings.
func Load(baseDir string, o Overrides) (Settings, error) {
	raw, err := NewLoader(baseDir).LoadMerged()
	if err != nil {
		return Settings{}, err
	}
	return Resolve(raw, o)
}

// readYAML loads a YAML file into RawConfig. Missing files return zero cfg, no error.
func readYAML(path string) (RawConfig, error) {
	var cfg RawConfig
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, nil
		}
		return RawConfig{}, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// mergeRaw overlays b on a: every field b sets wins.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}

	// catalog
	if b.Catalog.Path != "" {
		out.Catalog.Path = b.Catalog.Path
	}
	if b.Catalog.MapID != "" {
		out.Catalog.MapID = b.Catalog.MapID
	}
	if b.Catalog.Strict != nil {
		v := *b.Catalog.Strict
		out.Catalog.Strict = &v
	}

	// server
	switch {
	case out.Server == nil && b.Server != nil:
		c := *b.Server
		out.Server = &c
	case out.Server != nil && b.Server != nil:
		c := *out.Server
		if b.Server.Addr != "" {
			c.Addr = b.Server.Addr
		}
		out.Server = &c
	}

	// snapshot
	switch {
	case out.Snapshot == nil && b.Snapshot != nil:
		c := *b.Snapshot
		out.Snapshot = &c
	case out.Snapshot != nil && b.Snapshot != nil:
		c := *out.Snapshot
		if b.Snapshot.Path != "" {
			c.Path = b.Snapshot.Path
		}
		if b.Snapshot.Interval != nil {
			c.Interval = b.Snapshot.Interval
		}
		if b.Snapshot.Target != "" {
			c.Target = b.Snapshot.Target
		}
		out.Snapshot = &c
	}

	// solver
	switch {
	case out.Solver == nil && b.Solver != nil:
		c := *b.Solver
		out.Solver = &c
	case out.Solver != nil && b.Solver != nil:
		c := *out.Solver
		if b.Solver.BatchLimit != nil {
			c.BatchLimit = b.Solver.BatchLimit
		}
		out.Solver = &c
	}

	// log
	switch {
	case out.Log == nil && b.Log != nil:
		c := *b.Log
		out.Log = &c
	case out.Log != nil && b.Log != nil:
		c := *out.Log
		if b.Log.Level != "" {
			c.Level = b.Log.Level
		}
		out.Log = &c
	}

	return out
}
