// types.go
package config

import "time"

// RawConfig is the YAML schema. Pointer fields distinguish "unset" from zero
// so a local file can override just what it names.
type RawConfig struct {
	Version  string          `yaml:"version"`
	Catalog  CatalogConfig   `yaml:"catalog"`
	Server   *ServerConfig   `yaml:"server,omitempty"`
	Snapshot *SnapshotConfig `yaml:"snapshot,omitempty"`
	Solver   *SolverConfig   `yaml:"solver,omitempty"`
	Log      *LogConfig      `yaml:"log,omitempty"`
	Notes    string          `yaml:"notes,omitempty"`
}

type CatalogConfig struct {
	Path   string `yaml:"path"`
	MapID  string `yaml:"map_id"`
	Strict *bool  `yaml:"strict,omitempty"` // fail startup on catalog integrity issues
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// SnapshotConfig points the poller at a session snapshot file. An empty path
// disables polling.
type SnapshotConfig struct {
	Path     string         `yaml:"path"`
	Interval *time.Duration `yaml:"interval,omitempty"`
	Target   string         `yaml:"target,omitempty"` // used when the snapshot names none
}

type SolverConfig struct {
	BatchLimit *int `yaml:"batch_limit,omitempty"`
}

type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Settings are the normalized values the binaries run with.
type Settings struct {
	CatalogPath   string
	MapID         string
	StrictCatalog bool

	ServerAddr string

	SnapshotPath     string
	SnapshotInterval time.Duration
	SnapshotTarget   string

	BatchLimit int
	LogLevel   string
	Version    string // effective config version for tracing
}
