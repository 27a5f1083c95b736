// resolve.go
package config

import (
	"log/slog"
	"time"

	"github.com/xtding233/gold-solver/internal/catalog"
	"github.com/xtding233/gold-solver/internal/solver"
)

// Defaults applied by Resolve when the config leaves a value unset.
const (
	DefaultCatalogPath      = "data/items.json"
	DefaultServerAddr       = ":8080"
	DefaultSnapshotInterval = time.Second
	DefaultLogLevel         = "info"
)

// Overrides carries values from the environment or flags; they win over the
// files.
type Overrides struct {
	CatalogPath  *string
	MapID        *string
	ServerAddr   *string
	SnapshotPath *string
	LogLevel     *string
}

// Resolve validates raw, applies overrides and fills defaults.
func Resolve(raw RawConfig, o Overrides) (Settings, error) {
	if o.CatalogPath != nil {
		raw.Catalog.Path = *o.CatalogPath
	}
	if o.MapID != nil {
		raw.Catalog.MapID = *o.MapID
	}
	if o.ServerAddr != nil {
		if raw.Server == nil {
			raw.Server = &ServerConfig{}
		} else {
			c := *raw.Server
			raw.Server = &c
		}
		raw.Server.Addr = *o.ServerAddr
	}
	if o.SnapshotPath != nil {
		if raw.Snapshot == nil {
			raw.Snapshot = &SnapshotConfig{}
		} else {
			c := *raw.Snapshot
			raw.Snapshot = &c
		}
		raw.Snapshot.Path = *o.SnapshotPath
	}
	if o.LogLevel != nil {
		if raw.Log == nil {
			raw.Log = &LogConfig{}
		} else {
			c := *raw.Log
			raw.Log = &c
		}
		raw.Log.Level = *o.LogLevel
	}

	if err := ValidateRaw(raw); err != nil {
		return Settings{}, err
	}

	s := Settings{
		CatalogPath:      raw.Catalog.Path,
		MapID:            raw.Catalog.MapID,
		ServerAddr:       DefaultServerAddr,
		SnapshotInterval: DefaultSnapshotInterval,
		BatchLimit:       solver.DefaultBatchLimit,
		LogLevel:         DefaultLogLevel,
		Version:          raw.Version,
	}
	if s.CatalogPath == "" {
		s.CatalogPath = DefaultCatalogPath
	}
	if s.MapID == "" {
		s.MapID = catalog.DefaultMapID
	}
	if raw.Catalog.Strict != nil {
		s.StrictCatalog = *raw.Catalog.Strict
	}
	if raw.Server != nil && raw.Server.Addr != "" {
		s.ServerAddr = raw.Server.Addr
	}
	if raw.Snapshot != nil {
		s.SnapshotPath = raw.Snapshot.Path
		s.SnapshotTarget = raw.Snapshot.Target
		if raw.Snapshot.Interval != nil {
			s.SnapshotInterval = *raw.Snapshot.Interval
		}
	}
	if raw.Solver != nil && raw.Solver.BatchLimit != nil {
		s.BatchLimit = *raw.Solver.BatchLimit
	}
	if raw.Log != nil && raw.Log.Level != "" {
		s.LogLevel = raw.Log.Level
	}
	return s, nil
}

// SlogLevel maps LogLevel onto slog; unknown values mean info.
func (s Settings) SlogLevel() slog.Level {
	switch s.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// CatalogOptions builds the catalog load options for these settings.
func (s Settings) CatalogOptions(log *slog.Logger) catalog.Options {
	return catalog.Options{MapID: s.MapID, Strict: s.StrictCatalog, Logger: log}
}
