package config

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config validation failed")

// ValidateRaw checks semantic constraints of a RawConfig.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	// catalog
	if strings.TrimSpace(cfg.Catalog.MapID) != cfg.Catalog.MapID {
		errs = append(errs, "catalog.map_id must not contain surrounding whitespace")
	}

	// snapshot
	if cfg.Snapshot != nil && cfg.Snapshot.Interval != nil && *cfg.Snapshot.Interval <= 0 {
		errs = append(errs, "snapshot.interval must be > 0")
	}

	// solver
	if cfg.Solver != nil && cfg.Solver.BatchLimit != nil && *cfg.Solver.BatchLimit < 1 {
		errs = append(errs, "solver.batch_limit must be >= 1")
	}

	// log
	if cfg.Log != nil {
		switch cfg.Log.Level {
		case "", "debug", "info", "warn", "error":
		default:
			errs = append(errs, "log.level must be one of: debug, info, warn, error")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(errs, "; "))
	}
	return nil
}
