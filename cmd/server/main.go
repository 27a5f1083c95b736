package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xtding233/gold-solver/internal/catalog"
	"github.com/xtding233/gold-solver/internal/config"
	"github.com/xtding233/gold-solver/internal/session"
	"github.com/xtding233/gold-solver/internal/solver"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("gold solver failed", "err", err)
		os.Exit(1)
	}
}

func run() error {
	settings, err := config.Load(configDir(), envOverrides())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: settings.SlogLevel()}))
	slog.SetDefault(log)

	src := catalog.NewSource(settings.CatalogPath, settings.CatalogOptions(log))
	cat, err := src.Catalog()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	s := solver.New(cat, solver.WithLogger(log), solver.WithBatchLimit(settings.BatchLimit))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if settings.SnapshotPath != "" {
		p := session.NewPoller(settings.SnapshotPath, settings.SnapshotInterval, s, settings.SnapshotTarget, logPlan(log), log)
		p.Start()
		defer p.Stop()
	}

	srv := &http.Server{
		Addr:              settings.ServerAddr,
		Handler:           newServer(s, log).routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", settings.ServerAddr, "items", cat.Len(), "map", cat.MapID())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func configDir() string {
	if d := os.Getenv("GOLDSOLVER_CONFIG_DIR"); d != "" {
		return d
	}
	return "config"
}

// envOverrides reads GOLDSOLVER_* variables; set ones win over the files.
func envOverrides() config.Overrides {
	lookup := func(key string) *string {
		if v, ok := os.LookupEnv(key); ok {
			return &v
		}
		return nil
	}
	return config.Overrides{
		CatalogPath:  lookup("GOLDSOLVER_CATALOG"),
		MapID:        lookup("GOLDSOLVER_MAP_ID"),
		ServerAddr:   lookup("GOLDSOLVER_ADDR"),
		SnapshotPath: lookup("GOLDSOLVER_SNAPSHOT"),
		LogLevel:     lookup("GOLDSOLVER_LOG_LEVEL"),
	}
}

func logPlan(log *slog.Logger) session.Sink {
	return func(snap session.Snapshot, plan solver.Plan) {
		buy := make([]string, 0, len(plan.BuyNow))
		for _, p := range plan.BuyNow {
			buy = append(buy, p.ID)
		}
		log.Info("plan",
			"player", snap.Player,
			"target", plan.TargetItem,
			"gold", snap.Gold,
			"buy", buy,
			"to_finish", plan.GoldToFinish,
			"complete", plan.Complete,
			"warnings", len(plan.Warnings))
	}
}
