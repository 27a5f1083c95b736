package session

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/xtding233/gold-solver/internal/solver"
)

// ErrNoTarget is returned when neither the snapshot nor the poller names a
// target item.
var ErrNoTarget = errors.New("snapshot has no target item")

// Sink receives every plan the poller produces.
type Sink func(Snapshot, solver.Plan)

// Poller re-solves a snapshot file whenever it changes on disk.
type Poller struct {
	path          string
	defaultTarget string
	solver        *solver.Solver
	sink          Sink
	log           *slog.Logger
	watcher       *FileWatcher
}

// NewPoller watches path every interval and hands each plan to sink.
// defaultTarget is used for snapshots that carry no target.
func NewPoller(path string, interval time.Duration, s *solver.Solver, defaultTarget string, sink Sink, log *slog.Logger) *Poller {
	if log == nil {
		log = slog.Default()
	}
	p := &Poller{
		path:          path,
		defaultTarget: defaultTarget,
		solver:        s,
		sink:          sink,
		log:           log,
	}
	p.watcher = NewFileWatcher([]string{path}, interval, func(string) { p.pollAndLog() })
	p.watcher.log = log
	return p
}

// Start solves the current snapshot once and then follows changes.
func (p *Poller) Start() {
	p.log.Info("snapshot poller started", "path", p.path, "interval", p.watcher.Interval)
	p.pollAndLog()
	p.watcher.Start()
}

// Stop ends polling.
func (p *Poller) Stop() {
	p.watcher.Stop()
}

// Poll reads, decodes and solves the snapshot file once.
func (p *Poller) Poll() (Snapshot, solver.Plan, error) {
	raw, err := os.ReadFile(p.path)
	if err != nil {
		return Snapshot{}, solver.Plan{}, fmt.Errorf("read snapshot %s: %w", p.path, err)
	}
	snap, err := Decode(raw)
	if err != nil {
		return Snapshot{}, solver.Plan{}, fmt.Errorf("decode snapshot %s: %w", p.path, err)
	}
	if snap.Target == "" {
		snap.Target = p.defaultTarget
	}
	if snap.Target == "" {
		return snap, solver.Plan{}, ErrNoTarget
	}

	plan := p.solver.Solve(snap.Gold, snap.Items, snap.Target)
	if p.sink != nil {
		p.sink(snap, plan)
	}
	return snap, plan, nil
}

func (p *Poller) pollAndLog() {
	snap, plan, err := p.Poll()
	if err != nil {
		p.log.Warn("snapshot skipped", "path", p.path, "err", err)
		return
	}
	p.log.Debug("snapshot solved",
		"player", snap.Player,
		"target", plan.TargetItem,
		"gold", snap.Gold,
		"buy", len(plan.BuyNow),
		"to_finish", plan.GoldToFinish)
}
