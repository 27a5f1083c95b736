package solver

import (
	"log/slog"
	"math"

	"github.com/xtding233/gold-solver/internal/catalog"
	"github.com/xtding233/gold-solver/internal/inventory"
)

// DefaultBatchLimit bounds how many targets SolveMany resolves at once.
const DefaultBatchLimit = 4

// Solver resolves purchase plans against one catalog. It holds no mutable
// state, so a single Solver serves concurrent callers.
type Solver struct {
	cat        *catalog.Catalog
	log        *slog.Logger
	batchLimit int
}

// Option configures a Solver.
type Option func(*Solver)

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Solver) {
		if l != nil {
			s.log = l
		}
	}
}

// WithBatchLimit sets the SolveMany concurrency limit; n <= 0 keeps the default.
func WithBatchLimit(n int) Option {
	return func(s *Solver) {
		if n > 0 {
			s.batchLimit = n
		}
	}
}

// New returns a Solver over cat. A nil catalog behaves as an empty one.
func New(cat *catalog.Catalog, opts ...Option) *Solver {
	if cat == nil {
		cat = catalog.New(nil, catalog.Options{})
	}
	s := &Solver{
		cat:        cat,
		log:        slog.Default(),
		batchLimit: DefaultBatchLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog returns the catalog the solver reads.
func (s *Solver) Catalog() *catalog.Catalog { return s.cat }

// Solve reports the gold still needed for target, what to buy with gold right
// now and whether target is complete. owned is a multiset: repeated ids mean
// repeated units. Neither argument is modified and malformed input never
// fails; unknown, non-purchasable and cyclic ids cost nothing and show up in
// Plan.Warnings.
func (s *Solver) Solve(gold float64, owned []string, target string) Plan {
	gold = sanitizeGold(gold)
	targetID := catalog.NormalizeID(target)
	inv := s.ownedMultiset(owned)
	diag := &diagnostics{}

	totalMissing := newWalker(s.cat, inv, diag).missingCost(targetID)
	parts := newWalker(s.cat, inv, diag).collectLeafParts(targetID, nil)

	plan := Plan{
		TargetItem:    targetID,
		BuyNow:        []Purchase{},
		GoldRemaining: gold,
		TotalMissing:  totalMissing,
	}

	finalBought := false
	if len(parts) > 0 {
		buys, spent, remaining := buyInOrder(s.cat, parts, gold)
		if len(buys) > 0 {
			plan.BuyNow = buys
		}
		plan.GoldSpent = spent
		plan.GoldRemaining = remaining
	} else if buy, ok := finalPurchase(s.cat, targetID, inv, gold); ok {
		plan.BuyNow = []Purchase{buy}
		plan.GoldSpent = buy.Cost
		plan.GoldRemaining = gold - float64(buy.Cost)
		finalBought = true
	}

	plan.GoldToFinish = max(0, totalMissing-plan.GoldSpent)
	plan.Complete = plan.GoldToFinish == 0 && (totalMissing == 0 || finalBought)
	plan.Warnings = diag.list

	s.log.Debug("solved purchase plan",
		"target", targetID,
		"gold", gold,
		"owned", inv.Len(),
		"missing", totalMissing,
		"buy", len(plan.BuyNow),
		"complete", plan.Complete,
		"warnings", len(plan.Warnings))
	return plan
}

// ownedMultiset normalizes owned ids and drops the ones the catalog does not
// know.
func (s *Solver) ownedMultiset(owned []string) *inventory.Multiset {
	inv := inventory.New()
	for _, raw := range owned {
		id := catalog.NormalizeID(raw)
		if id == "" || s.cat.Lookup(id) == nil {
			continue
		}
		inv.Add(id)
	}
	return inv
}

func sanitizeGold(g float64) float64 {
	if math.IsNaN(g) || math.IsInf(g, 0) || g < 0 {
		return 0
	}
	return g
}
