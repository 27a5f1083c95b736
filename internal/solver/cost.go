package solver

import (
	"github.com/xtding233/gold-solver/internal/catalog"
	"github.com/xtding233/gold-solver/internal/inventory"
)

// Part is a base component still to be bought.
type Part struct {
	ID   string
	Cost int
}

// walker runs one traversal of the recipe graph. It owns its multiset clone
// and its visiting set; two traversals never share either.
type walker struct {
	cat      *catalog.Catalog
	owned    *inventory.Multiset
	visiting map[string]bool
	diag     *diagnostics
}

func newWalker(cat *catalog.Catalog, owned *inventory.Multiset, diag *diagnostics) *walker {
	return &walker{
		cat:      cat,
		owned:    owned.Clone(),
		visiting: make(map[string]bool),
		diag:     diag,
	}
}

// enter resolves id for expansion. It returns nil when id is satisfied by an
// owned unit (one unit is consumed), is already on the current path, or does
// not resolve to a purchasable item.
func (w *walker) enter(id string) *catalog.Item {
	if w.owned.Take(id) {
		return nil
	}
	if w.visiting[id] {
		w.diag.add(WarnCycle, id)
		return nil
	}
	it := w.cat.Lookup(id)
	if it == nil {
		w.diag.add(WarnUnknownItem, id)
		return nil
	}
	if !w.cat.IsPurchasable(it) {
		w.diag.add(WarnNotPurchasable, id)
		return nil
	}
	return it
}

// missingCost is the gold still needed to finish id: the combine markup of
// every unowned composite on the way down plus the cost of every unowned base
// item.
func (w *walker) missingCost(id string) int {
	it := w.enter(id)
	if it == nil {
		return 0
	}
	if it.IsBase() {
		return it.TotalCost()
	}

	w.visiting[id] = true
	defer delete(w.visiting, id)

	missing := w.cat.RecipeCost(it)
	for i := 0; i < it.NumChildren(); i++ {
		missing += w.missingCost(it.Child(i))
	}
	return missing
}

// collectLeafParts appends every unowned base item under id to out, depth
// first and left to right: the order a player buys components in.
func (w *walker) collectLeafParts(id string, out []Part) []Part {
	it := w.enter(id)
	if it == nil {
		return out
	}
	if it.IsBase() {
		return append(out, Part{ID: it.ID(), Cost: it.TotalCost()})
	}

	w.visiting[id] = true
	defer delete(w.visiting, id)

	for i := 0; i < it.NumChildren(); i++ {
		out = w.collectLeafParts(it.Child(i), out)
	}
	return out
}
