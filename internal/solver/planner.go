package solver

import (
	"github.com/xtding233/gold-solver/internal/catalog"
	"github.com/xtding233/gold-solver/internal/inventory"
)

// buyInOrder spends gold on parts in build order. It stops at the first part
// it cannot afford instead of skipping ahead to a cheaper one: the next needed
// component is always bought first.
func buyInOrder(cat *catalog.Catalog, parts []Part, gold float64) (buys []Purchase, spent int, remaining float64) {
	remaining = gold
	for _, p := range parts {
		if float64(p.Cost) > remaining {
			break
		}
		buys = append(buys, Purchase{
			ID:    p.ID,
			Name:  itemName(cat, p.ID),
			Count: 1,
			Cost:  p.Cost,
		})
		spent += p.Cost
		remaining -= float64(p.Cost)
	}
	return buys, spent, remaining
}

// finalPurchase decides whether the target's combine markup can be paid now.
// That needs a positive markup, the target not already owned, every direct
// component owned and enough gold.
func finalPurchase(cat *catalog.Catalog, target string, owned *inventory.Multiset, gold float64) (Purchase, bool) {
	it := cat.Lookup(target)
	if !cat.IsPurchasable(it) || it.IsBase() {
		return Purchase{}, false
	}
	if owned.Count(it.ID()) > 0 {
		return Purchase{}, false
	}
	recipe := cat.RecipeCost(it)
	if recipe <= 0 || float64(recipe) > gold {
		return Purchase{}, false
	}
	if !allChildrenOwned(it, owned) {
		return Purchase{}, false
	}
	return Purchase{
		ID:      it.ID(),
		Name:    it.Name(),
		Count:   1,
		Cost:    recipe,
		IsFinal: true,
	}, true
}

// allChildrenOwned checks direct components against a clone, so duplicate
// components need duplicate units.
func allChildrenOwned(it *catalog.Item, owned *inventory.Multiset) bool {
	tmp := owned.Clone()
	for i := 0; i < it.NumChildren(); i++ {
		if !tmp.Take(it.Child(i)) {
			return false
		}
	}
	return true
}

func itemName(cat *catalog.Catalog, id string) string {
	if it := cat.Lookup(id); it != nil {
		return it.Name()
	}
	return ""
}
