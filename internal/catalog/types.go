package catalog

import (
	"log/slog"
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// DefaultMapID is the map purchasability is checked against when Options
// leaves it empty (Summoner's Rift).
const DefaultMapID = "11"

// Options controls how a catalog is built.
type Options struct {
	MapID  string       // active map for IsPurchasable; DefaultMapID if empty
	Strict bool         // fail Load when Validate reports integrity issues
	Logger *slog.Logger // defaults to slog.Default()
}

func (o Options) mapID() string {
	if o.MapID == "" {
		return DefaultMapID
	}
	return o.MapID
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// Def describes one item record before it is indexed.
// The zero value of NotPurchasable means the item can be bought.
type Def struct {
	ID             string
	Name           string
	TotalCost      int
	Children       []string
	NotPurchasable bool
	Maps           map[string]bool // map id -> available; missing map means available
}

// Item is an immutable catalog record.
type Item struct {
	id          string
	name        string
	totalCost   int
	children    []string
	purchasable bool
	maps        map[string]bool
}

func (it *Item) ID() string        { return it.id }
func (it *Item) Name() string      { return it.name }
func (it *Item) TotalCost() int    { return it.totalCost }
func (it *Item) NumChildren() int  { return len(it.children) }
func (it *Item) IsBase() bool      { return len(it.children) == 0 }
func (it *Item) Purchasable() bool { return it.purchasable }

// Children returns a copy of the ordered direct component ids.
func (it *Item) Children() []string { return slices.Clone(it.children) }

// Child returns the i-th direct component id.
func (it *Item) Child(i int) string { return it.children[i] }

// AvailableOn reports whether the item is not excluded from mapID.
func (it *Item) AvailableOn(mapID string) bool {
	avail, ok := it.maps[mapID]
	return !ok || avail
}

// Def returns the record the item was built from.
func (it *Item) Def() Def {
	d := Def{
		ID:             it.id,
		Name:           it.name,
		TotalCost:      it.totalCost,
		Children:       slices.Clone(it.children),
		NotPurchasable: !it.purchasable,
	}
	if len(it.maps) > 0 {
		d.Maps = make(map[string]bool, len(it.maps))
		for k, v := range it.maps {
			d.Maps[k] = v
		}
	}
	return d
}

// Catalog indexes items by id. It is read-only once built and safe for
// concurrent use.
type Catalog struct {
	version string
	mapID   string
	digest  string
	items   map[string]*Item
}

// New indexes defs. Records with an empty normalized id are dropped; a later
// record with the same id replaces an earlier one.
func New(defs []Def, opts Options) *Catalog {
	c := &Catalog{
		mapID: opts.mapID(),
		items: make(map[string]*Item, len(defs)),
	}
	for _, d := range defs {
		id := NormalizeID(d.ID)
		if id == "" {
			continue
		}
		it := &Item{
			id:          id,
			name:        d.Name,
			totalCost:   max(0, d.TotalCost),
			purchasable: !d.NotPurchasable,
		}
		for _, child := range d.Children {
			if cid := NormalizeID(child); cid != "" {
				it.children = append(it.children, cid)
			}
		}
		if len(d.Maps) > 0 {
			it.maps = make(map[string]bool, len(d.Maps))
			for k, v := range d.Maps {
				it.maps[k] = v
			}
		}
		c.items[id] = it
	}
	return c
}

// Lookup returns the item for id, or nil if unknown.
func (c *Catalog) Lookup(id string) *Item {
	if c == nil {
		return nil
	}
	return c.items[NormalizeID(id)]
}

// IsPurchasable reports whether it may be bought standalone on the catalog's map.
// Unknown items are never purchasable; missing flags default to purchasable.
func (c *Catalog) IsPurchasable(it *Item) bool {
	if it == nil {
		return false
	}
	if !it.purchasable {
		return false
	}
	return it.AvailableOn(c.mapID)
}

// RecipeCost is the combine markup of it: its total cost minus the total cost
// of every resolvable, purchasable direct component, floored at zero.
// A base item costs its total; unknown or non-purchasable items cost nothing.
func (c *Catalog) RecipeCost(it *Item) int {
	if !c.IsPurchasable(it) {
		return 0
	}
	if it.IsBase() {
		return it.totalCost
	}
	childrenTotal := 0
	for _, cid := range it.children {
		if child := c.items[cid]; c.IsPurchasable(child) {
			childrenTotal += child.totalCost
		}
	}
	return max(0, it.totalCost-childrenTotal)
}

func (c *Catalog) Len() int        { return len(c.items) }
func (c *Catalog) MapID() string   { return c.mapID }
func (c *Catalog) Version() string { return c.version }

// Digest is the hex sha256 of the decoded catalog document.
func (c *Catalog) Digest() string { return c.digest }

// IDs returns every item id in sorted order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.items))
	for id := range c.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// NormalizeID canonicalizes an item id: surrounding whitespace is trimmed and
// integral numbers lose their fraction ("3006.0" -> "3006"). Empty and "0"
// ids normalize to "".
func NormalizeID(v string) string {
	s := strings.TrimSpace(v)
	if s == "" {
		return ""
	}
	if strings.ContainsAny(s, ".eE") {
		if f, err := strconv.ParseFloat(s, 64); err == nil && f == math.Trunc(f) && !math.IsInf(f, 0) {
			s = strconv.FormatInt(int64(f), 10)
		}
	}
	if s == "0" {
		return ""
	}
	return s
}
