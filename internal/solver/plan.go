package solver

// Purchase is one line item in a plan.
type Purchase struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	Count   int    `json:"count"`
	Cost    int    `json:"cost"`              // gold paid for this line
	IsFinal bool   `json:"isFinal,omitempty"` // combine purchase of the target itself
}

// Plan summarizes what to buy now toward a target item.
type Plan struct {
	TargetItem    string     `json:"targetItem"`
	BuyNow        []Purchase `json:"buyNow"`
	GoldSpent     int        `json:"goldSpent"`
	GoldRemaining float64    `json:"goldRemaining"`
	GoldToFinish  int        `json:"goldToFinish"`
	TotalMissing  int        `json:"totalMissing"` // missing cost before anything in BuyNow
	Complete      bool       `json:"complete"`
	Warnings      []Warning  `json:"warnings,omitempty"`
}

// FinalBought reports whether the plan pays the target's combine cost.
func (p Plan) FinalBought() bool {
	for _, b := range p.BuyNow {
		if b.IsFinal {
			return true
		}
	}
	return false
}

// WarningKind classifies an id the resolver skipped at zero cost.
type WarningKind string

const (
	WarnUnknownItem    WarningKind = "unknown_item"
	WarnNotPurchasable WarningKind = "not_purchasable"
	WarnCycle          WarningKind = "cycle"
)

// Warning flags recipe data that was resolved to zero cost. A plan with
// warnings may look complete while the catalog is actually broken; strict
// callers can treat any warning as an error.
type Warning struct {
	Kind   WarningKind `json:"kind"`
	ItemID string      `json:"itemId"`
}

// diagnostics collects warnings once each, in discovery order.
type diagnostics struct {
	seen map[Warning]bool
	list []Warning
}

func (d *diagnostics) add(kind WarningKind, id string) {
	if d == nil || id == "" {
		return
	}
	w := Warning{Kind: kind, ItemID: id}
	if d.seen[w] {
		return
	}
	if d.seen == nil {
		d.seen = make(map[Warning]bool)
	}
	d.seen[w] = true
	d.list = append(d.list, w)
}
