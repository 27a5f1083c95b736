package inventory

import "sort"

// Multiset holds owned items as counts keyed by item id.
// A Multiset is never shared between independent computations: callers that
// need to consume units take a Clone first.
type Multiset struct {
	counts map[string]int
}

// New returns an empty multiset.
func New() *Multiset {
	return &Multiset{counts: make(map[string]int)}
}

// FromList counts repeated ids. Empty ids are skipped.
func FromList(ids []string) *Multiset {
	m := &Multiset{counts: make(map[string]int, len(ids))}
	for _, id := range ids {
		m.Add(id)
	}
	return m
}

// Add increments the count of id by one.
func (m *Multiset) Add(id string) {
	if id == "" {
		return
	}
	if m.counts == nil {
		m.counts = make(map[string]int)
	}
	m.counts[id]++
}

// Clone returns an independent copy.
func (m *Multiset) Clone() *Multiset {
	if m == nil {
		return New()
	}
	c := &Multiset{counts: make(map[string]int, len(m.counts))}
	for k, v := range m.counts {
		c.counts[k] = v
	}
	return c
}

// Take consumes one unit of id. It reports false, leaving the multiset
// unchanged, when no unit is owned.
func (m *Multiset) Take(id string) bool {
	if m == nil {
		return false
	}
	have := m.counts[id]
	if have <= 0 {
		return false
	}
	if have == 1 {
		delete(m.counts, id)
	} else {
		m.counts[id] = have - 1
	}
	return true
}

// Count returns how many units of id are owned.
func (m *Multiset) Count(id string) int {
	if m == nil {
		return 0
	}
	return m.counts[id]
}

// Len returns the total number of owned units.
func (m *Multiset) Len() int {
	if m == nil {
		return 0
	}
	n := 0
	for _, v := range m.counts {
		n += v
	}
	return n
}

// Items expands the multiset back into a sorted id list.
func (m *Multiset) Items() []string {
	if m == nil {
		return nil
	}
	out := make([]string, 0, m.Len())
	for id, n := range m.counts {
		for i := 0; i < n; i++ {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}
