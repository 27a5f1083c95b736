package catalog

import (
	"fmt"
	"strings"
)

// Validate checks the recipe graph for integrity issues: components that do
// not resolve and recipe cycles. The resolver tolerates both, so the result is
// advisory unless Options.Strict is set.
func Validate(c *Catalog) error {
	var errs []string

	for _, id := range c.IDs() {
		for _, cid := range c.items[id].children {
			if _, ok := c.items[cid]; !ok {
				errs = append(errs, fmt.Sprintf("item %s: unknown component %s", id, cid))
			}
		}
	}
	for _, cycle := range Cycles(c) {
		errs = append(errs, "recipe cycle: "+strings.Join(cycle, " -> "))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidCatalog, strings.Join(errs, "; "))
	}
	return nil
}

// Cycles returns every recipe cycle reachable in the graph, each as the path
// from the first repeated id back to itself. Ids are walked in sorted order so
// the result is deterministic.
func Cycles(c *Catalog) [][]string {
	const (
		unseen = iota
		onPath
		done
	)
	state := make(map[string]int, len(c.items))
	var path []string
	var out [][]string

	var visit func(id string)
	visit = func(id string) {
		state[id] = onPath
		path = append(path, id)
		for _, cid := range c.items[id].children {
			if _, ok := c.items[cid]; !ok {
				continue
			}
			switch state[cid] {
			case unseen:
				visit(cid)
			case onPath:
				start := len(path) - 1
				for path[start] != cid {
					start--
				}
				cycle := append([]string(nil), path[start:]...)
				out = append(out, append(cycle, cid))
			}
		}
		path = path[:len(path)-1]
		state[id] = done
	}

	for _, id := range c.IDs() {
		if state[id] == unseen {
			visit(id)
		}
	}
	return out
}
