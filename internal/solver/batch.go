package solver

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// SolveMany resolves each candidate target against the same gold and
// inventory, as alternatives rather than a shopping list: every target gets
// its own clones. Plans come back in targets order. The only error is ctx's.
func (s *Solver) SolveMany(ctx context.Context, gold float64, owned []string, targets []string) ([]Plan, error) {
	plans := make([]Plan, len(targets))
	owned = append([]string(nil), owned...)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchLimit)
	for i, target := range targets {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			plans[i] = s.Solve(gold, owned, target)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return plans, nil
}
