package main

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// BatchItem is the outcome of one puzzle of a batch. Err is set when the puzzle
// was rejected; the other puzzles still run.
type BatchItem struct {
	Index  int
	Puzzle Puzzle
	Result Result
	Err    error
}

// SolveBatch solves independent puzzles in parallel, at most Config.Workers at a
// time. Each search owns its own tracker and deadline. Items keep input order.
func (s *Solver) SolveBatch(ctx context.Context, puzzles []Puzzle) []BatchItem {
	items := make([]BatchItem, len(puzzles))
	workers := s.cfg.Workers
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range puzzles {
		items[i] = BatchItem{Index: i, Puzzle: p}
		g.Go(func() error {
			res, err := s.Solve(gctx, p)
			items[i].Result, items[i].Err = res, err
			return nil
		})
	}
	_ = g.Wait()
	return items
}
