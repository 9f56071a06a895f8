package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveBatch(t *testing.T) {
	s := testSolver(func(c *Config) {
		c.Workers = 2
		c.Budget = 2 * time.Second
	})
	ps := []Puzzle{
		{Target: 19, Numbers: []int{6, 2, 3, 1, 5, 2}},
		{Target: 10},
		{Target: 1, Numbers: []int{2, 7}},
		{Target: 193, Numbers: []int{10, 4, 6, 7}},
	}
	items := s.SolveBatch(context.Background(), ps)
	require.Len(t, items, len(ps))

	for i, it := range items {
		assert.Equal(t, i, it.Index)
		assert.Equal(t, ps[i].Target, it.Puzzle.Target)
	}
	assert.ErrorIs(t, items[1].Err, ErrInvalidInput)
	for _, i := range []int{0, 2, 3} {
		require.NoError(t, items[i].Err)
		verifyResult(t, ps[i], Rules{}, items[i].Result)
	}
	assert.Equal(t, 0, items[0].Result.Distance)
	assert.Equal(t, 1, items[2].Result.Distance)
}

func TestSolveBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	items := testSolver(nil).SolveBatch(ctx, []Puzzle{{Target: 831, Numbers: []int{3, 25, 9, 8, 6, 7}}})
	require.Len(t, items, 1)
	require.NoError(t, items[0].Err)
	assert.Equal(t, StopCancelled, items[0].Result.StopReason)
}
