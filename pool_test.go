package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolDerive(t *testing.T) {
	p := NewPool([]int{6, 2, 3, 1})
	combined := Value{Result: 18, Expr: Node(OpMul, p[0].Expr, p[2].Expr)}

	next, err := p.Derive(0, 2, combined)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1, 18}, next.Results())
	assert.Len(t, next, len(p)-1)

	// the parent pool stays valid for sibling branches
	assert.Equal(t, []int{6, 2, 3, 1}, p.Results())
}

func TestPoolDeriveIndexErrors(t *testing.T) {
	p := NewPool([]int{1, 2, 3})
	v := NewLeafValue(9)
	for _, ij := range [][2]int{{1, 1}, {-1, 2}, {0, 3}, {5, 0}} {
		_, err := p.Derive(ij[0], ij[1], v)
		assert.ErrorIs(t, err, ErrIndex, "derive(%d, %d)", ij[0], ij[1])
	}
}

func TestPoolExhausted(t *testing.T) {
	assert.True(t, NewPool([]int{5}).Exhausted(Rules{}, 0))
	assert.True(t, Pool{}.Exhausted(Rules{}, 0))
	assert.False(t, NewPool([]int{5, 3}).Exhausted(Rules{}, 0))

	// both values already use two operators, so no pair fits in three
	a := Value{Result: 6, Expr: Node(OpAdd, Node(OpAdd, Leaf(1), Leaf(2)), Leaf(3))}
	b := Value{Result: 24, Expr: Node(OpMul, Node(OpMul, Leaf(2), Leaf(3)), Leaf(4))}
	assert.True(t, Pool{a, b}.Exhausted(Rules{}, 3))
	assert.False(t, Pool{a, b}.Exhausted(Rules{}, 5))
}

func TestPoolKey(t *testing.T) {
	a := NewPool([]int{3, 25, 9, 8})
	b := NewPool([]int{25, 8, 3, 9})
	assert.Equal(t, "3,8,9,25", a.Key())
	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), NewPool([]int{3, 25, 9, 9}).Key())

	// 6 as an input and 6 as 3 * 2 cost different amounts
	six := Value{Result: 6, Expr: Node(OpMul, Leaf(3), Leaf(2))}
	assert.Equal(t, "4,6:1", Pool{NewLeafValue(4), six}.Key())
	assert.NotEqual(t, NewPool([]int{4, 6}).Key(), Pool{six, NewLeafValue(4)}.Key())
	assert.Equal(t, Pool{six, NewLeafValue(6)}.Key(), Pool{NewLeafValue(6), six}.Key())
}
