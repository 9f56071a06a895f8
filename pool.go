package main

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
)

// Pool is the multiset of values still available at one point of the search.
// Pools are never modified in place: Derive returns a fresh copy so sibling
// branches keep seeing their parent's pool.
type Pool []Value

// NewPool builds the seed pool from the raw input numbers.
func NewPool(numbers []int) Pool {
	p := make(Pool, len(numbers))
	for i, n := range numbers {
		p[i] = NewLeafValue(n)
	}
	return p
}

// Derive returns p with the values at i and j replaced by combined.
func (p Pool) Derive(i, j int, combined Value) (Pool, error) {
	if i == j || i < 0 || j < 0 || i >= len(p) || j >= len(p) {
		return nil, fmt.Errorf("%w: derive(%d, %d) on pool of %d", ErrIndex, i, j, len(p))
	}
	out := make(Pool, 0, len(p)-1)
	for k := range p {
		if k != i && k != j {
			out = append(out, p[k])
		}
	}
	return append(out, combined), nil
}

// Exhausted reports whether no further combination is possible: a single value
// is left, or no pair yields a legal result under rules within maxOps operators
// (maxOps <= 0 means unbounded).
func (p Pool) Exhausted(rules Rules, maxOps int) bool {
	if len(p) <= 1 {
		return true
	}
	for i := 0; i < len(p); i++ {
		for j := i + 1; j < len(p); j++ {
			if maxOps > 0 && p[i].Size()+p[j].Size()+1 > maxOps {
				continue
			}
			for range Combine(p[i], p[j], rules) {
				return false
			}
		}
	}
	return true
}

// Results returns the numeric results of the pool, in pool order.
func (p Pool) Results() []int {
	out := make([]int, len(p))
	for i := range p {
		out[i] = p[i].Result
	}
	return out
}

// Key is the canonical fingerprint of the pool: its sorted results, each tagged
// with the operators spent on it ("18:1"; input numbers carry no tag). Pools
// reached through different combination orders share a key when they hold the
// same results at the same cost, so exploring one of them is as good as both.
func (p Pool) Key() string {
	type entry struct{ result, size int }
	es := make([]entry, len(p))
	for i, v := range p {
		es[i] = entry{v.Result, v.Size()}
	}
	slices.SortFunc(es, func(a, b entry) int {
		if a.result != b.result {
			return cmp.Compare(a.result, b.result)
		}
		return cmp.Compare(a.size, b.size)
	})
	buf := make([]byte, 0, len(es)*6)
	for i, e := range es {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendInt(buf, int64(e.result), 10)
		if e.size > 0 {
			buf = append(buf, ':')
			buf = strconv.AppendInt(buf, int64(e.size), 10)
		}
	}
	return string(buf)
}
