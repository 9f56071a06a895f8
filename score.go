package main

import "math"

// ── Ranking ─────────────────────────────────────────────────────────

// Distance is |result - target|, saturating at math.MaxInt.
func Distance(result, target int) int {
	d := result - target
	// overflow: operands of opposite sign whose difference wrapped around
	if (result >= target) != (d >= 0) {
		return math.MaxInt
	}
	if d < 0 {
		if d == math.MinInt {
			return math.MaxInt
		}
		return -d
	}
	return d
}

// better reports whether (dist, size) ranks strictly ahead of (bestDist, bestSize):
// closer to the target wins, then fewer operators. Full ties keep the incumbent.
func better(dist, size, bestDist, bestSize int) bool {
	if dist != bestDist {
		return dist < bestDist
	}
	return size < bestSize
}

// ── Tracker ─────────────────────────────────────────────────────────

// Tracker records the best value seen during one search. It is owned by a single
// search invocation and is not safe for concurrent use.
type Tracker struct {
	target  int
	best    Value
	dist    int
	has     bool
	updates int
}

// NewTracker returns an empty tracker for target.
func NewTracker(target int) *Tracker {
	return &Tracker{target: target, dist: math.MaxInt}
}

// Consider offers a candidate and reports whether it replaced the current best.
func (t *Tracker) Consider(v Value) bool {
	d := Distance(v.Result, t.target)
	if t.has && !better(d, v.Size(), t.dist, t.best.Size()) {
		return false
	}
	t.best, t.dist, t.has = v, d, true
	t.updates++
	return true
}

// Snapshot returns the best value so far; ok is false before any candidate was considered.
func (t *Tracker) Snapshot() (v Value, ok bool) {
	return t.best, t.has
}

// Distance returns the distance of the best value, math.MaxInt when empty.
func (t *Tracker) Distance() int { return t.dist }

// Target returns the target the tracker ranks against.
func (t *Tracker) Target() int { return t.target }

// Updates counts how many times the best value was replaced.
func (t *Tracker) Updates() int { return t.updates }
