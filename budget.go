package main

import (
	"context"
	"time"
)

// StopReason says why a search returned.
type StopReason string

const (
	StopExhausted StopReason = "exhausted" // every combination was explored
	StopExact     StopReason = "exact"     // an exact match cut off every larger expression
	StopTime      StopReason = "time"      // the wall-clock budget ran out
	StopCancelled StopReason = "cancelled" // the caller's context was cancelled
)

// Deadline is the time budget of one search. It is polled cooperatively at the
// search checkpoints and never interrupts anything on its own. Once expired it
// stays expired.
type Deadline struct {
	ctx   context.Context
	now   func() time.Time
	start time.Time
	at    time.Time

	expiredBy StopReason
}

// NewDeadline starts a budget running from now. Cancelling ctx expires it early.
func NewDeadline(ctx context.Context, budget time.Duration) *Deadline {
	return newDeadlineWithClock(ctx, budget, time.Now)
}

func newDeadlineWithClock(ctx context.Context, budget time.Duration, now func() time.Time) *Deadline {
	if ctx == nil {
		ctx = context.Background()
	}
	start := now()
	return &Deadline{ctx: ctx, now: now, start: start, at: start.Add(budget)}
}

// Expired reports whether the budget ran out or the context was cancelled.
func (d *Deadline) Expired() bool {
	if d.expiredBy != "" {
		return true
	}
	select {
	case <-d.ctx.Done():
		d.expiredBy = StopCancelled
		return true
	default:
	}
	if !d.now().Before(d.at) {
		d.expiredBy = StopTime
		return true
	}
	return false
}

// ExpiredBy returns StopTime or StopCancelled once Expired has returned true, "" before.
func (d *Deadline) ExpiredBy() StopReason { return d.expiredBy }

// Elapsed returns the time spent since the deadline was created.
func (d *Deadline) Elapsed() time.Duration { return d.now().Sub(d.start) }

// Remaining returns the time left before expiry, never negative.
func (d *Deadline) Remaining() time.Duration {
	if r := d.at.Sub(d.now()); r > 0 {
		return r
	}
	return 0
}
