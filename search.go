package main

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "cifras.search"

// ── Solver ──────────────────────────────────────────────────────────

// Solver searches expression trees over subsets of the input numbers for the
// value closest to the target. A Solver holds only configuration, so concurrent
// Solve calls are safe: each call owns its pool, tracker and deadline.
type Solver struct {
	cfg    Config
	logger *slog.Logger
	tracer trace.Tracer

	clock func() time.Time // nil means time.Now
}

// NewSolver creates a solver. A nil logger uses slog.Default().
func NewSolver(cfg Config, logger *slog.Logger) *Solver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Solver{cfg: cfg, logger: logger, tracer: otel.Tracer(tracerName)}
}

// Config returns the solver configuration.
func (s *Solver) Config() Config { return s.cfg }

// Solve runs one anytime search and returns the best value found before the
// search was exhausted, hit an exact match, ran out of budget or ctx was cancelled.
// Only invalid input is an error.
func (s *Solver) Solve(ctx context.Context, p Puzzle) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	budget := p.Budget
	if budget == 0 {
		budget = s.cfg.Budget
	}
	if budget <= 0 {
		return Result{}, fmt.Errorf("%w: budget must be positive, got %v", ErrInvalidInput, budget)
	}

	runID := uuid.NewString()
	ctx, span := s.tracer.Start(ctx, "cifras.solve",
		trace.WithAttributes(
			attribute.String("cifras.run_id", runID),
			attribute.Int("cifras.target", p.Target),
			attribute.IntSlice("cifras.numbers", p.Numbers),
			attribute.String("cifras.budget", budget.String()),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	defer span.End()

	now := s.clock
	if now == nil {
		now = time.Now
	}
	logger := s.logger.With(slog.String("run_id", runID), slog.Int("target", p.Target))
	r := &searchRun{
		ctx:      ctx,
		cfg:      s.cfg,
		opLimit:  s.cfg.MaxOperations,
		logger:   logger,
		tracker:  NewTracker(p.Target),
		deadline: newDeadlineWithClock(ctx, budget, now),
		seen:     mapset.NewThreadUnsafeSet[string](),
	}
	logger.InfoContext(ctx, "search started",
		slog.Any("numbers", p.Numbers),
		slog.Duration("budget", budget),
	)

	r.search(NewPool(p.Numbers), 0)

	best, ok := r.tracker.Snapshot()
	if !ok {
		// unreachable: the seed pool is non-empty and always considered
		err := fmt.Errorf("%w: no candidate evaluated", ErrInvalidInput)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}

	res := Result{
		RunID:      runID,
		Target:     p.Target,
		Numbers:    slices.Clone(p.Numbers),
		Value:      best,
		Distance:   r.tracker.Distance(),
		StopReason: r.stopReason(),
		Nodes:      r.nodes,
		MemoHits:   r.memoHits,
		Elapsed:    r.deadline.Elapsed(),
	}
	// an exact stop only pruned expressions that could not have ranked higher
	res.Exhaustive = res.StopReason == StopExhausted || res.StopReason == StopExact

	span.SetAttributes(
		attribute.Int("cifras.result", best.Result),
		attribute.Int("cifras.distance", res.Distance),
		attribute.String("cifras.stop_reason", string(res.StopReason)),
		attribute.Int64("cifras.nodes", res.Nodes),
	)
	span.SetStatus(codes.Ok, "")
	observeResult(res)

	logger.InfoContext(ctx, "search finished",
		slog.String("expression", best.String()),
		slog.Int("result", best.Result),
		slog.Int("distance", res.Distance),
		slog.String("stop_reason", string(res.StopReason)),
		slog.Int64("nodes", res.Nodes),
		slog.Int64("memo_hits", res.MemoHits),
		slog.Duration("elapsed", res.Elapsed),
	)
	return res, nil
}

// ── Search state ────────────────────────────────────────────────────

// searchRun is the state of one Solve call. It is never shared.
type searchRun struct {
	ctx      context.Context
	cfg      Config
	logger   *slog.Logger
	tracker  *Tracker
	deadline *Deadline
	seen     mapset.Set[string]

	// opLimit caps the operators of any expression still worth building,
	// 0 means unbounded. It starts at MaxOperations and shrinks below the
	// size of each exact match when StopOnExact is set.
	opLimit int

	nodes     int64
	memoHits  int64
	exactSeen bool // an exact match narrowed the search
	halted    bool // nothing left can beat the current best
}

func (r *searchRun) stopped() bool {
	return r.halted || r.deadline.Expired()
}

func (r *searchRun) stopReason() StopReason {
	if by := r.deadline.ExpiredBy(); by != "" {
		return by
	}
	if r.exactSeen && r.cfg.StopOnExact {
		return StopExact
	}
	return StopExhausted
}

func (r *searchRun) fits(a, b Value) bool {
	return r.opLimit <= 0 || a.Size()+b.Size()+1 <= r.opLimit
}

// search considers every value of pool, then recurses into every pool obtained
// by combining one unordered pair that fits opLimit. The deadline is polled on
// entry and before each pair.
func (r *searchRun) search(pool Pool, depth int) {
	r.nodes++
	for _, v := range pool {
		if r.tracker.Consider(v) {
			r.improved(v, depth)
		}
	}
	if r.stopped() || pool.Exhausted(r.cfg.Rules, r.opLimit) {
		return
	}
	if r.cfg.Dedup {
		key := pool.Key()
		if r.seen.Contains(key) {
			r.memoHits++
			return
		}
		if r.cfg.MemoLimit <= 0 || r.seen.Cardinality() < r.cfg.MemoLimit {
			r.seen.Add(key)
		}
	}

	for i := 0; i < len(pool); i++ {
		for j := i + 1; j < len(pool); j++ {
			if r.stopped() {
				return
			}
			if !r.fits(pool[i], pool[j]) {
				continue
			}
			for v := range Combine(pool[i], pool[j], r.cfg.Rules) {
				next, err := pool.Derive(i, j, v)
				if err != nil {
					r.logger.ErrorContext(r.ctx, "derive failed", slog.Any("error", err))
					return
				}
				r.search(next, depth+1)
				if r.stopped() {
					return
				}
			}
		}
	}
}

func (r *searchRun) improved(v Value, depth int) {
	d := r.tracker.Distance()
	if r.logger.Enabled(r.ctx, slog.LevelDebug) {
		r.logger.DebugContext(r.ctx, "improved",
			slog.String("expression", v.String()),
			slog.Int("result", v.Result),
			slog.Int("distance", d),
			slog.Int("depth", depth),
			slog.Int64("nodes", r.nodes),
			slog.Duration("elapsed", r.deadline.Elapsed()),
		)
	}
	if d != 0 || !r.cfg.StopOnExact {
		return
	}
	// Only a strictly smaller exact expression can still win. Every input
	// number was considered at the root, so a limit of 0 leaves nothing.
	r.exactSeen = true
	limit := v.Size() - 1
	if limit <= 0 {
		r.halted = true
		return
	}
	if r.opLimit <= 0 || limit < r.opLimit {
		r.opLimit = limit
	}
}
