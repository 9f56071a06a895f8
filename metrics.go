package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	solvesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cifras_solves_total",
		Help: "Completed searches by stop reason",
	}, []string{"stop_reason"})

	solveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cifras_solve_duration_seconds",
		Help:    "Wall-clock duration of a search",
		Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 15, 30, 45, 60},
	})

	searchNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cifras_search_nodes",
		Help:    "Pools visited per search",
		Buckets: prometheus.ExponentialBuckets(1, 10, 9),
	})

	memoHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cifras_memo_hits_total",
		Help: "Pools skipped because an equivalent pool was already explored",
	})

	solveDistance = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "cifras_solve_distance",
		Help:    "Distance between the best result and the target",
		Buckets: []float64{0, 1, 2, 5, 10, 25, 100},
	})
)

func observeResult(r Result) {
	solvesTotal.WithLabelValues(string(r.StopReason)).Inc()
	solveDuration.Observe(r.Elapsed.Seconds())
	searchNodes.Observe(float64(r.Nodes))
	memoHitsTotal.Add(float64(r.MemoHits))
	solveDistance.Observe(float64(r.Distance))
}
