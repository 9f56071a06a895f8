package main

import (
	"fmt"
	"strings"
	"time"
)

// Result is the outcome of one search, handed to the CLI, the HTTP API and Lambda.
type Result struct {
	RunID   string
	Target  int
	Numbers []int

	Value    Value // best value found
	Distance int   // |Value.Result - Target|

	// Exhaustive is true when the search was not cut short by time or
	// cancellation, so Value is the best reachable under the rules.
	Exhaustive bool
	StopReason StopReason

	Nodes    int64 // pools visited
	MemoHits int64 // pools skipped as already explored
	Elapsed  time.Duration
}

// ResultJSON is the wire form of a Result.
type ResultJSON struct {
	RunID      string `json:"runId"`
	Target     int    `json:"target"`
	Numbers    []int  `json:"numbers"`
	Result     int    `json:"result"`
	Expression string `json:"expression"`
	Operations int    `json:"operations"`
	Distance   int    `json:"distance"`
	Exhaustive bool   `json:"exhaustive"`
	StopReason string `json:"stopReason"`
	Nodes      int64  `json:"nodes"`
	TimeMs     int64  `json:"timeMs"`
}

// JSON converts r into its wire form.
func (r Result) JSON() ResultJSON {
	return ResultJSON{
		RunID:      r.RunID,
		Target:     r.Target,
		Numbers:    r.Numbers,
		Result:     r.Value.Result,
		Expression: r.Value.String(),
		Operations: r.Value.Size(),
		Distance:   r.Distance,
		Exhaustive: r.Exhaustive,
		StopReason: string(r.StopReason),
		Nodes:      r.Nodes,
		TimeMs:     r.Elapsed.Milliseconds(),
	}
}

// FormatResult renders r as a short human-readable report.
func FormatResult(r Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s = %d.  Time elapsed: %.2f s.\n", r.Value.String(), r.Value.Result, r.Elapsed.Seconds())
	if r.Distance == 0 {
		fmt.Fprintf(&sb, "Exact match for %d", r.Target)
	} else {
		fmt.Fprintf(&sb, "Off by %d from %d", r.Distance, r.Target)
	}
	fmt.Fprintf(&sb, " (%s)", describeStop(r.StopReason))
	return sb.String()
}

func describeStop(s StopReason) string {
	switch s {
	case StopExhausted:
		return "search completed"
	case StopExact:
		return "no simpler exact match left"
	case StopTime:
		return "cut off by the time budget"
	case StopCancelled:
		return "cancelled"
	}
	return string(s)
}

// formatTable prints batch results one row per puzzle.
func formatTable(items []BatchItem) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-4s %8s %-28s %8s %8s %10s %8s\n", "#", "Target", "Expression", "Result", "Dist", "Stop", "Time")
	fmt.Fprintf(&sb, "%-4s %8s %-28s %8s %8s %10s %8s\n", "----", "--------", "----------------------------", "--------", "--------", "----------", "--------")
	var total time.Duration
	for _, it := range items {
		if it.Err != nil {
			fmt.Fprintf(&sb, "%-4d %8d error: %v\n", it.Index, it.Puzzle.Target, it.Err)
			continue
		}
		r := it.Result
		total += r.Elapsed
		fmt.Fprintf(&sb, "%-4d %8d %-28s %8d %8d %10s %7.1fs\n",
			it.Index, r.Target, r.Value.String(), r.Value.Result, r.Distance, r.StopReason, r.Elapsed.Seconds())
	}
	fmt.Fprintf(&sb, "%-4s %8s %-28s %8s %8s %10s %7.1fs\n", "", "", "TOTAL", "", "", "", total.Seconds())
	return sb.String()
}
