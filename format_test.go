package main

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func sampleResult() Result {
	return Result{
		RunID:      "run-1",
		Target:     19,
		Numbers:    []int{6, 3, 1},
		Value:      Value{Result: 19, Expr: Node(OpAdd, Node(OpMul, Leaf(6), Leaf(3)), Leaf(1))},
		Distance:   0,
		StopReason: StopExact,
		Nodes:      4,
		Elapsed:    1500 * time.Millisecond,
	}
}

func TestFormatResult(t *testing.T) {
	out := FormatResult(sampleResult())
	assert.Contains(t, out, "6 * 3 + 1 = 19.  Time elapsed: 1.50 s.")
	assert.Contains(t, out, "Exact match for 19 (no simpler exact match left)")

	r := sampleResult()
	r.Target, r.Distance, r.StopReason = 21, 2, StopTime
	out = FormatResult(r)
	assert.Contains(t, out, "Off by 2 from 21 (cut off by the time budget)")
}

func TestResultJSON(t *testing.T) {
	j := sampleResult().JSON()
	assert.Equal(t, ResultJSON{
		RunID:      "run-1",
		Target:     19,
		Numbers:    []int{6, 3, 1},
		Result:     19,
		Expression: "6 * 3 + 1",
		Operations: 2,
		Distance:   0,
		StopReason: "exact",
		Nodes:      4,
		TimeMs:     1500,
	}, j)
}

func TestFormatTable(t *testing.T) {
	items := []BatchItem{
		{Index: 0, Puzzle: Puzzle{Target: 19}, Result: sampleResult()},
		{Index: 1, Puzzle: Puzzle{Target: 10}, Err: errors.New("invalid input: at least one number is required")},
	}
	out := formatTable(items)
	assert.Contains(t, out, "6 * 3 + 1")
	assert.Contains(t, out, "error: invalid input")
	assert.Contains(t, out, "TOTAL")
}
