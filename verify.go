package main

import (
	"fmt"
)

// Verify checks that e only uses numbers from the available multiset, each at
// most once, and that every intermediate step is legal under rules. It returns
// the value of e.
func Verify(e *Expr, numbers []int, rules Rules) (int, error) {
	if missing, ok := multisetContains(numbers, e.Leaves()); !ok {
		return 0, fmt.Errorf("%w: %d", ErrNotAvailable, missing)
	}
	return checkedEval(e, rules)
}

// multisetContains reports whether every element of used is available, counting
// repetitions. On failure it returns the first number that is missing.
func multisetContains(available, used []int) (int, bool) {
	left := make(map[int]int, len(available))
	for _, n := range available {
		left[n]++
	}
	for _, n := range used {
		if left[n] == 0 {
			return n, false
		}
		left[n]--
	}
	return 0, true
}

func checkedEval(e *Expr, rules Rules) (int, error) {
	if e.IsLeaf() {
		return e.Num, nil
	}
	l, err := checkedEval(e.Left, rules)
	if err != nil {
		return 0, err
	}
	r, err := checkedEval(e.Right, rules)
	if err != nil {
		return 0, err
	}
	switch e.Op {
	case OpAdd:
		if !addOK(l, r) {
			return 0, fmt.Errorf("%w: %d + %d overflows", ErrRuleViolation, l, r)
		}
	case OpMul:
		if !mulOK(l, r) {
			return 0, fmt.Errorf("%w: %d * %d overflows", ErrRuleViolation, l, r)
		}
	case OpDiv:
		if rules.DisableDivision {
			return 0, fmt.Errorf("%w: division is disabled", ErrRuleViolation)
		}
	}
	v, ok := apply(e.Op, l, r)
	if !ok {
		return 0, fmt.Errorf("%w: %d / %d", ErrInexactDivision, l, r)
	}
	if !rules.AllowNegative && v <= 0 {
		return 0, fmt.Errorf("%w: %d %s %d = %d is not positive", ErrRuleViolation, l, e.Op, r, v)
	}
	return v, nil
}
