package main

import (
	"iter"
	"math"
)

// Rules is the operator policy applied when combining two values.
// The zero value is the classic ruleset: every intermediate result is a positive
// integer, subtracting to zero is never produced, and ×1 / ÷1 are skipped.
type Rules struct {
	// AllowNegative emits both a-b and b-a and accepts negative intermediates.
	AllowNegative bool `yaml:"allow_negative" json:"allowNegative"`
	// KeepIdentities keeps multiplications and divisions by 1.
	KeepIdentities bool `yaml:"keep_identities" json:"keepIdentities"`
	// DisableDivision restricts the operators to + - *.
	DisableDivision bool `yaml:"disable_division" json:"disableDivision"`
}

// Combine yields the legal results of combining a and b, each carrying the
// expression node that produced it. Commutative operators are emitted once.
func Combine(a, b Value, rules Rules) iter.Seq[Value] {
	return func(yield func(Value) bool) {
		// Larger operand first so rendered expressions read "6 * 3", not "3 * 6".
		hi, lo := a, b
		if lo.Result > hi.Result {
			hi, lo = lo, hi
		}
		emit := func(op Op, l, r Value) bool {
			v, ok := apply(op, l.Result, r.Result)
			if !ok || (!rules.AllowNegative && v <= 0) {
				return true
			}
			return yield(Value{Result: v, Expr: Node(op, l.Expr, r.Expr)})
		}

		if addOK(hi.Result, lo.Result) {
			if !emit(OpAdd, hi, lo) {
				return
			}
		}

		if rules.KeepIdentities || (hi.Result != 1 && lo.Result != 1) {
			if mulOK(hi.Result, lo.Result) {
				if !emit(OpMul, hi, lo) {
					return
				}
			}
		}

		if hi.Result != lo.Result {
			if !emit(OpSub, hi, lo) {
				return
			}
			if rules.AllowNegative && !emit(OpSub, lo, hi) {
				return
			}
		}

		if rules.DisableDivision {
			return
		}
		if divides(lo.Result, hi.Result, rules) {
			if !emit(OpDiv, hi, lo) {
				return
			}
		}
		// b/a only differs from a/b when the operands differ.
		if hi.Result != lo.Result && divides(hi.Result, lo.Result, rules) {
			emit(OpDiv, lo, hi)
		}
	}
}

// divides reports whether n / d is an exact division worth emitting.
func divides(d, n int, rules Rules) bool {
	if d == 0 || n%d != 0 {
		return false
	}
	if d == -1 && n == math.MinInt {
		return false
	}
	return rules.KeepIdentities || (d != 1 && d != -1)
}

func addOK(a, b int) bool {
	if b > 0 {
		return a <= math.MaxInt-b
	}
	return a >= math.MinInt-b
}

func mulOK(a, b int) bool {
	if a == 0 || b == 0 {
		return true
	}
	p := a * b
	return p/b == a && !(a == -1 && b == math.MinInt) && !(b == -1 && a == math.MinInt)
}
