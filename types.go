package main

import (
	"fmt"
	"strconv"
	"strings"
)

// Op is an arithmetic operator. OpNone marks a leaf expression.
type Op byte

const (
	OpNone Op = 0
	OpAdd  Op = '+'
	OpSub  Op = '-'
	OpMul  Op = '*'
	OpDiv  Op = '/'
)

func (o Op) String() string {
	if o == OpNone {
		return ""
	}
	return string(o)
}

// precedence is used only for rendering.
func (o Op) precedence() int {
	switch o {
	case OpAdd, OpSub:
		return 1
	case OpMul, OpDiv:
		return 2
	}
	return 3
}

func parseOp(s string) (Op, bool) {
	switch s {
	case "+":
		return OpAdd, true
	case "-", "−":
		return OpSub, true
	case "*", "x", "X", "×":
		return OpMul, true
	case "/", "÷":
		return OpDiv, true
	}
	return OpNone, false
}

// ── Expression tree ─────────────────────────────────────────────────

// Expr is an immutable binary expression tree. Leaves hold an original input number.
// Subtrees are shared between derived values, never mutated.
type Expr struct {
	Op    Op
	Num   int // leaf value, meaningful when Op == OpNone
	Left  *Expr
	Right *Expr

	size int // number of operators in the tree
}

// Leaf returns an expression for an original input number.
func Leaf(n int) *Expr {
	return &Expr{Num: n}
}

// Node returns the expression "left op right".
func Node(op Op, left, right *Expr) *Expr {
	return &Expr{Op: op, Left: left, Right: right, size: left.size + right.size + 1}
}

// IsLeaf reports whether e is an original input number.
func (e *Expr) IsLeaf() bool { return e.Op == OpNone }

// Size is the number of operators in e. Simpler expressions have smaller sizes.
func (e *Expr) Size() int { return e.size }

// Leaves returns the input numbers used by e, left to right.
func (e *Expr) Leaves() []int {
	var out []int
	var walk func(*Expr)
	walk = func(n *Expr) {
		if n.IsLeaf() {
			out = append(out, n.Num)
			return
		}
		walk(n.Left)
		walk(n.Right)
	}
	walk(e)
	return out
}

// Eval evaluates e with exact integer semantics. Division must not leave a remainder.
func (e *Expr) Eval() (int, error) {
	if e.IsLeaf() {
		return e.Num, nil
	}
	l, err := e.Left.Eval()
	if err != nil {
		return 0, err
	}
	r, err := e.Right.Eval()
	if err != nil {
		return 0, err
	}
	v, ok := apply(e.Op, l, r)
	if !ok {
		return 0, fmt.Errorf("%w: %d %s %d", ErrInexactDivision, l, e.Op, r)
	}
	return v, nil
}

// String renders e in infix notation with the minimum parentheses.
func (e *Expr) String() string {
	var sb strings.Builder
	e.write(&sb)
	return sb.String()
}

func (e *Expr) write(sb *strings.Builder) {
	if e.IsLeaf() {
		sb.WriteString(strconv.Itoa(e.Num))
		return
	}
	p := e.Op.precedence()
	writeOperand(sb, e.Left, p <= e.Left.Op.precedence())
	sb.WriteByte(' ')
	sb.WriteString(e.Op.String())
	sb.WriteByte(' ')
	// a - (b + c) and a / (b * c) keep their parentheses on the right.
	rp := e.Right.Op.precedence()
	bare := p < rp || (p == rp && (e.Op == OpAdd || e.Op == OpMul))
	writeOperand(sb, e.Right, bare)
}

func writeOperand(sb *strings.Builder, e *Expr, bare bool) {
	if bare {
		e.write(sb)
		return
	}
	sb.WriteByte('(')
	e.write(sb)
	sb.WriteByte(')')
}

// apply computes l op r. ok is false for division by zero or a division with a remainder.
func apply(op Op, l, r int) (int, bool) {
	switch op {
	case OpAdd:
		return l + r, true
	case OpSub:
		return l - r, true
	case OpMul:
		return l * r, true
	case OpDiv:
		if r == 0 || l%r != 0 {
			return 0, false
		}
		return l / r, true
	}
	return 0, false
}

// ── Value ───────────────────────────────────────────────────────────

// Value pairs a numeric result with the expression that produced it.
// Result always equals Expr.Eval().
type Value struct {
	Result int
	Expr   *Expr
}

// NewLeafValue wraps an original input number.
func NewLeafValue(n int) Value {
	return Value{Result: n, Expr: Leaf(n)}
}

// Size is the number of operators used to produce v.
func (v Value) Size() int { return v.Expr.Size() }

func (v Value) String() string {
	if v.Expr == nil {
		return strconv.Itoa(v.Result)
	}
	return v.Expr.String()
}
