package main

import "errors"

var (
	// ErrInvalidInput is returned for puzzles the search cannot run on:
	// no numbers, a non-positive target or number, or a non-positive budget.
	ErrInvalidInput = errors.New("invalid input")
	// ErrIndex is returned by Pool.Derive for equal or out-of-range indices.
	ErrIndex = errors.New("pool index out of range")

	ErrParse           = errors.New("cannot parse expression")
	ErrNotAvailable    = errors.New("number not available")
	ErrInexactDivision = errors.New("division is not exact")
	ErrRuleViolation   = errors.New("operation not allowed by rules")
)
