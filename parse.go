package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/tidwall/gjson"
)

// Puzzle is one cifras instance: reach Target using each of Numbers at most once.
type Puzzle struct {
	Target  int   `json:"target" validate:"gt=0"`
	Numbers []int `json:"numbers" validate:"required,min=1,dive,gt=0"`
	// Budget overrides Config.Budget when positive.
	Budget time.Duration `json:"-" validate:"gte=0"`
}

var puzzleValidate = validator.New()

// Validate rejects puzzles the search cannot run on. Errors wrap ErrInvalidInput.
func (p Puzzle) Validate() error {
	if err := puzzleValidate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s", ErrInvalidInput, describeFieldError(verrs[0]))
		}
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Field() {
	case "Target":
		return "target must be a positive integer"
	case "Numbers":
		return "at least one number is required"
	case "Budget":
		return "budget must not be negative"
	}
	// dive errors are reported on Numbers[i]
	if strings.HasPrefix(fe.Field(), "Numbers[") {
		return fmt.Sprintf("%s must be a positive integer, got %v", strings.ToLower(fe.Field()), fe.Value())
	}
	return fe.Error()
}

// ── JSON input ──────────────────────────────────────────────────────

// ParsePuzzle reads a puzzle from a JSON object:
//
//	{"target": 19, "numbers": [6, 2, 3, 1, 5, 2], "budget": "10s"}
//
// "budget" accepts a Go duration string or milliseconds as "budgetMs".
// "numbers" may also be a whitespace or comma separated string.
func ParsePuzzle(body string) (Puzzle, error) {
	if !gjson.Valid(body) {
		return Puzzle{}, fmt.Errorf("%w: body is not valid JSON", ErrInvalidInput)
	}
	return puzzleFromJSON(gjson.Parse(body))
}

// ParseBatch reads either {"puzzles": [...]} or a single puzzle object.
func ParseBatch(body string) ([]Puzzle, error) {
	if !gjson.Valid(body) {
		return nil, fmt.Errorf("%w: body is not valid JSON", ErrInvalidInput)
	}
	root := gjson.Parse(body)
	items := root.Get("puzzles")
	if !items.Exists() {
		if root.IsArray() {
			items = root
		} else {
			p, err := puzzleFromJSON(root)
			if err != nil {
				return nil, err
			}
			return []Puzzle{p}, nil
		}
	}
	if !items.IsArray() {
		return nil, fmt.Errorf("%w: puzzles must be an array", ErrInvalidInput)
	}
	var out []Puzzle
	var perr error
	items.ForEach(func(_, v gjson.Result) bool {
		p, err := puzzleFromJSON(v)
		if err != nil {
			perr = fmt.Errorf("puzzle %d: %w", len(out), err)
			return false
		}
		out = append(out, p)
		return true
	})
	if perr != nil {
		return nil, perr
	}
	return out, nil
}

func puzzleFromJSON(v gjson.Result) (Puzzle, error) {
	if !v.IsObject() {
		return Puzzle{}, fmt.Errorf("%w: puzzle must be a JSON object", ErrInvalidInput)
	}
	var p Puzzle

	target, ok := jsonInt(v.Get("target"))
	if !ok {
		return Puzzle{}, fmt.Errorf("%w: target must be an integer", ErrInvalidInput)
	}
	p.Target = target

	nums := v.Get("numbers")
	switch {
	case nums.IsArray():
		ns, err := jsonInts(nums)
		if err != nil {
			return Puzzle{}, err
		}
		p.Numbers = ns
	case nums.Type == gjson.String:
		ns, err := ParseNumbers(splitNumbers(nums.Str))
		if err != nil {
			return Puzzle{}, err
		}
		p.Numbers = ns
	}

	if b := v.Get("budget"); b.Exists() {
		d, err := time.ParseDuration(b.String())
		if err != nil {
			return Puzzle{}, fmt.Errorf("%w: invalid budget %q", ErrInvalidInput, b.String())
		}
		p.Budget = d
	} else if ms := v.Get("budgetMs"); ms.Exists() {
		p.Budget = time.Duration(ms.Int()) * time.Millisecond
	}

	if err := p.Validate(); err != nil {
		return Puzzle{}, err
	}
	return p, nil
}

func jsonInt(v gjson.Result) (int, bool) {
	if v.Type != gjson.Number || v.Num != float64(int(v.Num)) {
		return 0, false
	}
	return int(v.Int()), true
}

// jsonInts reads a JSON array of integers.
func jsonInts(arr gjson.Result) ([]int, error) {
	var out []int
	for _, n := range arr.Array() {
		i, ok := jsonInt(n)
		if !ok {
			return nil, fmt.Errorf("%w: numbers must be integers, got %s", ErrInvalidInput, n.Raw)
		}
		out = append(out, i)
	}
	return out, nil
}

// ── Text input ──────────────────────────────────────────────────────

// ParseNumbers converts command line arguments into integers.
func ParseNumbers(args []string) ([]int, error) {
	out := make([]int, 0, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(strings.TrimSpace(a))
		if err != nil {
			return nil, fmt.Errorf("%w: invalid number %q", ErrInvalidInput, a)
		}
		out = append(out, n)
	}
	return out, nil
}

func splitNumbers(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}
