package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
)

// api holds the request handling shared by the HTTP server and the Lambda handler.
// Handlers take the raw JSON body and return a status code and a JSON-able payload.
type api struct {
	solver *Solver
	// maxBudget caps the budget a request may ask for; 0 leaves it uncapped.
	maxBudget time.Duration
}

func (a *api) capBudget(p *Puzzle) {
	if a.maxBudget > 0 && p.Budget > a.maxBudget {
		p.Budget = a.maxBudget
	}
}

type errorBody struct {
	Error string `json:"error"`
}

type batchItemJSON struct {
	Index  int         `json:"index"`
	Result *ResultJSON `json:"result,omitempty"`
	Error  string      `json:"error,omitempty"`
}

type batchJSON struct {
	Results []batchItemJSON `json:"results"`
	TotalMs int64           `json:"totalMs"`
}

type verifyJSON struct {
	Expression string `json:"expression"`
	Valid      bool   `json:"valid"`
	Result     int    `json:"result,omitempty"`
	Distance   *int   `json:"distance,omitempty"`
	Error      string `json:"error,omitempty"`
}

func (a *api) solve(ctx context.Context, body string) (int, any) {
	p, err := ParsePuzzle(body)
	if err != nil {
		return errStatus(err), errorBody{err.Error()}
	}
	a.capBudget(&p)
	res, err := a.solver.Solve(ctx, p)
	if err != nil {
		return errStatus(err), errorBody{err.Error()}
	}
	return http.StatusOK, res.JSON()
}

func (a *api) batch(ctx context.Context, body string) (int, any) {
	puzzles, err := ParseBatch(body)
	if err != nil {
		return errStatus(err), errorBody{err.Error()}
	}
	for i := range puzzles {
		a.capBudget(&puzzles[i])
	}
	items := a.solver.SolveBatch(ctx, puzzles)
	return http.StatusOK, toBatchJSON(items)
}

func toBatchJSON(items []BatchItem) batchJSON {
	out := batchJSON{Results: make([]batchItemJSON, len(items))}
	for i, it := range items {
		bi := batchItemJSON{Index: it.Index}
		if it.Err != nil {
			bi.Error = it.Err.Error()
		} else {
			rj := it.Result.JSON()
			bi.Result = &rj
			out.TotalMs += rj.TimeMs
		}
		out.Results[i] = bi
	}
	return out
}

// verify checks {"expression": "...", "numbers": [...], "target": n}. An
// expression that breaks the rules is a 200 with valid=false; a malformed body is a 400.
func (a *api) verify(_ context.Context, body string) (int, any) {
	if !gjson.Valid(body) {
		return http.StatusBadRequest, errorBody{"body is not valid JSON"}
	}
	root := gjson.Parse(body)
	exprText := root.Get("expression").String()
	if exprText == "" {
		return http.StatusBadRequest, errorBody{"missing expression"}
	}
	nums := root.Get("numbers")
	if !nums.IsArray() || len(nums.Array()) == 0 {
		return http.StatusBadRequest, errorBody{"missing numbers"}
	}
	numbers, err := jsonInts(nums)
	if err != nil {
		return errStatus(err), errorBody{err.Error()}
	}
	for i, n := range numbers {
		if n <= 0 {
			err := fmt.Errorf("%w: numbers[%d] must be a positive integer, got %d", ErrInvalidInput, i, n)
			return errStatus(err), errorBody{err.Error()}
		}
	}
	target, hasTarget := 0, false
	if t := root.Get("target"); t.Exists() {
		if target, hasTarget = jsonInt(t); !hasTarget {
			err := fmt.Errorf("%w: target must be an integer", ErrInvalidInput)
			return errStatus(err), errorBody{err.Error()}
		}
	}

	out := verifyJSON{Expression: exprText}
	e, err := ParseExpression(exprText)
	if err != nil {
		return http.StatusBadRequest, errorBody{err.Error()}
	}
	out.Expression = e.String()
	v, err := Verify(e, numbers, a.solver.Config().Rules)
	if err != nil {
		out.Error = err.Error()
		return http.StatusOK, out
	}
	out.Valid, out.Result = true, v
	if hasTarget {
		d := Distance(v, target)
		out.Distance = &d
	}
	return http.StatusOK, out
}

func errStatus(err error) int {
	if errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrParse) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (a *api) route(ctx context.Context, method, path, body string) (int, any) {
	if method != http.MethodPost {
		return http.StatusMethodNotAllowed, errorBody{fmt.Sprintf("%s not allowed", method)}
	}
	switch path {
	case "/", "/solve":
		return a.solve(ctx, body)
	case "/batch":
		return a.batch(ctx, body)
	case "/verify":
		return a.verify(ctx, body)
	}
	return http.StatusNotFound, errorBody{fmt.Sprintf("no route for %s", path)}
}
