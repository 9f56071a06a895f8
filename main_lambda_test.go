//go:build lambda

package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lambdaRequest(method, path, body string, b64 bool) events.LambdaFunctionURLRequest {
	ev := events.LambdaFunctionURLRequest{RawPath: path, Body: body, IsBase64Encoded: b64}
	ev.RequestContext.HTTP.Method = method
	return ev
}

func TestLambdaHandlerSolve(t *testing.T) {
	h := newLambdaHandler(&api{solver: testSolver(nil)})

	resp, err := h(context.Background(), lambdaRequest(http.MethodPost, "/", `{"target": 19, "numbers": [6, 2, 3, 1, 5, 2]}`, false))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])

	var got ResultJSON
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &got))
	assert.Equal(t, 0, got.Distance)
}

func TestLambdaHandlerBase64(t *testing.T) {
	h := newLambdaHandler(&api{solver: testSolver(nil)})
	body := base64.StdEncoding.EncodeToString([]byte(`{"target": 3, "numbers": [1, 2]}`))

	resp, err := h(context.Background(), lambdaRequest(http.MethodPost, "/solve", body, true))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = h(context.Background(), lambdaRequest(http.MethodPost, "/solve", "%%%", true))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLambdaHandlerErrors(t *testing.T) {
	h := newLambdaHandler(&api{solver: testSolver(nil)})

	resp, err := h(context.Background(), lambdaRequest(http.MethodGet, "/solve", "", false))
	require.NoError(t, err)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp, err = h(context.Background(), lambdaRequest("", "/solve", `{"target": 5, "numbers": []}`, false))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, resp.Body, "at least one number")
}

func TestLambdaConfigCapsBudget(t *testing.T) {
	cfg, err := lambdaConfig("")
	require.NoError(t, err)
	assert.Equal(t, lambdaMaxBudget, cfg.Budget)

	dir := t.TempDir()
	long := filepath.Join(dir, "long.yaml")
	require.NoError(t, os.WriteFile(long, []byte("budget: 60s\nworkers: 2\n"), 0o644))
	cfg, err = lambdaConfig(long)
	require.NoError(t, err)
	assert.Equal(t, lambdaMaxBudget, cfg.Budget)
	assert.Equal(t, 2, cfg.Workers)

	short := filepath.Join(dir, "short.yaml")
	require.NoError(t, os.WriteFile(short, []byte("budget: 5s\n"), 0o644))
	cfg, err = lambdaConfig(short)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Budget)

	_, err = lambdaConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLambdaHandlerCapsRequestBudget(t *testing.T) {
	h := newLambdaHandler(&api{solver: testSolver(nil), maxBudget: 50 * time.Millisecond})
	body := `{"target": 999999, "numbers": [3, 25, 9, 8, 6, 7], "budget": "10m"}`

	start := time.Now()
	resp, err := h(context.Background(), lambdaRequest(http.MethodPost, "/solve", body, false))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Less(t, time.Since(start), 5*time.Second)
}
