//go:build !lambda

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes the root command. Flag variables are package globals, so
// every call passes the flags it depends on explicitly.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCLI(t *testing.T) {
	out, err := runCLI(t, "solve", "19", "6", "2", "3", "1", "5", "2", "--budget", "5s", "--json=false", "--log-format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "= 19.  Time elapsed:")
	assert.Contains(t, out, "Exact match for 19")

	out, err = runCLI(t, "solve", "1", "2", "7", "--budget", "5s", "--json=true", "--no-division=true")
	require.NoError(t, err)
	var res ResultJSON
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 1, res.Distance)
	assert.True(t, res.Exhaustive)

	out, err = runCLI(t, "verify", "6 * 3 + 1", "6", "3", "1", "--target", "20", "--json=false", "--no-division=false")
	require.NoError(t, err)
	assert.Equal(t, "6 * 3 + 1 = 19 (distance 1)\n", out)

	_, err = runCLI(t, "verify", "6 * 6", "6", "3")
	assert.ErrorIs(t, err, ErrNotAvailable)

	_, err = runCLI(t, "solve", "abc", "1", "2")
	assert.ErrorIs(t, err, ErrInvalidInput)

	file := filepath.Join(t.TempDir(), "puzzles.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"puzzles": [{"target": 3, "numbers": [1, 2]}, {"target": 0, "numbers": [1]}]}`), 0o644))
	_, err = runCLI(t, "batch", file, "--json=false")
	assert.ErrorIs(t, err, ErrInvalidInput)

	require.NoError(t, os.WriteFile(file, []byte(`{"puzzles": [{"target": 3, "numbers": [1, 2]}, {"target": 10, "numbers": [2, 5]}]}`), 0o644))
	out, err = runCLI(t, "batch", file, "--json=false", "--workers", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "TOTAL")
	assert.Contains(t, out, "2 + 1")
	assert.Contains(t, out, "5 * 2")
}
