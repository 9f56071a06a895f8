package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultBudget is the wall-clock budget of a search when none is given.
const DefaultBudget = 45 * time.Second

// Config holds search tuning parameters. Adjust these to trade speed for solution quality.
type Config struct {
	// Budget is the wall-clock time a single search may run.
	Budget time.Duration `yaml:"budget"`
	// StopOnExact stops building expressions that cannot beat an exact match:
	// after one is found only strictly smaller trees are explored.
	StopOnExact bool `yaml:"stop_on_exact"`
	// MaxOperations caps the operators in one expression. 0 means unbounded.
	MaxOperations int `yaml:"max_operations"`
	// Dedup skips pools already explored with the same results at the same cost.
	Dedup bool `yaml:"dedup"`
	// MemoLimit caps the number of remembered pools; past it, new pools are explored
	// without being recorded.
	MemoLimit int `yaml:"memo_limit"`
	// Workers is the number of puzzles of a batch solved in parallel.
	Workers int `yaml:"workers"`
	// Rules is the operator policy.
	Rules Rules `yaml:"rules"`

	Log LogConfig `yaml:"log"`
}

// LogConfig selects the slog handler used by the CLI and the server.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// DefaultConfig returns the tuning used when no config file is given.
func DefaultConfig() Config {
	return Config{
		Budget:      DefaultBudget,
		StopOnExact: true,
		Dedup:       true,
		MemoLimit:   4_000_000,
		Workers:     runtime.GOMAXPROCS(0),
		Log:         LogConfig{Level: "info", Format: "text"},
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("could not read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("could not parse config %q: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %q: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Budget <= 0 {
		return fmt.Errorf("%w: budget must be positive, got %v", ErrInvalidInput, c.Budget)
	}
	if c.MaxOperations < 0 {
		return fmt.Errorf("%w: max_operations must not be negative", ErrInvalidInput)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1", ErrInvalidInput)
	}
	return nil
}

// ── Logging ─────────────────────────────────────────────────────────

// NewLogger builds the slog logger described by lc, writing to w.
func NewLogger(lc LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(lc.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(lc.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
