//go:build !lambda

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	logFormat  string
	jsonOut    bool

	budgetFlag     time.Duration
	allowNegative  bool
	keepIdentities bool
	noDivision     bool
	maxOperations  int
	noStopOnExact  bool
	workersFlag    int

	verifyTarget int
	serveAddr    string
)

var rootCmd = &cobra.Command{
	Use:           "cifras",
	Short:         "Find the arithmetic expression closest to a target number",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var solveCmd = &cobra.Command{
	Use:   "solve <target> <number>...",
	Short: "Search for the expression closest to target",
	Long: `Combines the given numbers, each at most once, with + - * and exact /
to get as close as possible to target within the time budget.

Examples:
  cifras solve 19 6 2 3 1 5 2
  cifras solve 831 3 25 9 8 6 7 --budget 10s --json`,
	Args: cobra.MinimumNArgs(2),
	RunE: runSolve,
}

var batchCmd = &cobra.Command{
	Use:   "batch <file.json|->",
	Short: `Solve every puzzle of a JSON file ({"puzzles": [...]})`,
	Args:  cobra.ExactArgs(1),
	RunE:  runBatch,
}

var verifyCmd = &cobra.Command{
	Use:   "verify <expression> <number>...",
	Short: "Check that an expression only uses the given numbers and legal steps",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runVerify,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the solver over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "YAML config file")
	pf.BoolVar(&verbose, "verbose", false, "Log search progress at debug level")
	pf.StringVar(&logFormat, "log-format", "", "Log format: text or json")
	pf.BoolVar(&jsonOut, "json", false, "Output results as JSON")
	pf.DurationVar(&budgetFlag, "budget", 0, "Time budget per search (default 45s)")
	pf.BoolVar(&allowNegative, "allow-negative", false, "Allow negative intermediate results")
	pf.BoolVar(&keepIdentities, "keep-identities", false, "Keep multiplications and divisions by 1")
	pf.BoolVar(&noDivision, "no-division", false, "Only use + - *")
	pf.IntVar(&maxOperations, "max-ops", 0, "Maximum operators per expression (0 = unbounded)")
	pf.BoolVar(&noStopOnExact, "no-stop-on-exact", false, "Keep searching for a simpler exact match")
	pf.IntVar(&workersFlag, "workers", 0, "Puzzles solved in parallel by batch")

	verifyCmd.Flags().IntVar(&verifyTarget, "target", 0, "Also report the distance to this target")
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")

	rootCmd.AddCommand(solveCmd, batchCmd, verifyCmd, serveCmd)
}

// loadSettings merges the config file and the command line flags.
func loadSettings(cmd *cobra.Command) (Config, *slog.Logger, error) {
	cfg := DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = LoadConfig(configPath); err != nil {
			return cfg, nil, err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("budget") {
		cfg.Budget = budgetFlag
	}
	if flags.Changed("allow-negative") {
		cfg.Rules.AllowNegative = allowNegative
	}
	if flags.Changed("keep-identities") {
		cfg.Rules.KeepIdentities = keepIdentities
	}
	if flags.Changed("no-division") {
		cfg.Rules.DisableDivision = noDivision
	}
	if flags.Changed("max-ops") {
		cfg.MaxOperations = maxOperations
	}
	if flags.Changed("no-stop-on-exact") {
		cfg.StopOnExact = !noStopOnExact
	}
	if flags.Changed("workers") {
		cfg.Workers = workersFlag
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	if err := cfg.validate(); err != nil {
		return cfg, nil, err
	}
	return cfg, NewLogger(cfg.Log, os.Stderr), nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	target, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: invalid target %q", ErrInvalidInput, args[0])
	}
	numbers, err := ParseNumbers(args[1:])
	if err != nil {
		return err
	}

	res, err := NewSolver(cfg, logger).Solve(cmd.Context(), Puzzle{Target: target, Numbers: numbers})
	if err != nil {
		return err
	}
	if jsonOut {
		return writeJSON(cmd.OutOrStdout(), res.JSON())
	}
	fmt.Fprintln(cmd.OutOrStdout(), FormatResult(res))
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	var data []byte
	if args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("could not read %q: %w", args[0], err)
	}
	puzzles, err := ParseBatch(string(data))
	if err != nil {
		return err
	}
	logger.Info("batch loaded", slog.Int("puzzles", len(puzzles)), slog.Int("workers", cfg.Workers))

	items := NewSolver(cfg, logger).SolveBatch(cmd.Context(), puzzles)
	if jsonOut {
		return writeJSON(cmd.OutOrStdout(), toBatchJSON(items))
	}
	fmt.Fprint(cmd.OutOrStdout(), formatTable(items))
	return nil
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	numbers, err := ParseNumbers(args[1:])
	if err != nil {
		return err
	}
	e, err := ParseExpression(args[0])
	if err != nil {
		return err
	}
	v, err := Verify(e, numbers, cfg.Rules)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if cmd.Flags().Changed("target") {
		fmt.Fprintf(out, "%s = %d (distance %d)\n", e, v, Distance(v, verifyTarget))
	} else {
		fmt.Fprintf(out, "%s = %d\n", e, v)
	}
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	return serve(cmd.Context(), serveAddr, NewSolver(cfg, logger), logger)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
