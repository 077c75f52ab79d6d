package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"flowlink.dev/solver/internal/config"
	"flowlink.dev/solver/internal/dispatcher"
	"flowlink.dev/solver/internal/domain"
	"flowlink.dev/solver/internal/fixtures"
	"flowlink.dev/solver/internal/ports"
	"flowlink.dev/solver/internal/solver"
	"flowlink.dev/solver/internal/telemetry"
)

var (
	logLevel         string
	strategyFlag     string
	deadlineMs       int
	heuristicBackend string
	subprocessPath   string
	metricsAddr      string

	logger *slog.Logger
	reg    = prometheus.NewRegistry()
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flowsolve",
	Short: "Solve Flow Free style color-pair puzzles",
	Long:  `flowsolve completes a partially-filled grid of color pairs into a full set of non-crossing, space-filling paths.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		lvl := slog.LevelInfo
		switch strings.ToLower(logLevel) {
		case "debug":
			lvl = slog.LevelDebug
		case "warn":
			lvl = slog.LevelWarn
		case "error":
			lvl = slog.LevelError
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
		return nil
	},
}

var solveCmd = &cobra.Command{
	Use:   "solve [board.json]",
	Short: "Solve a board read from a file, or from stdin if no file is given",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSolve,
}

var fixturesCmd = &cobra.Command{
	Use:   "fixtures",
	Short: "Run the bundled fixture corpus against a strategy and report pass/fail",
	RunE:  runFixtures,
}

var serveMetricsCmd = &cobra.Command{
	Use:   "serve-metrics",
	Short: "Expose the Prometheus metrics registry over HTTP until interrupted",
	RunE:  runServeMetrics,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug|info|warn|error")

	solveCmd.Flags().StringVar(&strategyFlag, "strategy", string(domain.StrategyHeuristic), "path_enum|heuristic|sat")
	solveCmd.Flags().IntVar(&deadlineMs, "deadline-ms", 0, "solve deadline in milliseconds (0 = use default)")
	solveCmd.Flags().StringVar(&heuristicBackend, "heuristic-backend", string(config.HeuristicBackendNative), "native|subprocess")
	solveCmd.Flags().StringVar(&subprocessPath, "subprocess-path", "", "executable to run when heuristic-backend=subprocess")

	fixturesCmd.Flags().StringVar(&strategyFlag, "strategy", string(domain.StrategyHeuristic), "path_enum|heuristic|sat")
	fixturesCmd.Flags().IntVar(&deadlineMs, "deadline-ms", 0, "per-fixture solve deadline in milliseconds (0 = use default)")

	serveMetricsCmd.Flags().StringVar(&metricsAddr, "addr", ":9090", "listen address for the /metrics endpoint")

	rootCmd.AddCommand(solveCmd, fixturesCmd, serveMetricsCmd)
}

func buildDispatcher() *dispatcher.Dispatcher {
	opts := config.New(
		config.WithHeuristicBackend(config.HeuristicBackend(heuristicBackend)),
		config.WithSubprocessPath(subprocessPath),
	)

	var heuristic ports.Engine
	if opts.HeuristicEngine == config.HeuristicBackendSubprocess {
		heuristic = solver.NewSubprocessHeuristicEngine(opts.SubprocessPath)
	} else {
		heuristic = solver.NewNativeHeuristicEngine()
	}

	engines := map[domain.Strategy]ports.Engine{
		domain.StrategyPathEnum:  solver.NewPathEnumEngine(),
		domain.StrategyHeuristic: heuristic,
		domain.StrategySAT:       solver.NewSATEngine(),
	}

	metrics := telemetry.NewMetrics(reg)
	return dispatcher.New(engines, opts, logger, metrics)
}

func readBoard(args []string) ([][]int, error) {
	var data []byte
	var err error
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return nil, fmt.Errorf("reading board: %w", err)
	}
	var rows [][]int
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parsing board JSON: %w", err)
	}
	return rows, nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	rows, err := readBoard(args)
	if err != nil {
		return err
	}

	d := buildDispatcher()
	res := d.Solve(cmd.Context(), rows, domain.Strategy(strategyFlag), deadlineMs)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resultEnvelope{
		RequestID: res.RequestID,
		Strategy:  string(res.Strategy),
		Board:     res.Board,
		TimedOut:  res.TimedOut,
		TimeMs:    res.TimeTakenMs(),
		NodeCount: res.Stats.NodeCount,
		Error:     res.ErrorString(),
	})
}

type resultEnvelope struct {
	RequestID string        `json:"requestId"`
	Strategy  string        `json:"strategy"`
	Board     *domain.Board `json:"board,omitempty"`
	TimedOut  bool          `json:"timedOut"`
	TimeMs    int64         `json:"timeMs"`
	NodeCount int           `json:"nodeCount"`
	Error     string        `json:"error,omitempty"`
}

func runFixtures(cmd *cobra.Command, args []string) error {
	all, err := fixtures.LoadAll()
	if err != nil {
		return err
	}

	d := buildDispatcher()
	passed, failed := 0, 0
	for _, f := range all {
		res := d.Solve(cmd.Context(), f.Board.Values, domain.Strategy(strategyFlag), deadlineMs)
		ok := evaluateExpectation(f.Expect, res)
		if ok {
			passed++
			fmt.Printf("PASS %-24s strategy=%s nodes=%d time=%dms\n", f.Name, strategyFlag, res.Stats.NodeCount, res.TimeTakenMs())
		} else {
			failed++
			fmt.Printf("FAIL %-24s strategy=%s expect=%s got_err=%q timed_out=%v\n", f.Name, strategyFlag, f.Expect, res.ErrorString(), res.TimedOut)
		}
	}
	fmt.Printf("%d passed, %d failed\n", passed, failed)
	if failed > 0 {
		return fmt.Errorf("%d fixture(s) failed", failed)
	}
	return nil
}

func evaluateExpectation(expect string, res domain.Result) bool {
	switch expect {
	case "solvable":
		return res.Err == nil && res.Board != nil
	case "nosolution":
		_, ok := res.Err.(*domain.NoSolution)
		return ok
	case "timeout_allowed":
		if res.Err == nil {
			return true
		}
		_, ok := res.Err.(*domain.Timeout)
		return ok
	default:
		return false
	}
}

func runServeMetrics(cmd *cobra.Command, args []string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              metricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("listening", "addr", metricsAddr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
