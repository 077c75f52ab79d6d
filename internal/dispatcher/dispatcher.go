// Package dispatcher implements the strategy dispatcher, the counterpart
// to internal/usecase.Service in a hexagonal layout: it depends only on
// internal/ports interfaces, validates input, routes to the chosen
// engine, and wraps the outcome in a uniform result envelope, converting
// every internal failure into the shared error taxonomy so no
// strategy-specific signalling type crosses this boundary.
package dispatcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"flowlink.dev/solver/internal/boardmodel"
	"flowlink.dev/solver/internal/config"
	"flowlink.dev/solver/internal/domain"
	"flowlink.dev/solver/internal/ports"
	"flowlink.dev/solver/internal/telemetry"
)

// Dispatcher routes a (board, strategy, deadline) request to one of the
// three engines wired in at construction time.
type Dispatcher struct {
	engines map[domain.Strategy]ports.Engine
	opts    config.Options
	logger  *slog.Logger
	metrics *telemetry.Metrics
}

// New wires a Dispatcher over the given engines. A nil logger falls back
// to slog.Default(); a nil metrics sink disables telemetry recording
// without affecting solve outcomes — the same nil-safe optional-
// dependency handling usecase.Service uses.
func New(engines map[domain.Strategy]ports.Engine, opts config.Options, logger *slog.Logger, metrics *telemetry.Metrics) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{engines: engines, opts: opts, logger: logger, metrics: metrics}
}

// Solve validates board, routes to strategy, and returns the uniform
// result envelope. It never panics across this boundary: any internal
// panic from an engine is recovered and reported as *domain.InternalError.
func (d *Dispatcher) Solve(ctx context.Context, rows [][]int, strategy domain.Strategy, deadlineMs int) domain.Result {
	requestID := uuid.NewString()
	start := time.Now()

	if !strategy.Valid() {
		return d.fail(requestID, strategy, start, &domain.InvalidBoard{Reason: fmt.Sprintf("unknown strategy %q", strategy)})
	}

	board := domain.NewBoard(rows)
	if err := boardmodel.Validate(board); err != nil {
		return d.fail(requestID, strategy, start, err)
	}

	engine, ok := d.engines[strategy]
	if !ok {
		return d.fail(requestID, strategy, start, &domain.BackendUnavailable{Backend: string(strategy), Cause: fmt.Errorf("no engine wired for strategy %q", strategy)})
	}

	if deadlineMs <= 0 {
		deadlineMs = int(d.opts.DefaultDeadline.Milliseconds())
	}
	runCtx, cancel := context.WithTimeout(ctx, time.Duration(deadlineMs)*time.Millisecond)
	defer cancel()

	result, stats, err := d.runEngine(runCtx, engine, board)

	elapsed := time.Since(start)
	stats.Duration = elapsed
	return d.finish(requestID, strategy, start, result, stats, err)
}

// runEngine invokes engine.Solve, converting any panic into
// *domain.InternalError so it never escapes the dispatcher boundary.
func (d *Dispatcher) runEngine(ctx context.Context, engine ports.Engine, board domain.Board) (domain.Board, domain.Stats, error) {
	var (
		result domain.Board
		stats  domain.Stats
		err    error
	)
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = &domain.InternalError{Strategy: engine.Name(), Cause: fmt.Errorf("panic: %v", r)}
			}
		}()
		result, stats, err = engine.Solve(ctx, board)
	}()
	return result, stats, err
}

func (d *Dispatcher) fail(requestID string, strategy domain.Strategy, start time.Time, err error) domain.Result {
	res := domain.Result{
		Strategy:  strategy,
		RequestID: requestID,
		Stats:     domain.Stats{Duration: time.Since(start)},
		Err:       err,
	}
	d.log(res)
	d.record(res)
	return res
}

func (d *Dispatcher) finish(requestID string, strategy domain.Strategy, start time.Time, board domain.Board, stats domain.Stats, err error) domain.Result {
	res := domain.Result{
		Strategy:  strategy,
		RequestID: requestID,
		Stats:     stats,
		Err:       err,
	}
	if err == nil {
		res.Board = &board
	}
	if _, isTimeout := err.(*domain.Timeout); isTimeout {
		res.TimedOut = true
	}
	d.log(res)
	d.record(res)
	return res
}

func (d *Dispatcher) log(res domain.Result) {
	attrs := []any{
		"request_id", res.RequestID,
		"strategy", res.Strategy,
		"node_count", res.Stats.NodeCount,
		"duration", res.Stats.Duration,
		"timed_out", res.TimedOut,
	}
	if res.Err != nil {
		d.logger.Warn("solve failed", append(attrs, "error", res.Err.Error())...)
		return
	}
	d.logger.Info("solve succeeded", attrs...)
}

func (d *Dispatcher) record(res domain.Result) {
	outcome := "ok"
	switch {
	case res.TimedOut:
		outcome = "timeout"
	case res.Err != nil:
		outcome = "error"
	}
	d.metrics.Observe(string(res.Strategy), outcome, res.Stats.NodeCount, res.Stats.Duration.Seconds())
}
