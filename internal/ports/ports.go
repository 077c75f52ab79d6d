// Package ports defines the interfaces the dispatcher routes through:
// the dispatcher (internal/usecase/Service analogue) depends only on
// these, and is wired to concrete engines in cmd/flowsolve.
package ports

import (
	"context"

	"flowlink.dev/solver/internal/domain"
)

// Engine is one strategy back-end behind the strategy dispatcher.
// Implementations: internal/solver.PathEnumEngine, NativeHeuristicEngine
// (or SubprocessHeuristicEngine), SATEngine.
type Engine interface {
	// Solve attempts to complete board before ctx is done. A deadline
	// expiry must surface as *domain.Timeout, not as ctx.Err() directly,
	// so the dispatcher's error taxonomy stays uniform across engines
	// that do and don't use context internally.
	Solve(ctx context.Context, board domain.Board) (domain.Board, domain.Stats, error)
	// Name identifies the engine for logging/telemetry labels.
	Name() string
}

// HeuristicEngine is the narrower interface the heuristic-BFS strategy
// is wired through, allowing a native in-process implementation and a
// subprocess implementation (talking the text-grid wire format) to
// stand in for each other — the same "two backends, one interface"
// shape the BacktrackingSolver/DLXSolver pair uses for ports.Solver.
type HeuristicEngine interface {
	Engine
}
