package dispatcher

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowlink.dev/solver/internal/boardmodel"
	"flowlink.dev/solver/internal/config"
	"flowlink.dev/solver/internal/domain"
	"flowlink.dev/solver/internal/ports"
	"flowlink.dev/solver/internal/solver"
	"flowlink.dev/solver/internal/telemetry"
)

func newTestDispatcher() *Dispatcher {
	engines := map[domain.Strategy]ports.Engine{
		domain.StrategyPathEnum:  solver.NewPathEnumEngine(),
		domain.StrategyHeuristic: solver.NewNativeHeuristicEngine(),
		domain.StrategySAT:       solver.NewSATEngine(),
	}
	metrics := telemetry.NewMetrics(prometheus.NewRegistry())
	return New(engines, config.New(), nil, metrics)
}

func TestDispatcherSolveSucceedsForEveryStrategy(t *testing.T) {
	rows := [][]int{
		{1, 0, 0, 1},
		{2, 0, 0, 2},
		{3, 0, 0, 3},
		{4, 0, 0, 4},
	}
	for _, strategy := range []domain.Strategy{domain.StrategyPathEnum, domain.StrategyHeuristic, domain.StrategySAT} {
		t.Run(string(strategy), func(t *testing.T) {
			d := newTestDispatcher()
			res := d.Solve(context.Background(), rows, strategy, 10_000)
			require.NoError(t, res.Err)
			require.NotNil(t, res.Board)
			assert.False(t, res.TimedOut)
			assert.NotEmpty(t, res.RequestID)
			assert.NoError(t, boardmodel.VerifySolution(domain.NewBoard(rows), *res.Board))
		})
	}
}

func TestDispatcherRejectsUnknownStrategy(t *testing.T) {
	d := newTestDispatcher()
	res := d.Solve(context.Background(), [][]int{{1, 0}, {0, 1}}, domain.Strategy("bogus"), 1000)
	require.Error(t, res.Err)
	_, ok := res.Err.(*domain.InvalidBoard)
	assert.True(t, ok, "want *domain.InvalidBoard, got %T", res.Err)
	assert.Nil(t, res.Board)
}

func TestDispatcherRejectsMalformedBoard(t *testing.T) {
	d := newTestDispatcher()
	res := d.Solve(context.Background(), [][]int{{1, 0, 0}}, domain.StrategyHeuristic, 1000)
	require.Error(t, res.Err)
	_, ok := res.Err.(*domain.InvalidBoard)
	assert.True(t, ok, "want *domain.InvalidBoard, got %T", res.Err)
}

func TestDispatcherDefaultsDeadlineWhenUnset(t *testing.T) {
	d := newTestDispatcher()
	rows := [][]int{{1, 0}, {0, 1}}
	res := d.Solve(context.Background(), rows, domain.StrategyPathEnum, 0)
	// A single color on the diagonal of a 2x2 board cannot cover all four
	// cells, so this has no solution, but that's distinct from a
	// configuration error: the zero deadline must still have been
	// replaced by the configured default rather than expiring instantly.
	_, isTimeout := res.Err.(*domain.Timeout)
	assert.False(t, isTimeout, "expected NoSolution, not an immediate Timeout from a zero deadline")
}
