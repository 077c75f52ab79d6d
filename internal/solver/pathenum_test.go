package solver

import (
	"context"
	"testing"
	"time"

	"flowlink.dev/solver/internal/boardmodel"
	"flowlink.dev/solver/internal/domain"
)

func TestPathEnumSolvesSmallBoard(t *testing.T) {
	input := domain.NewBoard([][]int{
		{1, 0, 0, 1},
		{2, 0, 0, 2},
		{3, 0, 0, 3},
		{4, 0, 0, 4},
	})
	e := NewPathEnumEngine()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	out, stats, err := e.Solve(ctx, input)
	if err != nil {
		t.Fatalf("Solve() = %v (nodes=%d dur=%v)", err, stats.NodeCount, stats.Duration)
	}
	if err := boardmodel.VerifySolution(input, out); err != nil {
		t.Fatalf("VerifySolution() = %v", err)
	}
}

func TestPathEnumReportsNoSolutionWhenColorsCross(t *testing.T) {
	input := domain.NewBoard([][]int{
		{1, 2},
		{2, 1},
	})
	e := NewPathEnumEngine()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, _, err := e.Solve(ctx, input)
	if _, ok := err.(*domain.NoSolution); !ok {
		t.Fatalf("Solve() err = %v (%T), want *domain.NoSolution", err, err)
	}
}

func TestPathEnumSurfacesTimeoutNotContextDeadlineExceeded(t *testing.T) {
	// A 10x10 board with colors at opposite corners is within reach of
	// path enumeration but slow enough to blow a near-zero deadline.
	rows := make([][]int, 10)
	for r := range rows {
		rows[r] = make([]int, 10)
	}
	rows[0][0] = 1
	rows[9][9] = 1
	rows[0][9] = 2
	rows[9][0] = 2
	input := domain.NewBoard(rows)

	e := NewPathEnumEngine()
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()

	_, _, err := e.Solve(ctx, input)
	if _, ok := err.(*domain.Timeout); !ok {
		t.Fatalf("Solve() err = %v (%T), want *domain.Timeout", err, err)
	}
}
