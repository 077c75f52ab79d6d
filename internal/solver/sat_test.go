package solver

import (
	"context"
	"testing"
	"time"

	"flowlink.dev/solver/internal/boardmodel"
	"flowlink.dev/solver/internal/domain"
)

func TestSATSolvesSmallBoard(t *testing.T) {
	input := domain.NewBoard([][]int{
		{1, 0, 0, 1},
		{2, 0, 0, 2},
		{3, 0, 0, 3},
		{4, 0, 0, 4},
	})
	e := NewSATEngine()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	out, _, err := e.Solve(ctx, input)
	if err != nil {
		t.Fatalf("Solve() = %v", err)
	}
	if err := boardmodel.VerifySolution(input, out); err != nil {
		t.Fatalf("VerifySolution() = %v", err)
	}
}

func TestSATReportsNoSolutionWhenColorsCross(t *testing.T) {
	input := domain.NewBoard([][]int{
		{1, 2},
		{2, 1},
	})
	e := NewSATEngine()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, _, err := e.Solve(ctx, input)
	if _, ok := err.(*domain.NoSolution); !ok {
		t.Fatalf("Solve() err = %v (%T), want *domain.NoSolution", err, err)
	}
}

func TestExactlyKBuildsContradictionWhenInfeasible(t *testing.T) {
	got := exactlyK(nil, 1)
	if got == nil {
		t.Fatalf("exactlyK(nil, 1) = nil, want a contradiction formula")
	}
}

func TestKSubsetsEnumeratesAllCombinations(t *testing.T) {
	got := kSubsets(4, 2)
	if len(got) != 6 {
		t.Fatalf("kSubsets(4,2) returned %d subsets, want 6", len(got))
	}
}
