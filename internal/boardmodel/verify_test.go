package boardmodel

import (
	"testing"

	"flowlink.dev/solver/internal/domain"
)

func TestVerifySolutionAcceptsValidSolution(t *testing.T) {
	input := domain.NewBoard([][]int{
		{1, 0, 0, 1},
		{2, 0, 0, 2},
		{3, 0, 0, 3},
		{4, 0, 0, 4},
	})
	sol := domain.NewBoard([][]int{
		{1, 1, 1, 1},
		{2, 2, 2, 2},
		{3, 3, 3, 3},
		{4, 4, 4, 4},
	})
	if err := VerifySolution(input, sol); err != nil {
		t.Fatalf("VerifySolution() = %v, want nil", err)
	}
}

func TestVerifySolutionRejectsPreservationViolation(t *testing.T) {
	input := domain.NewBoard([][]int{{1, 0}, {0, 1}})
	sol := domain.NewBoard([][]int{{2, 2}, {2, 2}})
	if err := VerifySolution(input, sol); err == nil {
		t.Fatalf("VerifySolution() = nil, want error for changed given")
	}
}

func TestVerifySolutionRejectsIncompleteGrid(t *testing.T) {
	input := domain.NewBoard([][]int{{1, 0}, {0, 1}})
	sol := domain.NewBoard([][]int{{1, 0}, {0, 1}})
	if err := VerifySolution(input, sol); err == nil {
		t.Fatalf("VerifySolution() = nil, want error for totality violation")
	}
}

func TestVerifySolutionRejectsWrongDegree(t *testing.T) {
	// With only one color, totality forces every cell to carry it, so
	// the center cell of a 3x3 grid ends up with degree 4 instead of
	// the 2 a non-endpoint path cell requires.
	input := domain.NewBoard([][]int{
		{1, 0, 0},
		{0, 0, 0},
		{0, 0, 1},
	})
	sol := domain.NewBoard([][]int{
		{1, 1, 1},
		{1, 1, 1},
		{1, 1, 1},
	})
	if err := VerifySolution(input, sol); err == nil {
		t.Fatalf("VerifySolution() = nil, want error for over-degree cell")
	}
}

func TestVerifySolutionRejectsDisconnectedColor(t *testing.T) {
	// Color 1's cells satisfy the degree rule (one simple path plus a
	// disjoint 4-cycle of degree-2 cells) but form two components.
	input := domain.NewBoard([][]int{
		{1, 0, 0, 1},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	sol := domain.NewBoard([][]int{
		{1, 1, 1, 1},
		{2, 2, 2, 2},
		{1, 1, 9, 9},
		{1, 1, 9, 9},
	})
	if err := VerifySolution(input, sol); err == nil {
		t.Fatalf("VerifySolution() = nil, want error for disconnected color 1")
	}
}
