package reach

import (
	"testing"

	"flowlink.dev/solver/internal/domain"
)

func TestShortestOpenDistanceOnEmptyBoard(t *testing.T) {
	b := domain.NewBoard([][]int{
		{0, 0, 0},
		{0, 0, 0},
		{0, 0, 0},
	})
	s := domain.CellCoord{Row: 0, Col: 0}
	e := domain.CellCoord{Row: 2, Col: 2}
	if got := ShortestOpenDistance(b, s, e); got != 4 {
		t.Fatalf("ShortestOpenDistance() = %d, want 4", got)
	}
}

func TestShortestOpenDistanceBlockedWall(t *testing.T) {
	b := domain.NewBoard([][]int{
		{0, 9, 0},
		{0, 9, 0},
		{0, 9, 0},
	})
	s := domain.CellCoord{Row: 0, Col: 0}
	e := domain.CellCoord{Row: 0, Col: 2}
	if got := ShortestOpenDistance(b, s, e); got != Unreachable {
		t.Fatalf("ShortestOpenDistance() = %d, want Unreachable", got)
	}
}

func TestShortestOpenDistanceEndpointsExemptFromEmptyRequirement(t *testing.T) {
	b := domain.NewBoard([][]int{
		{1, 0, 2},
		{0, 0, 0},
		{0, 0, 0},
	})
	s := domain.CellCoord{Row: 0, Col: 0}
	e := domain.CellCoord{Row: 0, Col: 2}
	if got := ShortestOpenDistance(b, s, e); got != 2 {
		t.Fatalf("ShortestOpenDistance() = %d, want 2", got)
	}
}

func TestShortestOpenDistanceSameCell(t *testing.T) {
	b := domain.NewBoard([][]int{{0}})
	c := domain.CellCoord{Row: 0, Col: 0}
	if got := ShortestOpenDistance(b, c, c); got != 0 {
		t.Fatalf("ShortestOpenDistance() = %d, want 0", got)
	}
}
