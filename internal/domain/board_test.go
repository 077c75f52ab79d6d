package domain

import "testing"

func TestNewBoardCopiesRowsWithoutAliasing(t *testing.T) {
	rows := [][]int{{1, 0}, {0, 1}}
	b := NewBoard(rows)
	rows[0][0] = 9
	if b.Values[0][0] != 1 {
		t.Fatalf("NewBoard aliased caller's rows: got %d, want 1", b.Values[0][0])
	}
}

func TestCloneIsDeepCopy(t *testing.T) {
	b := NewBoard([][]int{{1, 0}, {0, 1}})
	c := b.Clone()
	c.Set(0, 0, 5)
	if b.Values[0][0] != 1 {
		t.Fatalf("Clone shared backing array: original changed to %d", b.Values[0][0])
	}
}

func TestAtReportsOutOfBoundsAsNegativeOne(t *testing.T) {
	b := NewBoard([][]int{{1}})
	if got := b.At(-1, 0); got != -1 {
		t.Fatalf("At(-1,0) = %d, want -1", got)
	}
	if got := b.At(0, 5); got != -1 {
		t.Fatalf("At(0,5) = %d, want -1", got)
	}
}

func TestFilledAndFilledCount(t *testing.T) {
	b := NewBoard([][]int{{1, 0}, {2, 2}})
	if b.Filled() {
		t.Fatalf("Filled() = true for a board with an empty cell")
	}
	if got := b.FilledCount(); got != 3 {
		t.Fatalf("FilledCount() = %d, want 3", got)
	}
}

func TestNeighbors4OmitsOutOfBoundsCells(t *testing.T) {
	c := CellCoord{Row: 0, Col: 0}
	got := c.Neighbors4(3)
	if len(got) != 2 {
		t.Fatalf("Neighbors4() returned %d neighbors for a corner, want 2", len(got))
	}
}

func TestPairIndexColorsAreAscending(t *testing.T) {
	idx := PairIndex{
		5: Pair{Color: 5},
		1: Pair{Color: 1},
		3: Pair{Color: 3},
	}
	got := idx.Colors()
	want := []int{1, 3, 5}
	for i, w := range want {
		if got[i] != w {
			t.Fatalf("Colors() = %v, want %v", got, want)
		}
	}
}
