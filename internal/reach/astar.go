// Package reach computes the shortest open-cell distance between two
// cells of a board, used both as a feasibility pruner and as a
// search-length lower bound. A* with the Manhattan-distance heuristic is
// admissible and consistent on a 4-connected unit-cost grid, so a cell
// can be closed the moment it is popped rather than needing reopening.
package reach

import (
	"math"

	"flowlink.dev/solver/internal/domain"
	"flowlink.dev/solver/internal/queue"
)

// Unreachable is the sentinel distance reported when no open path exists.
const Unreachable = math.MaxInt32

type node struct {
	cell domain.CellCoord
	g    int // cells traveled so far
	f    int // g + Manhattan heuristic to target
}

// ShortestOpenDistance returns the minimum number of edges in a
// 4-connected path from s to t that traverses only currently-empty
// cells, except that s and t themselves are exempt from the "empty"
// requirement. Returns Unreachable if no such path exists.
func ShortestOpenDistance(b domain.Board, s, t domain.CellCoord) int {
	if s == t {
		return 0
	}
	if !b.InBounds(s.Row, s.Col) || !b.InBounds(t.Row, t.Col) {
		return Unreachable
	}

	open := queue.NewMinHeap(func(a, b node) bool { return a.f < b.f })
	closed := make(map[domain.CellCoord]bool, b.N*b.N)

	open.Push(node{cell: s, g: 0, f: manhattan(s, t)})
	for open.Len() > 0 {
		cur := open.Pop()
		if closed[cur.cell] {
			continue
		}
		closed[cur.cell] = true
		if cur.cell == t {
			return cur.g
		}
		for _, nb := range cur.cell.Neighbors4(b.N) {
			if closed[nb] {
				continue
			}
			// s and t are exempt from the empty-cell requirement;
			// every other traversed cell must be unconstrained.
			if nb != t && b.Values[nb.Row][nb.Col] != 0 {
				continue
			}
			g := cur.g + 1
			open.Push(node{cell: nb, g: g, f: g + manhattan(nb, t)})
		}
	}
	return Unreachable
}

func manhattan(a, b domain.CellCoord) int {
	return absInt(a.Row-b.Row) + absInt(a.Col-b.Col)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
