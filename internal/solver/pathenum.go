// Package solver holds the three interchangeable strategy back-ends
// behind ports.Engine.
package solver

import (
	"context"
	"time"

	"flowlink.dev/solver/internal/boardmodel"
	"flowlink.dev/solver/internal/domain"
	"flowlink.dev/solver/internal/queue"
	"flowlink.dev/solver/internal/reach"
)

// PathEnumEngine is the "A* strategy": per-color breadth-first
// enumeration of simple paths, with recursive descent over colors in
// ascending order and A*-based reachability as both a feasibility
// pruner and a search-length lower bound. Complete but impractical
// beyond roughly 10×10 boards; NativeHeuristicEngine handles the rest.
type PathEnumEngine struct{}

func NewPathEnumEngine() *PathEnumEngine { return &PathEnumEngine{} }

func (e *PathEnumEngine) Name() string { return string(domain.StrategyPathEnum) }

func (e *PathEnumEngine) Solve(ctx context.Context, board domain.Board) (domain.Board, domain.Stats, error) {
	start := time.Now()
	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		deadline = start.Add(15 * time.Second)
	}

	pairs := boardmodel.BuildPairs(board)
	colors := pairs.Colors()
	if len(colors) == 0 {
		return domain.Board{}, domain.Stats{Duration: time.Since(start)}, &domain.NoSolution{Strategy: e.Name()}
	}
	nodeCount := 0

	result, ok, err := e.recurse(board, colors, pairs, 0, start, deadline, &nodeCount)
	stats := domain.Stats{NodeCount: nodeCount, Duration: time.Since(start)}
	if err != nil {
		return domain.Board{}, stats, err
	}
	if !ok {
		return domain.Board{}, stats, &domain.NoSolution{Strategy: e.Name()}
	}
	return result, stats, nil
}

// recurse enumerates candidate paths for colors[pos] and, for each
// feasible one, recurses into the remaining colors. It returns a
// completed board and true on success, or false (no error) when this
// color's branch is exhausted — distinct from the *domain.Timeout error
// that unwinds the whole search.
func (e *PathEnumEngine) recurse(board domain.Board, colors []int, pairs domain.PairIndex, pos int, start, deadline time.Time, nodeCount *int) (domain.Board, bool, error) {
	k := colors[pos]
	pair := pairs[k]

	minDist := reach.ShortestOpenDistance(board, pair.Start, pair.End)
	if minDist == reach.Unreachable {
		return domain.Board{}, false, nil
	}
	for _, k2 := range colors[pos+1:] {
		p2 := pairs[k2]
		if reach.ShortestOpenDistance(board, p2.Start, p2.End) == reach.Unreachable {
			return domain.Board{}, false, nil
		}
	}

	type partial struct {
		cells   []domain.CellCoord
		visited bitset
	}

	startIdx := cellIndex(board.N, pair.Start.Row, pair.Start.Col)
	q := queue.NewFIFO[partial](64)
	q.Enqueue(partial{cells: []domain.CellCoord{pair.Start}, visited: bitset{}.set(startIdx)})

	seen := make(map[bitset]bool)

	for q.Len() > 0 {
		if time.Now().After(deadline) {
			return domain.Board{}, false, &domain.Timeout{Strategy: string(domain.StrategyPathEnum), Elapsed: time.Since(start).String()}
		}
		*nodeCount++
		cur := q.Dequeue()
		last := cur.cells[len(cur.cells)-1]

		if last == pair.End {
			if seen[cur.visited] {
				continue
			}
			seen[cur.visited] = true

			length := len(cur.cells) - 1 // edges traversed
			if length < minDist {
				continue
			}

			trial := board.Clone()
			for _, cell := range cur.cells {
				trial.Set(cell.Row, cell.Col, k)
			}

			if pos == len(colors)-1 {
				if trial.FilledCount() == trial.N*trial.N {
					return trial, true, nil
				}
				continue
			}

			res, ok, err := e.recurse(trial, colors, pairs, pos+1, start, deadline, nodeCount)
			if err != nil {
				return domain.Board{}, false, err
			}
			if ok {
				return res, true, nil
			}
			continue
		}

		for _, nb := range last.Neighbors4(board.N) {
			idx := cellIndex(board.N, nb.Row, nb.Col)
			if cur.visited.has(idx) {
				continue
			}
			if nb != pair.End && board.At(nb.Row, nb.Col) != 0 {
				continue
			}
			if touchesNonConsecutive(board.N, cur.visited, nb, last) {
				continue
			}
			nextCells := make([]domain.CellCoord, len(cur.cells)+1)
			copy(nextCells, cur.cells)
			nextCells[len(cur.cells)] = nb
			q.Enqueue(partial{cells: nextCells, visited: cur.visited.set(idx)})
		}
	}
	return domain.Board{}, false, nil
}

// touchesNonConsecutive reports whether extending the path to candidate
// would make it grid-adjacent to an already-visited cell of its own
// path other than last (the cell it is extending from). Rejecting this
// enforces the same no-self-touch rule legalMoves enforces for the
// heuristic engine: a path may never run next to a non-consecutive cell
// of its own color.
func touchesNonConsecutive(n int, visited bitset, candidate, last domain.CellCoord) bool {
	for _, nb := range candidate.Neighbors4(n) {
		if nb == last {
			continue
		}
		if visited.has(cellIndex(n, nb.Row, nb.Col)) {
			return true
		}
	}
	return false
}
