package solver

import (
	"context"
	"time"

	"flowlink.dev/solver/internal/boardmodel"
	"flowlink.dev/solver/internal/domain"
	"flowlink.dev/solver/internal/queue"
	"flowlink.dev/solver/internal/reach"
)

// NativeHeuristicEngine is the flow-specific heuristic strategy: a
// best-first search over partial board states (a grid plus a head
// position per open color), pruned by most-constrained-color selection,
// dead-end/stranding/chokepoint checks, and forced-move fast-forwarding.
// It satisfies ports.HeuristicEngine; SubprocessHeuristicEngine is the
// alternate implementation behind the same interface.
type NativeHeuristicEngine struct{}

func NewNativeHeuristicEngine() *NativeHeuristicEngine { return &NativeHeuristicEngine{} }

func (e *NativeHeuristicEngine) Name() string { return string(domain.StrategyHeuristic) }

type bfsNode struct {
	board domain.Board
	heads map[int]domain.CellCoord
	seq   int
}

func (e *NativeHeuristicEngine) Solve(ctx context.Context, board domain.Board) (domain.Board, domain.Stats, error) {
	start := time.Now()
	deadline, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		deadline = start.Add(15 * time.Second)
	}

	pairs := boardmodel.BuildPairs(board)
	heads := make(map[int]domain.CellCoord, len(pairs))
	for k, p := range pairs {
		heads[k] = p.Start
	}

	seqCounter := 0
	nodeCount := 0
	// Frontier ordered so the most-filled state (deepest progress) is
	// dequeued first, with insertion order as a deterministic
	// tie-breaker.
	frontier := queue.NewMinHeap(func(a, b bfsNode) bool {
		fa, fb := a.board.FilledCount(), b.board.FilledCount()
		if fa != fb {
			return fa > fb
		}
		return a.seq < b.seq
	})
	seqCounter++
	frontier.Push(bfsNode{board: board, heads: heads, seq: seqCounter})

	for frontier.Len() > 0 {
		if time.Now().After(deadline) {
			return domain.Board{}, domain.Stats{NodeCount: nodeCount, Duration: time.Since(start)}, &domain.Timeout{Strategy: e.Name(), Elapsed: time.Since(start).String()}
		}
		node := frontier.Pop()

		solved, dead, children := e.expand(node, pairs, &nodeCount)
		if solved != nil {
			return *solved, domain.Stats{NodeCount: nodeCount, Duration: time.Since(start)}, nil
		}
		if dead {
			continue
		}
		for _, child := range children {
			seqCounter++
			child.seq = seqCounter
			frontier.Push(child)
		}
	}
	return domain.Board{}, domain.Stats{NodeCount: nodeCount, Duration: time.Since(start)}, &domain.NoSolution{Strategy: e.Name()}
}

// expand runs the pruning/fast-forward loop for a single frontier node
// until it either resolves (solved/dead) or branches into children for a
// most-constrained color with more than one legal move.
func (e *NativeHeuristicEngine) expand(node bfsNode, pairs domain.PairIndex, nodeCount *int) (*domain.Board, bool, []bfsNode) {
	board := node.board.Clone()
	heads := cloneHeads(node.heads)

	for {
		*nodeCount++
		open := openColors(heads, pairs)

		if len(open) == 0 {
			if board.Filled() {
				return &board, false, nil
			}
			return nil, true, nil
		}

		if isDead(board, heads, open, pairs) {
			return nil, true, nil
		}

		active := mostConstrained(board, heads, open, pairs)
		moves := legalMoves(board, heads[active], pairs[active].End, active)

		switch len(moves) {
		case 0:
			return nil, true, nil
		case 1:
			applyMove(&board, heads, active, moves[0])
			continue
		default:
			children := make([]bfsNode, 0, len(moves))
			for _, mv := range moves {
				cb := board.Clone()
				ch := cloneHeads(heads)
				applyMove(&cb, ch, active, mv)
				children = append(children, bfsNode{board: cb, heads: ch})
			}
			return nil, false, children
		}
	}
}

func cloneHeads(h map[int]domain.CellCoord) map[int]domain.CellCoord {
	out := make(map[int]domain.CellCoord, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}

// openColors returns colors whose head has not yet reached its target
// endpoint, in ascending order (so most-constrained tie-breaking by
// smallest color id can just take the first minimal entry).
func openColors(heads map[int]domain.CellCoord, pairs domain.PairIndex) []int {
	out := make([]int, 0, len(heads))
	for k := range heads {
		if heads[k] != pairs[k].End {
			out = append(out, k)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// legalMoves returns the head's forward extensions: in-bounds neighbors
// that are empty, or that are exactly the color's own target endpoint,
// and that would not place color grid-adjacent to a non-consecutive
// cell already carrying that same color (the self-touch rule: an
// interior cell has exactly two same-color 4-neighbors, an endpoint
// exactly one).
func legalMoves(board domain.Board, head, end domain.CellCoord, color int) []domain.CellCoord {
	var out []domain.CellCoord
	for _, nb := range head.Neighbors4(board.N) {
		if !(nb == end || board.At(nb.Row, nb.Col) == 0) {
			continue
		}
		if selfTouches(board, nb, head, end, color) {
			continue
		}
		out = append(out, nb)
	}
	return out
}

// selfTouches reports whether target has a same-color 4-neighbor other
// than head (the immediate predecessor on the path) that would give
// that already-placed cell a third same-color neighbor, or give an
// endpoint a second one, violating the one-interior/two,
// endpoint/one degree invariant boardmodel.VerifySolution enforces.
//
// end is given from the input board and so is always present as color
// on the board, from every direction, before the path has actually
// reached it — target's adjacency to end is therefore only checked when
// target is itself the landing move onto end; any earlier approach is
// deferred rather than flagged, since which of end's neighbors becomes
// its one legitimate same-color link isn't decided until that move.
func selfTouches(board domain.Board, target, head, end domain.CellCoord, color int) bool {
	for _, nb := range target.Neighbors4(board.N) {
		if nb == head {
			continue
		}
		if nb == end && target != end {
			continue
		}
		if board.At(nb.Row, nb.Col) == color {
			return true
		}
	}
	return false
}

func applyMove(board *domain.Board, heads map[int]domain.CellCoord, color int, target domain.CellCoord) {
	board.Set(target.Row, target.Col, color)
	heads[color] = target
}

// mostConstrained picks the open color whose head has the fewest legal
// forward moves, ties broken by smallest color id.
func mostConstrained(board domain.Board, heads map[int]domain.CellCoord, open []int, pairs domain.PairIndex) int {
	best := open[0]
	bestCount := len(legalMoves(board, heads[best], pairs[best].End, best))
	for _, k := range open[1:] {
		n := len(legalMoves(board, heads[k], pairs[k].End, k))
		if n < bestCount {
			best, bestCount = k, n
		}
	}
	return best
}

// isDead runs the dead-end, stranding, and chokepoint checks. Every
// check here is a sound necessary condition for completability: none
// discards a state that could still reach a solution.
func isDead(board domain.Board, heads map[int]domain.CellCoord, open []int, pairs domain.PairIndex) bool {
	for _, k := range open {
		if len(legalMoves(board, heads[k], pairs[k].End, k)) == 0 {
			return true
		}
		if reach.ShortestOpenDistance(board, heads[k], pairs[k].End) == reach.Unreachable {
			return true
		}
	}
	if strandedEmptyRegion(board, heads, open) {
		return true
	}
	if chokepointDead(board, heads, open, pairs) {
		return true
	}
	return false
}

// strandedEmptyRegion reports whether any connected component of empty
// cells contains no cell adjacent to an open color's head — such a
// component can never be entered by any future move, so it can never be
// filled, violating totality.
func strandedEmptyRegion(board domain.Board, heads map[int]domain.CellCoord, open []int) bool {
	n := board.N
	visited := make([]bool, n*n)
	headSet := make(map[domain.CellCoord]bool, len(open))
	for _, k := range open {
		headSet[heads[k]] = true
	}

	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if board.Values[r][c] != 0 || visited[cellIndex(n, r, c)] {
				continue
			}
			component := floodEmpty(board, domain.CellCoord{Row: r, Col: c}, visited)
			touchesHead := false
			for _, cell := range component {
				for _, nb := range cell.Neighbors4(n) {
					if headSet[nb] {
						touchesHead = true
						break
					}
				}
				if touchesHead {
					break
				}
			}
			if !touchesHead {
				return true
			}
		}
	}
	return false
}

func floodEmpty(board domain.Board, start domain.CellCoord, visited []bool) []domain.CellCoord {
	n := board.N
	visited[cellIndex(n, start.Row, start.Col)] = true
	stack := []domain.CellCoord{start}
	var component []domain.CellCoord
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		component = append(component, cur)
		for _, nb := range cur.Neighbors4(n) {
			idx := cellIndex(n, nb.Row, nb.Col)
			if board.Values[nb.Row][nb.Col] == 0 && !visited[idx] {
				visited[idx] = true
				stack = append(stack, nb)
			}
		}
	}
	return component
}

// chokepointDead detects dead-end corridors of empty cells — maximal
// chains of degree-≤2 empty cells terminating in a degree-1 "leaf" cell
// — that never come adjacent to an open color's target endpoint or to
// an open color's head. Without an adjacent head no path can enter the
// corridor except from its branch end, and without an adjacent target
// such a path has nowhere to terminate and no way back out without
// revisiting a cell, so the corridor can never be legally filled.
func chokepointDead(board domain.Board, heads map[int]domain.CellCoord, open []int, pairs domain.PairIndex) bool {
	n := board.N
	openEnds := make(map[domain.CellCoord]bool, 2*len(open))
	for _, k := range open {
		openEnds[pairs[k].End] = true
		openEnds[heads[k]] = true
	}

	emptyDegree := func(cell domain.CellCoord) int {
		d := 0
		for _, nb := range cell.Neighbors4(n) {
			if board.Values[nb.Row][nb.Col] == 0 {
				d++
			}
		}
		return d
	}

	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			leaf := domain.CellCoord{Row: r, Col: c}
			if board.Values[r][c] != 0 || emptyDegree(leaf) != 1 {
				continue
			}
			corridor := walkCorridor(board, leaf, emptyDegree)
			touchesOpenEnd := false
			for _, cell := range corridor {
				for _, nb := range cell.Neighbors4(n) {
					if openEnds[nb] {
						touchesOpenEnd = true
						break
					}
				}
				if touchesOpenEnd {
					break
				}
			}
			if !touchesOpenEnd {
				return true
			}
		}
	}
	return false
}

// walkCorridor follows a chain of empty cells from a degree-1 leaf
// through degree-2 cells until it hits a branch (degree >= 3) or another
// leaf, collecting the cells visited along the way.
func walkCorridor(board domain.Board, leaf domain.CellCoord, emptyDegree func(domain.CellCoord) int) []domain.CellCoord {
	n := board.N
	corridor := []domain.CellCoord{leaf}
	prev := leaf
	cur := leaf
	for {
		var next domain.CellCoord
		found := false
		for _, nb := range cur.Neighbors4(n) {
			if board.Values[nb.Row][nb.Col] == 0 && nb != prev {
				next = nb
				found = true
				break
			}
		}
		if !found {
			return corridor
		}
		corridor = append(corridor, next)
		prev, cur = cur, next
		if emptyDegree(cur) != 2 {
			return corridor
		}
	}
}
