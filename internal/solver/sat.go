package solver

import (
	"context"
	"fmt"
	"time"

	"github.com/crillab/gophersat/bf"

	"flowlink.dev/solver/internal/boardmodel"
	"flowlink.dev/solver/internal/domain"
)

// SATEngine is the constraint-satisfaction strategy: each cell gets a
// one-hot set of boolean variables (one per candidate color), fixed
// cells and degree constraints are asserted, and
// github.com/crillab/gophersat/bf.Solve is invoked. bf compiles the
// formula to CNF via Tseitin transformation internally, so this package
// only builds the formula — it never hand-writes clauses.
//
// Per-cell degree constraints alone admit a model where one color's
// region is a simple path plus a disjoint same-color cycle elsewhere on
// the board — the cycle contributes no degree-1 cells, so it doesn't
// trip the endpoint/interior degree check at all. This package does not
// encode the extra distance-ordering variables that would rule cycles
// out structurally; instead Solve re-checks every model against
// boardmodel.VerifySolution (which does catch them, via its connectivity
// walk) and, on a cyclic model, adds a clause excluding that exact
// cell-color assignment and resolves. This makes the strategy complete
// but no longer a single SAT call — see blockModel.
//
// gophersat's solve loop is not context-aware, so the deadline is
// enforced by racing it against a timer in a separate goroutine; if the
// timer fires first, the result is discarded and Timeout is returned,
// but the goroutine is allowed to run to completion in the background —
// bf.Solve has no cancellation hook to stop it early, so the caller's
// deadline only bounds how long this engine waits, not how long the
// underlying solve runs.
type SATEngine struct{}

func NewSATEngine() *SATEngine { return &SATEngine{} }

func (e *SATEngine) Name() string { return string(domain.StrategySAT) }

func cellVar(r, c, k int) string { return fmt.Sprintf("c%d_%d_%d", r, c, k) }

func (e *SATEngine) Solve(ctx context.Context, board domain.Board) (domain.Board, domain.Stats, error) {
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

	formula, err := e.encode(board, pairs, colors)
	if err != nil {
		return domain.Board{}, domain.Stats{Duration: time.Since(start)}, &domain.InternalError{Strategy: e.Name(), Cause: err}
	}

	type outcome struct {
		board domain.Board
		ok    bool
		tries int
	}
	done := make(chan outcome, 1)
	go func() {
		tries := 0
		for {
			tries++
			model := bf.Solve(formula)
			if model == nil {
				done <- outcome{ok: false, tries: tries}
				return
			}
			out := e.decode(board.N, colors, model)
			if verr := boardmodel.VerifySolution(board, out); verr == nil {
				done <- outcome{board: out, ok: true, tries: tries}
				return
			}
			formula = bf.And(formula, blockModel(board.N, colors, model))
		}
	}()

	select {
	case res := <-done:
		stats := domain.Stats{NodeCount: res.tries, Duration: time.Since(start)}
		if !res.ok {
			return domain.Board{}, stats, &domain.NoSolution{Strategy: e.Name()}
		}
		return res.board, stats, nil
	case <-time.After(time.Until(deadline)):
		return domain.Board{}, domain.Stats{Duration: time.Since(start)}, &domain.Timeout{Strategy: e.Name(), Elapsed: time.Since(start).String()}
	case <-ctx.Done():
		return domain.Board{}, domain.Stats{Duration: time.Since(start)}, &domain.Timeout{Strategy: e.Name(), Elapsed: "canceled"}
	}
}

// blockModel builds a clause excluding the exact cell-color assignment
// model made: the disjunction of each cell's negated true one-hot
// literal. Any later model must therefore disagree with this one on at
// least one cell, so conjoining it into the formula rules out only this
// specific (rejected) assignment and nothing else.
func blockModel(n int, colors []int, model map[string]bool) bf.Formula {
	var negated []bf.Formula
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			for _, k := range colors {
				v := cellVar(r, c, k)
				if model[v] {
					negated = append(negated, bf.Not(bf.Var(v)))
				}
			}
		}
	}
	return bf.Or(negated...)
}

// encode builds one-hot color variables per cell, fixed-cell
// equalities, and per-cell degree constraints (degree 1 at endpoints,
// degree 2 elsewhere) over the ≤4 same-color-neighbor indicators.
func (e *SATEngine) encode(board domain.Board, pairs domain.PairIndex, colors []int) (bf.Formula, error) {
	n := board.N
	var clauses []bf.Formula

	cellLit := func(r, c, k int) bf.Formula { return bf.Var(cellVar(r, c, k)) }

	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			// Exactly one color per cell.
			var atLeastOne []bf.Formula
			for _, k := range colors {
				atLeastOne = append(atLeastOne, cellLit(r, c, k))
			}
			clauses = append(clauses, bf.Or(atLeastOne...))
			for i := 0; i < len(colors); i++ {
				for j := i + 1; j < len(colors); j++ {
					clauses = append(clauses, bf.Not(bf.And(cellLit(r, c, colors[i]), cellLit(r, c, colors[j]))))
				}
			}

			// Fixed given, if any.
			if given := board.Values[r][c]; given > 0 {
				clauses = append(clauses, cellLit(r, c, given))
			}

			// Same-color-neighbor indicators, one per 4-neighbor.
			cell := domain.CellCoord{Row: r, Col: c}
			neighbors := cell.Neighbors4(n)
			var sameColorEdges []bf.Formula
			for _, nb := range neighbors {
				var anyColorMatch []bf.Formula
				for _, k := range colors {
					anyColorMatch = append(anyColorMatch, bf.And(cellLit(r, c, k), cellLit(nb.Row, nb.Col, k)))
				}
				sameColorEdges = append(sameColorEdges, bf.Or(anyColorMatch...))
			}

			wantDegree := 2
			if isEndpoint(cell, pairs) {
				wantDegree = 1
			}
			if wantDegree > len(sameColorEdges) {
				return nil, fmt.Errorf("cell (%d,%d) cannot reach required degree %d with only %d neighbors", r, c, wantDegree, len(sameColorEdges))
			}
			clauses = append(clauses, exactlyK(sameColorEdges, wantDegree))
		}
	}

	return bf.And(clauses...), nil
}

func isEndpoint(cell domain.CellCoord, pairs domain.PairIndex) bool {
	for _, p := range pairs {
		if p.Start == cell || p.End == cell {
			return true
		}
	}
	return false
}

// exactlyK builds "exactly k of lits are true" directly as a disjunction
// of conjunctions over all k-subsets. Sound for the arity this is used
// at (lits has at most 4 elements, one per grid neighbor), where a
// combinatorial expansion is cheaper and simpler to verify than a
// counter-based cardinality encoding.
func exactlyK(lits []bf.Formula, k int) bf.Formula {
	n := len(lits)
	if k < 0 || k > n {
		return contradiction()
	}
	var options []bf.Formula
	for _, subset := range kSubsets(n, k) {
		var parts []bf.Formula
		inSubset := make([]bool, n)
		for _, idx := range subset {
			inSubset[idx] = true
		}
		for i, lit := range lits {
			if inSubset[i] {
				parts = append(parts, lit)
			} else {
				parts = append(parts, bf.Not(lit))
			}
		}
		options = append(options, bf.And(parts...))
	}
	if len(options) == 0 {
		return contradiction()
	}
	return bf.Or(options...)
}

// contradiction returns a formula that is false under every assignment,
// used for cardinality requests that are unsatisfiable by construction
// (asking for more same-color neighbors than a border/corner cell has).
func contradiction() bf.Formula {
	v := bf.Var("__unsat__")
	return bf.And(v, bf.Not(v))
}

// kSubsets enumerates all k-element subsets of {0,...,n-1} as index
// slices. n is at most 4 in this package's usage, so the subset count is
// at most C(4,2)=6.
func kSubsets(n, k int) [][]int {
	var out [][]int
	var rec func(start int, cur []int)
	rec = func(start int, cur []int) {
		if len(cur) == k {
			out = append(out, append([]int(nil), cur...))
			return
		}
		for i := start; i < n; i++ {
			rec(i+1, append(cur, i))
		}
	}
	rec(0, nil)
	return out
}

// decode reads the model's one-hot variables back into a board.
func (e *SATEngine) decode(n int, colors []int, model map[string]bool) domain.Board {
	values := make([][]int, n)
	for r := 0; r < n; r++ {
		values[r] = make([]int, n)
		for c := 0; c < n; c++ {
			for _, k := range colors {
				if model[cellVar(r, c, k)] {
					values[r][c] = k
					break
				}
			}
		}
	}
	return domain.Board{Values: values, N: n}
}
