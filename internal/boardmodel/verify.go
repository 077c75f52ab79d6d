package boardmodel

import (
	"fmt"

	"flowlink.dev/solver/internal/domain"
)

// VerifySolution independently checks a strategy's output against the
// solution's testable properties: Preservation, Totality, Degree,
// Connectivity, Disjointness. It does not trust the strategy that
// produced sol; every strategy's test suite runs a solved board through
// this before asserting success.
func VerifySolution(input, sol domain.Board) error {
	if sol.N != input.N {
		return fmt.Errorf("verify: size mismatch: input %d, solution %d", input.N, sol.N)
	}

	// Preservation + Totality.
	for r := 0; r < input.N; r++ {
		for c := 0; c < input.N; c++ {
			if input.Values[r][c] > 0 && sol.Values[r][c] != input.Values[r][c] {
				return fmt.Errorf("verify: preservation violated at (%d,%d): input=%d solution=%d", r, c, input.Values[r][c], sol.Values[r][c])
			}
			if sol.Values[r][c] <= 0 {
				return fmt.Errorf("verify: totality violated: empty cell (%d,%d)", r, c)
			}
		}
	}

	pairs := BuildPairs(input)

	// Degree + Connectivity, per color.
	for color, pair := range pairs {
		cells := make([]domain.CellCoord, 0)
		for r := 0; r < sol.N; r++ {
			for c := 0; c < sol.N; c++ {
				if sol.Values[r][c] == color {
					cells = append(cells, domain.CellCoord{Row: r, Col: c})
				}
			}
		}
		if len(cells) == 0 {
			return fmt.Errorf("verify: color %d has no cells in solution", color)
		}
		for _, cell := range cells {
			degree := 0
			for _, nb := range cell.Neighbors4(sol.N) {
				if sol.Values[nb.Row][nb.Col] == color {
					degree++
				}
			}
			isEndpoint := cell == pair.Start || cell == pair.End
			if isEndpoint && degree != 1 {
				return fmt.Errorf("verify: degree violated for color %d at endpoint (%d,%d): got %d, want 1", color, cell.Row, cell.Col, degree)
			}
			if !isEndpoint && degree != 2 {
				return fmt.Errorf("verify: degree violated for color %d at (%d,%d): got %d, want 2", color, cell.Row, cell.Col, degree)
			}
		}
		if !connected(sol, cells, color) {
			return fmt.Errorf("verify: color %d is not a single connected component", color)
		}
	}

	// Disjointness falls out of Degree/Connectivity plus the single-label
	// grid representation (each cell carries exactly one value), so it is
	// not checked separately: no two colors' cell sets overlap by
	// construction of the scan above.
	return nil
}

// connected reports whether cells (all known to share color on sol) form
// a single 4-connected component.
func connected(sol domain.Board, cells []domain.CellCoord, color int) bool {
	if len(cells) == 0 {
		return false
	}
	seen := make(map[domain.CellCoord]bool, len(cells))
	stack := []domain.CellCoord{cells[0]}
	seen[cells[0]] = true
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, nb := range cur.Neighbors4(sol.N) {
			if sol.Values[nb.Row][nb.Col] == color && !seen[nb] {
				seen[nb] = true
				stack = append(stack, nb)
			}
		}
	}
	return len(seen) == len(cells)
}
