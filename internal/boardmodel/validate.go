// Package boardmodel normalizes raw input boards, builds the endpoint
// pair index, and verifies a strategy's output against the solution's
// testable properties — row/column/box conflict scanning generalized
// from a fixed 9x9 Sudoku grid to Flow Free's variable N×N color-path
// grid.
package boardmodel

import (
	"flowlink.dev/solver/internal/domain"
)

const (
	minN    = 2
	maxN    = 15
	maxColor = 16
)

// Validate fails with *domain.InvalidBoard if the board's dimensions are
// non-square or out of [2,15], or if a positive color occurs other than
// exactly twice. This takes the lenient reading of color identifiers:
// colors need not be contiguous from 1, only present-and-paired.
func Validate(b domain.Board) error {
	if b.N < minN || b.N > maxN {
		return &domain.InvalidBoard{Reason: "board size out of range [2,15]"}
	}
	for r, row := range b.Values {
		if len(row) != b.N {
			return &domain.InvalidBoard{Reason: "board is not square", Cell: domain.CellCoord{Row: r}, HasCell: true}
		}
	}

	counts := make(map[int]int)
	first := make(map[int]domain.CellCoord)
	for r := 0; r < b.N; r++ {
		for c := 0; c < b.N; c++ {
			v := b.Values[r][c]
			if v < 0 {
				return &domain.InvalidBoard{Reason: "negative cell value", Cell: domain.CellCoord{Row: r, Col: c}, HasCell: true}
			}
			if v == 0 {
				continue
			}
			if v > maxColor {
				return &domain.InvalidBoard{Reason: "color exceeds maximum of 16", Cell: domain.CellCoord{Row: r, Col: c}, HasCell: true}
			}
			counts[v]++
			if counts[v] == 1 {
				first[v] = domain.CellCoord{Row: r, Col: c}
			}
		}
	}
	for color, n := range counts {
		if n != 2 {
			return &domain.InvalidBoard{Reason: "color does not occur exactly twice", Cell: first[color], HasCell: true}
		}
	}
	return nil
}

// BuildPairs scans the board in row-major order and records the first and
// second occurrence of each color as its Start/End endpoints. The board
// is assumed already valid; callers run Validate first.
func BuildPairs(b domain.Board) domain.PairIndex {
	idx := make(domain.PairIndex)
	for r := 0; r < b.N; r++ {
		for c := 0; c < b.N; c++ {
			v := b.Values[r][c]
			if v <= 0 {
				continue
			}
			p, ok := idx[v]
			cell := domain.CellCoord{Row: r, Col: c}
			if !ok {
				idx[v] = domain.Pair{Color: v, Start: cell, End: cell}
				continue
			}
			p.End = cell
			idx[v] = p
		}
	}
	return idx
}
