// Package wireformat implements the heuristic-BFS wire format: a text
// grid on the way in, a JSON 2-D array of byte codes on the way out. It
// exists so a native Go engine and a subprocess engine that talks to an
// external heuristic binary can share one encode/decode boundary — the
// row-major axis convention is applied uniformly in both directions
// here, unlike the source pipeline this was ported from.
package wireformat

import (
	"encoding/json"
	"fmt"

	"flowlink.dev/solver/internal/domain"
)

// Alphabet maps color id (1-indexed) to its single-character wire code.
// Index 0 is unused; Alphabet[k] is color k's character for k in [1,16].
var Alphabet = [...]byte{
	0, // unused, colors are 1-indexed
	'R', 'B', 'Y', 'G', 'O', 'C', 'M', 'm',
	'P', 'A', 'W', 'g', 'T', 'b', 'c', 'p',
}

const emptyChar = '.'

// EncodeGrid renders board as one line per row, N characters per line,
// newline-terminated.
func EncodeGrid(board domain.Board) (string, error) {
	out := make([]byte, 0, board.N*(board.N+1))
	for r := 0; r < board.N; r++ {
		for c := 0; c < board.N; c++ {
			v := board.Values[r][c]
			if v == 0 {
				out = append(out, emptyChar)
				continue
			}
			if v < 1 || v >= len(Alphabet) {
				return "", fmt.Errorf("wireformat: color %d out of alphabet range at (%d,%d)", v, r, c)
			}
			out = append(out, Alphabet[v])
		}
		out = append(out, '\n')
	}
	return string(out), nil
}

// colorForByte reverse-maps a wire character (or its ASCII byte code) to
// a color id, 0 for the empty marker.
func colorForByte(b int) (int, error) {
	if b == emptyChar {
		return 0, nil
	}
	for k := 1; k < len(Alphabet); k++ {
		if int(Alphabet[k]) == b {
			return k, nil
		}
	}
	return 0, fmt.Errorf("wireformat: byte code %d is not in the alphabet", b)
}

// DecodeModel parses the back-end's JSON 2-D array of byte codes into a
// board, mapping each code back through Alphabet to a color id (0 for
// the empty marker).
func DecodeModel(data []byte) (domain.Board, error) {
	var rows [][]int
	if err := json.Unmarshal(data, &rows); err != nil {
		return domain.Board{}, fmt.Errorf("wireformat: decoding model: %w", err)
	}
	n := len(rows)
	values := make([][]int, n)
	for r, row := range rows {
		if len(row) != n {
			return domain.Board{}, fmt.Errorf("wireformat: row %d has %d cells, want %d (non-square model)", r, len(row), n)
		}
		values[r] = make([]int, n)
		for c, code := range row {
			color, err := colorForByte(code)
			if err != nil {
				return domain.Board{}, fmt.Errorf("wireformat: at (%d,%d): %w", r, c, err)
			}
			values[r][c] = color
		}
	}
	return domain.Board{Values: values, N: n}, nil
}
