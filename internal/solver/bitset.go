package solver

// bitset is a fixed-capacity packed bit vector over the 225 cells of the
// largest permitted board (15×15). It backs both a partial path's
// visited-set and the path-enumeration strategy's completed-path
// deduplication key. Used as a map key directly — no string allocation
// per check.
type bitset [4]uint64 // 256 bits, enough for N*N up to 256

func (b bitset) set(i int) bitset {
	b[i/64] |= 1 << uint(i%64)
	return b
}

func (b bitset) has(i int) bool {
	return b[i/64]&(1<<uint(i%64)) != 0
}

func cellIndex(n, r, c int) int { return r*n + c }
