package game

import "golang.org/x/exp/rand"

const zobristSeed = 0x9e3779b97f4a7c15

type zobristTable struct {
	pieces   [Size][Size][3]uint64
	captures [3][Size*2 + 1]uint64
	turn     [3]uint64
	pending  [3]uint64
}

// Keys are fixed for the process so hashes are stable across searches.
var zobrist = newZobristTable(zobristSeed)

func newZobristTable(seed uint64) *zobristTable {
	rng := rand.New(rand.NewSource(seed))
	z := &zobristTable{}
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			z.pieces[r][c][Black] = rng.Uint64()
			z.pieces[r][c][White] = rng.Uint64()
		}
	}
	for _, color := range []Color{Black, White} {
		for n := range z.captures[color] {
			z.captures[color][n] = rng.Uint64()
		}
		z.turn[color] = rng.Uint64()
		z.pending[color] = rng.Uint64()
	}
	return z
}

// Hash identifies the position for transposition lookups. It covers piece
// placement, both capture counters, the side to move and the pending leader.
func (s State) Hash() StateHash {
	var hash uint64
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if color := s.Grid[r][c]; color != Empty {
				hash ^= zobrist.pieces[r][c][color]
			}
		}
	}
	for _, color := range []Color{Black, White} {
		hash ^= zobrist.captures[color][captureKey(s.Captures[color])]
	}
	if s.Turn != Empty {
		hash ^= zobrist.turn[s.Turn]
	}
	if s.PendingLeader != Empty {
		hash ^= zobrist.pending[s.PendingLeader]
	}
	return StateHash(hash)
}

func captureKey(n int) int {
	if n < 0 {
		return 0
	}
	if n > Size*2 {
		return Size * 2
	}
	return n
}
