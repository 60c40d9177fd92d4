package searcher

import (
	"hasami/game"

	"golang.org/x/exp/slices"
)

// KillerMoves keeps, per ply, the last KillerSlots distinct moves that caused
// a cutoff. The oldest is evicted first.
type KillerMoves struct {
	plies [][]game.Move
}

func NewKillerMoves() *KillerMoves {
	return &KillerMoves{}
}

func (k *KillerMoves) Add(ply int, move game.Move) {
	for len(k.plies) <= ply {
		k.plies = append(k.plies, make([]game.Move, 0, KillerSlots))
	}
	slot := k.plies[ply]
	if slices.Contains(slot, move) {
		return
	}
	if len(slot) == KillerSlots {
		slot = slices.Delete(slot, 0, 1)
	}
	k.plies[ply] = append(slot, move)
}

func (k *KillerMoves) Is(ply int, move game.Move) bool {
	if ply >= len(k.plies) {
		return false
	}
	return slices.Contains(k.plies[ply], move)
}

func (k *KillerMoves) At(ply int) []game.Move {
	if ply >= len(k.plies) {
		return nil
	}
	return slices.Clone(k.plies[ply])
}

func (k *KillerMoves) Clear() {
	k.plies = k.plies[:0]
}

// HistoryTable accumulates depth squared for every move that caused a cutoff.
type HistoryTable map[game.Move]int

func (h HistoryTable) Add(move game.Move, depth int) {
	h[move] += depth * depth
}

func (h HistoryTable) Clear() {
	clear(h)
}

type candidate struct {
	move  game.Move
	child game.State
	gain  int // Opponent pieces removed by the move
	score float64
}

// expand plays every move and orders the children best first: the table move,
// then killer, history, capture, centrality and forward progress bonuses.
func (a *AlphaBeta) expand(s game.State, moves []game.Move, ttMove game.Move, ply int) []candidate {
	color := s.Turn
	candidates := make([]candidate, len(moves))
	for i, move := range moves {
		child := s.Play(move)
		c := candidate{
			move:  move,
			child: child,
			gain:  child.Captures[color] - s.Captures[color],
		}
		if move == ttMove {
			c.score += ttMoveBonus
		}
		if a.killers.Is(ply, move) {
			c.score += killerBonus
		}
		c.score += float64(a.history[move])
		c.score += captureBonus * float64(c.gain)
		c.score += centerWeight * float64(game.Size-1-distanceToCenter(move.R2, move.C2))
		if forward(move, color) {
			c.score += forwardBonus
		}
		candidates[i] = c
	}
	slices.SortStableFunc(candidates, func(x, y candidate) int {
		switch {
		case x.score > y.score:
			return -1
		case x.score < y.score:
			return 1
		default:
			return 0
		}
	})
	return candidates
}

func distanceToCenter(r, c int) int {
	dr, dc := r-boardCenterIndex, c-boardCenterIndex
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

// forward reports whether the move advances away from color's home row.
func forward(move game.Move, color game.Color) bool {
	if color == game.Black {
		return move.R2 > move.R1
	}
	return move.R2 < move.R1
}
