package game

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// WinScore is the value of a decided game. Evaluators stay well inside
// (-WinScore, WinScore) for undecided states.
const WinScore = 1_000_000.0

var Evaluators = map[string]Evaluate{
	"material":   EvaluateMaterial,
	"positional": EvaluatePositional,
	"central":    EvaluateCentral,
	"safety":     EvaluateSafety,
	"mobility":   EvaluateMobility,
}

// EvaluatorByName looks up one of the registered evaluators.
func EvaluatorByName(name string) (Evaluate, error) {
	evaluate, ok := Evaluators[name]
	if !ok {
		return nil, fmt.Errorf("unknown evaluator %q (known: %v)", name, EvaluatorNames())
	}
	return evaluate, nil
}

func EvaluatorNames() []string {
	names := make([]string, 0, len(Evaluators))
	for name := range Evaluators {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Terminal scores a decided state from perspective's point of view.
func Terminal(s State, perspective Color) (float64, bool) {
	switch s.Winner() {
	case Empty:
		return 0, false
	case perspective:
		return WinScore, true
	default:
		return -WinScore, true
	}
}

// EvaluateMaterial weighs the capture difference and who holds a pending lead.
func EvaluateMaterial(s State, perspective Color) float64 {
	if score, ok := Terminal(s, perspective); ok {
		return score
	}
	return material(s, perspective)
}

func material(s State, perspective Color) float64 {
	opponent := perspective.Opponent()
	score := 100.0 * float64(s.Captures[perspective]-s.Captures[opponent])
	switch s.PendingLeader {
	case perspective:
		score += 150
	case opponent:
		score -= 150
	}
	return score
}

// EvaluatePositional adds advancement away from the home row and adjacency
// between friendly pieces to material.
func EvaluatePositional(s State, perspective Color) float64 {
	if score, ok := Terminal(s, perspective); ok {
		return score
	}
	score := material(s, perspective)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			color := s.Grid[r][c]
			if color == Empty {
				continue
			}
			value := 2.0 * float64(advancement(r, color))
			// Count each adjacent pair once, looking down and right
			if r+1 < Size && s.Grid[r+1][c] == color {
				value += 3
			}
			if c+1 < Size && s.Grid[r][c+1] == color {
				value += 3
			}
			if color == perspective {
				score += value
			} else {
				score -= value
			}
		}
	}
	return score
}

// advancement is how many rows a piece of color has moved from its home row.
func advancement(r int, color Color) int {
	if color == Black {
		return r
	}
	return Size - 1 - r
}

var centrality = func() (table [Size][Size]float64) {
	mid := Size / 2
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			table[r][c] = float64(Size - 1 - abs(r-mid) - abs(c-mid))
		}
	}
	return table
}()

// EvaluateCentral rewards pieces by a piece-square table peaking at the centre.
func EvaluateCentral(s State, perspective Color) float64 {
	if score, ok := Terminal(s, perspective); ok {
		return score
	}
	score := material(s, perspective)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			switch s.Grid[r][c] {
			case perspective:
				score += centrality[r][c]
			case perspective.Opponent():
				score -= centrality[r][c]
			}
		}
	}
	return score
}

// EvaluateSafety penalises pieces that are one move from being flanked and
// adds a small centre bonus.
func EvaluateSafety(s State, perspective Color) float64 {
	if score, ok := Terminal(s, perspective); ok {
		return score
	}
	score := material(s, perspective)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			color := s.Grid[r][c]
			if color == Empty {
				continue
			}
			value := 0.5*centrality[r][c] - 15*float64(s.threats(r, c))
			if color == perspective {
				score += value
			} else {
				score -= value
			}
		}
	}
	return score
}

// threats counts the axes along which the piece at (r, c) has an opponent on
// one side and an empty square on the other.
func (s State) threats(r, c int) int {
	opponent := s.Grid[r][c].Opponent()
	count := 0
	for _, axis := range [2][2]direction{{{-1, 0}, {1, 0}}, {{0, -1}, {0, 1}}} {
		a, b := axis[0], axis[1]
		if !inBounds(r+a.dr, c+a.dc) || !inBounds(r+b.dr, c+b.dc) {
			continue
		}
		x, y := s.Grid[r+a.dr][c+a.dc], s.Grid[r+b.dr][c+b.dc]
		if (x == opponent && y == Empty) || (x == Empty && y == opponent) {
			count++
		}
	}
	return count
}

// EvaluateMobility adds the difference in legal move counts to material.
func EvaluateMobility(s State, perspective Color) float64 {
	if score, ok := Terminal(s, perspective); ok {
		return score
	}
	mine := len(s.LegalMoves(perspective))
	theirs := len(s.LegalMoves(perspective.Opponent()))
	return material(s, perspective) + 0.5*float64(mine-theirs)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
