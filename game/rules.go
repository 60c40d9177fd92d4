package game

import (
	"errors"
	"fmt"
)

var ErrIllegalMove = errors.New("illegal move")

type direction struct{ dr, dc int }

var directions = [4]direction{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

func inBounds(r, c int) bool {
	return r >= 0 && r < Size && c >= 0 && c < Size
}

// Legal reports why m cannot be played by color, or nil when it can. The
// state is never modified.
func (s State) Legal(m Move, color Color) error {
	if color != Black && color != White {
		return fmt.Errorf("%w: %s cannot move", ErrIllegalMove, color)
	}
	if !inBounds(m.R1, m.C1) || !inBounds(m.R2, m.C2) {
		return fmt.Errorf("%w: %s leaves the board", ErrIllegalMove, m)
	}
	if s.Grid[m.R1][m.C1] != color {
		return fmt.Errorf("%w: %s does not start on a %s piece", ErrIllegalMove, m, color)
	}
	if s.Grid[m.R2][m.C2] != Empty {
		return fmt.Errorf("%w: %s lands on an occupied square", ErrIllegalMove, m)
	}
	// Exactly one coordinate changes
	if (m.R1 == m.R2) == (m.C1 == m.C2) {
		return fmt.Errorf("%w: %s is not a straight move", ErrIllegalMove, m)
	}
	dr, dc := sign(m.R2-m.R1), sign(m.C2-m.C1)
	for r, c := m.R1+dr, m.C1+dc; r != m.R2 || c != m.C2; r, c = r+dr, c+dc {
		if s.Grid[r][c] != Empty {
			return fmt.Errorf("%w: %s is blocked at %d,%d", ErrIllegalMove, m, r, c)
		}
	}
	if s.suicidal(m, color) {
		return fmt.Errorf("%w: %s moves into a flanked square without capturing", ErrIllegalMove, m)
	}
	return nil
}

// suicidal reports whether the slide lands between two opponent pieces without
// capturing anything. It works on the receiver's copy of the board.
func (s State) suicidal(m Move, color Color) bool {
	s.Grid[m.R1][m.C1] = Empty
	s.Grid[m.R2][m.C2] = color
	if !s.flanked(m.R2, m.C2, color) {
		return false
	}
	return s.resolveCaptures(m.R2, m.C2, color) == 0
}

// flanked reports whether (r, c) has an opponent piece on both sides along
// either axis.
func (s *State) flanked(r, c int, color Color) bool {
	opponent := color.Opponent()
	at := func(r, c int) Color {
		if !inBounds(r, c) {
			return Empty
		}
		return s.Grid[r][c]
	}
	if at(r, c-1) == opponent && at(r, c+1) == opponent {
		return true
	}
	return at(r-1, c) == opponent && at(r+1, c) == opponent
}

// Apply validates m and plays it for color. On error the state is unchanged.
func (s *State) Apply(m Move, color Color) error {
	if err := s.Legal(m, color); err != nil {
		return err
	}
	s.apply(m, color)
	return nil
}

// Play returns the state after the side to move plays m. The move must come
// from LegalMoves; it is not validated.
func (s State) Play(m Move) State {
	s.apply(m, s.Turn)
	return s
}

func (s *State) apply(m Move, color Color) {
	s.Grid[m.R1][m.C1] = Empty
	s.Grid[m.R2][m.C2] = color
	s.Captures[color] += s.resolveCaptures(m.R2, m.C2, color)

	opponent := color.Opponent()
	lead := s.Captures[color] - s.Captures[opponent]
	if lead >= MarginLead && s.PendingLeader == Empty {
		s.PendingLeader = color
	} else if lead >= -(MarginLead-1) && s.PendingLeader == opponent {
		s.PendingLeader = Empty
	}

	s.LastMove = m
	s.Turn = opponent
}

// resolveCaptures removes the opponent pieces taken by a piece of color that
// just arrived at (r, c) and returns how many were removed.
func (s *State) resolveCaptures(r, c int, color Color) int {
	return s.custodialCaptures(r, c, color) + s.eliminateGroups(color.Opponent())
}

// custodialCaptures removes contiguous opponent lines bracketed between (r, c)
// and another piece of color.
func (s *State) custodialCaptures(r, c int, color Color) int {
	opponent := color.Opponent()
	removed := 0
	for _, d := range directions {
		n := 0
		rr, cc := r+d.dr, c+d.dc
		for inBounds(rr, cc) && s.Grid[rr][cc] == opponent {
			n++
			rr, cc = rr+d.dr, cc+d.dc
		}
		if n == 0 || !inBounds(rr, cc) || s.Grid[rr][cc] != color {
			continue
		}
		for i := 1; i <= n; i++ {
			s.Grid[r+i*d.dr][c+i*d.dc] = Empty
		}
		removed += n
	}
	return removed
}

// eliminateGroups removes every 4-connected group of color with no empty
// neighbour.
func (s *State) eliminateGroups(color Color) int {
	var visited [Size][Size]bool
	removed := 0
	group := make([][2]int, 0, Size*Size)
	stack := make([][2]int, 0, Size*Size)

	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if visited[r][c] || s.Grid[r][c] != color {
				continue
			}
			group = group[:0]
			stack = append(stack[:0], [2]int{r, c})
			visited[r][c] = true
			free := false
			for len(stack) > 0 {
				cell := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				group = append(group, cell)
				for _, d := range directions {
					rr, cc := cell[0]+d.dr, cell[1]+d.dc
					if !inBounds(rr, cc) {
						continue
					}
					switch s.Grid[rr][cc] {
					case Empty:
						free = true
					case color:
						if !visited[rr][cc] {
							visited[rr][cc] = true
							stack = append(stack, [2]int{rr, cc})
						}
					}
				}
			}
			if free {
				continue
			}
			for _, cell := range group {
				s.Grid[cell[0]][cell[1]] = Empty
			}
			removed += len(group)
		}
	}
	return removed
}

// LegalMoves lists every legal move for color in a fixed order: board cells
// row by row, then up, down, left and right, nearest square first.
func (s State) LegalMoves(color Color) []Move {
	moves := make([]Move, 0, 64)
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if s.Grid[r][c] != color {
				continue
			}
			for _, d := range directions {
				for rr, cc := r+d.dr, c+d.dc; inBounds(rr, cc) && s.Grid[rr][cc] == Empty; rr, cc = rr+d.dr, cc+d.dc {
					m := Move{R1: r, C1: c, R2: rr, C2: cc}
					if !s.suicidal(m, color) {
						moves = append(moves, m)
					}
				}
			}
		}
	}
	return moves
}

// Winner returns the side that has won, or Empty while the game goes on. The
// side that just moved wins on reaching WinCaptures; otherwise the side to
// move wins if its lead survived the opponent's reply.
func (s State) Winner() Color {
	mover := s.Turn.Opponent()
	if mover != Empty && s.Captures[mover] >= WinCaptures {
		return mover
	}
	if s.PendingLeader != Empty && s.PendingLeader == s.Turn {
		return s.Turn
	}
	return Empty
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
