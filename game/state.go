package game

import (
	"fmt"
	"strings"
)

type Board [Size][Size]Color

// State is the full position of a game. It only holds arrays and scalars, so
// assigning a State produces an independent copy.
type State struct {
	Grid          Board
	Captures      [3]int // Opponent pieces removed, indexed by the capturing color
	PendingLeader Color  // Side holding an unanswered lead of MarginLead, Empty if none
	Turn          Color  // Color to move next
	LastMove      Move   // Most recent move, NoMove before the first one
}

// NewGame returns the starting position: Black fills row 0, White fills the
// last row and Black moves first.
func NewGame() State {
	s := State{Turn: Black}
	for c := 0; c < Size; c++ {
		s.Grid[0][c] = Black
		s.Grid[Size-1][c] = White
	}
	return s
}

// ParseBoard builds a position from Size rows of '.', 'B' and 'W'. Capture
// counters start at zero and Black is to move.
func ParseBoard(rows []string) (State, error) {
	s := State{Turn: Black}
	if len(rows) != Size {
		return s, fmt.Errorf("board needs %d rows, got %d", Size, len(rows))
	}
	for r, row := range rows {
		if len(row) != Size {
			return s, fmt.Errorf("row %d needs %d cells, got %d", r, Size, len(row))
		}
		for c := 0; c < Size; c++ {
			switch row[c] {
			case '.':
				s.Grid[r][c] = Empty
			case 'B':
				s.Grid[r][c] = Black
			case 'W':
				s.Grid[r][c] = White
			default:
				return s, fmt.Errorf("row %d has unknown cell %q", r, row[c])
			}
		}
	}
	return s, nil
}

// Pieces counts the pieces of color on the board.
func (s State) Pieces(color Color) int {
	count := 0
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if s.Grid[r][c] == color {
				count++
			}
		}
	}
	return count
}

// Serialize renders the board with column labels above and below and row
// labels on both sides.
func (s State) Serialize() string {
	var sb strings.Builder
	header := "   "
	for c := 0; c < Size; c++ {
		header += fmt.Sprintf("%d ", c)
	}
	header = strings.TrimRight(header, " ") + "\n"

	sb.WriteString(header)
	for r := 0; r < Size; r++ {
		fmt.Fprintf(&sb, "%d  ", r)
		for c := 0; c < Size; c++ {
			sb.WriteByte(s.Grid[r][c].Symbol())
			if c < Size-1 {
				sb.WriteByte(' ')
			}
		}
		fmt.Fprintf(&sb, "  %d\n", r)
	}
	sb.WriteString(header)
	return sb.String()
}

func (s State) String() string {
	return fmt.Sprintf("%sturn=%s captures=B:%d W:%d pending=%s",
		s.Serialize(), s.Turn, s.Captures[Black], s.Captures[White], s.PendingLeader)
}
