package game

import (
	"errors"
	"fmt"
)

var ErrMalformedToken = errors.New("malformed move token")

// Move slides the piece at (R1, C1) to (R2, C2).
type Move struct {
	R1, C1 int
	R2, C2 int
}

// NoMove is the zero move. It never passes legality since it goes nowhere.
var NoMove = Move{}

// ParseMove decodes a four digit token such as "1234" (row 1, col 2 to row 3, col 4).
func ParseMove(token string) (Move, error) {
	if len(token) != 4 {
		return NoMove, fmt.Errorf("%w: %q must have 4 digits", ErrMalformedToken, token)
	}
	var digits [4]int
	for i := 0; i < len(token); i++ {
		ch := token[i]
		if ch < '0' || ch >= '0'+Size {
			return NoMove, fmt.Errorf("%w: %q has a digit outside 0-%d", ErrMalformedToken, token, Size-1)
		}
		digits[i] = int(ch - '0')
	}
	return Move{R1: digits[0], C1: digits[1], R2: digits[2], C2: digits[3]}, nil
}

func (m Move) String() string {
	return fmt.Sprintf("%d%d%d%d", m.R1, m.C1, m.R2, m.C2)
}
