package game

// Size is the width and height of the board.
const Size = 9

const (
	WinCaptures = 5 // Captures needed for an outright win
	MarginLead  = 3 // Capture lead that makes a side the pending leader
)

type Color int8

const (
	Empty Color = iota
	Black
	White
)

func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	default:
		return Empty
	}
}

func (c Color) String() string {
	switch c {
	case Black:
		return "Black"
	case White:
		return "White"
	default:
		return "Empty"
	}
}

// Symbol is the single character used for the color on a serialized board.
func (c Color) Symbol() byte {
	switch c {
	case Black:
		return 'B'
	case White:
		return 'W'
	default:
		return '.'
	}
}

type StateHash uint64

// Evaluate scores a state from the perspective of the given color. Any win for
// perspective must score above every undecided state and any loss below.
type Evaluate func(state State, perspective Color) float64
