package searcher

import (
	"errors"
	"hasami/experiments/metrics"
	"hasami/game"
	"hasami/meta"
	"time"
)

var ErrNoLegalMoves = errors.New("no legal moves")

const (
	MaxDepth        = meta.MAX_DEPTH
	TableCap        = meta.TABLE_CAP
	DefaultDuration = time.Second

	// Fractions of the time budget: no new iteration starts after the first,
	// nodes stop expanding after the second.
	IterationBudget = 0.85
	NodeBudget      = 0.95

	KillerSlots  = 2
	LMRMinIndex  = 4 // Ordered moves searched at full depth before reductions start
	LMRMinDepth  = 3
	AvoidPenalty = 50.0
)

// Scores within mateBound of game.WinScore are wins or losses measured in plies
// from the root.
const mateBound = game.WinScore - 1000

// Move ordering bonuses
const (
	ttMoveBonus      = 1e12
	killerBonus      = 1e6
	captureBonus     = 1e5
	centerWeight     = 10.0
	forwardBonus     = 100.0
	boardCenterIndex = game.Size / 2
)

type Result struct {
	Move   game.Move
	Value  float64 // From the perspective of the side to move
	Depth  int     // Deepest completed iteration, 0 on fallback
	Metric metrics.SearchMetric
}

// Searcher picks a move for the side to move in state.
type Searcher interface {
	Search(state game.State, avoid ...game.Move) (Result, error)
	Reset()
}
