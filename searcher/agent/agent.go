package agent

import (
	"hasami/experiments/metrics"
	"hasami/game"
)

type Agent interface {
	Name() string
	// FindMove returns a move for the side to move and performance metrics (if collected) from the search
	FindMove(state game.State) (game.Move, metrics.SearchMetric, error)
	// Reset prepares the agent for a new game
	Reset()
}
