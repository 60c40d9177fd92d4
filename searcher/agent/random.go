package agent

import (
	"hasami/experiments/metrics"
	"hasami/game"
	"hasami/searcher"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	name string
	rng  *rand.Rand
}

// NewRandomAgent returns an agent that plays a uniformly random legal move.
func NewRandomAgent(name string, seed uint64) Agent {
	return &randomAgent{
		name: name,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

func (a *randomAgent) Name() string {
	return a.name
}

func (a *randomAgent) Reset() {}

func (a *randomAgent) FindMove(state game.State) (game.Move, metrics.SearchMetric, error) {
	moves := state.LegalMoves(state.Turn)
	if len(moves) == 0 {
		return game.NoMove, metrics.SearchMetric{}, searcher.ErrNoLegalMoves
	}
	return moves[a.rng.Intn(len(moves))], metrics.SearchMetric{}, nil
}
