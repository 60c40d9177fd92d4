package agent

import (
	"hasami/experiments/metrics"
	"hasami/game"
	"hasami/searcher"

	"github.com/rs/zerolog/log"
)

// Own moves remembered to detect a piece shuffling back and forth
const recentMoves = 4

type searchAgent struct {
	name     string
	searcher searcher.Searcher
	recent   []game.Move
	seen     map[game.StateHash]int
}

// NewSearchAgent returns an agent that plays the searcher's choice while
// steering away from positions it has already seen and from undoing its own
// recent moves.
func NewSearchAgent(name string, s searcher.Searcher) Agent {
	return &searchAgent{
		name:     name,
		searcher: s,
		seen:     make(map[game.StateHash]int),
	}
}

func (a *searchAgent) Name() string {
	return a.name
}

func (a *searchAgent) Reset() {
	a.searcher.Reset()
	a.recent = a.recent[:0]
	clear(a.seen)
}

func (a *searchAgent) FindMove(state game.State) (game.Move, metrics.SearchMetric, error) {
	a.seen[state.Hash()]++

	avoid := a.avoid(state)
	result, err := a.searcher.Search(state, avoid...)
	if err != nil {
		return game.NoMove, metrics.SearchMetric{}, err
	}
	log.Debug().Msgf("%s plays %s at depth %d (value %.1f, %d moves avoided)",
		a.name, result.Move, result.Depth, result.Value, len(avoid))

	a.seen[state.Play(result.Move).Hash()]++
	a.recent = append(a.recent, result.Move)
	if len(a.recent) > recentMoves {
		a.recent = a.recent[1:]
	}
	return result.Move, result.Metric, nil
}

// avoid lists legal moves that reverse a recent move or return to a position
// seen before.
func (a *searchAgent) avoid(state game.State) []game.Move {
	var avoid []game.Move
	for _, move := range state.LegalMoves(state.Turn) {
		if a.reverses(move) || a.seen[state.Play(move).Hash()] > 0 {
			avoid = append(avoid, move)
		}
	}
	return avoid
}

func (a *searchAgent) reverses(move game.Move) bool {
	for _, prev := range a.recent {
		if prev.R1 == move.R2 && prev.C1 == move.C2 && prev.R2 == move.R1 && prev.C2 == move.C1 {
			return true
		}
	}
	return false
}
