package engine

import (
	"errors"
	"fmt"
	"hasami/experiments/metrics"
	"hasami/game"
	"hasami/gamemaster"
	"hasami/searcher/agent"
	"time"

	"github.com/rs/zerolog/log"
)

type localEngine struct {
	agents  [3]agent.Agent // Indexed by color
	options []gamemaster.Option
}

// NewLocalEngine plays black against white in-process.
func NewLocalEngine(black, white agent.Agent, options ...gamemaster.Option) Engine {
	e := &localEngine{options: options}
	e.agents[game.Black] = black
	e.agents[game.White] = white
	return e
}

// Run executes the entire game loop until the game master ends the game.
func (e *localEngine) Run() (metrics.GameMetric, []metrics.MoveMetric, error) {
	for _, a := range e.agents[game.Black:] {
		a.Reset()
	}
	gm := gamemaster.NewGameMaster(e.options...)
	start := time.Now()
	log.Info().Msgf("%s (Black) vs %s (White)", e.agents[game.Black].Name(), e.agents[game.White].Name())

	var moveMetrics []metrics.MoveMetric
	for step := 1; !gm.Over(); step++ {
		state := gm.State()
		a := e.agents[state.Turn]

		move, searchMetric, err := a.FindMove(state)
		if err != nil {
			return metrics.GameMetric{}, nil, fmt.Errorf("%s failed at move %d: %w", a.Name(), step, err)
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       state.Turn,
			Move:         move,
			SearchMetric: searchMetric,
		})

		if err := gm.PlayMove(move); err != nil {
			if !errors.Is(err, game.ErrIllegalMove) {
				return metrics.GameMetric{}, nil, err
			}
			log.Warn().Msgf("%s played an illegal move: %v", a.Name(), err)
		}
	}

	gameMetric := gameMetric(gm, start)
	log.Info().Msgf("game over after %d moves: winner %s (%s), captures %d-%d",
		gameMetric.TotalMoves, gameMetric.Winner, gameMetric.Reason,
		gameMetric.Captures[game.Black], gameMetric.Captures[game.White])
	return gameMetric, moveMetrics, nil
}
