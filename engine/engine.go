package engine

import (
	"hasami/experiments/metrics"
	"hasami/game"
	"hasami/gamemaster"
	"time"

	"github.com/google/uuid"
)

type Engine interface {
	// Run plays a game till there's a winner or the turn limit is reached
	Run() (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}

// gameMetric summarises a finished game refereed by gm.
func gameMetric(gm *gamemaster.GameMaster, start time.Time) metrics.GameMetric {
	end := time.Now()
	outcome := gm.Outcome()
	return metrics.GameMetric{
		ID:             uuid.New(),
		StartingPlayer: game.Black,
		Winner:         outcome.Winner,
		Reason:         string(outcome.Reason),
		Captures:       gm.State().Captures,
		StartTime:      start,
		EndTime:        end,
		Duration:       end.Sub(start),
		TotalMoves:     len(gm.Moves()),
	}
}
