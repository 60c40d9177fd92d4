package engine

import (
	"errors"
	"fmt"
	"hasami/communication"
	"hasami/experiments/metrics"
	"hasami/game"
	"hasami/gamemaster"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ErrNotOpening is returned by Run for a game master that does not start from
// the opening. Players always set up the opening themselves.
var ErrNotOpening = errors.New("arena games must start from the opening position")

// Arena referees a game between two players speaking the line protocol.
type Arena struct {
	players [3]communication.Communicator // Indexed by color
	names   [3]string
	options []gamemaster.Option
}

func NewArena(black, white communication.Communicator, options ...gamemaster.Option) *Arena {
	a := &Arena{options: options}
	a.players[game.Black] = black
	a.players[game.White] = white
	return a
}

// Name is the name a player gave during the handshake.
func (a *Arena) Name(color game.Color) string {
	return a.names[color]
}

// Run plays one game and closes both players. A player that cannot be reached
// loses; only a failure of both is an error.
func (a *Arena) Run() (metrics.GameMetric, []metrics.MoveMetric, error) {
	defer a.close()

	gm := gamemaster.NewGameMaster(a.options...)
	if gm.State() != game.NewGame() {
		return metrics.GameMetric{}, nil, ErrNotOpening
	}
	start := time.Now()

	if err := a.handshake(gm); err != nil {
		return metrics.GameMetric{}, nil, err
	}
	log.Info().Msgf("%s (Black) vs %s (White)", a.names[game.Black], a.names[game.White])

	var moveMetrics []metrics.MoveMetric
	// The first mover answers its color assignment with a move, everyone else
	// answers the opponent's last move.
	first := gm.Turn()
	request := first.String()
	if !gm.Over() {
		second := first.Opponent()
		if err := a.players[second].Send(second.String()); err != nil {
			gm.Forfeit(second, gamemaster.ReasonDisconnect)
		}
	}
	for step := 1; !gm.Over(); step++ {
		color := gm.Turn()
		moveStart := time.Now()
		line, err := a.ask(color, request)
		if err != nil {
			log.Warn().Msgf("%s disconnected: %v", a.names[color], err)
			gm.Forfeit(color, gamemaster.ReasonDisconnect)
			break
		}
		if err := gm.Play(line); err != nil {
			log.Warn().Msgf("%s failed to move: %v", a.names[color], err)
			break
		}
		move := gm.State().LastMove
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       color,
			Move:         move,
			SearchMetric: metrics.SearchMetric{Duration: time.Since(moveStart)},
		})
		log.Debug().Msgf("%d. %s %s\n%s", step, color, move, gm.State().Serialize())
		request = move.String()
	}

	a.announce(gm.Outcome().Winner)
	gameMetric := gameMetric(gm, start)
	log.Info().Msgf("result: winner %s (%s) after %d moves", gameMetric.Winner, gameMetric.Reason, gameMetric.TotalMoves)
	return gameMetric, moveMetrics, nil
}

func (a *Arena) ask(color game.Color, line string) (string, error) {
	if err := a.players[color].Send(line); err != nil {
		return "", err
	}
	return a.players[color].Receive()
}

// handshake asks both players for their names concurrently. A silent player
// forfeits.
func (a *Arena) handshake(gm *gamemaster.GameMaster) error {
	var g errgroup.Group
	var failed [3]error
	for _, color := range []game.Color{game.Black, game.White} {
		g.Go(func() error {
			name, err := a.ask(color, communication.NameRequestLine)
			if err != nil {
				failed[color] = err
				return fmt.Errorf("%s handshake: %w", color, err)
			}
			a.names[color] = name
			return nil
		})
	}
	err := g.Wait()
	if failed[game.Black] != nil && failed[game.White] != nil {
		return err
	}
	for _, color := range []game.Color{game.Black, game.White} {
		if failed[color] != nil {
			log.Warn().Msgf("%v", failed[color])
			gm.Forfeit(color, gamemaster.ReasonDisconnect)
		}
	}
	return nil
}

// announce sends each player its result. Players that already left are
// ignored.
func (a *Arena) announce(winner game.Color) {
	var g errgroup.Group
	for _, color := range []game.Color{game.Black, game.White} {
		g.Go(func() error {
			msg := communication.Message{Kind: communication.GameOver, Result: communication.ResultFor(winner, color)}
			return a.players[color].Send(msg.String())
		})
	}
	if err := g.Wait(); err != nil {
		log.Debug().Msgf("could not announce the result: %v", err)
	}
}

func (a *Arena) close() {
	for _, color := range []game.Color{game.Black, game.White} {
		if err := a.players[color].Close(); err != nil {
			log.Debug().Msgf("closing %s: %v", a.names[color], err)
		}
	}
}
