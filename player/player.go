package player

import (
	"errors"
	"fmt"
	"hasami/communication"
	"hasami/game"
	"hasami/searcher/agent"

	"github.com/rs/zerolog/log"
)

var ErrNoColor = errors.New("move received before a color was assigned")

// Player plays one game for an agent over a communicator.
type Player struct {
	Agent        agent.Agent
	Communicator communication.Communicator
	state        game.State
	color        game.Color
}

// NewPlayer creates a new Player instance.
func NewPlayer(a agent.Agent, comm communication.Communicator) *Player {
	return &Player{
		Agent:        a,
		Communicator: comm,
	}
}

// Color is the side assigned by the arena, Empty before the assignment.
func (p *Player) Color() game.Color {
	return p.color
}

// State is the player's copy of the game.
func (p *Player) State() game.State {
	return p.state
}

// Run answers the arena until it announces the end of the game and returns
// the announced result.
func (p *Player) Run() (communication.Result, error) {
	for {
		line, err := p.Communicator.Receive()
		if err != nil {
			return "", fmt.Errorf("session ended before game over: %w", err)
		}
		msg, err := communication.ParseMessage(line)
		if err != nil {
			log.Warn().Msgf("%s ignores %q: %v", p.Agent.Name(), line, err)
			continue
		}

		switch msg.Kind {
		case communication.NameRequest:
			err = p.Communicator.Send(p.Agent.Name())
		case communication.ColorAssignment:
			err = p.start(msg.Color)
		case communication.MoveToken:
			err = p.answer(msg.Move)
		case communication.GameOver:
			log.Info().Msgf("%s playing %s: game over with %s after %d captures to %d",
				p.Agent.Name(), p.color, msg.Result, p.state.Captures[p.color], p.state.Captures[p.color.Opponent()])
			return msg.Result, nil
		}
		if err != nil {
			return "", err
		}
	}
}

func (p *Player) start(color game.Color) error {
	p.color = color
	p.state = game.NewGame()
	p.Agent.Reset()
	log.Info().Msgf("%s plays %s", p.Agent.Name(), color)
	if color == game.Black {
		return p.move()
	}
	return nil
}

// answer applies the opponent's move and replies with ours.
func (p *Player) answer(opponent game.Move) error {
	if p.color == game.Empty {
		return ErrNoColor
	}
	if err := p.state.Apply(opponent, p.color.Opponent()); err != nil {
		return fmt.Errorf("opponent move %s: %w", opponent, err)
	}
	return p.move()
}

func (p *Player) move() error {
	move, _, err := p.Agent.FindMove(p.state)
	if err != nil {
		return fmt.Errorf("%s found no move: %w", p.Agent.Name(), err)
	}
	if err := p.state.Apply(move, p.color); err != nil {
		return fmt.Errorf("%s chose %s: %w", p.Agent.Name(), move, err)
	}
	return p.Communicator.Send(move.String())
}
