package communication

import (
	"errors"
	"fmt"
	"hasami/game"
	"strings"
)

const (
	NameRequestLine = "OK?"
	gameOverPrefix  = "GAME_OVER"
)

var ErrUnknownMessage = errors.New("unknown message")

type Kind int

const (
	NameRequest Kind = iota // Arena asks for the player's name
	ColorAssignment
	MoveToken // Opponent's last move, also the request to move
	GameOver
)

type Result string

const (
	Win  Result = "WIN"
	Loss Result = "LOSS"
	Draw Result = "DRAW"
)

// ResultFor reports the result of a game won by winner from the point of view
// of color. An empty winner is a draw.
func ResultFor(winner, color game.Color) Result {
	switch winner {
	case game.Empty:
		return Draw
	case color:
		return Win
	default:
		return Loss
	}
}

type Message struct {
	Kind   Kind
	Color  game.Color // ColorAssignment only
	Move   game.Move  // MoveToken only
	Result Result     // GameOver only
}

func (m Message) String() string {
	switch m.Kind {
	case NameRequest:
		return NameRequestLine
	case ColorAssignment:
		return m.Color.String()
	case MoveToken:
		return m.Move.String()
	case GameOver:
		return fmt.Sprintf("%s %s", gameOverPrefix, m.Result)
	default:
		return ""
	}
}

// ParseMessage decodes one line sent by the arena.
func ParseMessage(line string) (Message, error) {
	line = strings.TrimSpace(line)
	switch {
	case line == NameRequestLine:
		return Message{Kind: NameRequest}, nil
	case line == game.Black.String():
		return Message{Kind: ColorAssignment, Color: game.Black}, nil
	case line == game.White.String():
		return Message{Kind: ColorAssignment, Color: game.White}, nil
	case strings.HasPrefix(line, gameOverPrefix):
		result := Result(strings.TrimSpace(strings.TrimPrefix(line, gameOverPrefix)))
		switch result {
		case Win, Loss, Draw:
			return Message{Kind: GameOver, Result: result}, nil
		default:
			return Message{}, fmt.Errorf("%w: game over with result %q", ErrUnknownMessage, result)
		}
	}

	move, err := game.ParseMove(line)
	if err != nil {
		return Message{}, fmt.Errorf("%w %q: %w", ErrUnknownMessage, line, err)
	}
	return Message{Kind: MoveToken, Move: move}, nil
}
