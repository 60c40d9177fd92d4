package gamemaster

import (
	"errors"
	"fmt"
	"hasami/game"
	"hasami/meta"
)

var ErrGameOver = errors.New("game is over - no moves allowed")

type Reason string

const (
	ReasonNone       Reason = ""
	ReasonCaptures   Reason = "captures"
	ReasonMargin     Reason = "margin"
	ReasonNoMoves    Reason = "no legal moves"
	ReasonIllegal    Reason = "illegal move"
	ReasonDisconnect Reason = "disconnected"
	ReasonMaxTurns   Reason = "max turns"
)

// Outcome of a finished game. Winner is Empty on a draw.
type Outcome struct {
	Winner game.Color
	Reason Reason
}

// GameMaster referees a single game: it holds the authoritative state,
// validates every move against it and decides how the game ends.
type GameMaster struct {
	state    game.State
	maxTurns int
	moves    []game.Move
	over     bool
	outcome  Outcome
}

type Option func(gm *GameMaster)

func WithMaxTurns(turns int) Option {
	return func(gm *GameMaster) {
		gm.maxTurns = turns
	}
}

// WithState starts the game from a given position instead of the opening.
func WithState(state game.State) Option {
	return func(gm *GameMaster) {
		gm.state = state
	}
}

func NewGameMaster(options ...Option) *GameMaster {
	gm := &GameMaster{
		// Default values
		state:    game.NewGame(),
		maxTurns: meta.MAX_TURNS,
	}
	for _, option := range options {
		option(gm)
	}
	gm.settle()
	return gm
}

// State returns a copy of the current position.
func (gm *GameMaster) State() game.State {
	return gm.state
}

func (gm *GameMaster) Turn() game.Color {
	return gm.state.Turn
}

func (gm *GameMaster) Over() bool {
	return gm.over
}

func (gm *GameMaster) Outcome() Outcome {
	return gm.outcome
}

// Moves returns the moves played so far.
func (gm *GameMaster) Moves() []game.Move {
	return append([]game.Move(nil), gm.moves...)
}

// Play decodes a move token from the side to move and plays it. A malformed
// token loses the game like an illegal move.
func (gm *GameMaster) Play(token string) error {
	if gm.over {
		return ErrGameOver
	}
	move, err := game.ParseMove(token)
	if err != nil {
		gm.end(gm.state.Turn.Opponent(), ReasonIllegal)
		return fmt.Errorf("%s forfeits: %w", gm.state.Turn, err)
	}
	return gm.PlayMove(move)
}

// PlayMove plays move for the side to move. An illegal move ends the game
// with the offender losing.
func (gm *GameMaster) PlayMove(move game.Move) error {
	if gm.over {
		return ErrGameOver
	}
	mover := gm.state.Turn
	if err := gm.state.Apply(move, mover); err != nil {
		gm.end(mover.Opponent(), ReasonIllegal)
		return fmt.Errorf("%s forfeits: %w", mover, err)
	}
	gm.moves = append(gm.moves, move)
	gm.settle()
	return nil
}

// Forfeit ends the game with color losing, e.g. when its player stops
// responding.
func (gm *GameMaster) Forfeit(color game.Color, reason Reason) {
	if gm.over {
		return
	}
	gm.end(color.Opponent(), reason)
}

// settle ends the game if the current position is decided.
func (gm *GameMaster) settle() {
	if winner := gm.state.Winner(); winner != game.Empty {
		reason := ReasonMargin
		if gm.state.Captures[winner] >= game.WinCaptures {
			reason = ReasonCaptures
		}
		gm.end(winner, reason)
		return
	}
	if gm.maxTurns > 0 && len(gm.moves) >= gm.maxTurns {
		gm.end(game.Empty, ReasonMaxTurns)
		return
	}
	if len(gm.state.LegalMoves(gm.state.Turn)) == 0 {
		gm.end(gm.state.Turn.Opponent(), ReasonNoMoves)
	}
}

func (gm *GameMaster) end(winner game.Color, reason Reason) {
	gm.over = true
	gm.outcome = Outcome{Winner: winner, Reason: reason}
}
