package player

import (
	"hasami/communication"
	"hasami/game"
	"hasami/searcher/agent"
	"testing"

	"github.com/stretchr/testify/require"
)

/*
Behaviours to test:
- the player answers the name request with its agent's name
- as Black it moves as soon as its color is assigned
- as White it applies the opponent's move and answers with a legal move
- it returns the announced result on game over
- illegal opponent moves and moves before a color assignment end the session with an error
- unknown lines are ignored
*/

type outcome struct {
	result communication.Result
	err    error
}

// startPlayer runs a random player in the background and returns the arena
// side of the session.
func startPlayer(t *testing.T) (communication.Communicator, <-chan outcome) {
	t.Helper()
	arena, side := communication.NewPipe()
	p := NewPlayer(agent.NewRandomAgent("randy", 1), side)

	done := make(chan outcome, 1)
	go func() {
		result, err := p.Run()
		side.Close()
		done <- outcome{result, err}
	}()
	t.Cleanup(func() { arena.Close() })
	return arena, done
}

func exchange(t *testing.T, arena communication.Communicator, line string) string {
	t.Helper()
	require.NoError(t, arena.Send(line))
	reply, err := arena.Receive()
	require.NoError(t, err)
	return reply
}

func TestPlayerSession(t *testing.T) {
	t.Run("playing Black", func(t *testing.T) {
		arena, done := startPlayer(t)

		require.Equal(t, "randy", exchange(t, arena, "OK?"))

		state := game.NewGame()
		first, err := game.ParseMove(exchange(t, arena, "Black"))
		require.NoError(t, err)
		require.NoError(t, state.Apply(first, game.Black), "Black's opening move should be legal")

		reply := state.LegalMoves(game.White)[0]
		require.NoError(t, state.Apply(reply, game.White))
		second, err := game.ParseMove(exchange(t, arena, reply.String()))
		require.NoError(t, err)
		require.NoError(t, state.Apply(second, game.Black))

		require.NoError(t, arena.Send("GAME_OVER WIN"))
		out := <-done
		require.NoError(t, out.err)
		require.Equal(t, communication.Win, out.result)
	})

	t.Run("playing White", func(t *testing.T) {
		arena, done := startPlayer(t)

		require.NoError(t, arena.Send("White"))
		state := game.NewGame()
		require.NoError(t, state.Apply(game.Move{R1: 0, C1: 8, R2: 2, C2: 8}, game.Black))

		move, err := game.ParseMove(exchange(t, arena, "0828"))
		require.NoError(t, err)
		require.NoError(t, state.Apply(move, game.White), "White's answer should be legal")

		require.NoError(t, arena.Send("GAME_OVER DRAW"))
		require.Equal(t, communication.Draw, (<-done).result)
	})

	t.Run("ignoring unknown lines", func(t *testing.T) {
		arena, done := startPlayer(t)

		require.NoError(t, arena.Send("BOARD"))
		require.Equal(t, "randy", exchange(t, arena, "OK?"))
		require.NoError(t, arena.Send("GAME_OVER LOSS"))
		require.Equal(t, communication.Loss, (<-done).result)
	})

	t.Run("rejecting an illegal opponent move", func(t *testing.T) {
		arena, done := startPlayer(t)

		require.NoError(t, arena.Send("White"))
		require.NoError(t, arena.Send("4455"))
		require.ErrorIs(t, (<-done).err, game.ErrIllegalMove)
	})

	t.Run("rejecting a move before the color", func(t *testing.T) {
		arena, done := startPlayer(t)

		require.NoError(t, arena.Send("0828"))
		require.ErrorIs(t, (<-done).err, ErrNoColor)
	})

	t.Run("failing when the arena hangs up", func(t *testing.T) {
		arena, done := startPlayer(t)

		require.NoError(t, arena.Close())
		require.Error(t, (<-done).err)
	})
}
