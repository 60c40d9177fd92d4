package searcher

import (
	"hasami/game"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKillerMoves(t *testing.T) {
	a := game.Move{R1: 0, C1: 0, R2: 1, C2: 0}
	b := game.Move{R1: 0, C1: 1, R2: 1, C2: 1}
	c := game.Move{R1: 0, C1: 2, R2: 1, C2: 2}

	t.Run("keeping distinct moves per ply", func(t *testing.T) {
		k := NewKillerMoves()
		k.Add(2, a)
		k.Add(2, a)
		k.Add(2, b)

		require.Equal(t, []game.Move{a, b}, k.At(2), "Duplicates should not be stored twice")
		require.True(t, k.Is(2, a))
		require.False(t, k.Is(1, a), "Killers are specific to a ply")
		require.False(t, k.Is(7, a), "Unseen plies have no killers")
	})

	t.Run("evicting the oldest move", func(t *testing.T) {
		k := NewKillerMoves()
		k.Add(0, a)
		k.Add(0, b)
		k.Add(0, c)

		require.Equal(t, []game.Move{b, c}, k.At(0))
		require.False(t, k.Is(0, a))
	})
}

func TestHistoryTable(t *testing.T) {
	move := game.Move{R1: 0, C1: 0, R2: 1, C2: 0}
	h := HistoryTable{}
	h.Add(move, 3)
	h.Add(move, 2)

	require.Equal(t, 13, h[move], "History should accumulate depth squared")
	h.Clear()
	require.Zero(t, h[move])
}

func TestExpand(t *testing.T) {
	s, err := game.ParseBoard([]string{
		"...B.....",
		".........",
		".BW......",
		".........",
		".........",
		".........",
		".........",
		".........",
		"........W",
	})
	require.NoError(t, err)
	capture := game.Move{R1: 0, C1: 3, R2: 2, C2: 3}
	quiet := game.Move{R1: 2, C1: 1, R2: 1, C2: 1}
	killer := game.Move{R1: 0, C1: 3, R2: 0, C2: 4}

	a := NewAlphaBeta()
	a.killers.Add(1, killer)
	moves := s.LegalMoves(game.Black)

	t.Run("ordering the table move first", func(t *testing.T) {
		ordered := a.expand(s, moves, quiet, 1)
		require.Len(t, ordered, len(moves))
		require.Equal(t, quiet, ordered[0].move)
		require.Equal(t, killer, ordered[1].move, "Killers should follow the table move")
		require.Equal(t, capture, ordered[2].move, "Captures should precede quiet moves")
		require.Equal(t, 1, ordered[2].gain)
	})

	t.Run("ordering without a table move", func(t *testing.T) {
		ordered := a.expand(s, moves, game.NoMove, 1)
		require.Equal(t, killer, ordered[0].move)
		require.Equal(t, capture, ordered[1].move)
		require.Equal(t, s.Play(capture), ordered[1].child, "Children should be played from the parent")
	})

	t.Run("preferring central and forward moves", func(t *testing.T) {
		ordered := a.expand(game.NewGame(), game.NewGame().LegalMoves(game.Black), game.NoMove, 5)
		require.Equal(t, game.Move{R1: 0, C1: 4, R2: 4, C2: 4}, ordered[0].move, "Centre square should rank first")
	})
}

func TestTranspositionTable(t *testing.T) {
	t.Run("clearing once the cap is reached", func(t *testing.T) {
		table := NewTranspositionTable(2)
		table.Store(1, TTEntry{Depth: 1})
		table.Store(2, TTEntry{Depth: 1})
		table.Store(2, TTEntry{Depth: 2})
		require.Equal(t, 2, table.Len(), "Overwriting a key should not clear")

		table.Store(3, TTEntry{Depth: 1})
		require.Equal(t, 1, table.Len(), "A new key past the cap should clear the table")
		_, ok := table.Probe(1)
		require.False(t, ok)
		entry, ok := table.Probe(3)
		require.True(t, ok)
		require.Equal(t, 1, entry.Depth)
	})

	t.Run("storing win scores relative to the node", func(t *testing.T) {
		win := game.WinScore - 5
		require.Equal(t, game.WinScore-2, scoreToTT(win, 3))
		require.Equal(t, win, scoreFromTT(scoreToTT(win, 3), 3))
		require.Equal(t, -(game.WinScore - 4), scoreFromTT(scoreToTT(-(game.WinScore-1), 0), 3),
			"A loss one ply from a node is four plies from a root three plies above it")
		require.Equal(t, 42.0, scoreToTT(42, 6), "Ordinary scores are stored unchanged")
	})
}
