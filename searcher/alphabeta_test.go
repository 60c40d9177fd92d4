package searcher

import (
	"hasami/experiments/metrics"
	"hasami/game"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"
)

/*
alpha-beta:
- equivalence: iterative deepening value at depth D equals plain minimax at depth D
- time budget: returns promptly with a legal move even when no iteration can finish
- terminal scoring: faster wins score higher
- late move reduction: reduced moves that look promising are searched again at full depth
- avoid list: penalised root moves lose ties and stay out of the table
- errors: no legal moves
*/

func mustBoard(t *testing.T, rows ...string) game.State {
	t.Helper()
	s, err := game.ParseBoard(rows)
	require.NoError(t, err)
	return s
}

// minimax is an unpruned reference using the same scoring as the searcher.
func minimax(s game.State, depth, ply int, evaluate game.Evaluate) float64 {
	color := s.Turn
	switch s.Winner() {
	case game.Empty:
	case color:
		return game.WinScore - float64(ply)
	default:
		return -(game.WinScore - float64(ply))
	}
	if depth == 0 {
		return evaluate(s, color)
	}
	moves := s.LegalMoves(color)
	if len(moves) == 0 {
		return -(game.WinScore - float64(ply))
	}
	best := math.Inf(-1)
	for _, move := range moves {
		best = math.Max(best, -minimax(s.Play(move), depth-1, ply+1, evaluate))
	}
	return best
}

func TestSearchMatchesMinimax(t *testing.T) {
	quiet := mustBoard(t,
		".........",
		".B.....B.",
		".........",
		".........",
		".........",
		".........",
		".........",
		".W.....W.",
		".........",
	)

	t.Run("matching minimax at depth 2", func(t *testing.T) {
		for _, evaluate := range []game.Evaluate{game.EvaluatePositional, game.EvaluateCentral} {
			a := NewAlphaBeta(WithDuration(time.Hour), WithMaxDepth(2), WithEvaluationFn(evaluate))
			result, err := a.Search(quiet)
			require.NoError(t, err)

			require.Equal(t, 2, result.Depth)
			require.Equal(t, minimax(quiet, 2, 0, evaluate), result.Value, "Pruning should not change the root value")
			require.Equal(t, result.Value, -minimax(quiet.Play(result.Move), 1, 1, evaluate),
				"Chosen move should achieve the root value")
		}
	})

	t.Run("matching minimax at depth 3 without reductions", func(t *testing.T) {
		evaluate := game.EvaluateCentral
		a := NewAlphaBeta(WithDuration(time.Hour), WithMaxDepth(3), WithEvaluationFn(evaluate), WithLateMoveReduction(false))
		result, err := a.Search(quiet)
		require.NoError(t, err)

		require.Equal(t, 3, result.Depth)
		require.Equal(t, minimax(quiet, 3, 0, evaluate), result.Value)
		require.Equal(t, result.Value, -minimax(quiet.Play(result.Move), 2, 1, evaluate))
	})

	t.Run("matching minimax from the starting position", func(t *testing.T) {
		start := game.NewGame()
		a := NewAlphaBeta(WithDuration(time.Hour), WithMaxDepth(2))
		result, err := a.Search(start)
		require.NoError(t, err)
		require.Equal(t, minimax(start, 2, 0, game.EvaluatePositional), result.Value)
	})
}

func TestSearchTimeBudget(t *testing.T) {
	state := game.NewGame()
	budget := time.Millisecond
	a := NewAlphaBeta(WithDuration(budget), WithMetrics())

	start := time.Now()
	result, err := a.Search(state)
	elapsed := time.Since(start)

	require.NoError(t, err)
	require.Contains(t, state.LegalMoves(state.Turn), result.Move, "Search should always return a legal move")
	require.Less(t, elapsed, budget+100*time.Millisecond, "Search should stop shortly after the budget")
	require.Less(t, result.Depth, MaxDepth, "A tiny budget should not reach full depth")
}

func TestSearchTerminal(t *testing.T) {
	position := func(t *testing.T) game.State {
		s := mustBoard(t,
			"...B.....",
			".........",
			".BW......",
			".........",
			".........",
			".........",
			".........",
			".........",
			"........W",
		)
		s.Captures[game.Black] = game.WinCaptures - 1
		return s
	}

	t.Run("taking an immediate win", func(t *testing.T) {
		a := NewAlphaBeta(WithDuration(time.Hour), WithMaxDepth(3), WithMetrics())
		result, err := a.Search(position(t))
		require.NoError(t, err)

		require.Equal(t, game.Move{R1: 0, C1: 3, R2: 2, C2: 3}, result.Move)
		require.Equal(t, game.WinScore-1, result.Value, "Win in one ply should score WinScore-1")
		require.Equal(t, result.Depth, result.Metric.Depth)
		require.Positive(t, result.Metric.Nodes)
	})

	t.Run("returning an error without legal moves", func(t *testing.T) {
		s := mustBoard(t,
			".........",
			".........",
			".........",
			".........",
			"....W....",
			".........",
			".........",
			".........",
			".........",
		)
		_, err := NewAlphaBeta().Search(s)
		require.ErrorIs(t, err, ErrNoLegalMoves)
	})
}

func TestSearchAvoid(t *testing.T) {
	state := game.NewGame()
	options := []Option{WithDuration(time.Hour), WithMaxDepth(1), WithEvaluationFn(game.EvaluateMaterial)}

	first, err := NewAlphaBeta(options...).Search(state)
	require.NoError(t, err)

	second, err := NewAlphaBeta(options...).Search(state, first.Move)
	require.NoError(t, err)

	require.NotEqual(t, first.Move, second.Move, "A penalised move should lose a tie")
	require.Contains(t, state.LegalMoves(state.Turn), second.Move)

	t.Run("keeping penalised values out of the table", func(t *testing.T) {
		a := NewAlphaBeta(options...)
		_, err := a.Search(state, first.Move)
		require.NoError(t, err)
		_, ok := a.table.Probe(state.Hash())
		require.False(t, ok, "The root value carries the penalty")

		_, err = a.Search(state)
		require.NoError(t, err)
		_, ok = a.table.Probe(state.Hash())
		require.True(t, ok, "An unpenalised root should be stored")
	})
}

// searchFixedDepth runs one search at depth on a cold table, so the root moves
// keep their static order.
func searchFixedDepth(a *AlphaBeta, s game.State, depth int) (float64, game.Move, metrics.SearchMetric) {
	a.metrics.Start()
	a.deadline = time.Now().Add(time.Hour)
	a.aborted = false
	value, move := a.negamax(s, depth, 0, math.Inf(-1), math.Inf(1), nil)
	return value, move, a.metrics.Complete()
}

func TestLateMoveReduction(t *testing.T) {
	// Black scores by holding (2, 0) and (6, 4) at once. Only the sideways
	// move 2420 gets there: it clears column 4 for the piece on (0, 4), and
	// White's boxed-in pieces cannot interfere. The move is ordered late.
	s := mustBoard(t,
		"....B....",
		".........",
		"....B....",
		".........",
		".........",
		".........",
		".........",
		"........W",
		".......WW",
	)
	target := game.Move{R1: 2, C1: 4, R2: 2, C2: 0}
	evaluate := func(s game.State, perspective game.Color) float64 {
		value := 0.0
		if s.Grid[2][0] == game.Black {
			value++
			if s.Grid[6][4] == game.Black {
				value += 100
			}
		}
		if perspective == game.White {
			return -value
		}
		return value
	}

	t.Run("ordering the winning move late", func(t *testing.T) {
		a := NewAlphaBeta(WithEvaluationFn(evaluate))
		candidates := a.expand(s, s.LegalMoves(game.Black), game.NoMove, 0)
		i := slices.IndexFunc(candidates, func(c candidate) bool { return c.move == target })
		require.GreaterOrEqual(t, i, LMRMinIndex, "The move should be reduced")
		require.Zero(t, candidates[i].gain)

		best := minimax(s, 3, 0, evaluate)
		found := 0
		for _, move := range s.LegalMoves(game.Black) {
			if -minimax(s.Play(move), 2, 1, evaluate) == best {
				require.Equal(t, target, move)
				found++
			}
		}
		require.Equal(t, 1, found, "Exactly one move should reach the best value")
	})

	t.Run("searching promising moves again at full depth", func(t *testing.T) {
		reduced := NewAlphaBeta(WithEvaluationFn(evaluate), WithMetrics())
		value, move, reducedMetric := searchFixedDepth(reduced, s, 3)
		require.Equal(t, target, move)
		require.Equal(t, 101.0, value)
		require.Equal(t, minimax(s, 3, 0, evaluate), value, "Reductions should not lose the best line")

		full := NewAlphaBeta(WithEvaluationFn(evaluate), WithMetrics(), WithLateMoveReduction(false))
		fullValue, fullMove, fullMetric := searchFixedDepth(full, s, 3)
		require.Equal(t, move, fullMove)
		require.Equal(t, value, fullValue)
		require.Less(t, reducedMetric.Nodes, fullMetric.Nodes, "Reductions should visit fewer nodes")
	})
}

func TestReset(t *testing.T) {
	a := NewAlphaBeta(WithDuration(time.Hour), WithMaxDepth(3))
	_, err := a.Search(game.NewGame())
	require.NoError(t, err)
	require.Positive(t, a.table.Len(), "Search should fill the table")

	a.killers.Add(0, game.Move{R1: 0, C1: 0, R2: 1, C2: 0})
	a.history.Add(game.Move{R1: 0, C1: 0, R2: 1, C2: 0}, 2)
	a.Reset()

	require.Zero(t, a.table.Len())
	require.Empty(t, a.killers.At(0))
	require.Empty(t, a.history)
}
