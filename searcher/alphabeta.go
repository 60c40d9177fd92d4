package searcher

import (
	"hasami/experiments/metrics"
	"hasami/game"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
)

type Option func(a *AlphaBeta)

// AlphaBeta is an iterative deepening negamax searcher with a transposition
// table, killer and history move ordering and late move reductions. It is not
// safe for concurrent use; give every player its own instance.
type AlphaBeta struct {
	duration time.Duration
	maxDepth int
	evaluate game.Evaluate
	lmr      bool
	table    *TranspositionTable
	killers  *KillerMoves
	history  HistoryTable
	metrics  metrics.Collector
	rng      *rand.Rand

	deadline time.Time // Nodes stop expanding past this point
	aborted  bool
	rootMove game.Move // Best move of the last completed iteration
}

func WithDuration(duration time.Duration) Option {
	return func(a *AlphaBeta) {
		if duration > 0 {
			a.duration = duration
		}
	}
}

func WithMaxDepth(depth int) Option {
	return func(a *AlphaBeta) {
		if depth > 0 {
			a.maxDepth = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(a *AlphaBeta) {
		if evaluate != nil {
			a.evaluate = evaluate
		}
	}
}

func WithTableCap(entries int) Option {
	return func(a *AlphaBeta) {
		if entries > 0 {
			a.table = NewTranspositionTable(entries)
		}
	}
}

func WithLateMoveReduction(enabled bool) Option {
	return func(a *AlphaBeta) {
		a.lmr = enabled
	}
}

func WithMetrics() Option {
	return func(a *AlphaBeta) {
		a.metrics = metrics.NewCollector()
	}
}

// WithRandom seeds the generator used for the fallback move.
func WithRandom(seed uint64) Option {
	return func(a *AlphaBeta) {
		a.rng = rand.New(rand.NewSource(seed))
	}
}

func NewAlphaBeta(options ...Option) *AlphaBeta {
	a := &AlphaBeta{ // Default values
		duration: DefaultDuration,
		maxDepth: MaxDepth,
		evaluate: game.EvaluatePositional,
		lmr:      true,
		table:    NewTranspositionTable(TableCap),
		killers:  NewKillerMoves(),
		history:  HistoryTable{},
		metrics:  metrics.NewDummyCollector(),
		rng:      rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
	for _, option := range options {
		option(a)
	}
	return a
}

// Reset forgets everything learned in previous searches. Call it at the start
// of every game.
func (a *AlphaBeta) Reset() {
	a.table.Clear()
	a.killers.Clear()
	a.history.Clear()
}

// Search returns the best move for the side to move found within the time
// budget. Root moves listed in avoid are penalised, which steers the player
// away from repeating itself. Only a state with no legal move is an error.
func (a *AlphaBeta) Search(state game.State, avoid ...game.Move) (Result, error) {
	moves := state.LegalMoves(state.Turn)
	if len(moves) == 0 {
		return Result{}, ErrNoLegalMoves
	}

	start := time.Now()
	a.metrics.Start()
	a.deadline = start.Add(time.Duration(float64(a.duration) * NodeBudget))
	iterationDeadline := start.Add(time.Duration(float64(a.duration) * IterationBudget))

	result := Result{Move: game.NoMove}
	a.rootMove = game.NoMove
	for depth := 1; depth <= a.maxDepth && time.Now().Before(iterationDeadline); depth++ {
		a.aborted = false
		value, move := a.negamax(state, depth, 0, math.Inf(-1), math.Inf(1), avoid)
		if a.aborted || move == game.NoMove {
			// A partial iteration is unreliable
			a.metrics.Abort()
			break
		}
		result.Move, result.Value, result.Depth = move, value, depth
		a.rootMove = move
		a.metrics.CompleteIteration(depth)
		log.Debug().Msgf("depth %d: best move %s value %.1f after %v", depth, move, value, time.Since(start))
	}

	if result.Move == game.NoMove {
		result.Move = moves[a.rng.Intn(len(moves))]
		a.metrics.Fallback()
		log.Warn().Msgf("no search iteration completed in %v, playing random move %s", a.duration, result.Move)
	}
	result.Metric = a.metrics.Complete()
	return result, nil
}

func (a *AlphaBeta) negamax(s game.State, depth, ply int, alpha, beta float64, avoid []game.Move) (float64, game.Move) {
	if time.Now().After(a.deadline) {
		a.aborted = true
		return a.evaluate(s, s.Turn), game.NoMove
	}
	a.metrics.AddNode()

	alphaOrig := alpha
	hash := s.Hash()
	ttMove := game.NoMove
	if ply == 0 {
		ttMove = a.rootMove
	}
	if entry, ok := a.table.Probe(hash); ok {
		ttMove = entry.Move
		// The root always searches so that it produces a move
		if ply > 0 && entry.Depth >= depth {
			a.metrics.AddTTHit()
			value := scoreFromTT(entry.Value, ply)
			switch entry.Flag {
			case Exact:
				return value, entry.Move
			case Lower:
				alpha = math.Max(alpha, value)
			case Upper:
				beta = math.Min(beta, value)
			}
			if alpha >= beta {
				return value, entry.Move
			}
		}
	}

	color := s.Turn
	switch s.Winner() {
	case game.Empty:
	case color:
		return game.WinScore - float64(ply), game.NoMove
	default:
		return -(game.WinScore - float64(ply)), game.NoMove
	}
	if depth == 0 {
		return a.evaluate(s, color), game.NoMove
	}

	moves := s.LegalMoves(color)
	if len(moves) == 0 {
		// A side that cannot move forfeits
		return -(game.WinScore - float64(ply)), game.NoMove
	}

	best, bestMove := math.Inf(-1), game.NoMove
	for i, c := range a.expand(s, moves, ttMove, ply) {
		var value float64
		if a.lmr && i >= LMRMinIndex && depth >= LMRMinDepth && c.gain == 0 {
			value, _ = a.negamax(c.child, depth-2, ply+1, -beta, -alpha, nil)
			value = -value
			if !a.aborted && value > alpha {
				value, _ = a.negamax(c.child, depth-1, ply+1, -beta, -alpha, nil)
				value = -value
			}
		} else {
			value, _ = a.negamax(c.child, depth-1, ply+1, -beta, -alpha, nil)
			value = -value
		}
		if a.aborted {
			return best, bestMove
		}
		if ply == 0 && slices.Contains(avoid, c.move) {
			value -= AvoidPenalty
		}

		if value > best {
			best, bestMove = value, c.move
		}
		if value > alpha {
			alpha = value
		}
		if alpha >= beta {
			a.metrics.AddCutoff()
			a.killers.Add(ply, c.move)
			a.history.Add(c.move, depth)
			break
		}
	}

	if ply == 0 && len(avoid) > 0 {
		// Penalised root values stay out of the table
		return best, bestMove
	}

	flag := Exact
	if best <= alphaOrig {
		flag = Upper
	} else if best >= beta {
		flag = Lower
	}
	a.table.Store(hash, TTEntry{
		Value: scoreToTT(best, ply),
		Depth: depth,
		Flag:  flag,
		Move:  bestMove,
	})
	return best, bestMove
}
