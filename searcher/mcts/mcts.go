package mcts

import (
	"hasami/experiments/metrics"
	"hasami/game"
	"hasami/searcher"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const (
	DefaultGoroutines = 1
	MaxCutoff         = 60 // Rollout plies before the position is evaluated
)

type Option func(m *MCTS)

// MCTS searches with parallel Monte Carlo tree search. Rollouts play random
// moves and are scored by the evaluation function at the cutoff.
type MCTS struct {
	goroutines int
	duration   time.Duration
	episodes   int
	cutoff     int
	evaluate   game.Evaluate
	metrics    metrics.Collector
	seed       uint64

	root   *decision
	played game.Move // Move chosen by the last search, to find the next root
}

func WithGoroutines(goroutines int) Option {
	return func(m *MCTS) {
		if goroutines > 0 {
			m.goroutines = goroutines
		}
	}
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

// WithEpisodes searches a fixed number of episodes instead of a time budget.
func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func WithRandom(seed uint64) Option {
	return func(m *MCTS) {
		m.seed = seed
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		goroutines: DefaultGoroutines,
		duration:   searcher.DefaultDuration,
		cutoff:     MaxCutoff,
		evaluate:   game.EvaluatePositional,
		metrics:    metrics.NewDummyCollector(),
		seed:       uint64(time.Now().UnixNano()),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Reset drops the search tree.
func (m *MCTS) Reset() {
	m.root = nil
	m.played = game.NoMove
}

// Search returns the most visited move after the episodes or the time budget
// run out. Moves in avoid are only played when nothing else was explored.
func (m *MCTS) Search(state game.State, avoid ...game.Move) (searcher.Result, error) {
	if len(state.LegalMoves(state.Turn)) == 0 {
		return searcher.Result{}, searcher.ErrNoLegalMoves
	}

	m.metrics.Start()
	m.findRoot(state)
	if m.episodes > 0 {
		m.iterate(state)
	} else {
		m.countdown(state)
	}

	ith := m.root.best(avoid)
	if ith < 0 {
		// No episode finished, e.g. with a tiny time budget
		moves := state.LegalMoves(state.Turn)
		m.played = moves[rand.New(rand.NewSource(m.seed)).Intn(len(moves))]
		m.metrics.Fallback()
		log.Warn().Msgf("no episode completed in %v, playing random move %s", m.duration, m.played)
		return searcher.Result{Move: m.played, Metric: m.metrics.Complete()}, nil
	}

	child := m.root.children[ith]
	m.played = m.root.moves[ith]
	rewards, visits := child.stats()
	depth := m.root.depth()
	m.metrics.CompleteIteration(depth)
	log.Debug().Msgf("mcts: best move %s won %.2f of %d visits, line depth %d", m.played, rewards/float64(visits), visits, depth)

	return searcher.Result{
		Move:   m.played,
		Value:  rewards / float64(visits),
		Depth:  depth,
		Metric: m.metrics.Complete(),
	}, nil
}

// findRoot reuses the subtree for state if the previous search explored it.
func (m *MCTS) findRoot(state game.State) {
	hash := state.Hash()
	if m.root != nil {
		if child := m.root.child(m.played); child != nil {
			if grandChild := child.child(state.LastMove); grandChild != nil && grandChild.hash == hash {
				grandChild.parent = nil
				m.root = grandChild
				return
			}
		}
	}
	m.root = newDecision(nil, state)
}

func (m *MCTS) iterate(state game.State) {
	task := make(chan any, m.episodes)
	for i := 0; i < m.episodes; i++ {
		task <- nil
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		rng := m.newRand(i)
		go func() {
			defer wg.Done()

			for range task {
				m.simulate(state, rng)
				m.metrics.AddNode()
			}
		}()
	}

	wg.Wait()
}

func (m *MCTS) countdown(state game.State) {
	deadline := time.Now().Add(m.duration)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		rng := m.newRand(i)
		go func() {
			defer wg.Done()

			for time.Now().Before(deadline) {
				m.simulate(state, rng)
				m.metrics.AddNode()
			}
		}()
	}

	wg.Wait()
}

func (m *MCTS) newRand(worker int) *rand.Rand {
	m.seed++
	return rand.New(rand.NewSource(m.seed + uint64(worker)<<32))
}

func (m *MCTS) simulate(state game.State, rng *rand.Rand) {
	newNode, newState := selectThenExpand(m.root, state)
	reward := rollout(newState, m.cutoff, m.evaluate, rng)
	backup(newNode, reward)
}

func selectThenExpand(root *decision, state game.State) (*decision, game.State) {
	parent := root
	child, state, expanded := parent.SelectOrExpand(state)
	for !expanded && child != parent {
		parent = child
		child, state, expanded = parent.SelectOrExpand(state)
	}
	return child, state
}

// rollout plays random moves till the game is decided or for cutoff plies,
// and returns the reward of each side.
func rollout(state game.State, cutoff int, evaluate game.Evaluate, rng *rand.Rand) func(game.Color) float64 {
	for depth := 0; ; depth++ {
		if winner := state.Winner(); winner != game.Empty {
			return winnerReward(winner)
		}
		moves := state.LegalMoves(state.Turn)
		if len(moves) == 0 { // A side that cannot move forfeits
			return winnerReward(state.Turn.Opponent())
		}
		if depth >= cutoff {
			break
		}
		state = state.Play(moves[rng.Intn(len(moves))])
	}

	// At cutoff state, score the position for Black
	black := squash(evaluate(state, game.Black))
	return func(player game.Color) float64 {
		if player == game.Black {
			return black
		}
		return Win + Loss - black
	}
}

func winnerReward(winner game.Color) func(game.Color) float64 {
	return func(player game.Color) float64 {
		if player == winner {
			return Win
		}
		return Loss
	}
}

func backup(newNode *decision, reward func(game.Color) float64) {
	node := newNode
	for node != nil {
		node = node.Backup(reward)
	}
}
