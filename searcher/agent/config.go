package agent

import (
	"fmt"
	"hasami/experiments/metrics"
	"hasami/game"
	"hasami/searcher"
	"hasami/searcher/mcts"
	"time"
)

const (
	KindSearch = "search"
	KindMCTS   = "mcts"
	KindRandom = "random"
)

// NewFromConfig builds the agent described by config. Seed drives random
// agents, rollouts and fallback moves.
func NewFromConfig(name string, config metrics.AgentConfig, seed uint64) (Agent, error) {
	var evaluate game.Evaluate
	if config.Evaluator != "" {
		var err error
		evaluate, err = game.EvaluatorByName(config.Evaluator)
		if err != nil {
			return nil, fmt.Errorf("agent %d: %w", config.ID, err)
		}
	}

	switch config.Kind {
	case KindRandom:
		return NewRandomAgent(name, seed), nil
	case KindSearch, "":
		return NewSearchAgent(name, createAlphaBeta(config, evaluate, seed)), nil
	case KindMCTS:
		return NewSearchAgent(name, createMCTS(config, evaluate, seed)), nil
	default:
		return nil, fmt.Errorf("agent %d: unknown kind %q", config.ID, config.Kind)
	}
}

func createAlphaBeta(config metrics.AgentConfig, evaluate game.Evaluate, seed uint64) *searcher.AlphaBeta {
	options := []searcher.Option{searcher.WithMetrics(), searcher.WithRandom(seed)}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.MaxDepth > 0 {
		options = append(options, searcher.WithMaxDepth(config.MaxDepth))
	}
	if evaluate != nil {
		options = append(options, searcher.WithEvaluationFn(evaluate))
	}
	if config.NoLMR {
		options = append(options, searcher.WithLateMoveReduction(false))
	}
	return searcher.NewAlphaBeta(options...)
}

func createMCTS(config metrics.AgentConfig, evaluate game.Evaluate, seed uint64) *mcts.MCTS {
	return mcts.NewMCTS(
		mcts.WithMetrics(),
		mcts.WithRandom(seed),
		mcts.WithGoroutines(config.Goroutines),
		mcts.WithDuration(config.Duration),
		mcts.WithEpisodes(config.Episodes),
		mcts.WithCutoff(config.Cutoff),
		mcts.WithEvaluationFn(evaluate),
	)
}

// Describe is a short label for logs.
func Describe(config metrics.AgentConfig) string {
	if config.Kind == KindRandom {
		return "random"
	}
	if config.Kind == KindMCTS {
		if config.Episodes > 0 {
			return fmt.Sprintf("mcts(%d goroutines, %d episodes)", max(config.Goroutines, 1), config.Episodes)
		}
		return fmt.Sprintf("mcts(%d goroutines, %v)", max(config.Goroutines, 1), config.Duration)
	}
	duration := config.Duration
	if duration <= 0 {
		duration = searcher.DefaultDuration
	}
	evaluator := config.Evaluator
	if evaluator == "" {
		evaluator = "positional"
	}
	return fmt.Sprintf("search(%s, %v, depth %d)", evaluator, duration.Round(time.Millisecond), config.MaxDepth)
}
