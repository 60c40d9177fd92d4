package experiments

import (
	"hasami/experiments/metrics"
	"hasami/searcher/agent"
	"time"
)

// RunThroughputExperiment plays each time budget against itself to record how
// deep and how many nodes the search reaches per move.
func RunThroughputExperiment(root string) (string, error) {
	budgets := []time.Duration{10 * time.Millisecond, 50 * time.Millisecond, 250 * time.Millisecond, time.Second}

	configs := []metrics.AgentConfig{}
	matchUps := [][2]metrics.AgentConfig{}
	for i, budget := range budgets {
		config := metrics.AgentConfig{ID: i + 1, Kind: agent.KindSearch, Duration: budget}
		configs = append(configs, config)
		// Same config for both players for the same playing strength
		matchUps = append(matchUps, [2]metrics.AgentConfig{config, config})
	}

	return Run(root, Experiment{Name: "throughput", Configs: configs, MatchUps: matchUps, Games: 2})
}

// RunMCTSExperiment pits tree search with growing parallelism against
// alpha-beta at the same time budget.
func RunMCTSExperiment(root string) (string, error) {
	baseline := metrics.AgentConfig{ID: 0, Kind: agent.KindSearch, Duration: TimeBudget}
	configs := []metrics.AgentConfig{baseline}
	matchUps := [][2]metrics.AgentConfig{}
	for i, goroutines := range []int{1, 2, 4, 8} {
		config := metrics.AgentConfig{ID: i + 1, Kind: agent.KindMCTS, Duration: TimeBudget, Goroutines: goroutines}
		configs = append(configs, config)
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}

	return Run(root, Experiment{Name: "mcts", Configs: configs, MatchUps: matchUps})
}

// Experiments by name, for the command line.
var Experiments = map[string]func(root string) (string, error){
	"evaluators": RunEvaluatorExperiment,
	"lmr":        RunLMRExperiment,
	"baseline":   RunBaselineExperiment,
	"throughput": RunThroughputExperiment,
	"mcts":       RunMCTSExperiment,
}
