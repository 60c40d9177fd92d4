package experiments

import (
	"fmt"
	"hasami/engine"
	"hasami/experiments/metrics"
	"hasami/gamemaster"
	"hasami/meta"
	"hasami/searcher/agent"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	NumGames   = 20 // Per match up
	TimeBudget = 100 * time.Millisecond
)

// Experiment is a set of match ups between agent configs, each played
// NumGames times with the colors alternating.
type Experiment struct {
	Name     string
	Configs  []metrics.AgentConfig
	MatchUps [][2]metrics.AgentConfig
	Games    int // Per match up
	MaxTurns int
	Parallel int // Games played at once
}

// RunEvaluatorExperiment pits every evaluator against the positional baseline.
func RunEvaluatorExperiment(root string) (string, error) {
	baseline := metrics.AgentConfig{ID: 0, Kind: agent.KindSearch, Duration: TimeBudget, Evaluator: "positional"}
	configs := []metrics.AgentConfig{baseline}
	matchUps := [][2]metrics.AgentConfig{}
	for i, name := range []string{"material", "central", "safety", "mobility"} {
		config := metrics.AgentConfig{ID: i + 1, Kind: agent.KindSearch, Duration: TimeBudget, Evaluator: name}
		configs = append(configs, config)
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}

	return Run(root, Experiment{Name: "evaluators", Configs: configs, MatchUps: matchUps})
}

// RunLMRExperiment measures what late move reductions are worth.
func RunLMRExperiment(root string) (string, error) {
	withLMR := metrics.AgentConfig{ID: 1, Kind: agent.KindSearch, Duration: TimeBudget}
	withoutLMR := metrics.AgentConfig{ID: 2, Kind: agent.KindSearch, Duration: TimeBudget, NoLMR: true}

	return Run(root, Experiment{
		Name:     "lmr",
		Configs:  []metrics.AgentConfig{withLMR, withoutLMR},
		MatchUps: [][2]metrics.AgentConfig{{withLMR, withoutLMR}},
	})
}

// RunBaselineExperiment checks that the search beats random play.
func RunBaselineExperiment(root string) (string, error) {
	random := metrics.AgentConfig{ID: 0, Kind: agent.KindRandom}
	search := metrics.AgentConfig{ID: 1, Kind: agent.KindSearch, Duration: TimeBudget}

	return Run(root, Experiment{
		Name:     "baseline",
		Configs:  []metrics.AgentConfig{random, search},
		MatchUps: [][2]metrics.AgentConfig{{random, search}},
	})
}

// Run plays every game of the experiment and writes its records under root.
// It returns the directory holding the records.
func Run(root string, exp Experiment) (string, error) {
	if exp.Games <= 0 {
		exp.Games = NumGames
	}
	if exp.MaxTurns <= 0 {
		exp.MaxTurns = meta.MAX_TURNS
	}
	if exp.Parallel <= 0 {
		exp.Parallel = meta.GO_ROUTINES
	}

	log.Info().Msgf("starting %s experiment...", exp.Name)

	total := len(exp.MatchUps) * exp.Games
	gameRecords := make([]metrics.GameRecord, total)
	moveRecords := make([][]metrics.MoveRecord, total)

	var g errgroup.Group
	g.SetLimit(exp.Parallel)
	for mi, matchUp := range exp.MatchUps {
		for i := 0; i < exp.Games; i++ {
			slot := mi*exp.Games + i
			// Alternate the starting agent
			black, white := matchUp[0], matchUp[1]
			if i%2 == 1 {
				black, white = white, black
			}

			g.Go(func() error {
				log.Info().Msgf("starting matchup %d of %d game %d of %d: %s vs %s",
					mi+1, len(exp.MatchUps), i+1, exp.Games, agent.Describe(black), agent.Describe(white))

				gameMetric, moveMetrics, err := runGame(black, white, exp.MaxTurns, uint64(slot))
				if err != nil {
					return fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
				}
				gameRecords[slot] = metrics.GameRecord{Agent1: black.ID, Agent2: white.ID, GameMetric: gameMetric}
				for _, mm := range moveMetrics {
					moveRecords[slot] = append(moveRecords[slot], metrics.MoveRecord{Game: gameMetric.ID, MoveMetric: mm})
				}

				log.Info().Msgf("completed matchup %d of %d game %d with winner: %s (%s)",
					mi+1, len(exp.MatchUps), i+1, gameMetric.Winner, gameMetric.Reason)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	log.Info().Msgf("completed %s experiment", exp.Name)

	var moves []metrics.MoveRecord
	for _, records := range moveRecords {
		moves = append(moves, records...)
	}
	return store(root, exp, gameRecords, moves)
}

func store(root string, exp Experiment, games []metrics.GameRecord, moves []metrics.MoveRecord) (string, error) {
	writer, err := metrics.NewWriter(root, exp.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(exp.Configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(games); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(moves); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return writer.Dir(), nil
}

// runGame executes a single game between two agents
func runGame(black, white metrics.AgentConfig, maxTurns int, seed uint64) (metrics.GameMetric, []metrics.MoveMetric, error) {
	blackAgent, err := agent.NewFromConfig("Black", black, seed)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}
	whiteAgent, err := agent.NewFromConfig("White", white, seed+1)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}

	e := engine.NewLocalEngine(blackAgent, whiteAgent, gamemaster.WithMaxTurns(maxTurns))
	return e.Run()
}
