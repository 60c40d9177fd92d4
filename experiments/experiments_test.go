package experiments

import (
	"encoding/csv"
	"hasami/experiments/metrics"
	"hasami/searcher/agent"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

/*
Behaviours to test:
- every game of every match up is played and recorded
- the starting agent alternates between games of a match up
- move records add up to the moves of the recorded games
- invalid agent configs fail the experiment
*/

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestRun(t *testing.T) {
	random := metrics.AgentConfig{ID: 0, Kind: agent.KindRandom}
	search := metrics.AgentConfig{ID: 1, Kind: agent.KindSearch, Duration: time.Minute, MaxDepth: 1, Evaluator: "material"}

	t.Run("recording a tournament", func(t *testing.T) {
		dir, err := Run(t.TempDir(), Experiment{
			Name:     "test",
			Configs:  []metrics.AgentConfig{random, search},
			MatchUps: [][2]metrics.AgentConfig{{random, search}},
			Games:    4,
			MaxTurns: 30,
			Parallel: 2,
		})
		require.NoError(t, err)

		configs := readCSV(t, filepath.Join(dir, "agent_configs.csv"))
		require.Len(t, configs, 3)

		games := readCSV(t, filepath.Join(dir, "game_records.csv"))
		require.Len(t, games, 5, "Header plus one row per game")
		totalMoves := 0
		for i, row := range games[1:] {
			if i%2 == 0 {
				require.Equal(t, []string{"0", "1"}, row[1:3], "Even games should start with the first agent")
			} else {
				require.Equal(t, []string{"1", "0"}, row[1:3], "Odd games should start with the second agent")
			}
			moves, err := strconv.Atoi(row[11])
			require.NoError(t, err)
			require.LessOrEqual(t, moves, 30)
			totalMoves += moves
		}

		moves := readCSV(t, filepath.Join(dir, "move_records.csv"))
		require.Len(t, moves, totalMoves+1)
	})

	t.Run("failing on an invalid config", func(t *testing.T) {
		bad := metrics.AgentConfig{ID: 2, Kind: agent.KindSearch, Evaluator: "oracle"}
		_, err := Run(t.TempDir(), Experiment{
			Name:     "bad",
			Configs:  []metrics.AgentConfig{random, bad},
			MatchUps: [][2]metrics.AgentConfig{{random, bad}},
			Games:    1,
		})
		require.Error(t, err)
	})

	t.Run("listing experiments", func(t *testing.T) {
		for _, name := range []string{"evaluators", "lmr", "baseline", "throughput", "mcts"} {
			require.Contains(t, Experiments, name)
		}
	})
}
