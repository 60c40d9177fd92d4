package main

import (
	"flag"
	"fmt"
	"hasami/communication"
	"hasami/config"
	"hasami/engine"
	"hasami/experiments"
	"hasami/game"
	"hasami/gamemaster"
	"hasami/player"
	"hasami/searcher/agent"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	mode := flag.String("mode", "player", "player, arena or experiment")
	configPath := flag.String("config", "", "Config file (default: hasami/config.json in the XDG config directories)")
	saveConfig := flag.Bool("save-config", false, "Write the effective config to the XDG config directory and exit")

	name := flag.String("name", "", "Player's name")
	kind := flag.String("kind", "", "Player kind: search, mcts or random")
	evaluator := flag.String("evaluator", "", "Evaluation function of the search player")
	duration := flag.Duration("duration", 0, "Time budget per move")
	depth := flag.Int("depth", 0, "Maximum search depth")
	goroutines := flag.Int("goroutines", 0, "Number of goroutines for parallel MCTS episodes")

	black := flag.String("black", "self", "Black player for the arena: self, random or a command line")
	white := flag.String("white", "random", "White player for the arena: self, random or a command line")

	experiment := flag.String("experiment", "baseline", "Experiment to run")
	out := flag.String("out", "experiments_out", "Directory for experiment records")
	flag.Parse()

	// Standard output carries the protocol
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if *name != "" {
		cfg.Player.Name = *name
	}
	if *kind != "" {
		cfg.Player.Kind = *kind
	}
	if *goroutines > 0 {
		cfg.Player.Goroutines = *goroutines
	}
	if *evaluator != "" {
		cfg.Player.Evaluator = *evaluator
	}
	if *duration > 0 {
		cfg.Player.BudgetMS = int(duration.Milliseconds())
	}
	if *depth > 0 {
		cfg.Player.MaxDepth = *depth
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid settings")
	}
	zerolog.SetGlobalLevel(cfg.Level())

	if *saveConfig {
		path, err := cfg.Save()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to save config")
		}
		log.Info().Msgf("saved config to %s", path)
		return
	}

	switch *mode {
	case "player":
		err = runPlayer(cfg)
	case "arena":
		err = runArena(cfg, *black, *white)
	case "experiment":
		err = runExperiment(*experiment, *out)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", *mode)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.InitConfig()
}

func newAgent(cfg *config.Config, name string) (agent.Agent, error) {
	return agent.NewFromConfig(name, cfg.AgentConfig(), uint64(time.Now().UnixNano()))
}

func runPlayer(cfg *config.Config) error {
	a, err := newAgent(cfg, cfg.Player.Name)
	if err != nil {
		return err
	}
	comm := communication.NewStreamCommunicator(os.Stdin, os.Stdout, nil)
	_, err = player.NewPlayer(a, comm).Run()
	return err
}

func runArena(cfg *config.Config, black, white string) error {
	blackPlayer, err := arenaPlayer(cfg, black)
	if err != nil {
		return err
	}
	whitePlayer, err := arenaPlayer(cfg, white)
	if err != nil {
		blackPlayer.Close()
		return err
	}

	arena := engine.NewArena(blackPlayer, whitePlayer, gamemaster.WithMaxTurns(cfg.Arena.MaxTurns))
	gameMetric, _, err := arena.Run()
	if err != nil {
		return err
	}
	result := "DRAW"
	if gameMetric.Winner != game.Empty {
		result = fmt.Sprintf("%s (%s)", arena.Name(gameMetric.Winner), gameMetric.Winner)
	}
	log.Info().Msgf("Result: %s by %s in %d moves", result, gameMetric.Reason, gameMetric.TotalMoves)
	return nil
}

// arenaPlayer starts the player described by desc: the configured agent,
// a random agent or an external program.
func arenaPlayer(cfg *config.Config, desc string) (communication.Communicator, error) {
	switch desc {
	case "self":
		a, err := newAgent(cfg, cfg.Player.Name)
		if err != nil {
			return nil, err
		}
		return engine.PipePlayer(a), nil
	case "random":
		return engine.PipePlayer(agent.NewRandomAgent("random", uint64(time.Now().UnixNano()))), nil
	}
	fields := strings.Fields(desc)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty player command")
	}
	return engine.StartProcess(fields[0], fields[1:]...)
}

func runExperiment(name, out string) error {
	run, ok := experiments.Experiments[name]
	if !ok {
		return fmt.Errorf("unknown experiment %q", name)
	}
	dir, err := run(out)
	if err != nil {
		return err
	}
	log.Info().Msgf("records written to %s", dir)
	return nil
}
