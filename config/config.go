package config

import (
	"encoding/json"
	"fmt"
	"hasami/experiments/metrics"
	"hasami/game"
	"hasami/meta"
	"hasami/searcher/agent"
	"hasami/searcher/mcts"
	"io/fs"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
)

type InvalidConfig struct {
	err string
}

func (e *InvalidConfig) Error() string {
	return fmt.Sprintf("config error: %s", e.err)
}

type PlayerConfig struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Evaluator string `json:"evaluator"`
	BudgetMS  int    `json:"budget_ms"`
	MaxDepth  int    `json:"max_depth"`
	LMR       bool   `json:"lmr"`

	// MCTS players only
	Goroutines int `json:"goroutines"`
	Cutoff     int `json:"cutoff"`
}

type ArenaConfig struct {
	MaxTurns int `json:"max_turns"`
}

type Config struct {
	Player   PlayerConfig `json:"player"`
	Arena    ArenaConfig  `json:"arena"`
	LogLevel string       `json:"log_level"`
}

var DefaultConfig = Config{
	Player: PlayerConfig{
		Name:       "hasami",
		Kind:       agent.KindSearch,
		Evaluator:  "positional",
		BudgetMS:   1000,
		MaxDepth:   meta.MAX_DEPTH,
		LMR:        true,
		Goroutines: mcts.DefaultGoroutines,
		Cutoff:     mcts.MaxCutoff,
	},
	Arena:    ArenaConfig{MaxTurns: meta.MAX_TURNS},
	LogLevel: "info",
}

// InitConfig loads the first config file found in the XDG config directories
// on top of the defaults.
func InitConfig() (*Config, error) {
	config := DefaultConfig
	absPath, err := xdg.SearchConfigFile(meta.CONFIG_FILE)
	if err == nil {
		if err := readCfgFile(absPath, &config); err != nil {
			return nil, err
		}
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Load reads the config at path on top of the defaults.
func Load(path string) (*Config, error) {
	config := DefaultConfig
	if err := readCfgFile(path, &config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	if c.Player.Name == "" {
		return &InvalidConfig{"player name must not be empty"}
	}
	switch c.Player.Kind {
	case agent.KindSearch, agent.KindMCTS, agent.KindRandom:
	default:
		return &InvalidConfig{fmt.Sprintf("unknown player kind %q", c.Player.Kind)}
	}
	if _, err := game.EvaluatorByName(c.Player.Evaluator); err != nil {
		return &InvalidConfig{err.Error()}
	}
	if c.Player.Goroutines < 1 {
		return &InvalidConfig{"goroutines must be at least 1"}
	}
	if c.Player.Cutoff < 1 {
		return &InvalidConfig{"cutoff must be at least 1"}
	}
	if c.Player.BudgetMS <= 0 {
		return &InvalidConfig{"budget_ms must be positive"}
	}
	if c.Player.MaxDepth < 1 || c.Player.MaxDepth > meta.MAX_DEPTH {
		return &InvalidConfig{fmt.Sprintf("max_depth must be between 1 and %d", meta.MAX_DEPTH)}
	}
	if c.Arena.MaxTurns <= 0 {
		return &InvalidConfig{"max_turns must be positive"}
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return &InvalidConfig{fmt.Sprintf("unknown log level %q", c.LogLevel)}
	}
	return nil
}

// Level is the configured log level.
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// AgentConfig describes the configured player for agent.NewFromConfig.
func (c *Config) AgentConfig() metrics.AgentConfig {
	return metrics.AgentConfig{
		Kind:       c.Player.Kind,
		Duration:   time.Duration(c.Player.BudgetMS) * time.Millisecond,
		MaxDepth:   c.Player.MaxDepth,
		Evaluator:  c.Player.Evaluator,
		NoLMR:      !c.Player.LMR,
		Goroutines: c.Player.Goroutines,
		Cutoff:     c.Player.Cutoff,
	}
}

// Save writes the config to the user's XDG config directory and returns the
// path written.
func (c *Config) Save() (string, error) {
	absPath, err := xdg.ConfigFile(meta.CONFIG_FILE)
	if err != nil {
		return "", err
	}
	return absPath, saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
	jsonData, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := json.Unmarshal(data, a); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filePath, err)
	}
	return nil
}
