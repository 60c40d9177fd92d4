package config

import (
	"hasami/searcher/agent"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig
	require.NoError(t, config.Validate())
	require.Equal(t, zerolog.InfoLevel, config.Level())

	agentConfig := config.AgentConfig()
	require.Equal(t, agent.KindSearch, agentConfig.Kind)
	require.Equal(t, time.Second, agentConfig.Duration)
	require.False(t, agentConfig.NoLMR)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"empty name", func(c *Config) { c.Player.Name = "" }},
		{"unknown kind", func(c *Config) { c.Player.Kind = "human" }},
		{"unknown evaluator", func(c *Config) { c.Player.Evaluator = "oracle" }},
		{"zero budget", func(c *Config) { c.Player.BudgetMS = 0 }},
		{"depth too large", func(c *Config) { c.Player.MaxDepth = 99 }},
		{"zero turns", func(c *Config) { c.Arena.MaxTurns = 0 }},
		{"zero goroutines", func(c *Config) { c.Player.Goroutines = 0 }},
		{"zero cutoff", func(c *Config) { c.Player.Cutoff = 0 }},
		{"unknown log level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run("rejecting "+tt.name, func(t *testing.T) {
			config := DefaultConfig
			tt.modify(&config)
			var invalid *InvalidConfig
			require.ErrorAs(t, config.Validate(), &invalid)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("overriding defaults", func(t *testing.T) {
		path := filepath.Join(dir, "partial.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"player": {"name": "itoh", "budget_ms": 250}, "log_level": "debug"}`), 0644))

		config, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, "itoh", config.Player.Name)
		require.Equal(t, 250*time.Millisecond, config.AgentConfig().Duration)
		require.Equal(t, DefaultConfig.Player.Evaluator, config.Player.Evaluator, "Missing fields should keep their defaults")
		require.Equal(t, zerolog.DebugLevel, config.Level())
	})

	t.Run("rejecting broken files", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"player": `), 0644))
		_, err := Load(path)
		require.Error(t, err)

		_, err = Load(filepath.Join(dir, "missing.json"))
		require.Error(t, err)
	})
}

func TestSave(t *testing.T) {
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()

	config := DefaultConfig
	config.Player.Name = "honoka"
	config.Player.LMR = false
	path, err := config.Save()
	require.NoError(t, err)
	require.FileExists(t, path)

	loaded, err := InitConfig()
	require.NoError(t, err)
	require.Equal(t, "honoka", loaded.Player.Name)
	require.True(t, loaded.AgentConfig().NoLMR)
}
