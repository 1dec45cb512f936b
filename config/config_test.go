package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_DefaultsFillEverything(t *testing.T) {
	path := writeConfig(t, "server:\n  addr: \":4000\"\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	want := GameConfig{
		RosterSize:         16,
		HumanSlots:         2,
		LobbySeconds:       30,
		Round1Seconds:      90,
		Round2Seconds:      120,
		Round3Seconds:      90,
		VotingSeconds:      30,
		RevealSeconds:      15,
		AgentVoteChance:    0.4,
		MinAgentDelayMs:    2000,
		MaxAgentDelayMs:    10000,
		FastForwardMs:      2000,
		CleanupMinutes:     30,
		ChatMessagesPerSec: 2,
	}
	if diff := cmp.Diff(want, cfg.Game); diff != "" {
		t.Errorf("game config mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, ":4000", cfg.Server.Addr)
	assert.Equal(t, 0.05, cfg.Betting.HouseSplit)
	assert.Equal(t, 0.30, cfg.Betting.MostHumanSplit)
	assert.Equal(t, 0.65, cfg.Betting.GuessersSplit)
	assert.Equal(t, 100.0, cfg.Token.StartingBalance)
	assert.Equal(t, 1_000_000.0, cfg.Token.MaxSupply)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenAge())
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
game:
  roster_size: 8
  lobby_seconds: 5
token:
  starting_balance: 250
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Game.RosterSize)
	assert.Equal(t, 5, cfg.Game.LobbySeconds)
	assert.Equal(t, 250.0, cfg.Token.StartingBalance)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Untouched knobs keep their defaults.
	assert.Equal(t, 120, cfg.Game.Round2Seconds)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	path := writeConfig(t, `
server:
  postgres_url: "postgres://yaml"
  demo_mode: false
`)

	t.Setenv("POSTGRES_URL", "postgres://env")
	t.Setenv("DEMO_MODE", "true")
	t.Setenv("ALLOWED_ORIGINS", "http://a.example,http://b.example")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://env", cfg.Server.PostgresURL)
	assert.True(t, cfg.Server.DemoMode)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
