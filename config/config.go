package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Game      GameConfig      `yaml:"game"`
	Betting   BettingConfig   `yaml:"betting"`
	Token     TokenConfig     `yaml:"token"`
	Generator GeneratorConfig `yaml:"generator"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	PostgresURL    string   `yaml:"postgres_url"`
	JWTKey         string   `yaml:"jwt_key"`
	TokenAgeDays   int      `yaml:"token_age_days"`
	DemoMode       bool     `yaml:"demo_mode"`
}

// GameConfig controls match pacing. Durations are in seconds.
type GameConfig struct {
	RosterSize         int     `yaml:"roster_size"`
	HumanSlots         int     `yaml:"human_slots"`
	LobbySeconds       int     `yaml:"lobby_seconds"`
	Round1Seconds      int     `yaml:"round1_seconds"`
	Round2Seconds      int     `yaml:"round2_seconds"`
	Round3Seconds      int     `yaml:"round3_seconds"`
	VotingSeconds      int     `yaml:"voting_seconds"`
	RevealSeconds      int     `yaml:"reveal_seconds"`
	AgentVoteChance    float64 `yaml:"agent_vote_chance"`
	MinAgentDelayMs    int     `yaml:"min_agent_delay_ms"`
	MaxAgentDelayMs    int     `yaml:"max_agent_delay_ms"`
	FastForwardMs      int     `yaml:"fast_forward_ms"`
	CleanupMinutes     int     `yaml:"cleanup_minutes"`
	ChatMessagesPerSec float64 `yaml:"chat_messages_per_sec"`
}

type BettingConfig struct {
	HouseSplit     float64 `yaml:"house_split"`
	MostHumanSplit float64 `yaml:"most_human_split"`
	GuessersSplit  float64 `yaml:"guessers_split"`
}

// TokenConfig parameterizes the bonding curve and the simulated ledger.
type TokenConfig struct {
	MinPrice        float64 `yaml:"min_price"`
	MaxPrice        float64 `yaml:"max_price"`
	Steps           int     `yaml:"steps"`
	MaxSupply       float64 `yaml:"max_supply"`
	RoyaltyPercent  float64 `yaml:"royalty_percent"`
	StartingBalance float64 `yaml:"starting_balance"`
}

type GeneratorConfig struct {
	APIURL string `yaml:"api_url"`
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // console | json
}

// Load reads the YAML config and applies .env overrides on top.
// A missing .env file is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

func (c *Config) TokenAge() time.Duration {
	return time.Duration(c.Server.TokenAgeDays) * 24 * time.Hour
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("POSTGRES_URL"); v != "" {
		cfg.Server.PostgresURL = v
	}
	if v := os.Getenv("JWT_KEY"); v != "" {
		cfg.Server.JWTKey = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = strings.Split(v, ",")
	}
	if v := os.Getenv("DEMO_MODE"); v == "true" || v == "1" {
		cfg.Server.DemoMode = true
	}
	if v := os.Getenv("LLM_API_URL"); v != "" {
		cfg.Generator.APIURL = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.Generator.APIKey = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.Generator.Model = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func setDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":3001"
	}
	if cfg.Server.TokenAgeDays == 0 {
		cfg.Server.TokenAgeDays = 7
	}
	if cfg.Game.RosterSize == 0 {
		cfg.Game.RosterSize = 16
	}
	if cfg.Game.HumanSlots == 0 {
		cfg.Game.HumanSlots = 2
	}
	if cfg.Game.LobbySeconds == 0 {
		cfg.Game.LobbySeconds = 30
	}
	if cfg.Game.Round1Seconds == 0 {
		cfg.Game.Round1Seconds = 90
	}
	if cfg.Game.Round2Seconds == 0 {
		cfg.Game.Round2Seconds = 120
	}
	if cfg.Game.Round3Seconds == 0 {
		cfg.Game.Round3Seconds = 90
	}
	if cfg.Game.VotingSeconds == 0 {
		cfg.Game.VotingSeconds = 30
	}
	if cfg.Game.RevealSeconds == 0 {
		cfg.Game.RevealSeconds = 15
	}
	if cfg.Game.AgentVoteChance == 0 {
		cfg.Game.AgentVoteChance = 0.4
	}
	if cfg.Game.MinAgentDelayMs == 0 {
		cfg.Game.MinAgentDelayMs = 2000
	}
	if cfg.Game.MaxAgentDelayMs == 0 {
		cfg.Game.MaxAgentDelayMs = 10000
	}
	if cfg.Game.FastForwardMs == 0 {
		cfg.Game.FastForwardMs = 2000
	}
	if cfg.Game.CleanupMinutes == 0 {
		cfg.Game.CleanupMinutes = 30
	}
	if cfg.Game.ChatMessagesPerSec == 0 {
		cfg.Game.ChatMessagesPerSec = 2
	}
	if cfg.Betting.HouseSplit == 0 {
		cfg.Betting.HouseSplit = 0.05
	}
	if cfg.Betting.MostHumanSplit == 0 {
		cfg.Betting.MostHumanSplit = 0.30
	}
	if cfg.Betting.GuessersSplit == 0 {
		cfg.Betting.GuessersSplit = 0.65
	}
	if cfg.Token.MinPrice == 0 {
		cfg.Token.MinPrice = 100
	}
	if cfg.Token.MaxPrice == 0 {
		cfg.Token.MaxPrice = 100
	}
	if cfg.Token.Steps == 0 {
		cfg.Token.Steps = 1
	}
	if cfg.Token.MaxSupply == 0 {
		cfg.Token.MaxSupply = 1_000_000
	}
	if cfg.Token.RoyaltyPercent == 0 {
		cfg.Token.RoyaltyPercent = 0.03
	}
	if cfg.Token.StartingBalance == 0 {
		cfg.Token.StartingBalance = 100
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
}
