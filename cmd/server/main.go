package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/openwork-hackathon/team-roast-royale/auth"
	"github.com/openwork-hackathon/team-roast-royale/betting"
	"github.com/openwork-hackathon/team-roast-royale/config"
	"github.com/openwork-hackathon/team-roast-royale/crypto"
	"github.com/openwork-hackathon/team-roast-royale/game"
	"github.com/openwork-hackathon/team-roast-royale/logger"
	"github.com/openwork-hackathon/team-roast-royale/migrations"
	"github.com/openwork-hackathon/team-roast-royale/storage"
	"github.com/openwork-hackathon/team-roast-royale/token"
)

func CreateServer(allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.GET("/health", func(ctx *gin.Context) { ctx.String(200, "healthy") })

	r.Use(func(ctx *gin.Context) {
		origin := ctx.Request.Header.Get("Origin")

		if origin == "" || slices.Contains(allowedOrigins, origin) {
			ctx.Next()
			return
		}
		ctx.String(http.StatusForbidden, "forbidden origin")
		ctx.Abort()
	})

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{
			"Content-Type",
			"Authorization",
			"Upgrade",
			"Connection",
			"Sec-WebSocket-Key",
			"Sec-WebSocket-Version",
			"Sec-WebSocket-Extensions",
			"Sec-WebSocket-Protocol",
		},
	}))

	return r
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	zlog := logger.New(cfg.Log.Level, cfg.Log.Format)

	// Storage and auth only come up outside demo mode. Demo matches keep
	// everything in memory and grant play money on first touch.
	var pgRepo *storage.PostgresRepo
	if !cfg.Server.DemoMode {
		if cfg.Server.PostgresURL == "" {
			zlog.Fatal().Msg("postgres_url is required outside demo mode")
		}
		if err := migrations.Migrate(cfg.Server.PostgresURL); err != nil {
			zlog.Fatal().Err(err).Msg("failed to run migrations")
		}
		zlog.Info().Msg("migrations applied")

		pgRepo, err = storage.NewPostgresRepo(context.Background(), cfg.Server.PostgresURL)
		if err != nil {
			zlog.Fatal().Err(err).Msg("failed to connect to postgres")
		}
		defer pgRepo.Close()
	}

	var backend token.ValueTransferBackend
	if cfg.Server.DemoMode {
		backend = token.SimulatedBackend{Grant: cfg.Token.StartingBalance}
	} else {
		backend = &token.ExternalBackend{Store: pgRepo, Logger: zlog}
	}

	ledger := token.NewLedger(token.Curve{
		MinPrice:  cfg.Token.MinPrice,
		MaxPrice:  cfg.Token.MaxPrice,
		Steps:     cfg.Token.Steps,
		MaxSupply: cfg.Token.MaxSupply,
		Royalty:   cfg.Token.RoyaltyPercent,
	}, backend)

	engine := betting.NewEngine(ledger, betting.Split{
		House:     cfg.Betting.HouseSplit,
		MostHuman: cfg.Betting.MostHumanSplit,
		Guessers:  cfg.Betting.GuessersSplit,
	}, zlog)

	var generator game.TextGenerator = game.OfflineGenerator{}
	if cfg.Generator.APIKey != "" {
		generator = game.NewLLMGenerator(cfg.Generator.APIURL, cfg.Generator.APIKey, cfg.Generator.Model)
	} else {
		zlog.Warn().Msg("no LLM key configured, agents will use fallback lines")
	}

	hub := game.NewHub(zlog)
	registry := game.NewRegistry(game.Options{
		RosterSize: cfg.Game.RosterSize,
		HumanSlots: cfg.Game.HumanSlots,
		Durations: map[game.Phase]time.Duration{
			game.PhaseLobby:  time.Duration(cfg.Game.LobbySeconds) * time.Second,
			game.PhaseRound1: time.Duration(cfg.Game.Round1Seconds) * time.Second,
			game.PhaseRound2: time.Duration(cfg.Game.Round2Seconds) * time.Second,
			game.PhaseRound3: time.Duration(cfg.Game.Round3Seconds) * time.Second,
			game.PhaseVoting: time.Duration(cfg.Game.VotingSeconds) * time.Second,
			game.PhaseReveal: time.Duration(cfg.Game.RevealSeconds) * time.Second,
		},
		AgentVoteChance:  cfg.Game.AgentVoteChance,
		MinAgentDelay:    time.Duration(cfg.Game.MinAgentDelayMs) * time.Millisecond,
		MaxAgentDelay:    time.Duration(cfg.Game.MaxAgentDelayMs) * time.Millisecond,
		FastForwardGrace: time.Duration(cfg.Game.FastForwardMs) * time.Millisecond,
		CleanupAfter:     time.Duration(cfg.Game.CleanupMinutes) * time.Minute,
	}, game.NewTimerScheduler(), hub, engine, generator, zlog)

	r := CreateServer(cfg.Server.AllowedOrigins)

	gameHandler := game.NewHandler(registry, engine, hub, cfg.Game.ChatMessagesPerSec, zlog)
	tokenHandler := token.NewHandler(ledger)

	api := r.Group("/api")
	gameHandler.Register(api)
	tokenHandler.Register(api)

	if !cfg.Server.DemoMode {
		passwordHasher := crypto.NewArgon2idHasher(3, 1024*64, 32, 16, 1)
		tokenManager := crypto.NewJWTManager(cfg.Server.JWTKey, cfg.TokenAge())

		authService := auth.NewService(pgRepo, passwordHasher, tokenManager)
		authHandler := auth.NewHandler(authService, cfg.TokenAge(), zlog)
		authHandler.Register(r.Group("/auth"))
	}

	zlog.Info().Str("addr", cfg.Server.Addr).Bool("demo", cfg.Server.DemoMode).Msg("server starting")
	if err := r.Run(cfg.Server.Addr); err != nil {
		zlog.Fatal().Err(err).Msg("server stopped")
	}
}
