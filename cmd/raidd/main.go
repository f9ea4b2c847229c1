package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/KirkDiggler/raidhall/internal/catalog"
	"github.com/KirkDiggler/raidhall/internal/common/clock"
	"github.com/KirkDiggler/raidhall/internal/common/uuid"
	"github.com/KirkDiggler/raidhall/internal/config"
	"github.com/KirkDiggler/raidhall/internal/dice"
	"github.com/KirkDiggler/raidhall/internal/logging"
	"github.com/KirkDiggler/raidhall/internal/repositories/history"
	"github.com/KirkDiggler/raidhall/internal/repositories/leaderboard"
	"github.com/KirkDiggler/raidhall/internal/services/instance"
	"github.com/KirkDiggler/raidhall/internal/services/lobby"
	"github.com/KirkDiggler/raidhall/internal/services/raid"
	"github.com/KirkDiggler/raidhall/internal/telemetry"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		bootLogger := logging.New("info", false)
		bootLogger.Fatal().Err(err).Msg("Failed to load config")
	}

	logger := logging.New(cfg.LogLevel, cfg.LogPretty)

	raids, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.CatalogPath).Msg("Failed to load raid catalog")
	}
	logger.Info().Int("raids", len(raids.ListRaids())).Msg("Raid catalog loaded")

	leaderboardRepo, closeLeaderboard := newLeaderboard(cfg, logger)
	defer closeLeaderboard()

	historyRepo, err := history.NewGorm(&history.Config{Path: cfg.HistoryDBPath})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open run history")
	}
	defer func() {
		if err := historyRepo.Close(); err != nil {
			logger.Error().Err(err).Msg("Error closing run history")
		}
	}()

	metrics, err := telemetry.New(nil)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create metrics")
	}

	diceRoller := dice.New(&dice.Config{Seed: cfg.DiceSeed})
	clk := clock.New()
	ids := uuid.New()

	lobbySvc, err := lobby.New(&lobby.Config{
		Catalog:       raids,
		DiceRoller:    diceRoller,
		Clock:         clk,
		UUIDGenerator: ids,
		Logger:        logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create lobby service")
	}

	raidSvc, err := raid.New(&raid.Config{
		Catalog:         raids,
		LobbyService:    lobbySvc,
		LeaderboardRepo: leaderboardRepo,
		HistoryRepo:     historyRepo,
		DiceRoller:      diceRoller,
		Clock:           clk,
		UUIDGenerator:   ids,
		Metrics:         metrics,
		VoteWindow:      cfg.VoteWindow,
		VotePolicy:      instance.VotePolicy(cfg.VotePolicy),
		Logger:          logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create raid service")
	}

	logger.Info().
		Str("leaderboard", cfg.LeaderboardBackend).
		Str("vote_policy", cfg.VotePolicy).
		Dur("vote_window", cfg.VoteWindow).
		Msg("Raid hall is running")

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := raidSvc.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Error shutting down raid service")
	}

	logger.Info().Msg("Raid hall has been shut down")
}

// newLeaderboard builds the configured leaderboard backend and its cleanup
func newLeaderboard(cfg *config.Config, logger zerolog.Logger) (leaderboard.Repository, func()) {
	if cfg.LeaderboardBackend == config.BackendMemory {
		return leaderboard.NewMemory(), func() {}
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	repo, err := leaderboard.NewRedis(&leaderboard.Config{RedisClient: redisClient})
	if err != nil {
		logger.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("Failed to connect to Redis")
	}

	return repo, func() {
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("Error closing Redis client")
		}
	}
}
