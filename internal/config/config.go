package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Leaderboard backends
const (
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config is the process configuration read from the environment
type Config struct {
	RedisAddr     string `env:"RAIDHALL_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"RAIDHALL_REDIS_PASSWORD"`
	RedisDB       int    `env:"RAIDHALL_REDIS_DB" envDefault:"0"`

	// LeaderboardBackend is redis or memory
	LeaderboardBackend string `env:"RAIDHALL_LEADERBOARD_BACKEND" envDefault:"redis"`

	CatalogPath string `env:"RAIDHALL_CATALOG_PATH" envDefault:"raids.yaml"`

	// HistoryDBPath is the SQLite file for run history, empty for in memory
	HistoryDBPath string `env:"RAIDHALL_HISTORY_DB_PATH"`

	LogLevel  string `env:"RAIDHALL_LOG_LEVEL" envDefault:"info"`
	LogPretty bool   `env:"RAIDHALL_LOG_PRETTY" envDefault:"false"`

	VoteWindow time.Duration `env:"RAIDHALL_VOTE_WINDOW" envDefault:"30s"`
	VotePolicy string        `env:"RAIDHALL_VOTE_POLICY" envDefault:"retain"`

	// DiceSeed fixes the random source, zero seeds from the clock
	DiceSeed int64 `env:"RAIDHALL_DICE_SEED" envDefault:"0"`
}

// Load reads the optional dotenv files and then the environment. Variables
// already set in the environment win over the files.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load dotenv: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values env tags cannot express
func (c *Config) Validate() error {
	switch c.LeaderboardBackend {
	case BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("invalid leaderboard backend %q", c.LeaderboardBackend)
	}
	if c.VoteWindow <= 0 {
		return fmt.Errorf("vote window must be positive, got %s", c.VoteWindow)
	}
	return nil
}
