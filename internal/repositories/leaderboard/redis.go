package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/raidhall/internal/models"
)

const (
	// Key prefixes for Redis
	leaderboardKeyPrefix = "leaderboard:"
	trackedRaidsKey      = "leaderboard:raids"

	// maxUpdateRetries bounds optimistic transaction retries
	maxUpdateRetries = 5
)

// Config holds configuration for the Redis leaderboard repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed leaderboard repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func leaderboardKey(raidID string) string {
	return fmt.Sprintf("%s%s", leaderboardKeyPrefix, raidID)
}

// Update appends an entry inside a WATCH transaction so concurrent
// completions of the same raid do not lose each other's writes
func (r *redisRepository) Update(ctx context.Context, input *UpdateInput) error {
	if err := validateUpdate(input); err != nil {
		return err
	}

	key := leaderboardKey(input.RaidID)
	txf := func(tx *redis.Tx) error {
		entries, err := readEntries(ctx, tx, key)
		if err != nil {
			return err
		}

		entries = appendEntry(entries, input.Entry)
		data, err := json.Marshal(entries)
		if err != nil {
			return fmt.Errorf("failed to marshal leaderboard: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			pipe.SAdd(ctx, trackedRaidsKey, input.RaidID)
			return nil
		})
		return err
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return fmt.Errorf("failed to update leaderboard: %w", err)
	}

	return fmt.Errorf("failed to update leaderboard: %w", redis.TxFailedErr)
}

// GetLeaderboard reads a raid's entries and ranks them
func (r *redisRepository) GetLeaderboard(ctx context.Context, input *GetLeaderboardInput) (*GetLeaderboardOutput, error) {
	if input == nil || input.RaidID == "" {
		return nil, errors.New("input and raid ID cannot be empty")
	}

	entries, err := readEntries(ctx, r.client, leaderboardKey(input.RaidID))
	if err != nil {
		return nil, err
	}

	ranked, err := rank(entries, input.Category, input.Limit)
	if err != nil {
		return nil, err
	}

	return &GetLeaderboardOutput{
		RaidID:   input.RaidID,
		Category: input.Category,
		Entries:  ranked,
	}, nil
}

// ListRaids returns the ids of raids with a leaderboard, sorted
func (r *redisRepository) ListRaids(ctx context.Context, input *ListRaidsInput) (*ListRaidsOutput, error) {
	raidIDs, err := r.client.SMembers(ctx, trackedRaidsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get tracked raids: %w", err)
	}
	sort.Strings(raidIDs)

	return &ListRaidsOutput{
		RaidIDs: raidIDs,
	}, nil
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readEntries(ctx context.Context, c getter, key string) ([]*models.LeaderboardEntry, error) {
	raw, err := c.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}

	var entries []*models.LeaderboardEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal leaderboard: %w", err)
	}
	return entries, nil
}
