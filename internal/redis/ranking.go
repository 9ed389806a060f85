package redis

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/emellop-senai/arena-senai-forca/internal/config"
	"github.com/emellop-senai/arena-senai-forca/internal/domain"
)

// rankingKey is the sorted set holding every user's score, keyed by username
const rankingKey = "forca:ranking"

// RankingCache provides Redis-based ranking reads. Postgres stays the
// system of record; the cache only mirrors usuarios.score for fast top-N
// queries and is rebuilt periodically by the sync worker.
type RankingCache struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRankingCache creates a new Redis ranking cache
func NewRankingCache(cfg *config.RedisConfig, logger *slog.Logger) (*RankingCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	// Test connection
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}

	return &RankingCache{
		client: client,
		logger: logger,
	}, nil
}

// Close closes the Redis connection
func (c *RankingCache) Close() error {
	return c.client.Close()
}

// Client returns the underlying Redis client
func (c *RankingCache) Client() *redis.Client {
	return c.client
}

// IncrementScore adds delta to the user's cached score and returns the new value
func (c *RankingCache) IncrementScore(ctx context.Context, username string, delta int64) (int64, error) {
	newScore, err := c.client.ZIncrBy(ctx, rankingKey, float64(delta), username).Result()
	if err != nil {
		return 0, fmt.Errorf("incrementing score: %w", err)
	}
	return int64(newScore), nil
}

// SetScore sets the user's cached score
func (c *RankingCache) SetScore(ctx context.Context, username string, score int64) error {
	err := c.client.ZAdd(ctx, rankingKey, redis.Z{
		Score:  float64(score),
		Member: username,
	}).Err()
	if err != nil {
		return fmt.Errorf("setting score: %w", err)
	}
	return nil
}

// TopN returns the n highest-scoring users, best first
func (c *RankingCache) TopN(ctx context.Context, n int) ([]domain.RankingEntry, error) {
	results, err := c.client.ZRevRangeWithScores(ctx, rankingKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("getting top n: %w", err)
	}

	entries := make([]domain.RankingEntry, len(results))
	for i, result := range results {
		entries[i] = domain.RankingEntry{
			Username: result.Member.(string),
			Score:    int64(result.Score),
		}
	}
	return entries, nil
}

// Count returns how many users are in the cache
func (c *RankingCache) Count(ctx context.Context) (int64, error) {
	count, err := c.client.ZCard(ctx, rankingKey).Result()
	if err != nil {
		return 0, fmt.Errorf("getting count: %w", err)
	}
	return count, nil
}

// Rebuild replaces the cached ranking with the given scores atomically: the
// new set is written under a staging key and renamed over the live one.
func (c *RankingCache) Rebuild(ctx context.Context, scores map[string]int64) error {
	stagingKey := rankingKey + ":staging"

	pipe := c.client.Pipeline()
	pipe.Del(ctx, stagingKey)
	for username, score := range scores {
		pipe.ZAdd(ctx, stagingKey, redis.Z{
			Score:  float64(score),
			Member: username,
		})
	}
	if len(scores) > 0 {
		pipe.Rename(ctx, stagingKey, rankingKey)
	} else {
		pipe.Del(ctx, rankingKey)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("rebuilding ranking cache: %w", err)
	}

	c.logger.Info("ranking cache rebuilt", "users", len(scores))
	return nil
}
