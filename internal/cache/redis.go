package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"nflprops/analyzer/internal/metrics"
)

// ErrCacheMiss is returned when a key is not present in the cache.
var ErrCacheMiss = fmt.Errorf("cache miss")

// Config holds Redis connection settings
type Config struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// RedisCache wraps a Redis client for caching API responses
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new Redis cache client and verifies connectivity
func NewRedisCache(cfg Config) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisCache{client: client}, nil
}

// Get retrieves a value from the cache and unmarshals it into dest.
// Returns ErrCacheMiss when the key does not exist.
func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) error {
	start := time.Now()

	data, err := c.client.Get(ctx, key).Bytes()
	metrics.RecordCacheOperation("get", time.Since(start).Seconds())

	if err == redis.Nil {
		metrics.RecordCacheMiss()
		return ErrCacheMiss
	}
	if err != nil {
		metrics.RecordError("cache", "get_failed")
		return fmt.Errorf("failed to get key %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		metrics.RecordError("cache", "unmarshal_failed")
		return fmt.Errorf("failed to unmarshal cached value for %s: %w", key, err)
	}

	metrics.RecordCacheHit()
	return nil
}

// Set marshals a value to JSON and stores it with the given TTL
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	start := time.Now()

	data, err := json.Marshal(value)
	if err != nil {
		metrics.RecordError("cache", "marshal_failed")
		return fmt.Errorf("failed to marshal value for %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		metrics.RecordError("cache", "set_failed")
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}

	metrics.RecordCacheOperation("set", time.Since(start).Seconds())
	return nil
}

// Delete removes a key from the cache
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Health checks Redis connectivity
func (c *RedisCache) Health(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// statKey builds the cache key for a player stat history
func statKey(player, statType string, numGames int) string {
	return fmt.Sprintf("stats:%s:%s:%d", player, statType, numGames)
}

// statsFetcher is the upstream the cached provider falls through to.
type statsFetcher interface {
	RecentGames(ctx context.Context, player, statType string, numGames int) ([]float64, error)
}

// CachedStats wraps a stats provider with read-through Redis caching.
// A nil cache disables caching and passes every call through.
type CachedStats struct {
	upstream statsFetcher
	cache    *RedisCache
	ttl      time.Duration
}

// NewCachedStats creates a read-through caching stats provider
func NewCachedStats(upstream statsFetcher, cache *RedisCache, ttl time.Duration) *CachedStats {
	return &CachedStats{upstream: upstream, cache: cache, ttl: ttl}
}

// RecentGames returns the cached stat history when fresh, otherwise fetches
// from the upstream provider and caches the result.
func (s *CachedStats) RecentGames(ctx context.Context, player, statType string, numGames int) ([]float64, error) {
	if s.cache == nil {
		return s.upstream.RecentGames(ctx, player, statType, numGames)
	}

	key := statKey(player, statType, numGames)

	var cached []float64
	err := s.cache.Get(ctx, key, &cached)
	if err == nil {
		log.Debug().Str("key", key).Msg("Stat history served from cache")
		return cached, nil
	}
	if err != ErrCacheMiss {
		log.Warn().Err(err).Str("key", key).Msg("Cache read failed, falling through")
	}

	history, err := s.upstream.RecentGames(ctx, player, statType, numGames)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, history, s.ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to cache stat history")
	}

	return history, nil
}
