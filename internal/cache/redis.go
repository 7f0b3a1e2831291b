package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisStore implements Store using Redis
type redisStore struct {
	client    *redis.Client
	keyPrefix string
	logger    *slog.Logger
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL       string
	KeyPrefix string
}

// NewRedisStore creates a new Redis-backed store
func NewRedisStore(cfg RedisConfig, logger *slog.Logger) (Store, error) {
	// Parse Redis URL
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("connected to Redis",
		slog.String("addr", opts.Addr),
		slog.String("key_prefix", cfg.KeyPrefix),
	)

	return &redisStore{
		client:    client,
		keyPrefix: cfg.KeyPrefix,
		logger:    logger,
	}, nil
}

// Get reads a cached value
func (s *redisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, s.keyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read cache key: %w", err)
	}
	return val, true, nil
}

// Set writes a cached value with expiry
func (s *redisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.keyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cache key: %w", err)
	}

	s.logger.Debug("cache entry stored",
		slog.String("key", key),
		slog.Duration("ttl", ttl),
	)

	return nil
}

// Close closes the Redis connection
func (s *redisStore) Close() error {
	s.logger.Info("closing Redis connection")
	return s.client.Close()
}

// Health checks if Redis is healthy
func (s *redisStore) Health(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis health check failed: %w", err)
	}
	return nil
}

// Name identifies the backend
func (s *redisStore) Name() string {
	return "redis"
}
