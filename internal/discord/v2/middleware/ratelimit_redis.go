package middleware

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	apperr "github.com/KirkDiggler/guild-verification-bot/internal/errors"
)

const rateLimitKeyPrefix = "ratelimit:"

// RedisRateLimitStore shares fixed-window counters across bot replicas
type RedisRateLimitStore struct {
	client redis.UniversalClient
}

// NewRedisRateLimitStore creates a store on the given client
func NewRedisRateLimitStore(client redis.UniversalClient) *RedisRateLimitStore {
	return &RedisRateLimitStore{client: client}
}

// Increment bumps the counter and starts the window on the first hit
func (s *RedisRateLimitStore) Increment(ctx context.Context, key string, window time.Duration) (int, error) {
	if key == "" {
		return 0, apperr.InvalidArgument("rate limit key is required")
	}

	redisKey := rateLimitKeyPrefix + key

	var incr *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.ExpireNX(ctx, redisKey, window)
		return nil
	})
	if err != nil {
		return 0, apperr.WrapWithCode(err, apperr.CodeUnavailable, "failed to increment rate limit").
			WithMeta("key", key)
	}

	return int(incr.Val()), nil
}

// Reset resets the counter for a key
func (s *RedisRateLimitStore) Reset(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, rateLimitKeyPrefix+key).Err(); err != nil {
		return apperr.WrapWithCode(err, apperr.CodeUnavailable, "failed to reset rate limit").
			WithMeta("key", key)
	}
	return nil
}
