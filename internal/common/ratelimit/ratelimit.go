package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter is a keyed fixed-window rate limiter. CheckAndRecord returns true
// when the caller identified by key is still within its allowance for the
// window, recording the attempt as a side effect.
type Limiter interface {
	CheckAndRecord(ctx context.Context, key string, window time.Duration) (bool, error)
}

type redisLimiter struct {
	rdb    *redis.Client
	prefix string
	max    int
}

func NewRedisLimiter(rdb *redis.Client, prefix string, max int) Limiter {
	return &redisLimiter{rdb: rdb, prefix: prefix, max: max}
}

func (l *redisLimiter) CheckAndRecord(ctx context.Context, key string, window time.Duration) (bool, error) {
	redisKey := l.prefix + ":" + key

	count, err := l.rdb.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("redisLimiter.CheckAndRecord incr: %w", err)
	}
	if count == 1 {
		// First hit in this window owns the expiry. The key self-evicts,
		// so idle callers never accumulate state.
		if err := l.rdb.Expire(ctx, redisKey, window).Err(); err != nil {
			return false, fmt.Errorf("redisLimiter.CheckAndRecord expire: %w", err)
		}
	}
	return count <= int64(l.max), nil
}
