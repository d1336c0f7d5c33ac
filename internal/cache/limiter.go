package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Counter is the subset of the Redis client the limiter needs.
type Counter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// WindowLimiter allows up to limit calls per key in each fixed window.
// Counters live in Redis so every replica shares them.
type WindowLimiter struct {
	client Counter
	limit  int
	window time.Duration
	prefix string
	now    func() time.Time
}

func NewWindowLimiter(client Counter, prefix string, limit int, window time.Duration) *WindowLimiter {
	return &WindowLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: prefix,
		now:    time.Now,
	}
}

// Allow counts one call for key. On a Redis error it allows the call and
// returns the error so the caller can log it.
func (l *WindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	bucket := l.now().Truncate(l.window).Unix()
	k := fmt.Sprintf("ratelimit:%s:%s:%d", l.prefix, key, bucket)

	n, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return true, fmt.Errorf("incr %s: %w", k, err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return true, fmt.Errorf("expire %s: %w", k, err)
		}
	}
	return n <= int64(l.limit), nil
}
