package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// FixedWindowLimiter counts attempts per key in fixed windows backed by
// Redis, so the throttle survives restarts and is shared across replicas.
// Key format: throttle:<name>:<key>:<window_index>
type FixedWindowLimiter struct {
	client *redis.Client
	name   string
	limit  int64
	window time.Duration
}

// NewFixedWindowLimiter creates a limiter allowing limit attempts per window.
func NewFixedWindowLimiter(client *redis.Client, name string, limit int, window time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{client: client, name: name, limit: int64(limit), window: window}
}

// Allow records one attempt for key and reports whether it is within the
// window's budget.
func (l *FixedWindowLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := l.key(key, time.Now())

	pipe := l.client.TxPipeline()
	count := pipe.Incr(ctx, k)
	pipe.Expire(ctx, k, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("throttle incr: %w", err)
	}
	return count.Val() <= l.limit, nil
}

func (l *FixedWindowLimiter) key(key string, now time.Time) string {
	return fmt.Sprintf("throttle:%s:%s:%d", l.name, key, now.UnixNano()/int64(l.window))
}
