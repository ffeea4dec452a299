package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimiter decides whether one more request may pass for key.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisRateLimiter is a fixed-window counter shared by every instance through Redis.
// A nil client disables limiting.
type RedisRateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewRedisRateLimiter(client *redis.Client, limit int, window time.Duration) *RedisRateLimiter {
	if window < time.Second {
		window = time.Second
	}
	return &RedisRateLimiter{
		client: client,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Allow increments the counter of the current window. Redis failures return
// the error together with true so callers can fail open.
func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if l.client == nil || l.limit <= 0 {
		return true, nil
	}

	redisKey := l.key(key)
	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return true, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window+time.Second).Err(); err != nil {
			return true, fmt.Errorf("failed to set rate limit ttl: %w", err)
		}
	}

	return count <= int64(l.limit), nil
}

func (l *RedisRateLimiter) key(identifier string) string {
	bucket := l.now().Unix() / int64(l.window.Seconds())
	return fmt.Sprintf("helpdesk:ratelimit:%s:%d", identifier, bucket)
}
