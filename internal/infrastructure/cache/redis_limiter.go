package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a fixed-window counter shared by every API instance.
// Each window has its own key, which expires with the window.
type RedisLimiter struct {
	client redis.Cmdable
	prefix string
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewRedisLimiter(client redis.Cmdable, prefix string, limit int, window time.Duration) *RedisLimiter {
	if limit < 1 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RedisLimiter{client: client, prefix: prefix, limit: limit, window: window, now: time.Now}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	now := l.now()
	start := now.Truncate(l.window)
	redisKey := fmt.Sprintf("%s:%s:%d", l.prefix, key, start.Unix())

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, errors.Wrap(err, "rate limit counter")
	}

	return decideWindow(incr.Val(), l.limit, start.Add(l.window), now), nil
}

func decideWindow(count int64, limit int, windowEnd, now time.Time) Decision {
	if count <= int64(limit) {
		return Decision{Allowed: true, Limit: limit, Remaining: limit - int(count)}
	}
	retry := windowEnd.Sub(now)
	if retry < time.Second {
		retry = time.Second
	}
	return Decision{Limit: limit, RetryAfter: retry.Round(time.Second)}
}
