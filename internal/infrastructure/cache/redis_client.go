package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/Diilaye/batimo/internal/config"
	"github.com/Diilaye/batimo/internal/logger"

	"github.com/redis/go-redis/v9"
)

const (
	redisPingTimeout   = 2 * time.Second
	redisRetryInterval = 500 * time.Millisecond
	redisMaxWait       = 5 * time.Second
)

// NewRedisClient connects to Redis, retrying with exponential backoff until
// cfg.ConnectTimeout is spent.
func NewRedisClient(cfg config.RedisConfig, log logger.Logger) (*redis.Client, error) {
	if cfg.ConnectTimeout <= 0 {
		return nil, fmt.Errorf("REDIS_CONNECT_TIMEOUT must be > 0, got %v", cfg.ConnectTimeout)
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := pingWithRetry(client, cfg.Addr, cfg.ConnectTimeout, log); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func pingWithRetry(client *redis.Client, addr string, total time.Duration, log logger.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), total)
	defer cancel()

	log.Info("connecting to redis", logger.String("addr", addr), logger.Duration("timeout", total))
	wait := redisRetryInterval
	for attempt := 1; ; attempt++ {
		pingCtx, pingCancel := context.WithTimeout(ctx, redisPingTimeout)
		err := client.Ping(pingCtx).Err()
		pingCancel()
		if err == nil {
			if attempt > 1 {
				log.Warn("connected to redis after retry", logger.String("addr", addr), logger.Int("attempts", attempt))
			} else {
				log.Info("connected to redis", logger.String("addr", addr))
			}
			return nil
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Error("redis unavailable", logger.String("addr", addr), logger.Int("attempts", attempt), logger.Error(err))
			return fmt.Errorf("redis unavailable at %s after %d attempts (timeout: %v): %w", addr, attempt, total, err)
		case <-timer.C:
			log.Warn("redis connection failed, retrying",
				logger.String("addr", addr),
				logger.Int("attempt", attempt),
				logger.Duration("next_retry_in", wait),
				logger.Error(err))
			wait = min(wait*2, redisMaxWait)
		}
	}
}
