package main

import (
	"context"
	"time"

	"github.com/Diilaye/batimo/internal/adapter/http/middleware"
	"github.com/Diilaye/batimo/internal/adapter/persistence/memory"
	"github.com/Diilaye/batimo/internal/adapter/persistence/repository"
	"github.com/Diilaye/batimo/internal/config"
	"github.com/Diilaye/batimo/internal/infrastructure/cache"
	"github.com/Diilaye/batimo/internal/infrastructure/database"
	"github.com/Diilaye/batimo/internal/logger"
	"github.com/Diilaye/batimo/internal/usecase/interfaces"
)

type stores struct {
	quotes   interfaces.IQuoteRepository
	admins   interfaces.IAdminRepository
	messages interfaces.IMessageRepository
	services interfaces.IServiceRepository
}

func openStores(ctx context.Context, cfg *config.Config, log logger.Logger) (stores, error) {
	if cfg.StoreDriver == config.StoreDriverMemory {
		log.Warn("using in-memory store, data is lost on restart")
		return stores{
			quotes:   memory.NewQuoteRepository(),
			admins:   memory.NewAdminRepository(),
			messages: memory.NewMessageRepository(),
			services: memory.NewServiceRepository(),
		}, nil
	}

	ddb, err := database.ConnectDynamoDB(ctx, cfg.DynamoDB)
	if err != nil {
		return stores{}, err
	}
	if cfg.DynamoDB.AutoCreate {
		if err := database.EnsureTables(ctx, ddb, cfg.DynamoDB, log); err != nil {
			return stores{}, err
		}
	}
	return stores{
		quotes:   repository.NewQuoteDynamoRepository(ddb, cfg.DynamoDB.QuotesTable),
		admins:   repository.NewAdminDynamoRepository(ddb, cfg.DynamoDB.AdminsTable),
		messages: repository.NewMessageDynamoRepository(ddb, cfg.DynamoDB.MessagesTable),
		services: repository.NewServiceDynamoRepository(ddb, cfg.DynamoDB.ServicesTable),
	}, nil
}

// newLimiter prefers a shared Redis window so every API replica counts
// against the same budget.
func newLimiter(cfg *config.Config, log logger.Logger) (middleware.Limiter, func(), error) {
	if cfg.Redis.Addr == "" {
		log.Info("rate limiting in process", logger.Int("burst", cfg.RateLimit.Burst), logger.Int("per_minute", cfg.RateLimit.PerMinute))
		return cache.NewMemoryLimiter(cfg.RateLimit.Burst, cfg.RateLimit.PerMinute), func() {}, nil
	}

	client, err := cache.NewRedisClient(cfg.Redis, log)
	if err != nil {
		return nil, nil, err
	}
	limiter := cache.NewRedisLimiter(client, "batimo:ratelimit", cfg.RateLimit.PerMinute, time.Minute)
	return limiter, func() { _ = client.Close() }, nil
}
