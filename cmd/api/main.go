package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/Diilaye/batimo/docs"
	"github.com/Diilaye/batimo/internal/adapter/http/routes"
	"github.com/Diilaye/batimo/internal/config"
	"github.com/Diilaye/batimo/internal/infrastructure/auth"
	"github.com/Diilaye/batimo/internal/logger"
	"github.com/Diilaye/batimo/internal/usecase"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
)

// @title           Batimo API
// @version         1.0
// @description     Quote requests, contact inbox and services catalog for the Batimo dashboard.

// @host localhost:3011

// @BasePath  /api

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogPretty)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("api stopped with error", logger.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}

	limiter, closeLimiter, err := newLimiter(cfg, log)
	if err != nil {
		return err
	}
	defer closeLimiter()

	tokens, err := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL)
	if err != nil {
		return err
	}
	hasher := auth.NewBcryptHasher()

	gin.SetMode(cfg.GinMode)
	router, err := routes.NewRouter(routes.Dependencies{
		Quotes:       usecase.NewQuoteUseCase(stores.quotes, stores.admins, log),
		Auth:         usecase.NewAuthUseCase(stores.admins, tokens, hasher, log),
		Admins:       usecase.NewAdminUseCase(stores.admins, hasher, log),
		Messages:     usecase.NewMessageUseCase(stores.messages, log),
		Services:     usecase.NewServiceUseCase(stores.services, log),
		Limiter:      limiter,
		Log:          log,
		CORSOrigin:   cfg.CORSOrigin,
		CookieSecure: cfg.Auth.CookieSecure,
	})
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()
	log.Info("server started", logger.String("addr", cfg.Addr()), logger.String("store", cfg.StoreDriver))

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
