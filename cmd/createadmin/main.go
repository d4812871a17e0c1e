// Command createadmin seeds a back-office administrator.
//
//	createadmin -email admin@batimo.sn -password 'change-me-now'
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Diilaye/batimo/internal/adapter/persistence/repository"
	"github.com/Diilaye/batimo/internal/config"
	"github.com/Diilaye/batimo/internal/infrastructure/auth"
	"github.com/Diilaye/batimo/internal/infrastructure/database"
	"github.com/Diilaye/batimo/internal/logger"
	"github.com/Diilaye/batimo/internal/usecase"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	email := flag.String("email", os.Getenv("ADMIN_EMAIL"), "administrator email")
	password := flag.String("password", os.Getenv("ADMIN_PASSWORD"), "administrator password")
	flag.Parse()

	log, err := logger.New("info", true)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := run(*email, *password, log); err != nil {
		log.Error("createadmin failed", logger.Error(err))
		os.Exit(1)
	}
}

func run(email, password string, log logger.Logger) error {
	cfg, err := config.NewDynamoDBConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	ddb, err := database.ConnectDynamoDB(ctx, *cfg)
	if err != nil {
		return err
	}
	if cfg.AutoCreate {
		if err := database.EnsureTables(ctx, ddb, *cfg, log); err != nil {
			return err
		}
	}

	admins := usecase.NewAdminUseCase(repository.NewAdminDynamoRepository(ddb, cfg.AdminsTable), auth.NewBcryptHasher(), log)
	created, err := admins.Create(ctx, email, password)
	if errors.Is(err, usecase.ErrAdminAlreadyExists) {
		log.Warn("administrator already exists, nothing to do", logger.String("email", email))
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("administrator %s created with id %s\n", created.Email, created.ID)
	return nil
}
