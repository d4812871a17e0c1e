package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/Diilaye/batimo/internal/domain/entities"
	"github.com/Diilaye/batimo/internal/logger"
	"github.com/Diilaye/batimo/internal/usecase/interfaces"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const minPasswordLength = 8

var ErrAdminAlreadyExists = errors.New("an administrator with this email already exists")

// IAdminUseCase is the admin directory: listing for mention pickers and
// seeding from the command line.
type IAdminUseCase interface {
	List(ctx context.Context) ([]entities.Admin, error)
	Create(ctx context.Context, email, password string) (entities.Admin, error)
}

type AdminUseCase struct {
	repo     interfaces.IAdminRepository
	hasher   interfaces.IPasswordHasher
	validate *validator.Validate
	log      logger.Logger
}

var _ IAdminUseCase = (*AdminUseCase)(nil)

func NewAdminUseCase(repo interfaces.IAdminRepository, hasher interfaces.IPasswordHasher, log logger.Logger) *AdminUseCase {
	return &AdminUseCase{repo: repo, hasher: hasher, validate: validator.New(), log: log}
}

func (u *AdminUseCase) List(ctx context.Context) ([]entities.Admin, error) {
	return u.repo.List(ctx)
}

func (u *AdminUseCase) Create(ctx context.Context, email, password string) (entities.Admin, error) {
	email = normalizeEmail(email)
	if err := u.validate.Var(email, "required,email"); err != nil {
		return entities.Admin{}, newValidationError("a valid email is required")
	}
	if len(password) < minPasswordLength {
		return entities.Admin{}, newValidationError("password must be at least %d characters", minPasswordLength)
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return entities.Admin{}, err
	}
	admin := entities.Admin{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	created, err := u.repo.Create(ctx, admin)
	if errors.Is(err, interfaces.ErrAdminEmailTaken) {
		return entities.Admin{}, ErrAdminAlreadyExists
	}
	if err != nil {
		return entities.Admin{}, err
	}
	u.log.Info("admin created", logger.String("admin_id", created.ID), logger.String("email", created.Email))
	return created, nil
}
