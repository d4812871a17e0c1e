package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Diilaye/batimo/internal/domain/entities"
	"github.com/Diilaye/batimo/internal/logger"
	"github.com/Diilaye/batimo/internal/usecase/interfaces"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingToken       = errors.New("authentication required")
	ErrInvalidSession     = errors.New("invalid or expired session")
)

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	Admin     entities.Admin
}

// IAuthUseCase is the authentication collaborator: it answers "who is the
// acting administrator" for a session token, or rejects it.
type IAuthUseCase interface {
	Login(ctx context.Context, email, password string) (Session, error)
	Authenticate(ctx context.Context, token string) (entities.Admin, error)
}

type AuthUseCase struct {
	admins interfaces.IAdminRepository
	tokens interfaces.ITokenService
	hasher interfaces.IPasswordHasher
	log    logger.Logger
}

var _ IAuthUseCase = (*AuthUseCase)(nil)

func NewAuthUseCase(admins interfaces.IAdminRepository, tokens interfaces.ITokenService, hasher interfaces.IPasswordHasher, log logger.Logger) *AuthUseCase {
	return &AuthUseCase{admins: admins, tokens: tokens, hasher: hasher, log: log}
}

func (u *AuthUseCase) Login(ctx context.Context, email, password string) (Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return Session{}, newValidationError("email and password are required")
	}

	admin, err := u.admins.GetByEmail(ctx, email)
	if err != nil {
		return Session{}, err
	}
	if admin.ID == "" || !u.hasher.Check(password, admin.PasswordHash) {
		u.log.Warn("login rejected", logger.String("email", email))
		return Session{}, ErrInvalidCredentials
	}

	token, expiresAt, err := u.tokens.Issue(admin.ID)
	if err != nil {
		return Session{}, err
	}
	u.log.Info("admin logged in", logger.String("admin_id", admin.ID))
	return Session{Token: token, ExpiresAt: expiresAt, Admin: admin}, nil
}

// Authenticate verifies the token and that its administrator still exists.
func (u *AuthUseCase) Authenticate(ctx context.Context, token string) (entities.Admin, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return entities.Admin{}, ErrMissingToken
	}

	adminID, err := u.tokens.Parse(token)
	if err != nil {
		return entities.Admin{}, ErrInvalidSession
	}
	admin, err := u.admins.GetByID(ctx, adminID)
	if err != nil {
		return entities.Admin{}, err
	}
	if admin.ID == "" {
		return entities.Admin{}, ErrInvalidSession
	}
	return admin, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
