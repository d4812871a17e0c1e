package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Diilaye/batimo/internal/domain/entities"
	"github.com/Diilaye/batimo/internal/logger"
	"github.com/Diilaye/batimo/internal/usecase/interfaces"
	mock_interfaces "github.com/Diilaye/batimo/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type authMocks struct {
	admins *mock_interfaces.MockIAdminRepository
	tokens *mock_interfaces.MockITokenService
	hasher *mock_interfaces.MockIPasswordHasher
	uc     *AuthUseCase
}

func newAuthMocks(t *testing.T) authMocks {
	ctrl := gomock.NewController(t)
	m := authMocks{
		admins: mock_interfaces.NewMockIAdminRepository(ctrl),
		tokens: mock_interfaces.NewMockITokenService(ctrl),
		hasher: mock_interfaces.NewMockIPasswordHasher(ctrl),
	}
	m.uc = NewAuthUseCase(m.admins, m.tokens, m.hasher, logger.NewNop())
	return m
}

func TestAuthUseCase_Login(t *testing.T) {
	admin := entities.Admin{ID: "a1", Email: "ops@batimo.sn", PasswordHash: "hash"}

	t.Run("missing credentials", func(t *testing.T) {
		m := newAuthMocks(t)
		if _, err := m.uc.Login(context.Background(), "", "secret"); !errors.Is(err, ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		m := newAuthMocks(t)
		m.admins.EXPECT().GetByEmail(gomock.Any(), "ghost@batimo.sn").Return(entities.Admin{}, nil)

		if _, err := m.uc.Login(context.Background(), "Ghost@Batimo.sn", "secret"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		m := newAuthMocks(t)
		m.admins.EXPECT().GetByEmail(gomock.Any(), admin.Email).Return(admin, nil)
		m.hasher.EXPECT().Check("wrong", "hash").Return(false)

		if _, err := m.uc.Login(context.Background(), admin.Email, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		m := newAuthMocks(t)
		exp := time.Now().Add(time.Hour)
		m.admins.EXPECT().GetByEmail(gomock.Any(), admin.Email).Return(admin, nil)
		m.hasher.EXPECT().Check("secret", "hash").Return(true)
		m.tokens.EXPECT().Issue("a1").Return("tok", exp, nil)

		s, err := m.uc.Login(context.Background(), " ops@batimo.sn ", "secret")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Token != "tok" || !s.ExpiresAt.Equal(exp) || s.Admin.ID != "a1" {
			t.Fatalf("unexpected session: %+v", s)
		}
	})
}

func TestAuthUseCase_Authenticate(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		m := newAuthMocks(t)
		if _, err := m.uc.Authenticate(context.Background(), ""); !errors.Is(err, ErrMissingToken) {
			t.Fatalf("expected ErrMissingToken, got %v", err)
		}
	})

	t.Run("invalid token", func(t *testing.T) {
		m := newAuthMocks(t)
		m.tokens.EXPECT().Parse("bad").Return("", interfaces.ErrInvalidToken)

		if _, err := m.uc.Authenticate(context.Background(), "bad"); !errors.Is(err, ErrInvalidSession) {
			t.Fatalf("expected ErrInvalidSession, got %v", err)
		}
	})

	t.Run("admin no longer exists", func(t *testing.T) {
		m := newAuthMocks(t)
		m.tokens.EXPECT().Parse("tok").Return("a1", nil)
		m.admins.EXPECT().GetByID(gomock.Any(), "a1").Return(entities.Admin{}, nil)

		if _, err := m.uc.Authenticate(context.Background(), "tok"); !errors.Is(err, ErrInvalidSession) {
			t.Fatalf("expected ErrInvalidSession, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		m := newAuthMocks(t)
		m.tokens.EXPECT().Parse("tok").Return("a1", nil)
		m.admins.EXPECT().GetByID(gomock.Any(), "a1").Return(entities.Admin{ID: "a1"}, nil)

		a, err := m.uc.Authenticate(context.Background(), "tok")
		if err != nil || a.ID != "a1" {
			t.Fatalf("unexpected result: %+v %v", a, err)
		}
	})
}
