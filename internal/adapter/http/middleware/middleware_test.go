package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Diilaye/batimo/internal/adapter/http/handlers/mocks"
	"github.com/Diilaye/batimo/internal/domain/entities"
	"github.com/Diilaye/batimo/internal/infrastructure/cache"
	"github.com/Diilaye/batimo/internal/logger"
	"github.com/Diilaye/batimo/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newAuthRouter(auth usecase.IAuthUseCase) *gin.Engine {
	r := gin.New()
	r.GET("/private", RequireAdmin(auth), func(c *gin.Context) {
		id, _ := CurrentAdminID(c)
		c.String(http.StatusOK, id)
	})
	return r
}

func TestRequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		auth := mocks.NewMockIAuthUseCase(ctrl)
		auth.EXPECT().Authenticate(gomock.Any(), "").Return(entities.Admin{}, usecase.ErrMissingToken)

		w := httptest.NewRecorder()
		newAuthRouter(auth).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})

	t.Run("invalid session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		auth := mocks.NewMockIAuthUseCase(ctrl)
		auth.EXPECT().Authenticate(gomock.Any(), "forged").Return(entities.Admin{}, usecase.ErrInvalidSession)

		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "forged"})
		w := httptest.NewRecorder()
		newAuthRouter(auth).ServeHTTP(w, req)
		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("cookie session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		auth := mocks.NewMockIAuthUseCase(ctrl)
		auth.EXPECT().Authenticate(gomock.Any(), "good").Return(entities.Admin{ID: "admin-1"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "good"})
		w := httptest.NewRecorder()
		newAuthRouter(auth).ServeHTTP(w, req)
		if w.Code != http.StatusOK || w.Body.String() != "admin-1" {
			t.Fatalf("expected 200 admin-1, got %d %q", w.Code, w.Body.String())
		}
	})

	t.Run("bearer header", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		auth := mocks.NewMockIAuthUseCase(ctrl)
		auth.EXPECT().Authenticate(gomock.Any(), "abc").Return(entities.Admin{ID: "admin-2"}, nil)

		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Bearer abc")
		w := httptest.NewRecorder()
		newAuthRouter(auth).ServeHTTP(w, req)
		if w.Code != http.StatusOK || w.Body.String() != "admin-2" {
			t.Fatalf("expected 200 admin-2, got %d %q", w.Code, w.Body.String())
		}
	})

	t.Run("store failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		auth := mocks.NewMockIAuthUseCase(ctrl)
		auth.EXPECT().Authenticate(gomock.Any(), "abc").Return(entities.Admin{}, errors.New("dynamodb down"))

		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Bearer abc")
		w := httptest.NewRecorder()
		newAuthRouter(auth).ServeHTTP(w, req)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (cache.Decision, error) {
	return cache.Decision{}, errors.New("redis: connection refused")
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("blocks after burst", func(t *testing.T) {
		r := gin.New()
		r.POST("/api/quote", RateLimit(cache.NewMemoryLimiter(1, 1), logger.NewNop()), func(c *gin.Context) {
			c.Status(http.StatusCreated)
		})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/quote", nil))
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}

		w = httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/quote", nil))
		if w.Code != http.StatusTooManyRequests {
			t.Fatalf("expected 429, got %d", w.Code)
		}
		if w.Header().Get("Retry-After") == "" || w.Header().Get("X-RateLimit-Remaining") != "0" {
			t.Fatalf("missing rate limit headers: %v", w.Header())
		}
	})

	t.Run("fails open", func(t *testing.T) {
		r := gin.New()
		r.POST("/api/contact", RateLimit(failingLimiter{}, logger.NewNop()), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/contact", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS("http://localhost:3010"))
	r.GET("/api/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/api/ping", nil)
	req.Header.Set("Origin", "http://localhost:3010")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3010" {
		t.Fatalf("unexpected allow origin: %q", w.Header().Get("Access-Control-Allow-Origin"))
	}
	if w.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Fatalf("expected credentials to be allowed")
	}
}

func TestRecoveryAndLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger(logger.NewNop()), Recovery(logger.NewNop()))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}
