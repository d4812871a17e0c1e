package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Diilaye/batimo/internal/usecase"
	"github.com/Diilaye/batimo/pkg"

	"github.com/gin-gonic/gin"
)

const (
	// SessionCookie is the http-only cookie carrying the session token.
	SessionCookie = "token"

	adminIDKey = "admin_id"
)

// RequireAdmin rejects the request unless it carries a session token for an
// existing administrator, then exposes that administrator's id to handlers.
// Missing credentials yield 401, an invalid or expired session 403.
func RequireAdmin(auth usecase.IAuthUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, err := auth.Authenticate(c.Request.Context(), sessionToken(c))
		if err != nil {
			appErr := mapSessionError(err)
			if appErr.HTTPStatus >= http.StatusInternalServerError {
				_ = c.Error(appErr)
			}
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		SetAdminID(c, admin.ID)
		c.Next()
	}
}

func SetAdminID(c *gin.Context, id string) {
	c.Set(adminIDKey, id)
}

// CurrentAdminID returns the id stored by RequireAdmin.
func CurrentAdminID(c *gin.Context) (string, bool) {
	id := c.GetString(adminIDKey)
	return id, id != ""
}

// sessionToken prefers the cookie and falls back to a Bearer header.
func sessionToken(c *gin.Context) string {
	if token, err := c.Cookie(SessionCookie); err == nil && token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return ""
}

func mapSessionError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrMissingToken):
		return pkg.NewDomainErrorSimple("UNAUTHORIZED", "Authentication required", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrInvalidSession):
		return pkg.NewDomainErrorSimple("INVALID_SESSION", "Invalid or expired session", http.StatusForbidden)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
