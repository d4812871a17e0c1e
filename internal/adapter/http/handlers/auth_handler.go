package handlers

import (
	"errors"
	"net/http"
	"time"

	request "github.com/Diilaye/batimo/internal/adapter/http/dto/request"
	response "github.com/Diilaye/batimo/internal/adapter/http/dto/response"
	"github.com/Diilaye/batimo/internal/adapter/http/middleware"
	"github.com/Diilaye/batimo/internal/usecase"
	"github.com/Diilaye/batimo/pkg"

	"github.com/gin-gonic/gin"
)

type LoginResponse struct {
	Message   string                    `json:"message"`
	Token     string                    `json:"token"`
	ExpiresAt time.Time                 `json:"expiresAt"`
	Admin     response.AdminRefResponse `json:"admin"`
}

// AuthHandler opens and closes dashboard sessions. The token travels in an
// http-only cookie; the body copy is for API clients using a Bearer header.
type AuthHandler struct {
	usecase      usecase.IAuthUseCase
	cookieSecure bool
	now          func() time.Time
}

func NewAuthHandler(uc usecase.IAuthUseCase, cookieSecure bool) *AuthHandler {
	return &AuthHandler{usecase: uc, cookieSecure: cookieSecure, now: time.Now}
}

// Login godoc
// @Summary      Administrator login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body      request.LoginRequest  true  "Credentials"
// @Success      200      {object}  handlers.LoginResponse
// @Failure      401      {object}  pkg.HTTPError
// @Router       /admin/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var payload request.LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}

	session, err := h.usecase.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		writeError(c, mapAuthError(err))
		return
	}

	maxAge := int(session.ExpiresAt.Sub(h.now()).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, session.Token, maxAge, "/", "", h.cookieSecure, true)

	c.JSON(http.StatusOK, LoginResponse{
		Message:   "Login successful",
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		Admin:     response.AdminRefResponse{LegacyID: session.Admin.ID, ID: session.Admin.ID, Email: session.Admin.Email},
	})
}

// Logout godoc
// @Summary      Clear the session cookie
// @Tags         auth
// @Produce      json
// @Success      200  {object}  response.MessageResponse
// @Router       /admin/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.cookieSecure, true)
	c.JSON(http.StatusOK, response.NewMessage("Logged out"))
}

func mapAuthError(err error) *pkg.AppError {
	if appErr, ok := validationError(err); ok {
		return appErr
	}
	switch {
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return pkg.NewDomainErrorSimple("INVALID_CREDENTIALS", "Invalid email or password", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrMissingToken):
		return errUnauthorized
	case errors.Is(err, usecase.ErrInvalidSession):
		return pkg.NewDomainErrorSimple("INVALID_SESSION", "Invalid or expired session", http.StatusForbidden)
	default:
		return internalError(err)
	}
}
