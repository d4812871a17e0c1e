package handlers

import (
	"errors"
	"net/http"

	"github.com/Diilaye/batimo/internal/usecase"
	"github.com/Diilaye/batimo/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request payload", http.StatusBadRequest)
	errUnauthorized   = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Authentication required", http.StatusUnauthorized)
)

// writeError renders appErr. Server-side failures are attached to the gin
// context so the request logger records the wrapped cause.
func writeError(c *gin.Context, appErr *pkg.AppError) {
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		_ = c.Error(appErr)
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func validationError(err error) (*pkg.AppError, bool) {
	var ve *usecase.ValidationError
	if errors.As(err, &ve) {
		return pkg.NewDomainError("VALIDATION_ERROR", ve.Message, err, http.StatusBadRequest), true
	}
	return nil, false
}

func internalError(err error) *pkg.AppError {
	return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
}
