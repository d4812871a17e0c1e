package handlers

import (
	"errors"
	"net/http"

	request "github.com/Diilaye/batimo/internal/adapter/http/dto/request"
	response "github.com/Diilaye/batimo/internal/adapter/http/dto/response"
	"github.com/Diilaye/batimo/internal/adapter/http/middleware"
	"github.com/Diilaye/batimo/internal/usecase"
	"github.com/Diilaye/batimo/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidStatusPayload = pkg.NewDomainErrorSimple("INVALID_STATUS", "status must be one of pending, reviewed, accepted, rejected", http.StatusBadRequest)

// QuoteHandler exposes the public quote form and the back-office quote inbox.
type QuoteHandler struct {
	usecase usecase.IQuoteUseCase
}

func NewQuoteHandler(uc usecase.IQuoteUseCase) *QuoteHandler {
	return &QuoteHandler{usecase: uc}
}

// SubmitQuote godoc
// @Summary      Submit a quote request
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Param        payload  body      request.QuoteRequest  true  "Quote request"
// @Success      201      {object}  response.QuoteResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      429      {object}  pkg.HTTPError
// @Router       /quote [post]
func (h *QuoteHandler) SubmitQuote(c *gin.Context) {
	var payload request.QuoteRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}

	quote, err := h.usecase.Submit(c.Request.Context(), payload.ToSubmission())
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}

	c.JSON(http.StatusCreated, response.FromQuote(quote))
}

// ListQuotes godoc
// @Summary      List quotes, newest first
// @Tags         quotes
// @Produce      json
// @Security     Bearer
// @Success      200  {array}   response.QuoteResponse
// @Failure      401  {object}  pkg.HTTPError
// @Router       /quotes [get]
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	views, err := h.usecase.List(c.Request.Context())
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromQuoteViews(views))
}

// GetQuote godoc
// @Summary      Get a quote with resolved comments
// @Tags         quotes
// @Produce      json
// @Security     Bearer
// @Param        id   path      string  true  "Quote id"
// @Success      200  {object}  response.QuoteResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /quotes/{id} [get]
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	view, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromQuoteView(view))
}

// UpdateStatus godoc
// @Summary      Change the status of a quote
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id       path      string                  true  "Quote id"
// @Param        payload  body      request.StatusRequest   true  "New status"
// @Success      200      {object}  response.QuoteResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      404      {object}  pkg.HTTPError
// @Router       /quotes/{id}/status [patch]
func (h *QuoteHandler) UpdateStatus(c *gin.Context) {
	var payload request.StatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidStatusPayload)
		return
	}

	view, err := h.usecase.ChangeStatus(c.Request.Context(), c.Param("id"), payload.Status)
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromQuoteView(view))
}

// AddComment godoc
// @Summary      Add an internal comment to a quote
// @Tags         quotes
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id       path      string                  true  "Quote id"
// @Param        payload  body      request.CommentRequest  true  "Comment"
// @Success      200      {object}  response.QuoteResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      404      {object}  pkg.HTTPError
// @Router       /quotes/{id}/comments [post]
func (h *QuoteHandler) AddComment(c *gin.Context) {
	adminID, ok := middleware.CurrentAdminID(c)
	if !ok {
		writeError(c, errUnauthorized)
		return
	}

	var payload request.CommentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}

	view, err := h.usecase.AddComment(c.Request.Context(), c.Param("id"), adminID, payload.Content, payload.Mentions)
	if err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromQuoteView(view))
}

// DeleteComment godoc
// @Summary      Remove a comment from a quote
// @Tags         quotes
// @Produce      json
// @Security     Bearer
// @Param        id          path      string  true  "Quote id"
// @Param        comment_id  path      string  true  "Comment id"
// @Success      200         {object}  response.MessageResponse
// @Failure      404         {object}  pkg.HTTPError
// @Failure      409         {object}  pkg.HTTPError
// @Router       /quotes/{id}/comments/{comment_id} [delete]
func (h *QuoteHandler) DeleteComment(c *gin.Context) {
	if err := h.usecase.DeleteComment(c.Request.Context(), c.Param("id"), c.Param("comment_id")); err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.NewMessage("Comment deleted"))
}

// DeleteQuote godoc
// @Summary      Delete a quote
// @Tags         quotes
// @Produce      json
// @Security     Bearer
// @Param        id   path      string  true  "Quote id"
// @Success      200  {object}  response.MessageResponse
// @Router       /quotes/{id} [delete]
func (h *QuoteHandler) DeleteQuote(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, mapQuoteError(err))
		return
	}
	c.JSON(http.StatusOK, response.NewMessage("Quote deleted"))
}

func mapQuoteError(err error) *pkg.AppError {
	if appErr, ok := validationError(err); ok {
		return appErr
	}
	switch {
	case errors.Is(err, usecase.ErrInvalidQuoteID), errors.Is(err, usecase.ErrInvalidCommentID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrQuoteNotFound):
		return pkg.NewDomainErrorSimple("QUOTE_NOT_FOUND", "Quote not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrMissingAuthor):
		return errUnauthorized
	case errors.Is(err, usecase.ErrQuoteBusy):
		return pkg.NewDomainErrorSimple("QUOTE_BUSY", "Quote is being modified, retry later", http.StatusConflict)
	default:
		return internalError(err)
	}
}
