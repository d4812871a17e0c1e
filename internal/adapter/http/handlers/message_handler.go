package handlers

import (
	"errors"
	"net/http"

	request "github.com/Diilaye/batimo/internal/adapter/http/dto/request"
	response "github.com/Diilaye/batimo/internal/adapter/http/dto/response"
	"github.com/Diilaye/batimo/internal/usecase"
	"github.com/Diilaye/batimo/pkg"

	"github.com/gin-gonic/gin"
)

// MessageHandler serves the public contact form and the dashboard inbox.
type MessageHandler struct {
	usecase usecase.IMessageUseCase
}

func NewMessageHandler(uc usecase.IMessageUseCase) *MessageHandler {
	return &MessageHandler{usecase: uc}
}

// SubmitContact godoc
// @Summary      Submit the contact form
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        payload  body      request.ContactRequest  true  "Contact message"
// @Success      200      {object}  response.MessageResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      429      {object}  pkg.HTTPError
// @Router       /contact [post]
func (h *MessageHandler) SubmitContact(c *gin.Context) {
	var payload request.ContactRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, errInvalidPayload)
		return
	}
	if _, err := h.usecase.Submit(c.Request.Context(), payload.ToSubmission()); err != nil {
		writeError(c, mapMessageError(err))
		return
	}
	c.JSON(http.StatusOK, response.NewMessage("Message received"))
}

// ListMessages godoc
// @Summary      List contact messages, newest first
// @Tags         messages
// @Produce      json
// @Security     Bearer
// @Success      200  {array}  response.ContactMessageResponse
// @Router       /messages [get]
func (h *MessageHandler) ListMessages(c *gin.Context) {
	msgs, err := h.usecase.List(c.Request.Context())
	if err != nil {
		writeError(c, mapMessageError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromContactMessages(msgs))
}

// GetMessage godoc
// @Summary      Get a contact message
// @Tags         messages
// @Produce      json
// @Security     Bearer
// @Param        id   path      string  true  "Message id"
// @Success      200  {object}  response.ContactMessageResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /messages/{id} [get]
func (h *MessageHandler) GetMessage(c *gin.Context) {
	msg, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapMessageError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromContactMessage(msg))
}

// MarkRead godoc
// @Summary      Mark a contact message as read
// @Tags         messages
// @Produce      json
// @Security     Bearer
// @Param        id   path      string  true  "Message id"
// @Success      200  {object}  response.ContactMessageResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /messages/{id}/read [patch]
func (h *MessageHandler) MarkRead(c *gin.Context) {
	msg, err := h.usecase.MarkRead(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapMessageError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromContactMessage(msg))
}

// DeleteMessage godoc
// @Summary      Delete a contact message
// @Tags         messages
// @Produce      json
// @Security     Bearer
// @Param        id   path      string  true  "Message id"
// @Success      200  {object}  response.MessageResponse
// @Router       /messages/{id} [delete]
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, mapMessageError(err))
		return
	}
	c.JSON(http.StatusOK, response.NewMessage("Message deleted"))
}

func mapMessageError(err error) *pkg.AppError {
	if appErr, ok := validationError(err); ok {
		return appErr
	}
	switch {
	case errors.Is(err, usecase.ErrInvalidMessageID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrMessageNotFound):
		return pkg.NewDomainErrorSimple("MESSAGE_NOT_FOUND", "Message not found", http.StatusNotFound)
	default:
		return internalError(err)
	}
}
