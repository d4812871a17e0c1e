package routes

import (
	"github.com/Diilaye/batimo/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathContact  = "/contact"
	PathMessages = "/messages"
)

func addMessageRoutes(rg *gin.RouterGroup, h *handlers.MessageHandler, requireAdmin, throttle gin.HandlerFunc) {
	rg.POST(PathContact, throttle, h.SubmitContact)

	messages := rg.Group(PathMessages, requireAdmin)
	{
		messages.GET("", h.ListMessages)
		messages.GET("/:id", h.GetMessage)
		messages.PATCH("/:id/read", h.MarkRead)
		messages.DELETE("/:id", h.DeleteMessage)
	}
}
