package routes

import (
	"github.com/Diilaye/batimo/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathQuote  = "/quote"
	PathQuotes = "/quotes"
)

func addQuoteRoutes(rg *gin.RouterGroup, h *handlers.QuoteHandler, requireAdmin, throttle gin.HandlerFunc) {
	// Public quote form.
	rg.POST(PathQuote, throttle, h.SubmitQuote)

	quotes := rg.Group(PathQuotes, requireAdmin)
	{
		quotes.GET("", h.ListQuotes)
		quotes.GET("/:id", h.GetQuote)
		quotes.PATCH("/:id/status", h.UpdateStatus)
		quotes.DELETE("/:id", h.DeleteQuote)
		quotes.POST("/:id/comments", h.AddComment)
		quotes.DELETE("/:id/comments/:comment_id", h.DeleteComment)
	}
}
