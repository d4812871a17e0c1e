package routes

import (
	"github.com/Diilaye/batimo/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const PathServices = "/services"

// The catalog is edited from the dashboard only, reads included.
func addServiceRoutes(rg *gin.RouterGroup, h *handlers.ServiceHandler, requireAdmin gin.HandlerFunc) {
	services := rg.Group(PathServices, requireAdmin)
	{
		services.GET("", h.ListServices)
		services.POST("", h.CreateService)
		services.PUT("/:id", h.UpdateService)
		services.DELETE("/:id", h.DeleteService)
	}
}
