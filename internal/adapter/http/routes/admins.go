package routes

import (
	"github.com/Diilaye/batimo/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathAdmin  = "/admin"
	PathAdmins = "/admins"
)

func addAuthRoutes(rg *gin.RouterGroup, h *handlers.AuthHandler) {
	admin := rg.Group(PathAdmin)
	{
		admin.POST("/login", h.Login)
		admin.POST("/logout", h.Logout)
	}
}

func addAdminRoutes(rg *gin.RouterGroup, h *handlers.AdminHandler, requireAdmin gin.HandlerFunc) {
	rg.GET(PathAdmins, requireAdmin, h.ListAdmins)
}
