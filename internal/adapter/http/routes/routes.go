package routes

import (
	_ "github.com/Diilaye/batimo/docs"
	request "github.com/Diilaye/batimo/internal/adapter/http/dto/request"
	"github.com/Diilaye/batimo/internal/adapter/http/handlers"
	"github.com/Diilaye/batimo/internal/adapter/http/middleware"
	"github.com/Diilaye/batimo/internal/logger"
	"github.com/Diilaye/batimo/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const PathAPI = "/api"

// Dependencies are the use cases and cross-cutting collaborators the HTTP
// boundary needs. cmd/api builds them for the selected store driver.
type Dependencies struct {
	Quotes   usecase.IQuoteUseCase
	Auth     usecase.IAuthUseCase
	Admins   usecase.IAdminUseCase
	Messages usecase.IMessageUseCase
	Services usecase.IServiceUseCase

	// Limiter throttles the public forms.
	Limiter      middleware.Limiter
	Log          logger.Logger
	CORSOrigin   string
	CookieSecure bool
}

func NewRouter(deps Dependencies) (*gin.Engine, error) {
	if err := request.RegisterValidators(); err != nil {
		return nil, err
	}

	router := gin.New()
	setMiddlewares(router, deps)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group(PathAPI)
	requireAdmin := middleware.RequireAdmin(deps.Auth)
	throttle := middleware.RateLimit(deps.Limiter, deps.Log)

	addPingRoutes(api)
	addAuthRoutes(api, handlers.NewAuthHandler(deps.Auth, deps.CookieSecure))
	addAdminRoutes(api, handlers.NewAdminHandler(deps.Admins), requireAdmin)
	addQuoteRoutes(api, handlers.NewQuoteHandler(deps.Quotes), requireAdmin, throttle)
	addMessageRoutes(api, handlers.NewMessageHandler(deps.Messages), requireAdmin, throttle)
	addServiceRoutes(api, handlers.NewServiceHandler(deps.Services), requireAdmin)

	return router, nil
}

func setMiddlewares(router *gin.Engine, deps Dependencies) {
	router.Use(middleware.RequestLogger(deps.Log))
	router.Use(middleware.Recovery(deps.Log))
	router.Use(middleware.CORS(deps.CORSOrigin))
}
