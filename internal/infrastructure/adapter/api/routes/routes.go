package routes

import (
	"github.com/gin-gonic/gin"

	coreport "github.com/kodirov8788/topish-digitalOcian-sub002/internal/domain/port/core"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/infrastructure/adapter/api/handler"
	"github.com/kodirov8788/topish-digitalOcian-sub002/internal/infrastructure/adapter/api/middleware"
)

// Handlers groups the HTTP handlers mounted by SetupRoutes
type Handlers struct {
	Coin   *handler.CoinHandler
	User   *handler.UserHandler
	Health *handler.HealthHandler
}

// SetupRoutes configures all the routes for the API under /api/v1
func SetupRoutes(router *gin.Engine, handlers Handlers, auth gin.HandlerFunc) {
	api := router.Group("/api/v1")

	api.GET("/health", handlers.Health.Health)

	users := api.Group("/users", auth)
	{
		// :userId may be "me"
		users.GET("/:userId/coins", handlers.User.GetBalance)
		users.GET("/:userId/coins/history", handlers.User.GetHistory)
	}

	coins := api.Group("/coins", auth)
	{
		coins.POST("/add", handlers.Coin.AddCoins)
		coins.POST("/deduct", handlers.Coin.DeductCoins)
		coins.POST("/set", handlers.Coin.SetCoins)
		coins.POST("/transfer", handlers.Coin.Transfer)
		coins.POST("/charge", handlers.Coin.ChargeFeature)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, timeProvider coreport.TimeProvider, allowedOrigins []string) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger, timeProvider))
	router.Use(middleware.CORS(allowedOrigins))
}
