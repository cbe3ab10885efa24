package routes

import (
	"net/http"

	"kidhub_backend/internal/handlers"
	"kidhub_backend/internal/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes регистрирует все HTTP-маршруты.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	// Служебные endpoints вне /api/v1
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	ginRouter.GET("/metrics", middleware.MetricsHandler())
	ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// HTTP API v1
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.SchoolHandler.RegisterRoutes(api)
		appHandlers.ActivityHandler.RegisterRoutes(api)
		appHandlers.LeadHandler.RegisterRoutes(api)
		appHandlers.ReviewHandler.RegisterRoutes(api)
		appHandlers.NeighborhoodHandler.RegisterRoutes(api)
	}
}
