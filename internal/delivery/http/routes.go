package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/ecoscan/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger *slog.Logger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP))
	{
		// Analysis endpoints
		analyze := v1.Group("/analyze")
		{
			analyze.POST("", handler.Analyze)
			analyze.POST("/batch", handler.AnalyzeBatch)
		}

		// Dictionary endpoints
		materials := v1.Group("/materials")
		{
			materials.GET("", handler.ListMaterials)
			materials.GET("/:name", handler.GetMaterial)
		}
	}

	return router
}
