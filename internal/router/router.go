package router

import (
	"github.com/gin-gonic/gin"

	"payadvice/internal/config"
	"payadvice/internal/handler"
	"payadvice/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(cfg *config.Config, parseH *handler.ParseHandler, healthH *handler.HealthHandler) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	r.GET("/healthz", healthH.Liveness)

	v1 := r.Group("/api/v1")
	v1.POST("/parse", parseH.Parse)
	v1.GET("/customers", parseH.Customers)

	return r
}
