package router

import (
	"github.com/gin-gonic/gin"

	"docusight/internal/handler"
	"docusight/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	ocrH *handler.OCRHandler,
	textH *handler.TextHandler,
	healthH *handler.HealthHandler,
	allowedOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)

	v1 := r.Group("/api/v1")

	ocr := v1.Group("/ocr")
	ocr.POST("/process", ocrH.Process)

	text := v1.Group("/text")
	text.POST("/structure", textH.Structure)

	return r
}
