package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nutrilens/backend/internal/api"
	"github.com/nutrilens/backend/internal/middleware"
	"github.com/nutrilens/backend/internal/service"
)

// SetupRouter configures the application routes
func SetupRouter(
	sessionHandler *api.SessionHandler,
	analysisHandler *api.AnalysisHandler,
	tokens *service.TokenService,
	limiter *middleware.RateLimiter,
) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")

	v1.POST("/session", sessionHandler.Create)

	// Session-scoped routes
	protected := v1.Group("")
	protected.Use(middleware.SessionMiddleware(tokens))
	{
		analysis := protected.Group("/analysis")
		if limiter != nil {
			analysis.Use(limiter.RateLimitMiddleware())
		}
		{
			analysis.POST("", analysisHandler.Analyze)
			analysis.POST("/deep", analysisHandler.AnalyzeDeep)
			analysis.POST("/report", analysisHandler.RegenerateReport)
		}

		protected.POST("/audio/summary", analysisHandler.SynthesizeAudio)
		protected.POST("/quickscan", analysisHandler.QuickScan)
		protected.GET("/history", analysisHandler.History)
		protected.GET("/history/archive", analysisHandler.ArchivedHistory)
		protected.DELETE("/session/data", analysisHandler.ClearData)
	}

	return router
}
