package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/corpresolve/corpmatch/app/controllers"
)

// SetupAPIRoutes wires the corporate-name matching endpoints under /v1.
func SetupAPIRoutes(router *gin.Engine, dedupeController *controllers.DedupeController, adminController *controllers.AdminController) {
	v1 := router.Group("/v1")
	{
		names := v1.Group("/names")
		{
			names.POST("/match", dedupeController.MatchNames)
			names.POST("/legal-form", dedupeController.RetrieveLegalForm)
			names.POST("/legal-form/remove", dedupeController.RemoveLegalForm)
			names.POST("/clean", dedupeController.CleanName)
			names.POST("/clean/remove-legal-form", dedupeController.CleanNameAndRemoveLegalForm)
		}

		jobs := v1.Group("/duplicates")
		{
			jobs.POST("/jobs", dedupeController.SubmitDuplicateJob)
			jobs.GET("/jobs/:jobID", dedupeController.GetJobStatus)
		}

		admin := v1.Group("/admin")
		{
			admin.GET("/stats", adminController.GetStats)
			admin.POST("/cache/invalidate", adminController.InvalidateCache)
			admin.GET("/reviews", adminController.ListReviews)
			admin.POST("/reviews/:reviewID/decide", adminController.DecideReview)
		}

		v1.GET("/health", dedupeController.HealthCheck)
	}
}

// SetupHealthRoutes wires the root-level liveness/readiness probes.
func SetupHealthRoutes(router *gin.Engine, dedupeController *controllers.DedupeController) {
	router.GET("/health", dedupeController.HealthCheck)
	router.GET("/ready", dedupeController.HealthCheck)
	router.GET("/live", dedupeController.HealthCheck)
}

// SetupMetricsRoutes wires a placeholder metrics endpoint for future
// Prometheus instrumentation.
func SetupMetricsRoutes(router *gin.Engine) {
	router.GET("/metrics", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "metrics endpoint not yet instrumented"})
	})
}

// SetupAllRoutes wires middleware, web, health, and API routes onto router.
func SetupAllRoutes(router *gin.Engine, dedupeController *controllers.DedupeController, adminController *controllers.AdminController) {
	setupMiddleware(router)

	SetupWebRoutes(router)
	SetupHealthRoutes(router, dedupeController)
	SetupAPIRoutes(router, dedupeController, adminController)
	SetupMetricsRoutes(router)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})
}

// setupMiddleware wires global Gin middleware.
func setupMiddleware(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
}
