package routes

import (
	"github.com/gin-gonic/gin"
)

// SetupWebRoutes wires the root landing and docs endpoints.
func SetupWebRoutes(router *gin.Engine) {
	web := router.Group("/")
	{
		web.GET("/", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"message": "Corporate Name Duplicate Detection Service",
				"version": "1.0.0",
				"docs":    "/docs",
			})
		})

		web.GET("/docs", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"api": "corpmatch API v1",
				"endpoints": map[string]string{
					"match":               "POST /v1/names/match",
					"legal_form":          "POST /v1/names/legal-form",
					"remove_legal_form":   "POST /v1/names/legal-form/remove",
					"clean":               "POST /v1/names/clean",
					"clean_remove":        "POST /v1/names/clean/remove-legal-form",
					"submit_duplicates":   "POST /v1/duplicates/jobs",
					"job_status":          "GET /v1/duplicates/jobs/:jobID",
					"admin_stats":         "GET /v1/admin/stats",
					"admin_reviews":       "GET /v1/admin/reviews",
					"health":              "GET /v1/health",
				},
			})
		})

		web.GET("/status", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "running",
				"service": "corpmatch",
			})
		})
	}
}
