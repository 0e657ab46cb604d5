package dashboard

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the dashboard API under /api.
func RegisterRoutes(router *gin.Engine, handler *Handler) {
	api := router.Group("/api")
	{
		api.GET("/metrics", handler.GetMetrics)

		analytics := api.Group("/analytics")
		{
			analytics.GET("/github", handler.GetGithubAnalytics)
			analytics.GET("/jira", handler.GetJiraAnalytics)
			analytics.GET("/copilot", handler.GetCopilotAnalytics)
		}

		api.GET("/developers/:login", handler.GetDeveloperDetail)

		api.GET("/cache", handler.GetCacheInfo)
		api.DELETE("/cache", handler.ClearCache)
	}
}
