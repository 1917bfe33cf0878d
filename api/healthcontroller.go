package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const indexMessage = "NCST RSS Feed Generator is running! Use /rss to fetch the feed."

// RegisterIndexRoutes registers the human-readable status route.
func RegisterIndexRoutes(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, indexMessage)
	})
}

// RegisterHealthRoutes registers health check endpoints.
func RegisterHealthRoutes(r *gin.Engine) {
	r.GET("/api/health", handleHealth)
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
