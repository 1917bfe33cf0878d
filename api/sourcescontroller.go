package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RegisterSourceRoutes registers the registry and cache maintenance routes.
func (s *Server) RegisterSourceRoutes(r *gin.Engine) {
	r.GET("/api/sources", s.handleListSources)
	r.POST("/api/refresh", s.handleRefresh)
}

// handleListSources returns the configured fallback order. Headers are never exposed.
func (s *Server) handleListSources(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"sources":   s.opts.Sources,
		"cache_ttl": s.cache.TTL().String(),
	})
}

// handleRefresh drops the cached payload; the next read runs the source chain again.
func (s *Server) handleRefresh(c *gin.Context) {
	if err := s.cache.Invalidate(c.Request.Context()); err != nil {
		logrus.WithError(err).Error("cache invalidation failed")
		c.JSON(http.StatusInternalServerError, errorBody{Error: "failed to clear cache: " + err.Error()})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "cache cleared"})
}
