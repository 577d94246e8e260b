package server

import (
	"github.com/gin-gonic/gin"

	"github.com/Tiliavir/icicle-admin/internal/logging"
)

// NewRouter creates and configures the Gin router.
func NewRouter(h *Handler, log logging.Logger) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(gin.Recovery())
	r.Use(CorrelationID())
	r.Use(RequestLog(log))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.POST("/api/authenticate", h.Authenticate)

	api := r.Group("/api", RequireToken(h.Secret))
	api.GET("/users", h.ListUsers)

	api.POST("/time-entries", h.CreateTimeEntry)
	api.PUT("/time-entries/:id", h.UpdateTimeEntry)
	api.PATCH("/time-entries/:id", h.PartialUpdateTimeEntry)
	api.GET("/time-entries/:id", h.GetTimeEntry)
	api.GET("/time-entries", h.ListTimeEntries)
	api.DELETE("/time-entries/:id", h.DeleteTimeEntry)

	return r
}
