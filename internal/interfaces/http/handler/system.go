package handler

import (
	"time"

	"github.com/gin-gonic/gin"
)

// SystemHandler serves liveness and build information.
type SystemHandler struct {
	BaseHandler
	appName string
	started time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(appName string) *SystemHandler {
	return &SystemHandler{appName: appName, started: time.Now()}
}

// Health reports process liveness.
// GET /health
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, gin.H{
		"status":  "ok",
		"service": h.appName,
		"uptime":  time.Since(h.started).Round(time.Second).String(),
	})
}
