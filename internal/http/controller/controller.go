package controller

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthController handles service health requests.
type HealthController struct {
	db      Pinger
	timeout time.Duration
}

// NewHealthController creates a HealthController checking the given database.
func NewHealthController(db Pinger, timeout time.Duration) *HealthController {
	return &HealthController{
		db:      db,
		timeout: timeout,
	}
}

// Health handles the HTTP GET request for the health check endpoint.
func (hc *HealthController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), hc.timeout)
	defer cancel()

	if err := hc.db.PingContext(ctx); err != nil {
		slog.Error("Health check failed", slog.Any("err", err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
}
