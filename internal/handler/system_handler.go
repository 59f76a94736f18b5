package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fixtrack/repair-shop-api/internal/service"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler serves the health and observability endpoints.
type SystemHandler struct {
	env     string
	db      pinger
	metrics *service.MetricsService
}

// NewSystemHandler constructs a system handler.
func NewSystemHandler(env string, db pinger, metrics *service.MetricsService) *SystemHandler {
	return &SystemHandler{env: env, db: db, metrics: metrics}
}

// Root reports service metadata. Load balancer health checks hit this.
func (h *SystemHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":     "Repair Shop API is running",
		"environment": h.env,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Healthcheck responds with a plain "ok" body.
func (h *SystemHandler) Healthcheck(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// Health responds with a generic OK payload for liveness usage.
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready verifies the database handle before reporting readiness.
func (h *SystemHandler) Ready(c *gin.Context) {
	if h.db != nil {
		if err := h.db.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *SystemHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}
