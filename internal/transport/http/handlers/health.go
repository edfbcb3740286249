package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ReadinessCheck probes one downstream dependency.
type ReadinessCheck struct {
	Name  string
	Probe func(ctx context.Context) error
}

// HealthHandler serves liveness and readiness endpoints.
type HealthHandler struct {
	checks []ReadinessCheck
}

// HealthOption configures the health handler.
type HealthOption func(*HealthHandler)

// WithReadinessCheck registers a dependency probe for the readiness endpoint.
func WithReadinessCheck(name string, probe func(ctx context.Context) error) HealthOption {
	return func(h *HealthHandler) {
		h.checks = append(h.checks, ReadinessCheck{Name: name, Probe: probe})
	}
}

// NewHealthHandler constructs HealthHandler.
func NewHealthHandler(opts ...HealthOption) *HealthHandler {
	h := &HealthHandler{}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Status reports process liveness.
func (h *HealthHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness probes registered dependencies and reports per-check results.
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	results := make(map[string]string, len(h.checks))
	healthy := true

	for _, check := range h.checks {
		if err := check.Probe(ctx); err != nil {
			results[check.Name] = err.Error()
			healthy = false
			continue
		}
		results[check.Name] = "ok"
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{"status": results})
}
