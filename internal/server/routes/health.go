package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fr0stylo/proxitrace/internal/db"
)

// StorageProbe reports storage liveness and query latency.
type StorageProbe interface {
	Ping(ctx context.Context) error
	QueryLatencyStats() []db.QueryStats
}

// HealthRoutes registers liveness and diagnostics endpoints.
type HealthRoutes struct {
	probe StorageProbe
}

// NewHealthRoutes constructs health routes.
func NewHealthRoutes(probe StorageProbe) *HealthRoutes {
	return &HealthRoutes{probe: probe}
}

// RegisterRoutes registers health endpoints.
func (h *HealthRoutes) RegisterRoutes(s *echo.Echo) {
	s.GET("/healthz", h.handleHealth)
	s.GET("/api/v1/debug/queries", h.handleQueryStats)
}

func (h *HealthRoutes) handleHealth(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()
	if err := h.probe.Ping(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HealthRoutes) handleQueryStats(c echo.Context) error {
	return c.JSON(http.StatusOK, h.probe.QueryLatencyStats())
}
