package routes

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/fr0stylo/proxitrace/internal/app/domain"
	appservices "github.com/fr0stylo/proxitrace/internal/app/services"
	"github.com/fr0stylo/proxitrace/internal/wire"
)

// HandshakeIngester aggregates and stores a handshake batch.
type HandshakeIngester interface {
	Ingest(ctx context.Context, source string, handshakes []domain.Handshake) (appservices.IngestResult, error)
}

// HandshakeRoutes registers the HTTP ingestion endpoint.
type HandshakeRoutes struct {
	ingester HandshakeIngester
}

// NewHandshakeRoutes constructs handshake routes.
func NewHandshakeRoutes(ingester HandshakeIngester) *HandshakeRoutes {
	return &HandshakeRoutes{ingester: ingester}
}

// RegisterRoutes registers handshake endpoints.
func (h *HandshakeRoutes) RegisterRoutes(s *echo.Echo) {
	s.POST("/api/v1/handshakes", h.handleIngest)
}

func (h *HandshakeRoutes) handleIngest(c echo.Context) error {
	handshakes, err := wire.DecodeBatch(c.Request().Body)
	if err != nil {
		if errors.Is(err, wire.ErrInvalidBatch) {
			return badRequest(c, err.Error())
		}
		return apiError(c, err)
	}

	source := "http"
	if collector := strings.TrimSpace(c.Request().Header.Get("X-Collector-ID")); collector != "" {
		source = "http:" + collector
	}

	result, err := h.ingester.Ingest(c.Request().Context(), source, handshakes)
	if err != nil {
		return apiError(c, err)
	}
	return c.JSON(http.StatusAccepted, result)
}
