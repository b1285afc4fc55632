package routes

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fr0stylo/proxitrace/internal/app/ports"
	appservices "github.com/fr0stylo/proxitrace/internal/app/services"
)

type errorResponse struct {
	Error string `json:"error"`
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: message})
}

// apiError maps use-case errors to status codes. Storage failures are not echoed back.
func apiError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, appservices.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, ports.ErrContactNotFound), errors.Is(err, ports.ErrKnownCaseNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		slog.ErrorContext(c.Request().Context(), "request failed", "route", c.Path(), "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
