// Package handler wires HTTP endpoints to repositories. Each resource gets
// its own handler struct; shared plumbing (ownership checks, error mapping,
// date validation) lives here.
package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/yadu32/brickworks-pro-suite/internal/repository"
)

// reqCtx derives a bounded context for repository calls from the request.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// currentUserID reads the subject injected by the JWT middleware.
func currentUserID(c echo.Context) string {
	if v, ok := c.Get("user_id").(string); ok {
		return v
	}
	return ""
}

// validDate reports whether s is a well-formed YYYY-MM-DD date.
func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func unprocessable(c echo.Context, msg string) error {
	return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": msg})
}

// FactoryOwnership is the one FactoryRepo method the entity handlers need:
// nil when factoryID exists and belongs to ownerID, a sentinel otherwise.
type FactoryOwnership interface {
	OwnedBy(ctx context.Context, factoryID, ownerID string) error
}

var _ FactoryOwnership = (*repository.FactoryRepo)(nil)

// ownershipError maps the OwnedBy sentinels for entity routes. An unknown
// factory id and someone else's factory both read as the same 403, so the
// response never reveals which foreign ids exist.
func ownershipError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not authorized to access this factory"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "ownership check failed"})
	}
}

// recordError maps repository errors on by-id operations after the record
// was found; ErrNotFound here means the id itself did not resolve.
func recordError(c echo.Context, err error, what string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": what + " not found"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}
