package handler

import (
	"database/sql"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yadu32/brickworks-pro-suite/internal/database"
)

// HealthHandler serves liveness and dependency checks. The process keeps
// serving even when the database is down; /health/db reports it instead.
type HealthHandler struct {
	DB *sql.DB
}

func NewHealthHandler(db *sql.DB) *HealthHandler { return &HealthHandler{DB: db} }

// Root identifies the service.
func (h *HealthHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"name":   "brickworks-pro-suite",
		"status": "running",
	})
}

// Live is the plain liveness probe.
func (h *HealthHandler) Live(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "healthy"})
}

// DB pings the database and reports degraded state without failing the
// process.
func (h *HealthHandler) DBCheck(c echo.Context) error {
	if h.DB == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "degraded", "database": "not configured"})
	}
	if err := database.Ping(c.Request().Context(), h.DB); err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "degraded", "database": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "healthy", "database": "connected"})
}
