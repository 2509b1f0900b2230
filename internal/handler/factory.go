package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/yadu32/brickworks-pro-suite/internal/model"
	"github.com/yadu32/brickworks-pro-suite/internal/repository"
)

// FactoryHandler serves the tenant endpoints. A caller owns at most one
// factory; everything else in the API hangs off it.
type FactoryHandler struct {
	Factories *repository.FactoryRepo
}

func NewFactoryHandler(f *repository.FactoryRepo) *FactoryHandler {
	return &FactoryHandler{Factories: f}
}

type createFactoryReq struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// Create registers the caller's factory and starts its 30-day trial.
func (h *FactoryHandler) Create(c echo.Context) error {
	var req createFactoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return unprocessable(c, "name is required")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	uid := currentUserID(c)
	// Check before insert for the friendly error; the unique key on owner_id
	// still catches the race.
	if _, err := h.Factories.GetByOwner(ctx, uid); err == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "User already has a factory"})
	} else if !errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	f, err := h.Factories.Create(ctx, uid, req.Name, req.Location)
	if err != nil {
		if errors.Is(err, repository.ErrFactoryExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "User already has a factory"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create factory failed"})
	}
	return c.JSON(http.StatusCreated, f)
}

// List returns the caller's factories: an array of zero or one.
func (h *FactoryHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	out, err := h.Factories.ListByOwner(ctx, currentUserID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns one factory by id. A factory owned by someone else reads as
// 404, same as a missing one.
func (h *FactoryHandler) Get(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	f, err := h.Factories.GetByIDAndOwner(ctx, c.Param("id"), currentUserID(c))
	if err != nil {
		return recordError(c, err, "factory")
	}
	return c.JSON(http.StatusOK, f)
}

// Update applies a partial update to the caller's factory.
func (h *FactoryHandler) Update(c echo.Context) error {
	var upd model.FactoryUpdate
	if err := c.Bind(&upd); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	f, err := h.Factories.Update(ctx, c.Param("id"), currentUserID(c), upd)
	if err != nil {
		return recordError(c, err, "factory")
	}
	return c.JSON(http.StatusOK, f)
}

// Delete removes the factory and, via schema cascades, all its records.
func (h *FactoryHandler) Delete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Factories.DeleteByIDAndOwner(ctx, c.Param("id"), currentUserID(c)); err != nil {
		return recordError(c, err, "factory")
	}
	return c.NoContent(http.StatusNoContent)
}
