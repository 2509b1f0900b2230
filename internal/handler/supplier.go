package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/yadu32/brickworks-pro-suite/internal/model"
	"github.com/yadu32/brickworks-pro-suite/internal/repository"
)

// SupplierHandler serves the per-factory vendor book.
type SupplierHandler struct {
	Factories FactoryOwnership
	Suppliers *repository.SupplierRepo
}

func NewSupplierHandler(f FactoryOwnership, s *repository.SupplierRepo) *SupplierHandler {
	return &SupplierHandler{Factories: f, Suppliers: s}
}

type createSupplierReq struct {
	FactoryID     string `json:"factory_id"`
	Name          string `json:"name"`
	ContactNumber string `json:"contact_number"`
	Address       string `json:"address"`
	MaterialType  string `json:"material_type"`
}

func (h *SupplierHandler) Create(c echo.Context) error {
	var req createSupplierReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Name) == "" || req.FactoryID == "" {
		return unprocessable(c, "name and factory_id are required")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Factories.OwnedBy(ctx, req.FactoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}

	s, err := h.Suppliers.Create(ctx, &model.Supplier{
		FactoryID:     req.FactoryID,
		Name:          req.Name,
		ContactNumber: req.ContactNumber,
		Address:       req.Address,
		MaterialType:  req.MaterialType,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create supplier failed"})
	}
	return c.JSON(http.StatusCreated, s)
}

func (h *SupplierHandler) ListByFactory(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	factoryID := c.Param("factoryID")
	if err := h.Factories.OwnedBy(ctx, factoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}

	out, err := h.Suppliers.ListByFactory(ctx, factoryID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SupplierHandler) Update(c echo.Context) error {
	var upd model.SupplierUpdate
	if err := c.Bind(&upd); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	s, err := h.Suppliers.GetByID(ctx, c.Param("id"))
	if err != nil {
		return recordError(c, err, "supplier")
	}
	if err := h.Factories.OwnedBy(ctx, s.FactoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}

	s, err = h.Suppliers.Update(ctx, s.ID, upd)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update supplier failed"})
	}
	return c.JSON(http.StatusOK, s)
}

func (h *SupplierHandler) Delete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	s, err := h.Suppliers.GetByID(ctx, c.Param("id"))
	if err != nil {
		return recordError(c, err, "supplier")
	}
	if err := h.Factories.OwnedBy(ctx, s.FactoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}
	if err := h.Suppliers.Delete(ctx, s.ID); err != nil {
		return recordError(c, err, "supplier")
	}
	return c.NoContent(http.StatusNoContent)
}
