package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/yadu32/brickworks-pro-suite/internal/model"
	"github.com/yadu32/brickworks-pro-suite/internal/repository"
	"github.com/yadu32/brickworks-pro-suite/internal/stock"
)

// MaterialHandler serves material definitions and the per-material stock
// report.
type MaterialHandler struct {
	Factories FactoryOwnership
	Materials *repository.MaterialRepo
	Purchases *repository.PurchaseRepo
	Usage     *repository.UsageRepo
}

func NewMaterialHandler(f FactoryOwnership, m *repository.MaterialRepo, p *repository.PurchaseRepo, u *repository.UsageRepo) *MaterialHandler {
	return &MaterialHandler{Factories: f, Materials: m, Purchases: p, Usage: u}
}

type createMaterialReq struct {
	FactoryID          string  `json:"factory_id"`
	MaterialName       string  `json:"material_name"`
	Unit               string  `json:"unit"`
	CurrentStockQty    float64 `json:"current_stock_qty"`
	AverageCostPerUnit float64 `json:"average_cost_per_unit"`
}

func (h *MaterialHandler) Create(c echo.Context) error {
	var req createMaterialReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.MaterialName) == "" || req.FactoryID == "" {
		return unprocessable(c, "material_name and factory_id are required")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Factories.OwnedBy(ctx, req.FactoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}

	m, err := h.Materials.Create(ctx, &model.Material{
		FactoryID:          req.FactoryID,
		MaterialName:       req.MaterialName,
		Unit:               req.Unit,
		CurrentStockQty:    req.CurrentStockQty,
		AverageCostPerUnit: req.AverageCostPerUnit,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create material failed"})
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *MaterialHandler) ListByFactory(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	factoryID := c.Param("factoryID")
	if err := h.Factories.OwnedBy(ctx, factoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}

	out, err := h.Materials.ListByFactory(ctx, factoryID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MaterialHandler) Update(c echo.Context) error {
	var upd model.MaterialUpdate
	if err := c.Bind(&upd); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	m, err := h.Materials.GetByID(ctx, c.Param("id"))
	if err != nil {
		return recordError(c, err, "material")
	}
	if err := h.Factories.OwnedBy(ctx, m.FactoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}

	m, err = h.Materials.Update(ctx, m.ID, upd)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update material failed"})
	}
	return c.JSON(http.StatusOK, m)
}

func (h *MaterialHandler) Delete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	m, err := h.Materials.GetByID(ctx, c.Param("id"))
	if err != nil {
		return recordError(c, err, "material")
	}
	if err := h.Factories.OwnedBy(ctx, m.FactoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}
	if err := h.Materials.Delete(ctx, m.ID); err != nil {
		return recordError(c, err, "material")
	}
	return c.NoContent(http.StatusNoContent)
}

// StockReport recomputes the material's position from its full purchase and
// usage history, independent of the cached fields on the material row.
func (h *MaterialHandler) StockReport(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	m, err := h.Materials.GetByID(ctx, c.Param("id"))
	if err != nil {
		return recordError(c, err, "material")
	}
	if err := h.Factories.OwnedBy(ctx, m.FactoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}

	purchased, err := h.Purchases.TotalForMaterial(ctx, m.FactoryID, m.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	used, err := h.Usage.TotalForMaterial(ctx, m.FactoryID, m.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	return c.JSON(http.StatusOK, model.MaterialStockReport{
		MaterialID:     m.ID,
		TotalPurchased: purchased,
		TotalUsed:      used,
		CurrentStock:   stock.ReportedStock(purchased, used),
	})
}
