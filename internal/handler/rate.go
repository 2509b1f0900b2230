package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/yadu32/brickworks-pro-suite/internal/model"
	"github.com/yadu32/brickworks-pro-suite/internal/repository"
)

// RateHandler serves configurable price and wage rates.
type RateHandler struct {
	Factories FactoryOwnership
	Rates     *repository.RateRepo
}

func NewRateHandler(f FactoryOwnership, r *repository.RateRepo) *RateHandler {
	return &RateHandler{Factories: f, Rates: r}
}

type createRateReq struct {
	FactoryID     string  `json:"factory_id"`
	RateType      string  `json:"rate_type"`
	RateAmount    float64 `json:"rate_amount"`
	EffectiveDate string  `json:"effective_date"`
	IsActive      *bool   `json:"is_active"`
	BrickTypeID   string  `json:"brick_type_id"`
}

func (h *RateHandler) Create(c echo.Context) error {
	var req createRateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.FactoryID == "" || strings.TrimSpace(req.RateType) == "" || !validDate(req.EffectiveDate) {
		return unprocessable(c, "factory_id, rate_type and a YYYY-MM-DD effective_date are required")
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Factories.OwnedBy(ctx, req.FactoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}

	fr, err := h.Rates.Create(ctx, &model.FactoryRate{
		FactoryID:     req.FactoryID,
		RateType:      req.RateType,
		RateAmount:    req.RateAmount,
		EffectiveDate: req.EffectiveDate,
		IsActive:      active,
		BrickTypeID:   req.BrickTypeID,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create rate failed"})
	}
	return c.JSON(http.StatusCreated, fr)
}

func (h *RateHandler) ListByFactory(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	factoryID := c.Param("factoryID")
	if err := h.Factories.OwnedBy(ctx, factoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}

	out, err := h.Rates.ListByFactory(ctx, factoryID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RateHandler) Update(c echo.Context) error {
	var upd model.FactoryRateUpdate
	if err := c.Bind(&upd); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if upd.EffectiveDate != nil && !validDate(*upd.EffectiveDate) {
		return unprocessable(c, "effective_date must be YYYY-MM-DD")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	fr, err := h.Rates.GetByID(ctx, c.Param("id"))
	if err != nil {
		return recordError(c, err, "rate")
	}
	if err := h.Factories.OwnedBy(ctx, fr.FactoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}

	fr, err = h.Rates.Update(ctx, fr.ID, upd)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update rate failed"})
	}
	return c.JSON(http.StatusOK, fr)
}

func (h *RateHandler) Delete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	fr, err := h.Rates.GetByID(ctx, c.Param("id"))
	if err != nil {
		return recordError(c, err, "rate")
	}
	if err := h.Factories.OwnedBy(ctx, fr.FactoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}
	if err := h.Rates.Delete(ctx, fr.ID); err != nil {
		return recordError(c, err, "rate")
	}
	return c.NoContent(http.StatusNoContent)
}
