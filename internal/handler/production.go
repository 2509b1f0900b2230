package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yadu32/brickworks-pro-suite/internal/model"
	"github.com/yadu32/brickworks-pro-suite/internal/repository"
)

// ProductionHandler serves daily output logs.
type ProductionHandler struct {
	Factories  FactoryOwnership
	Production *repository.ProductionRepo
}

func NewProductionHandler(f FactoryOwnership, p *repository.ProductionRepo) *ProductionHandler {
	return &ProductionHandler{Factories: f, Production: p}
}

type createProductionReq struct {
	FactoryID   string `json:"factory_id"`
	Date        string `json:"date"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Punches     *int   `json:"punches"`
	Remarks     string `json:"remarks"`
}

func (h *ProductionHandler) Create(c echo.Context) error {
	var req createProductionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.FactoryID == "" || req.ProductID == "" || !validDate(req.Date) {
		return unprocessable(c, "factory_id, product_id and a YYYY-MM-DD date are required")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Factories.OwnedBy(ctx, req.FactoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}

	p, err := h.Production.Create(ctx, &model.ProductionLog{
		FactoryID:   req.FactoryID,
		Date:        req.Date,
		ProductID:   req.ProductID,
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
		Punches:     req.Punches,
		Remarks:     req.Remarks,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create production log failed"})
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *ProductionHandler) ListByFactory(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	factoryID := c.Param("factoryID")
	if err := h.Factories.OwnedBy(ctx, factoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}

	out, err := h.Production.ListByFactory(ctx, factoryID, c.QueryParam("start_date"), c.QueryParam("end_date"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductionHandler) Get(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Production.GetByID(ctx, c.Param("id"))
	if err != nil {
		return recordError(c, err, "production log")
	}
	if err := h.Factories.OwnedBy(ctx, p.FactoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductionHandler) Update(c echo.Context) error {
	var upd model.ProductionLogUpdate
	if err := c.Bind(&upd); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if upd.Date != nil && !validDate(*upd.Date) {
		return unprocessable(c, "date must be YYYY-MM-DD")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Production.GetByID(ctx, c.Param("id"))
	if err != nil {
		return recordError(c, err, "production log")
	}
	if err := h.Factories.OwnedBy(ctx, p.FactoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}

	p, err = h.Production.Update(ctx, p.ID, upd)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update production log failed"})
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductionHandler) Delete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Production.GetByID(ctx, c.Param("id"))
	if err != nil {
		return recordError(c, err, "production log")
	}
	if err := h.Factories.OwnedBy(ctx, p.FactoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}
	if err := h.Production.Delete(ctx, p.ID); err != nil {
		return recordError(c, err, "production log")
	}
	return c.NoContent(http.StatusNoContent)
}
