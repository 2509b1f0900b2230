package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/yadu32/brickworks-pro-suite/internal/model"
	"github.com/yadu32/brickworks-pro-suite/internal/repository"
)

// SaleHandler serves dispatch records. Monetary fields are stored as sent;
// the client computes totals and balances.
type SaleHandler struct {
	Factories FactoryOwnership
	Sales     *repository.SaleRepo
}

func NewSaleHandler(f FactoryOwnership, s *repository.SaleRepo) *SaleHandler {
	return &SaleHandler{Factories: f, Sales: s}
}

type createSaleReq struct {
	FactoryID      string  `json:"factory_id"`
	Date           string  `json:"date"`
	CustomerName   string  `json:"customer_name"`
	CustomerPhone  string  `json:"customer_phone"`
	ProductID      string  `json:"product_id"`
	QuantitySold   int     `json:"quantity_sold"`
	RatePerBrick   float64 `json:"rate_per_brick"`
	TotalAmount    float64 `json:"total_amount"`
	AmountReceived float64 `json:"amount_received"`
	BalanceDue     float64 `json:"balance_due"`
	Notes          string  `json:"notes"`
}

func (h *SaleHandler) Create(c echo.Context) error {
	var req createSaleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.FactoryID == "" || strings.TrimSpace(req.CustomerName) == "" || !validDate(req.Date) {
		return unprocessable(c, "factory_id, customer_name and a YYYY-MM-DD date are required")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Factories.OwnedBy(ctx, req.FactoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}

	s, err := h.Sales.Create(ctx, &model.Sale{
		FactoryID:      req.FactoryID,
		Date:           req.Date,
		CustomerName:   req.CustomerName,
		CustomerPhone:  req.CustomerPhone,
		ProductID:      req.ProductID,
		QuantitySold:   req.QuantitySold,
		RatePerBrick:   req.RatePerBrick,
		TotalAmount:    req.TotalAmount,
		AmountReceived: req.AmountReceived,
		BalanceDue:     req.BalanceDue,
		Notes:          req.Notes,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create sale failed"})
	}
	return c.JSON(http.StatusCreated, s)
}

func (h *SaleHandler) ListByFactory(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	factoryID := c.Param("factoryID")
	if err := h.Factories.OwnedBy(ctx, factoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}

	out, err := h.Sales.ListByFactory(ctx, factoryID, c.QueryParam("start_date"), c.QueryParam("end_date"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *SaleHandler) Get(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	s, err := h.Sales.GetByID(ctx, c.Param("id"))
	if err != nil {
		return recordError(c, err, "sale")
	}
	if err := h.Factories.OwnedBy(ctx, s.FactoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *SaleHandler) Update(c echo.Context) error {
	var upd model.SaleUpdate
	if err := c.Bind(&upd); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if upd.Date != nil && !validDate(*upd.Date) {
		return unprocessable(c, "date must be YYYY-MM-DD")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	s, err := h.Sales.GetByID(ctx, c.Param("id"))
	if err != nil {
		return recordError(c, err, "sale")
	}
	if err := h.Factories.OwnedBy(ctx, s.FactoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}

	s, err = h.Sales.Update(ctx, s.ID, upd)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update sale failed"})
	}
	return c.JSON(http.StatusOK, s)
}

func (h *SaleHandler) Delete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	s, err := h.Sales.GetByID(ctx, c.Param("id"))
	if err != nil {
		return recordError(c, err, "sale")
	}
	if err := h.Factories.OwnedBy(ctx, s.FactoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}
	if err := h.Sales.Delete(ctx, s.ID); err != nil {
		return recordError(c, err, "sale")
	}
	return c.NoContent(http.StatusNoContent)
}
