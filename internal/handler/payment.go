package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/yadu32/brickworks-pro-suite/internal/model"
	"github.com/yadu32/brickworks-pro-suite/internal/repository"
)

// PaymentHandler serves wage payouts and advances.
type PaymentHandler struct {
	Factories FactoryOwnership
	Payments  *repository.PaymentRepo
}

func NewPaymentHandler(f FactoryOwnership, p *repository.PaymentRepo) *PaymentHandler {
	return &PaymentHandler{Factories: f, Payments: p}
}

type createPaymentReq struct {
	FactoryID    string  `json:"factory_id"`
	Date         string  `json:"date"`
	EmployeeName string  `json:"employee_name"`
	Amount       float64 `json:"amount"`
	PaymentType  string  `json:"payment_type"`
	Notes        string  `json:"notes"`
}

func (h *PaymentHandler) Create(c echo.Context) error {
	var req createPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.FactoryID == "" || strings.TrimSpace(req.EmployeeName) == "" || !validDate(req.Date) {
		return unprocessable(c, "factory_id, employee_name and a YYYY-MM-DD date are required")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Factories.OwnedBy(ctx, req.FactoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}

	p, err := h.Payments.Create(ctx, &model.EmployeePayment{
		FactoryID:    req.FactoryID,
		Date:         req.Date,
		EmployeeName: req.EmployeeName,
		Amount:       req.Amount,
		PaymentType:  req.PaymentType,
		Notes:        req.Notes,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create payment failed"})
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *PaymentHandler) ListByFactory(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	factoryID := c.Param("factoryID")
	if err := h.Factories.OwnedBy(ctx, factoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}

	out, err := h.Payments.ListByFactory(ctx, factoryID, c.QueryParam("start_date"), c.QueryParam("end_date"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PaymentHandler) Delete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Payments.GetByID(ctx, c.Param("id"))
	if err != nil {
		return recordError(c, err, "payment")
	}
	if err := h.Factories.OwnedBy(ctx, p.FactoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}
	if err := h.Payments.Delete(ctx, p.ID); err != nil {
		return recordError(c, err, "payment")
	}
	return c.NoContent(http.StatusNoContent)
}
