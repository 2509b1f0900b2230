package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/yadu32/brickworks-pro-suite/internal/model"
	"github.com/yadu32/brickworks-pro-suite/internal/repository"
)

// ExpenseHandler serves miscellaneous dated expenses.
type ExpenseHandler struct {
	Factories FactoryOwnership
	Expenses  *repository.ExpenseRepo
}

func NewExpenseHandler(f FactoryOwnership, e *repository.ExpenseRepo) *ExpenseHandler {
	return &ExpenseHandler{Factories: f, Expenses: e}
}

type createExpenseReq struct {
	FactoryID     string  `json:"factory_id"`
	Date          string  `json:"date"`
	ExpenseType   string  `json:"expense_type"`
	Description   string  `json:"description"`
	Amount        float64 `json:"amount"`
	VendorName    string  `json:"vendor_name"`
	ReceiptNumber string  `json:"receipt_number"`
	Notes         string  `json:"notes"`
}

func (h *ExpenseHandler) Create(c echo.Context) error {
	var req createExpenseReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.FactoryID == "" || strings.TrimSpace(req.ExpenseType) == "" || !validDate(req.Date) {
		return unprocessable(c, "factory_id, expense_type and a YYYY-MM-DD date are required")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Factories.OwnedBy(ctx, req.FactoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}

	e, err := h.Expenses.Create(ctx, &model.OtherExpense{
		FactoryID:     req.FactoryID,
		Date:          req.Date,
		ExpenseType:   req.ExpenseType,
		Description:   req.Description,
		Amount:        req.Amount,
		VendorName:    req.VendorName,
		ReceiptNumber: req.ReceiptNumber,
		Notes:         req.Notes,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create expense failed"})
	}
	return c.JSON(http.StatusCreated, e)
}

func (h *ExpenseHandler) ListByFactory(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	factoryID := c.Param("factoryID")
	if err := h.Factories.OwnedBy(ctx, factoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}

	out, err := h.Expenses.ListByFactory(ctx, factoryID, c.QueryParam("start_date"), c.QueryParam("end_date"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ExpenseHandler) Update(c echo.Context) error {
	var upd model.OtherExpenseUpdate
	if err := c.Bind(&upd); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if upd.Date != nil && !validDate(*upd.Date) {
		return unprocessable(c, "date must be YYYY-MM-DD")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	e, err := h.Expenses.GetByID(ctx, c.Param("id"))
	if err != nil {
		return recordError(c, err, "expense")
	}
	if err := h.Factories.OwnedBy(ctx, e.FactoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}

	e, err = h.Expenses.Update(ctx, e.ID, upd)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update expense failed"})
	}
	return c.JSON(http.StatusOK, e)
}

func (h *ExpenseHandler) Delete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	e, err := h.Expenses.GetByID(ctx, c.Param("id"))
	if err != nil {
		return recordError(c, err, "expense")
	}
	if err := h.Factories.OwnedBy(ctx, e.FactoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}
	if err := h.Expenses.Delete(ctx, e.ID); err != nil {
		return recordError(c, err, "expense")
	}
	return c.NoContent(http.StatusNoContent)
}
