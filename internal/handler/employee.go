package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/yadu32/brickworks-pro-suite/internal/model"
	"github.com/yadu32/brickworks-pro-suite/internal/repository"
)

// EmployeeHandler serves payroll workers.
type EmployeeHandler struct {
	Factories FactoryOwnership
	Employees *repository.EmployeeRepo
}

func NewEmployeeHandler(f FactoryOwnership, e *repository.EmployeeRepo) *EmployeeHandler {
	return &EmployeeHandler{Factories: f, Employees: e}
}

type createEmployeeReq struct {
	FactoryID string   `json:"factory_id"`
	Name      string   `json:"name"`
	Phone     string   `json:"phone"`
	Role      string   `json:"role"`
	DailyWage *float64 `json:"daily_wage"`
	IsActive  *bool    `json:"is_active"`
}

func (h *EmployeeHandler) Create(c echo.Context) error {
	var req createEmployeeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Name) == "" || req.FactoryID == "" {
		return unprocessable(c, "name and factory_id are required")
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

	e, err := h.Employees.Create(ctx, &model.Employee{
		FactoryID: req.FactoryID,
		Name:      req.Name,
		Phone:     req.Phone,
		Role:      req.Role,
		DailyWage: req.DailyWage,
		IsActive:  active,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create employee failed"})
	}
	return c.JSON(http.StatusCreated, e)
}

func (h *EmployeeHandler) ListByFactory(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	factoryID := c.Param("factoryID")
	if err := h.Factories.OwnedBy(ctx, factoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}

	out, err := h.Employees.ListByFactory(ctx, factoryID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *EmployeeHandler) Update(c echo.Context) error {
	var upd model.EmployeeUpdate
	if err := c.Bind(&upd); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	e, err := h.Employees.GetByID(ctx, c.Param("id"))
	if err != nil {
		return recordError(c, err, "employee")
	}
	if err := h.Factories.OwnedBy(ctx, e.FactoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}

	e, err = h.Employees.Update(ctx, e.ID, upd)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update employee failed"})
	}
	return c.JSON(http.StatusOK, e)
}

func (h *EmployeeHandler) Delete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	e, err := h.Employees.GetByID(ctx, c.Param("id"))
	if err != nil {
		return recordError(c, err, "employee")
	}
	if err := h.Factories.OwnedBy(ctx, e.FactoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}
	if err := h.Employees.Delete(ctx, e.ID); err != nil {
		return recordError(c, err, "employee")
	}
	return c.NoContent(http.StatusNoContent)
}
