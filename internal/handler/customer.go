package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/yadu32/brickworks-pro-suite/internal/model"
	"github.com/yadu32/brickworks-pro-suite/internal/repository"
)

// CustomerHandler serves the per-factory customer address book.
type CustomerHandler struct {
	Factories FactoryOwnership
	Customers *repository.CustomerRepo
}

func NewCustomerHandler(f FactoryOwnership, cr *repository.CustomerRepo) *CustomerHandler {
	return &CustomerHandler{Factories: f, Customers: cr}
}

type createCustomerReq struct {
	FactoryID string `json:"factory_id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	Notes     string `json:"notes"`
}

func (h *CustomerHandler) Create(c echo.Context) error {
	var req createCustomerReq
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

	cust, err := h.Customers.Create(ctx, &model.Customer{
		FactoryID: req.FactoryID,
		Name:      req.Name,
		Phone:     req.Phone,
		Address:   req.Address,
		Notes:     req.Notes,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create customer failed"})
	}
	return c.JSON(http.StatusCreated, cust)
}

func (h *CustomerHandler) ListByFactory(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	factoryID := c.Param("factoryID")
	if err := h.Factories.OwnedBy(ctx, factoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}

	out, err := h.Customers.ListByFactory(ctx, factoryID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *CustomerHandler) Update(c echo.Context) error {
	var upd model.CustomerUpdate
	if err := c.Bind(&upd); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	cust, err := h.Customers.GetByID(ctx, c.Param("id"))
	if err != nil {
		return recordError(c, err, "customer")
	}
	if err := h.Factories.OwnedBy(ctx, cust.FactoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}

	cust, err = h.Customers.Update(ctx, cust.ID, upd)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update customer failed"})
	}
	return c.JSON(http.StatusOK, cust)
}

func (h *CustomerHandler) Delete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	cust, err := h.Customers.GetByID(ctx, c.Param("id"))
	if err != nil {
		return recordError(c, err, "customer")
	}
	if err := h.Factories.OwnedBy(ctx, cust.FactoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}
	if err := h.Customers.Delete(ctx, cust.ID); err != nil {
		return recordError(c, err, "customer")
	}
	return c.NoContent(http.StatusNoContent)
}
