package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/yadu32/brickworks-pro-suite/internal/model"
	"github.com/yadu32/brickworks-pro-suite/internal/repository"
)

// ProductHandler serves the brick/block type catalogue.
type ProductHandler struct {
	Factories FactoryOwnership
	Products  *repository.ProductRepo
}

func NewProductHandler(f FactoryOwnership, p *repository.ProductRepo) *ProductHandler {
	return &ProductHandler{Factories: f, Products: p}
}

type createProductReq struct {
	FactoryID       string `json:"factory_id"`
	Name            string `json:"name"`
	ItemsPerPunch   *int   `json:"items_per_punch"`
	SizeDescription string `json:"size_description"`
	Unit            string `json:"unit"`
}

func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if strings.TrimSpace(req.Name) == "" || req.FactoryID == "" {
		return unprocessable(c, "name and factory_id are required")
	}
	if req.Unit == "" {
		req.Unit = "pieces"
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Factories.OwnedBy(ctx, req.FactoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}

	p, err := h.Products.Create(ctx, &model.ProductDefinition{
		FactoryID:       req.FactoryID,
		Name:            req.Name,
		ItemsPerPunch:   req.ItemsPerPunch,
		SizeDescription: req.SizeDescription,
		Unit:            req.Unit,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create product failed"})
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) ListByFactory(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	factoryID := c.Param("factoryID")
	if err := h.Factories.OwnedBy(ctx, factoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}

	out, err := h.Products.ListByFactory(ctx, factoryID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) Get(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Products.GetByID(ctx, c.Param("id"))
	if err != nil {
		return recordError(c, err, "product")
	}
	if err := h.Factories.OwnedBy(ctx, p.FactoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Update(c echo.Context) error {
	var upd model.ProductDefinitionUpdate
	if err := c.Bind(&upd); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Products.GetByID(ctx, c.Param("id"))
	if err != nil {
		return recordError(c, err, "product")
	}
	if err := h.Factories.OwnedBy(ctx, p.FactoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}

	p, err = h.Products.Update(ctx, p.ID, upd)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update product failed"})
	}
	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Delete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Products.GetByID(ctx, c.Param("id"))
	if err != nil {
		return recordError(c, err, "product")
	}
	if err := h.Factories.OwnedBy(ctx, p.FactoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}
	if err := h.Products.Delete(ctx, p.ID); err != nil {
		return recordError(c, err, "product")
	}
	return c.NoContent(http.StatusNoContent)
}
