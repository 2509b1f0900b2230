package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/yadu32/brickworks-pro-suite/internal/model"
	"github.com/yadu32/brickworks-pro-suite/internal/queue"
	"github.com/yadu32/brickworks-pro-suite/internal/repository"
)

// UsageHandler records stock-out events. Creating a usage record decrements
// the material's cached stock (clamped at zero) and publishes a
// stock.movement event.
type UsageHandler struct {
	Factories FactoryOwnership
	Usage     *repository.UsageRepo
	Materials *repository.MaterialRepo
	Publish   func(ctx context.Context, ev queue.StockMovementEvent) error
}

func NewUsageHandler(f FactoryOwnership, u *repository.UsageRepo, m *repository.MaterialRepo,
	publish func(ctx context.Context, ev queue.StockMovementEvent) error) *UsageHandler {
	return &UsageHandler{Factories: f, Usage: u, Materials: m, Publish: publish}
}

type createUsageReq struct {
	FactoryID    string  `json:"factory_id"`
	Date         string  `json:"date"`
	MaterialID   string  `json:"material_id"`
	QuantityUsed float64 `json:"quantity_used"`
	Purpose      string  `json:"purpose"`
}

func (h *UsageHandler) Create(c echo.Context) error {
	var req createUsageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.FactoryID == "" || req.MaterialID == "" || !validDate(req.Date) {
		return unprocessable(c, "factory_id, material_id and a YYYY-MM-DD date are required")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Factories.OwnedBy(ctx, req.FactoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}

	u, err := h.Usage.Create(ctx, &model.MaterialUsage{
		FactoryID:    req.FactoryID,
		Date:         req.Date,
		MaterialID:   req.MaterialID,
		QuantityUsed: req.QuantityUsed,
		Purpose:      req.Purpose,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create usage failed"})
	}

	if _, err := h.Materials.ApplyUsage(ctx, u.MaterialID, u.QuantityUsed); err != nil {
		log.Printf("usage %s: stock fold failed: %v", u.ID, err)
	}

	h.publishMovement(queue.MovementUsage, u.FactoryID, u.MaterialID, u.QuantityUsed, u.Date)

	return c.JSON(http.StatusCreated, u)
}

func (h *UsageHandler) ListByFactory(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	factoryID := c.Param("factoryID")
	if err := h.Factories.OwnedBy(ctx, factoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}

	out, err := h.Usage.ListByFactory(ctx, factoryID, c.QueryParam("start_date"), c.QueryParam("end_date"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, out)
}

// Delete removes the usage record only; the cached stock is not rewound.
func (h *UsageHandler) Delete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Usage.GetByID(ctx, c.Param("id"))
	if err != nil {
		return recordError(c, err, "usage record")
	}
	if err := h.Factories.OwnedBy(ctx, u.FactoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}
	if err := h.Usage.Delete(ctx, u.ID); err != nil {
		return recordError(c, err, "usage record")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *UsageHandler) publishMovement(kind, factoryID, materialID string, qty float64, date string) {
	if h.Publish == nil {
		return
	}
	ev := queue.StockMovementEvent{
		EventID:    uuid.NewString(),
		Kind:       kind,
		FactoryID:  factoryID,
		MaterialID: materialID,
		Quantity:   qty,
		Date:       date,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = h.Publish(ctx, ev)
	}()
}
