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

// PurchaseHandler records stock-in events. Creating a purchase folds the
// quantity and cost into the material's cached average and publishes a
// stock.movement event; neither side effect can fail the request once the
// purchase row is stored.
type PurchaseHandler struct {
	Factories FactoryOwnership
	Purchases *repository.PurchaseRepo
	Materials *repository.MaterialRepo
	// Publish sends the audit event to the broker; nil disables publishing.
	Publish func(ctx context.Context, ev queue.StockMovementEvent) error
}

func NewPurchaseHandler(f FactoryOwnership, p *repository.PurchaseRepo, m *repository.MaterialRepo,
	publish func(ctx context.Context, ev queue.StockMovementEvent) error) *PurchaseHandler {
	return &PurchaseHandler{Factories: f, Purchases: p, Materials: m, Publish: publish}
}

type createPurchaseReq struct {
	FactoryID         string  `json:"factory_id"`
	Date              string  `json:"date"`
	MaterialID        string  `json:"material_id"`
	QuantityPurchased float64 `json:"quantity_purchased"`
	UnitCost          float64 `json:"unit_cost"`
	SupplierName      string  `json:"supplier_name"`
	SupplierPhone     string  `json:"supplier_phone"`
	PaymentMade       float64 `json:"payment_made"`
	Notes             string  `json:"notes"`
}

func (h *PurchaseHandler) Create(c echo.Context) error {
	var req createPurchaseReq
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

	p, err := h.Purchases.Create(ctx, &model.MaterialPurchase{
		FactoryID:         req.FactoryID,
		Date:              req.Date,
		MaterialID:        req.MaterialID,
		QuantityPurchased: req.QuantityPurchased,
		UnitCost:          req.UnitCost,
		SupplierName:      req.SupplierName,
		SupplierPhone:     req.SupplierPhone,
		PaymentMade:       req.PaymentMade,
		Notes:             req.Notes,
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create purchase failed"})
	}

	// The purchase row is the source of truth; a failed cache fold is logged
	// and corrected by the stock report, not surfaced to the caller.
	if _, err := h.Materials.ApplyPurchase(ctx, p.MaterialID, p.QuantityPurchased, p.UnitCost); err != nil {
		log.Printf("purchase %s: stock fold failed: %v", p.ID, err)
	}

	h.publishMovement(queue.MovementPurchase, p.FactoryID, p.MaterialID, p.QuantityPurchased, p.UnitCost, p.Date)

	return c.JSON(http.StatusCreated, p)
}

func (h *PurchaseHandler) ListByFactory(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	factoryID := c.Param("factoryID")
	if err := h.Factories.OwnedBy(ctx, factoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}

	out, err := h.Purchases.ListByFactory(ctx, factoryID, c.QueryParam("start_date"), c.QueryParam("end_date"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, out)
}

// Delete removes the purchase record only; the cached stock is not rewound.
func (h *PurchaseHandler) Delete(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Purchases.GetByID(ctx, c.Param("id"))
	if err != nil {
		return recordError(c, err, "purchase")
	}
	if err := h.Factories.OwnedBy(ctx, p.FactoryID, currentUserID(c)); err != nil {
		return ownershipError(c, err)
	}
	if err := h.Purchases.Delete(ctx, p.ID); err != nil {
		return recordError(c, err, "purchase")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *PurchaseHandler) publishMovement(kind, factoryID, materialID string, qty, unitCost float64, date string) {
	if h.Publish == nil {
		return
	}
	ev := queue.StockMovementEvent{
		EventID:    uuid.NewString(),
		Kind:       kind,
		FactoryID:  factoryID,
		MaterialID: materialID,
		Quantity:   qty,
		UnitCost:   unitCost,
		Date:       date,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = h.Publish(ctx, ev) // publisher logs its own failures
	}()
}
