package handler

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/yadu32/brickworks-pro-suite/internal/model"
	"github.com/yadu32/brickworks-pro-suite/internal/repository"
	"github.com/yadu32/brickworks-pro-suite/internal/subscription"
)

// mockPaymentKey is the publishable test key returned with mock orders.
// Payment gateway integration is stubbed; the order flow is real, the
// charge is not.
const mockPaymentKey = "rzp_test_MOCK_KEY_12345"

// FactoryStore is the slice of FactoryRepo the subscription endpoints need.
type FactoryStore interface {
	GetByOwner(ctx context.Context, ownerID string) (*model.Factory, error)
	ActivatePlan(ctx context.Context, factoryID, planType string, expiry time.Time) error
}

// SubscriptionHandler serves the plan lifecycle: status evaluation, mock
// order creation, completion, and restore.
type SubscriptionHandler struct {
	Factories FactoryStore
	Now       func() time.Time
}

func NewSubscriptionHandler(f FactoryStore) *SubscriptionHandler {
	return &SubscriptionHandler{Factories: f, Now: time.Now}
}

func (h *SubscriptionHandler) callerFactory(c echo.Context, ctx context.Context) (*model.Factory, error) {
	f, err := h.Factories.GetByOwner(ctx, currentUserID(c))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, c.JSON(http.StatusNotFound, echo.Map{"error": "Factory not found"})
		}
		return nil, c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return f, nil
}

// Status evaluates the caller's subscription.
func (h *SubscriptionHandler) Status(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	f, errResp := h.callerFactory(c, ctx)
	if f == nil {
		return errResp
	}
	return c.JSON(http.StatusOK, subscription.Evaluate(f, h.Now().UTC()))
}

type createOrderReq struct {
	PlanID string  `json:"plan_id"`
	Amount float64 `json:"amount"`
}

type createOrderResp struct {
	OrderID  string  `json:"order_id"`
	Key      string  `json:"key"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
	PlanID   string  `json:"plan_id"`
}

// CreateOrder issues a mock payment order for the requested plan.
func (h *SubscriptionHandler) CreateOrder(c echo.Context) error {
	var req createOrderReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if _, err := subscription.PlanExpiry(req.PlanID, h.Now()); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid plan"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if f, errResp := h.callerFactory(c, ctx); f == nil {
		return errResp
	}

	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "order id generation failed"})
	}

	return c.JSON(http.StatusOK, createOrderResp{
		OrderID:  "order_mock_" + hex.EncodeToString(buf),
		Key:      mockPaymentKey,
		Amount:   req.Amount,
		Currency: "INR",
		PlanID:   req.PlanID,
	})
}

type completeReq struct {
	PlanID string `json:"plan_id"`
}

// Complete activates the paid plan after a (mock) successful payment.
func (h *SubscriptionHandler) Complete(c echo.Context) error {
	var req completeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	now := h.Now().UTC()
	expiry, err := subscription.PlanExpiry(req.PlanID, now)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid plan"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	f, errResp := h.callerFactory(c, ctx)
	if f == nil {
		return errResp
	}

	if err := h.Factories.ActivatePlan(ctx, f.ID, req.PlanID, expiry); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "activate plan failed"})
	}

	f.SubscriptionStatus = model.SubscriptionActive
	f.PlanType = &req.PlanID
	f.PlanExpiryDate = &expiry
	return c.JSON(http.StatusOK, subscription.Evaluate(f, now))
}

// Restore re-reads and re-evaluates the stored state. Idempotent; exists so
// a reinstalled client can resync without a payment flow.
func (h *SubscriptionHandler) Restore(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	f, errResp := h.callerFactory(c, ctx)
	if f == nil {
		return errResp
	}
	return c.JSON(http.StatusOK, subscription.Evaluate(f, h.Now().UTC()))
}
