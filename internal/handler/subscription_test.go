package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/yadu32/brickworks-pro-suite/internal/model"
	"github.com/yadu32/brickworks-pro-suite/internal/repository"
	"github.com/yadu32/brickworks-pro-suite/internal/subscription"
)

// fakeFactoryStore holds one factory per owner.
type fakeFactoryStore struct {
	byOwner map[string]*model.Factory
}

func (s *fakeFactoryStore) GetByOwner(_ context.Context, ownerID string) (*model.Factory, error) {
	if f, ok := s.byOwner[ownerID]; ok {
		return f, nil
	}
	return nil, repository.ErrNotFound
}

func (s *fakeFactoryStore) ActivatePlan(_ context.Context, factoryID, planType string, expiry time.Time) error {
	for _, f := range s.byOwner {
		if f.ID == factoryID {
			f.SubscriptionStatus = model.SubscriptionActive
			f.PlanType = &planType
			f.PlanExpiryDate = &expiry
			return nil
		}
	}
	return repository.ErrNotFound
}

var subNow = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

func subEcho(h *SubscriptionHandler, userID string) *echo.Echo {
	e := echo.New()
	asUser := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("user_id", userID)
			return next(c)
		}
	}
	g := e.Group("/api/subscription", asUser)
	g.GET("/status", h.Status)
	g.POST("/create-order", h.CreateOrder)
	g.POST("/complete", h.Complete)
	g.POST("/restore", h.Restore)
	return e
}

func newSubHandler(store *fakeFactoryStore) *SubscriptionHandler {
	h := NewSubscriptionHandler(store)
	h.Now = func() time.Time { return subNow }
	return h
}

func trialFactory(owner string, endsIn int) *model.Factory {
	end := subNow.AddDate(0, 0, endsIn)
	return &model.Factory{
		ID:                 "fac-1",
		OwnerID:            owner,
		Name:               "Test Bricks",
		SubscriptionStatus: model.SubscriptionTrial,
		TrialEndsAt:        &end,
	}
}

func TestSubscriptionStatus(t *testing.T) {
	store := &fakeFactoryStore{byOwner: map[string]*model.Factory{"u1": trialFactory("u1", 12)}}
	e := subEcho(newSubHandler(store), "u1")

	req := httptest.NewRequest(http.MethodGet, "/api/subscription/status", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}

	var got subscription.Status
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.CanPerformAction || got.DaysRemaining != 12 {
		t.Fatalf("got %+v, want live trial with 12 days", got)
	}
}

func TestSubscriptionStatusNoFactory(t *testing.T) {
	store := &fakeFactoryStore{byOwner: map[string]*model.Factory{}}
	e := subEcho(newSubHandler(store), "u1")

	req := httptest.NewRequest(http.MethodGet, "/api/subscription/status", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Factory not found") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestCreateOrder(t *testing.T) {
	store := &fakeFactoryStore{byOwner: map[string]*model.Factory{"u1": trialFactory("u1", 5)}}
	e := subEcho(newSubHandler(store), "u1")

	rec := postJSON(e, "/api/subscription/create-order", `{"plan_id":"monthly","amount":499}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body %s", rec.Code, rec.Body.String())
	}

	var got createOrderResp
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasPrefix(got.OrderID, "order_mock_") {
		t.Fatalf("order_id = %q", got.OrderID)
	}
	if got.Key != mockPaymentKey || got.Currency != "INR" || got.Amount != 499 {
		t.Fatalf("got %+v", got)
	}
}

func TestCreateOrderRejectsUnknownPlan(t *testing.T) {
	store := &fakeFactoryStore{byOwner: map[string]*model.Factory{"u1": trialFactory("u1", 5)}}
	e := subEcho(newSubHandler(store), "u1")

	rec := postJSON(e, "/api/subscription/create-order", `{"plan_id":"weekly"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCompleteActivatesPlan(t *testing.T) {
	f := trialFactory("u1", -2) // expired trial buys a plan
	store := &fakeFactoryStore{byOwner: map[string]*model.Factory{"u1": f}}
	e := subEcho(newSubHandler(store), "u1")

	rec := postJSON(e, "/api/subscription/complete", `{"plan_id":"yearly"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body %s", rec.Code, rec.Body.String())
	}

	if f.SubscriptionStatus != model.SubscriptionActive {
		t.Fatalf("stored status = %q, want active", f.SubscriptionStatus)
	}
	if want := subNow.AddDate(0, 0, 365); f.PlanExpiryDate == nil || !f.PlanExpiryDate.Equal(want) {
		t.Fatalf("expiry = %v, want %v", f.PlanExpiryDate, want)
	}

	var got subscription.Status
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.IsActive || !got.CanPerformAction {
		t.Fatalf("returned status %+v, want active", got)
	}
}

func TestCompleteRejectsUnknownPlan(t *testing.T) {
	store := &fakeFactoryStore{byOwner: map[string]*model.Factory{"u1": trialFactory("u1", 5)}}
	e := subEcho(newSubHandler(store), "u1")

	rec := postJSON(e, "/api/subscription/complete", `{"plan_id":"forever"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRestoreIsIdempotent(t *testing.T) {
	expiry := subNow.AddDate(0, 0, 200)
	plan := subscription.PlanYearly
	store := &fakeFactoryStore{byOwner: map[string]*model.Factory{"u1": {
		ID:                 "fac-1",
		OwnerID:            "u1",
		SubscriptionStatus: model.SubscriptionActive,
		PlanType:           &plan,
		PlanExpiryDate:     &expiry,
	}}}
	e := subEcho(newSubHandler(store), "u1")

	var first, second subscription.Status
	for i, dst := range []*subscription.Status{&first, &second} {
		rec := postJSON(e, "/api/subscription/restore", `{}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("call %d: status = %d", i, rec.Code)
		}
		if err := json.Unmarshal(rec.Body.Bytes(), dst); err != nil {
			t.Fatalf("call %d decode: %v", i, err)
		}
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("restore not idempotent: %+v vs %+v", first, second)
	}
}

var _ FactoryStore = (*repository.FactoryRepo)(nil)
