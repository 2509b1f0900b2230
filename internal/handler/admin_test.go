package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/yadu32/brickworks-pro-suite/internal/model"
	"github.com/yadu32/brickworks-pro-suite/internal/repository"
	"github.com/yadu32/brickworks-pro-suite/internal/utils"
)

type fakeUserLister struct {
	rows []model.AdminUserRow
}

func (f *fakeUserLister) ListWithFactories(context.Context) ([]model.AdminUserRow, error) {
	return f.rows, nil
}

func TestVerifyPin(t *testing.T) {
	cfg := testConfig()
	h := NewAdminHandler(cfg, &fakeUserLister{})

	e := echo.New()
	e.POST("/api/admin/verify-pin", h.VerifyPin)

	rec := postJSON(e, "/api/admin/verify-pin", `{"pin":"`+cfg.AdminPIN+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Valid bool   `json:"valid"`
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Valid || resp.Token == "" {
		t.Fatalf("resp = %+v", resp)
	}

	// The issued token must carry the admin role.
	tok, err := jwt.Parse(resp.Token, func(*jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("parse issued token: %v", err)
	}
	if role := tok.Claims.(jwt.MapClaims)["role"]; role != utils.RoleAdmin {
		t.Fatalf("role = %v, want admin", role)
	}
}

func TestVerifyPinRejectsWrongPin(t *testing.T) {
	h := NewAdminHandler(testConfig(), &fakeUserLister{})
	e := echo.New()
	e.POST("/api/admin/verify-pin", h.VerifyPin)

	rec := postJSON(e, "/api/admin/verify-pin", `{"pin":"000000"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAdminUsersReport(t *testing.T) {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	trialEnd := now.AddDate(0, 0, 7)
	lastSeen := now.Add(-2 * time.Hour)

	rows := []model.AdminUserRow{
		{
			User: model.User{ID: "u1", Email: "active@b.c", CreatedAt: now.AddDate(0, -1, 0), LastActiveAt: &lastSeen},
			Factory: &model.Factory{
				ID: "f1", OwnerID: "u1", Name: "Alpha Bricks", Location: "Pune",
				SubscriptionStatus: model.SubscriptionTrial, TrialEndsAt: &trialEnd,
			},
		},
		{
			User: model.User{ID: "u2", Email: "free@b.c", CreatedAt: now.AddDate(0, 0, -3)},
		},
		{
			User: model.User{ID: "u3", Email: "forever@b.c", CreatedAt: now.AddDate(-1, 0, 0)},
			Factory: &model.Factory{
				ID: "f3", OwnerID: "u3", Name: "Gamma Blocks",
				SubscriptionStatus: model.SubscriptionLifetime,
			},
		},
	}

	report := buildAdminReport(rows, now)
	if len(report) != 3 {
		t.Fatalf("len = %d, want 3", len(report))
	}

	if report[0].SubscriptionStatus != "Trial" || report[0].DaysLeft == nil || *report[0].DaysLeft != 7 {
		t.Fatalf("row 0 = %+v, want Trial with 7 days", report[0])
	}
	if report[0].FactoryName != "Alpha Bricks" || report[0].Location != "Pune" {
		t.Fatalf("row 0 factory fields = %+v", report[0])
	}
	if report[1].SubscriptionStatus != "Free" || report[1].DaysLeft != nil || report[1].FactoryName != "" {
		t.Fatalf("row 1 = %+v, want Free with no factory", report[1])
	}
	if report[2].SubscriptionStatus != "Lifetime" {
		t.Fatalf("row 2 = %+v, want Lifetime", report[2])
	}
}

var _ AdminUserLister = (*repository.UserRepo)(nil)
