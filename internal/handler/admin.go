package handler

import (
	"context"
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/yadu32/brickworks-pro-suite/internal/config"
	"github.com/yadu32/brickworks-pro-suite/internal/model"
	"github.com/yadu32/brickworks-pro-suite/internal/subscription"
	"github.com/yadu32/brickworks-pro-suite/internal/utils"
)

// adminTokenTTLMin bounds the lifetime of a PIN-issued admin token.
const adminTokenTTLMin = 60

// AdminUserLister is the slice of UserRepo the admin report needs.
type AdminUserLister interface {
	ListWithFactories(ctx context.Context) ([]model.AdminUserRow, error)
}

// AdminHandler serves the operator endpoints: the PIN exchange and the user
// report.
type AdminHandler struct {
	Cfg   config.Config
	Store AdminUserLister
	Now   func() time.Time
}

func NewAdminHandler(cfg config.Config, store AdminUserLister) *AdminHandler {
	return &AdminHandler{Cfg: cfg, Store: store, Now: time.Now}
}

type verifyPinReq struct {
	PIN string `json:"pin"`
}

// VerifyPin exchanges the static operator PIN for a short-lived admin token.
// The report endpoints accept only tokens carrying the admin role; knowing
// the PIN alone opens nothing else.
func (h *AdminHandler) VerifyPin(c echo.Context) error {
	var req verifyPinReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if subtle.ConstantTimeCompare([]byte(req.PIN), []byte(h.Cfg.AdminPIN)) != 1 {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid PIN"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, "admin", "", utils.RoleAdmin, adminTokenTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"valid": true, "token": access.Token})
}

// Users returns every account with its factory and derived subscription
// label, most recently active first (ordering comes from the store).
func (h *AdminHandler) Users(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	rows, err := h.Store.ListWithFactories(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, buildAdminReport(rows, h.Now().UTC()))
}

func buildAdminReport(rows []model.AdminUserRow, now time.Time) []model.AdminUserData {
	out := make([]model.AdminUserData, 0, len(rows))
	for _, row := range rows {
		d := model.AdminUserData{
			ID:           row.User.ID,
			Email:        row.User.Email,
			LastActiveAt: row.User.LastActiveAt,
			CreatedAt:    row.User.CreatedAt,
		}
		d.SubscriptionStatus, d.DaysLeft = subscription.AdminLabel(row.Factory, now)
		if row.Factory != nil {
			d.FactoryName = row.Factory.Name
			d.Location = row.Factory.Location
		}
		out = append(out, d)
	}
	return out
}
