package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/yadu32/brickworks-pro-suite/internal/model"
)

const purchaseCols = "id, factory_id, date, material_id, quantity_purchased, unit_cost, supplier_name, supplier_phone, payment_made, notes, created_at, updated_at"

// PurchaseRepo persists stock-in events. Purchases are immutable history:
// there is no update path, only create, list, fetch and delete.
type PurchaseRepo struct{ DB *sql.DB }

func NewPurchaseRepo(db *sql.DB) *PurchaseRepo { return &PurchaseRepo{DB: db} }

func scanPurchase(row interface{ Scan(...any) error }) (*model.MaterialPurchase, error) {
	var p model.MaterialPurchase
	err := row.Scan(&p.ID, &p.FactoryID, &p.Date, &p.MaterialID, &p.QuantityPurchased,
		&p.UnitCost, &p.SupplierName, &p.SupplierPhone, &p.PaymentMade, &p.Notes,
		&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PurchaseRepo) Create(ctx context.Context, p *model.MaterialPurchase) (*model.MaterialPurchase, error) {
	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO material_purchases ("+purchaseCols+") VALUES (?,?,?,?,?,?,?,?,?,?,?,?)",
		p.ID, p.FactoryID, p.Date, p.MaterialID, p.QuantityPurchased, p.UnitCost,
		p.SupplierName, p.SupplierPhone, p.PaymentMade, p.Notes, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListByFactory returns purchases newest-first, optionally bounded by an
// inclusive date range.
func (r *PurchaseRepo) ListByFactory(ctx context.Context, factoryID, startDate, endDate string) ([]model.MaterialPurchase, error) {
	extra, extraArgs := dateRange(startDate, endDate)
	args := append([]any{factoryID}, extraArgs...)
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+purchaseCols+" FROM material_purchases WHERE factory_id = ?"+extra+" ORDER BY date DESC, created_at DESC",
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.MaterialPurchase{}
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *PurchaseRepo) GetByID(ctx context.Context, id string) (*model.MaterialPurchase, error) {
	return scanPurchase(r.DB.QueryRowContext(ctx,
		"SELECT "+purchaseCols+" FROM material_purchases WHERE id = ? LIMIT 1", id))
}

// Delete removes a purchase record. The cached stock on the material is
// deliberately not rewound; the stock report recomputes from what remains.
func (r *PurchaseRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM material_purchases WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// TotalForMaterial sums quantity purchased across the material's full
// history, for the stock report.
func (r *PurchaseRepo) TotalForMaterial(ctx context.Context, factoryID, materialID string) (float64, error) {
	var total float64
	err := r.DB.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(quantity_purchased), 0) FROM material_purchases WHERE factory_id = ? AND material_id = ?",
		factoryID, materialID).Scan(&total)
	return total, err
}
