package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/yadu32/brickworks-pro-suite/internal/model"
)

const usageCols = "id, factory_id, date, material_id, quantity_used, purpose, created_at, updated_at"

// UsageRepo persists stock-out events. Like purchases, usage records are
// append-only history with no update path.
type UsageRepo struct{ DB *sql.DB }

func NewUsageRepo(db *sql.DB) *UsageRepo { return &UsageRepo{DB: db} }

func scanUsage(row interface{ Scan(...any) error }) (*model.MaterialUsage, error) {
	var u model.MaterialUsage
	err := row.Scan(&u.ID, &u.FactoryID, &u.Date, &u.MaterialID, &u.QuantityUsed,
		&u.Purpose, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UsageRepo) Create(ctx context.Context, u *model.MaterialUsage) (*model.MaterialUsage, error) {
	now := time.Now().UTC()
	u.ID = uuid.NewString()
	u.CreatedAt = now
	u.UpdatedAt = now
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO material_usage ("+usageCols+") VALUES (?,?,?,?,?,?,?,?)",
		u.ID, u.FactoryID, u.Date, u.MaterialID, u.QuantityUsed, u.Purpose, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UsageRepo) ListByFactory(ctx context.Context, factoryID, startDate, endDate string) ([]model.MaterialUsage, error) {
	extra, extraArgs := dateRange(startDate, endDate)
	args := append([]any{factoryID}, extraArgs...)
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+usageCols+" FROM material_usage WHERE factory_id = ?"+extra+" ORDER BY date DESC, created_at DESC",
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.MaterialUsage{}
	for rows.Next() {
		u, err := scanUsage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func (r *UsageRepo) GetByID(ctx context.Context, id string) (*model.MaterialUsage, error) {
	return scanUsage(r.DB.QueryRowContext(ctx,
		"SELECT "+usageCols+" FROM material_usage WHERE id = ? LIMIT 1", id))
}

func (r *UsageRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM material_usage WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// TotalForMaterial sums quantity used across the material's full history,
// for the stock report.
func (r *UsageRepo) TotalForMaterial(ctx context.Context, factoryID, materialID string) (float64, error) {
	var total float64
	err := r.DB.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(quantity_used), 0) FROM material_usage WHERE factory_id = ? AND material_id = ?",
		factoryID, materialID).Scan(&total)
	return total, err
}
