package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/yadu32/brickworks-pro-suite/internal/model"
)

const rateCols = "id, factory_id, rate_type, rate_amount, effective_date, is_active, brick_type_id, created_at, updated_at"

// RateRepo persists configurable price and wage rates.
type RateRepo struct{ DB *sql.DB }

func NewRateRepo(db *sql.DB) *RateRepo { return &RateRepo{DB: db} }

func scanRate(row interface{ Scan(...any) error }) (*model.FactoryRate, error) {
	var fr model.FactoryRate
	err := row.Scan(&fr.ID, &fr.FactoryID, &fr.RateType, &fr.RateAmount, &fr.EffectiveDate,
		&fr.IsActive, &fr.BrickTypeID, &fr.CreatedAt, &fr.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &fr, nil
}

func (r *RateRepo) Create(ctx context.Context, fr *model.FactoryRate) (*model.FactoryRate, error) {
	now := time.Now().UTC()
	fr.ID = uuid.NewString()
	fr.CreatedAt = now
	fr.UpdatedAt = now
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO factory_rates ("+rateCols+") VALUES (?,?,?,?,?,?,?,?,?)",
		fr.ID, fr.FactoryID, fr.RateType, fr.RateAmount, fr.EffectiveDate, fr.IsActive,
		fr.BrickTypeID, fr.CreatedAt, fr.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return fr, nil
}

func (r *RateRepo) ListByFactory(ctx context.Context, factoryID string) ([]model.FactoryRate, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+rateCols+" FROM factory_rates WHERE factory_id = ? ORDER BY effective_date DESC, created_at DESC",
		factoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.FactoryRate{}
	for rows.Next() {
		fr, err := scanRate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *fr)
	}
	return out, rows.Err()
}

func (r *RateRepo) GetByID(ctx context.Context, id string) (*model.FactoryRate, error) {
	return scanRate(r.DB.QueryRowContext(ctx,
		"SELECT "+rateCols+" FROM factory_rates WHERE id = ? LIMIT 1", id))
}

func (r *RateRepo) Update(ctx context.Context, id string, upd model.FactoryRateUpdate) (*model.FactoryRate, error) {
	var set updateSet
	set.String("rate_type", upd.RateType)
	set.Float("rate_amount", upd.RateAmount)
	set.String("effective_date", upd.EffectiveDate)
	set.Bool("is_active", upd.IsActive)
	set.String("brick_type_id", upd.BrickTypeID)
	set.Always("updated_at", time.Now().UTC())
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE factory_rates SET "+set.clause()+" WHERE id = ?",
		append(set.args, id)...); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *RateRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM factory_rates WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
