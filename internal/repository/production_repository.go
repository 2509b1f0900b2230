package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/yadu32/brickworks-pro-suite/internal/model"
)

const productionCols = "id, factory_id, date, product_id, product_name, quantity, punches, remarks, created_at, updated_at"

// ProductionRepo persists daily output logs.
type ProductionRepo struct{ DB *sql.DB }

func NewProductionRepo(db *sql.DB) *ProductionRepo { return &ProductionRepo{DB: db} }

func scanProduction(row interface{ Scan(...any) error }) (*model.ProductionLog, error) {
	var p model.ProductionLog
	err := row.Scan(&p.ID, &p.FactoryID, &p.Date, &p.ProductID, &p.ProductName,
		&p.Quantity, &p.Punches, &p.Remarks, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductionRepo) Create(ctx context.Context, p *model.ProductionLog) (*model.ProductionLog, error) {
	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO production_logs ("+productionCols+") VALUES (?,?,?,?,?,?,?,?,?,?)",
		p.ID, p.FactoryID, p.Date, p.ProductID, p.ProductName, p.Quantity, p.Punches,
		p.Remarks, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProductionRepo) ListByFactory(ctx context.Context, factoryID, startDate, endDate string) ([]model.ProductionLog, error) {
	extra, extraArgs := dateRange(startDate, endDate)
	args := append([]any{factoryID}, extraArgs...)
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+productionCols+" FROM production_logs WHERE factory_id = ?"+extra+" ORDER BY date DESC, created_at DESC",
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ProductionLog{}
	for rows.Next() {
		p, err := scanProduction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *ProductionRepo) GetByID(ctx context.Context, id string) (*model.ProductionLog, error) {
	return scanProduction(r.DB.QueryRowContext(ctx,
		"SELECT "+productionCols+" FROM production_logs WHERE id = ? LIMIT 1", id))
}

func (r *ProductionRepo) Update(ctx context.Context, id string, upd model.ProductionLogUpdate) (*model.ProductionLog, error) {
	var set updateSet
	set.String("date", upd.Date)
	set.String("product_id", upd.ProductID)
	set.String("product_name", upd.ProductName)
	set.Int("quantity", upd.Quantity)
	set.Int("punches", upd.Punches)
	set.String("remarks", upd.Remarks)
	set.Always("updated_at", time.Now().UTC())
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE production_logs SET "+set.clause()+" WHERE id = ?",
		append(set.args, id)...); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *ProductionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM production_logs WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
