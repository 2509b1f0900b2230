package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/yadu32/brickworks-pro-suite/internal/model"
)

const saleCols = "id, factory_id, date, customer_name, customer_phone, product_id, quantity_sold, rate_per_brick, total_amount, amount_received, balance_due, notes, created_at, updated_at"

// SaleRepo persists dispatch records.
type SaleRepo struct{ DB *sql.DB }

func NewSaleRepo(db *sql.DB) *SaleRepo { return &SaleRepo{DB: db} }

func scanSale(row interface{ Scan(...any) error }) (*model.Sale, error) {
	var s model.Sale
	err := row.Scan(&s.ID, &s.FactoryID, &s.Date, &s.CustomerName, &s.CustomerPhone,
		&s.ProductID, &s.QuantitySold, &s.RatePerBrick, &s.TotalAmount, &s.AmountReceived,
		&s.BalanceDue, &s.Notes, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SaleRepo) Create(ctx context.Context, s *model.Sale) (*model.Sale, error) {
	now := time.Now().UTC()
	s.ID = uuid.NewString()
	s.CreatedAt = now
	s.UpdatedAt = now
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO sales ("+saleCols+") VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)",
		s.ID, s.FactoryID, s.Date, s.CustomerName, s.CustomerPhone, s.ProductID,
		s.QuantitySold, s.RatePerBrick, s.TotalAmount, s.AmountReceived, s.BalanceDue,
		s.Notes, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SaleRepo) ListByFactory(ctx context.Context, factoryID, startDate, endDate string) ([]model.Sale, error) {
	extra, extraArgs := dateRange(startDate, endDate)
	args := append([]any{factoryID}, extraArgs...)
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+saleCols+" FROM sales WHERE factory_id = ?"+extra+" ORDER BY date DESC, created_at DESC",
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Sale{}
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func (r *SaleRepo) GetByID(ctx context.Context, id string) (*model.Sale, error) {
	return scanSale(r.DB.QueryRowContext(ctx,
		"SELECT "+saleCols+" FROM sales WHERE id = ? LIMIT 1", id))
}

func (r *SaleRepo) Update(ctx context.Context, id string, upd model.SaleUpdate) (*model.Sale, error) {
	var set updateSet
	set.String("date", upd.Date)
	set.String("customer_name", upd.CustomerName)
	set.String("customer_phone", upd.CustomerPhone)
	set.String("product_id", upd.ProductID)
	set.Int("quantity_sold", upd.QuantitySold)
	set.Float("rate_per_brick", upd.RatePerBrick)
	set.Float("total_amount", upd.TotalAmount)
	set.Float("amount_received", upd.AmountReceived)
	set.Float("balance_due", upd.BalanceDue)
	set.String("notes", upd.Notes)
	set.Always("updated_at", time.Now().UTC())
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE sales SET "+set.clause()+" WHERE id = ?",
		append(set.args, id)...); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *SaleRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM sales WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
