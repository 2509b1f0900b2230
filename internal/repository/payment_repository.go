package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/yadu32/brickworks-pro-suite/internal/model"
)

const paymentCols = "id, factory_id, date, employee_name, amount, payment_type, notes, created_at, updated_at"

// PaymentRepo persists wage payouts and advances. Payments are append-only:
// create, list, fetch, delete.
type PaymentRepo struct{ DB *sql.DB }

func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{DB: db} }

func scanPayment(row interface{ Scan(...any) error }) (*model.EmployeePayment, error) {
	var p model.EmployeePayment
	err := row.Scan(&p.ID, &p.FactoryID, &p.Date, &p.EmployeeName, &p.Amount,
		&p.PaymentType, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepo) Create(ctx context.Context, p *model.EmployeePayment) (*model.EmployeePayment, error) {
	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO employee_payments ("+paymentCols+") VALUES (?,?,?,?,?,?,?,?,?)",
		p.ID, p.FactoryID, p.Date, p.EmployeeName, p.Amount, p.PaymentType, p.Notes,
		p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PaymentRepo) ListByFactory(ctx context.Context, factoryID, startDate, endDate string) ([]model.EmployeePayment, error) {
	extra, extraArgs := dateRange(startDate, endDate)
	args := append([]any{factoryID}, extraArgs...)
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+paymentCols+" FROM employee_payments WHERE factory_id = ?"+extra+" ORDER BY date DESC, created_at DESC",
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.EmployeePayment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *PaymentRepo) GetByID(ctx context.Context, id string) (*model.EmployeePayment, error) {
	return scanPayment(r.DB.QueryRowContext(ctx,
		"SELECT "+paymentCols+" FROM employee_payments WHERE id = ? LIMIT 1", id))
}

func (r *PaymentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM employee_payments WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
