package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/yadu32/brickworks-pro-suite/internal/model"
)

const expenseCols = "id, factory_id, date, expense_type, description, amount, vendor_name, receipt_number, notes, created_at, updated_at"

// ExpenseRepo persists miscellaneous dated expenses.
type ExpenseRepo struct{ DB *sql.DB }

func NewExpenseRepo(db *sql.DB) *ExpenseRepo { return &ExpenseRepo{DB: db} }

func scanExpense(row interface{ Scan(...any) error }) (*model.OtherExpense, error) {
	var e model.OtherExpense
	err := row.Scan(&e.ID, &e.FactoryID, &e.Date, &e.ExpenseType, &e.Description,
		&e.Amount, &e.VendorName, &e.ReceiptNumber, &e.Notes, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *ExpenseRepo) Create(ctx context.Context, e *model.OtherExpense) (*model.OtherExpense, error) {
	now := time.Now().UTC()
	e.ID = uuid.NewString()
	e.CreatedAt = now
	e.UpdatedAt = now
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO other_expenses ("+expenseCols+") VALUES (?,?,?,?,?,?,?,?,?,?,?)",
		e.ID, e.FactoryID, e.Date, e.ExpenseType, e.Description, e.Amount, e.VendorName,
		e.ReceiptNumber, e.Notes, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *ExpenseRepo) ListByFactory(ctx context.Context, factoryID, startDate, endDate string) ([]model.OtherExpense, error) {
	extra, extraArgs := dateRange(startDate, endDate)
	args := append([]any{factoryID}, extraArgs...)
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+expenseCols+" FROM other_expenses WHERE factory_id = ?"+extra+" ORDER BY date DESC, created_at DESC",
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.OtherExpense{}
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (r *ExpenseRepo) GetByID(ctx context.Context, id string) (*model.OtherExpense, error) {
	return scanExpense(r.DB.QueryRowContext(ctx,
		"SELECT "+expenseCols+" FROM other_expenses WHERE id = ? LIMIT 1", id))
}

func (r *ExpenseRepo) Update(ctx context.Context, id string, upd model.OtherExpenseUpdate) (*model.OtherExpense, error) {
	var set updateSet
	set.String("date", upd.Date)
	set.String("expense_type", upd.ExpenseType)
	set.String("description", upd.Description)
	set.Float("amount", upd.Amount)
	set.String("vendor_name", upd.VendorName)
	set.String("receipt_number", upd.ReceiptNumber)
	set.String("notes", upd.Notes)
	set.Always("updated_at", time.Now().UTC())
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE other_expenses SET "+set.clause()+" WHERE id = ?",
		append(set.args, id)...); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *ExpenseRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM other_expenses WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
