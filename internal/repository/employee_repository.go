package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/yadu32/brickworks-pro-suite/internal/model"
)

const employeeCols = "id, factory_id, name, phone, role, daily_wage, is_active, created_at, updated_at"

// EmployeeRepo persists payroll workers.
type EmployeeRepo struct{ DB *sql.DB }

func NewEmployeeRepo(db *sql.DB) *EmployeeRepo { return &EmployeeRepo{DB: db} }

func scanEmployee(row interface{ Scan(...any) error }) (*model.Employee, error) {
	var e model.Employee
	err := row.Scan(&e.ID, &e.FactoryID, &e.Name, &e.Phone, &e.Role, &e.DailyWage,
		&e.IsActive, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EmployeeRepo) Create(ctx context.Context, e *model.Employee) (*model.Employee, error) {
	now := time.Now().UTC()
	e.ID = uuid.NewString()
	e.CreatedAt = now
	e.UpdatedAt = now
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO employees ("+employeeCols+") VALUES (?,?,?,?,?,?,?,?,?)",
		e.ID, e.FactoryID, e.Name, e.Phone, e.Role, e.DailyWage, e.IsActive, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *EmployeeRepo) ListByFactory(ctx context.Context, factoryID string) ([]model.Employee, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+employeeCols+" FROM employees WHERE factory_id = ? ORDER BY name", factoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (r *EmployeeRepo) GetByID(ctx context.Context, id string) (*model.Employee, error) {
	return scanEmployee(r.DB.QueryRowContext(ctx,
		"SELECT "+employeeCols+" FROM employees WHERE id = ? LIMIT 1", id))
}

func (r *EmployeeRepo) Update(ctx context.Context, id string, upd model.EmployeeUpdate) (*model.Employee, error) {
	var set updateSet
	set.String("name", upd.Name)
	set.String("phone", upd.Phone)
	set.String("role", upd.Role)
	set.Float("daily_wage", upd.DailyWage)
	set.Bool("is_active", upd.IsActive)
	set.Always("updated_at", time.Now().UTC())
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE employees SET "+set.clause()+" WHERE id = ?",
		append(set.args, id)...); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *EmployeeRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM employees WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
