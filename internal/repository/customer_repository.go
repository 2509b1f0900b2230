package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/yadu32/brickworks-pro-suite/internal/model"
)

const customerCols = "id, factory_id, name, phone, address, notes, created_at, updated_at"

// CustomerRepo persists the per-factory customer address book.
type CustomerRepo struct{ DB *sql.DB }

func NewCustomerRepo(db *sql.DB) *CustomerRepo { return &CustomerRepo{DB: db} }

func scanCustomer(row interface{ Scan(...any) error }) (*model.Customer, error) {
	var c model.Customer
	err := row.Scan(&c.ID, &c.FactoryID, &c.Name, &c.Phone, &c.Address, &c.Notes,
		&c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CustomerRepo) Create(ctx context.Context, c *model.Customer) (*model.Customer, error) {
	now := time.Now().UTC()
	c.ID = uuid.NewString()
	c.CreatedAt = now
	c.UpdatedAt = now
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO customers ("+customerCols+") VALUES (?,?,?,?,?,?,?,?)",
		c.ID, c.FactoryID, c.Name, c.Phone, c.Address, c.Notes, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CustomerRepo) ListByFactory(ctx context.Context, factoryID string) ([]model.Customer, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+customerCols+" FROM customers WHERE factory_id = ? ORDER BY name", factoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*model.Customer, error) {
	return scanCustomer(r.DB.QueryRowContext(ctx,
		"SELECT "+customerCols+" FROM customers WHERE id = ? LIMIT 1", id))
}

func (r *CustomerRepo) Update(ctx context.Context, id string, upd model.CustomerUpdate) (*model.Customer, error) {
	var set updateSet
	set.String("name", upd.Name)
	set.String("phone", upd.Phone)
	set.String("address", upd.Address)
	set.String("notes", upd.Notes)
	set.Always("updated_at", time.Now().UTC())
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE customers SET "+set.clause()+" WHERE id = ?",
		append(set.args, id)...); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM customers WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
