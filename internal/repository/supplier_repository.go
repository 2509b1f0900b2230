package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/yadu32/brickworks-pro-suite/internal/model"
)

const supplierCols = "id, factory_id, name, contact_number, address, material_type, created_at, updated_at"

// SupplierRepo persists the per-factory vendor book.
type SupplierRepo struct{ DB *sql.DB }

func NewSupplierRepo(db *sql.DB) *SupplierRepo { return &SupplierRepo{DB: db} }

func scanSupplier(row interface{ Scan(...any) error }) (*model.Supplier, error) {
	var s model.Supplier
	err := row.Scan(&s.ID, &s.FactoryID, &s.Name, &s.ContactNumber, &s.Address,
		&s.MaterialType, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SupplierRepo) Create(ctx context.Context, s *model.Supplier) (*model.Supplier, error) {
	now := time.Now().UTC()
	s.ID = uuid.NewString()
	s.CreatedAt = now
	s.UpdatedAt = now
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO suppliers ("+supplierCols+") VALUES (?,?,?,?,?,?,?,?)",
		s.ID, s.FactoryID, s.Name, s.ContactNumber, s.Address, s.MaterialType, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SupplierRepo) ListByFactory(ctx context.Context, factoryID string) ([]model.Supplier, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+supplierCols+" FROM suppliers WHERE factory_id = ? ORDER BY name", factoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Supplier{}
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*model.Supplier, error) {
	return scanSupplier(r.DB.QueryRowContext(ctx,
		"SELECT "+supplierCols+" FROM suppliers WHERE id = ? LIMIT 1", id))
}

func (r *SupplierRepo) Update(ctx context.Context, id string, upd model.SupplierUpdate) (*model.Supplier, error) {
	var set updateSet
	set.String("name", upd.Name)
	set.String("contact_number", upd.ContactNumber)
	set.String("address", upd.Address)
	set.String("material_type", upd.MaterialType)
	set.Always("updated_at", time.Now().UTC())
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE suppliers SET "+set.clause()+" WHERE id = ?",
		append(set.args, id)...); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *SupplierRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM suppliers WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
