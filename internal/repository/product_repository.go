package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/yadu32/brickworks-pro-suite/internal/model"
)

const productCols = "id, factory_id, name, items_per_punch, size_description, unit, created_at, updated_at"

// ProductRepo persists the brick/block type catalogue.
type ProductRepo struct{ DB *sql.DB }

func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{DB: db} }

func scanProduct(row interface{ Scan(...any) error }) (*model.ProductDefinition, error) {
	var p model.ProductDefinition
	err := row.Scan(&p.ID, &p.FactoryID, &p.Name, &p.ItemsPerPunch, &p.SizeDescription,
		&p.Unit, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) Create(ctx context.Context, p *model.ProductDefinition) (*model.ProductDefinition, error) {
	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO products ("+productCols+") VALUES (?,?,?,?,?,?,?,?)",
		p.ID, p.FactoryID, p.Name, p.ItemsPerPunch, p.SizeDescription, p.Unit, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProductRepo) ListByFactory(ctx context.Context, factoryID string) ([]model.ProductDefinition, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+productCols+" FROM products WHERE factory_id = ? ORDER BY name", factoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ProductDefinition{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*model.ProductDefinition, error) {
	return scanProduct(r.DB.QueryRowContext(ctx,
		"SELECT "+productCols+" FROM products WHERE id = ? LIMIT 1", id))
}

func (r *ProductRepo) Update(ctx context.Context, id string, upd model.ProductDefinitionUpdate) (*model.ProductDefinition, error) {
	var set updateSet
	set.String("name", upd.Name)
	set.Int("items_per_punch", upd.ItemsPerPunch)
	set.String("size_description", upd.SizeDescription)
	set.String("unit", upd.Unit)
	set.Always("updated_at", time.Now().UTC())
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE products SET "+set.clause()+" WHERE id = ?",
		append(set.args, id)...); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
