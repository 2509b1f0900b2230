package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/yadu32/brickworks-pro-suite/internal/model"
	"github.com/yadu32/brickworks-pro-suite/internal/stock"
)

const materialCols = "id, factory_id, material_name, unit, current_stock_qty, average_cost_per_unit, stock_version, created_at, updated_at"

// casAttempts bounds the optimistic-lock retry loop on the cached stock
// fields. Contention on a single material is rare enough that three tries
// is plenty; losers after that report ErrStockContention.
const casAttempts = 3

// MaterialRepo persists material definitions and folds purchase/usage events
// into the cached stock quantity and weighted-average cost.
type MaterialRepo struct{ DB *sql.DB }

func NewMaterialRepo(db *sql.DB) *MaterialRepo { return &MaterialRepo{DB: db} }

func scanMaterial(row interface{ Scan(...any) error }) (*model.Material, error) {
	var m model.Material
	err := row.Scan(&m.ID, &m.FactoryID, &m.MaterialName, &m.Unit,
		&m.CurrentStockQty, &m.AverageCostPerUnit, &m.StockVersion, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MaterialRepo) Create(ctx context.Context, m *model.Material) (*model.Material, error) {
	now := time.Now().UTC()
	m.ID = uuid.NewString()
	m.CreatedAt = now
	m.UpdatedAt = now
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO materials (id, factory_id, material_name, unit, current_stock_qty, average_cost_per_unit, stock_version, created_at, updated_at) VALUES (?,?,?,?,?,?,0,?,?)",
		m.ID, m.FactoryID, m.MaterialName, m.Unit, m.CurrentStockQty, m.AverageCostPerUnit, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *MaterialRepo) ListByFactory(ctx context.Context, factoryID string) ([]model.Material, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+materialCols+" FROM materials WHERE factory_id = ? ORDER BY material_name", factoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Material{}
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func (r *MaterialRepo) GetByID(ctx context.Context, id string) (*model.Material, error) {
	return scanMaterial(r.DB.QueryRowContext(ctx,
		"SELECT "+materialCols+" FROM materials WHERE id = ? LIMIT 1", id))
}

func (r *MaterialRepo) Update(ctx context.Context, id string, upd model.MaterialUpdate) (*model.Material, error) {
	var set updateSet
	set.String("material_name", upd.MaterialName)
	set.String("unit", upd.Unit)
	set.Float("current_stock_qty", upd.CurrentStockQty)
	set.Float("average_cost_per_unit", upd.AverageCostPerUnit)
	set.Always("updated_at", time.Now().UTC())
	if _, err := r.DB.ExecContext(ctx,
		"UPDATE materials SET "+set.clause()+" WHERE id = ?",
		append(set.args, id)...); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *MaterialRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM materials WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ApplyPurchase folds a stock-in event into the cached quantity and
// weighted-average cost. Returns (false, nil) when the material id does not
// exist: the purchase record itself is already stored and a missing material
// simply leaves no cache to update.
func (r *MaterialRepo) ApplyPurchase(ctx context.Context, materialID string, qty, unitCost float64) (bool, error) {
	return r.applyEvent(ctx, materialID, func(stockQty, avgCost float64) (float64, float64) {
		return stock.NextOnPurchase(stockQty, avgCost, qty, unitCost)
	})
}

// ApplyUsage folds a stock-out event into the cached quantity, clamping at
// zero. The average cost is untouched by usage.
func (r *MaterialRepo) ApplyUsage(ctx context.Context, materialID string, qty float64) (bool, error) {
	return r.applyEvent(ctx, materialID, func(stockQty, avgCost float64) (float64, float64) {
		return stock.NextOnUsage(stockQty, qty), avgCost
	})
}

// applyEvent runs the read-compute-CAS loop. The stock_version guard makes
// concurrent purchase/usage folds serialize instead of losing updates.
func (r *MaterialRepo) applyEvent(ctx context.Context, materialID string, next func(stockQty, avgCost float64) (float64, float64)) (bool, error) {
	for attempt := 0; attempt < casAttempts; attempt++ {
		var (
			stockQty, avgCost float64
			version           int64
		)
		err := r.DB.QueryRowContext(ctx,
			"SELECT current_stock_qty, average_cost_per_unit, stock_version FROM materials WHERE id = ? LIMIT 1",
			materialID).Scan(&stockQty, &avgCost, &version)
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		if err != nil {
			return false, err
		}

		newQty, newAvg := next(stockQty, avgCost)
		res, err := r.DB.ExecContext(ctx,
			"UPDATE materials SET current_stock_qty = ?, average_cost_per_unit = ?, stock_version = stock_version + 1, updated_at = ? WHERE id = ? AND stock_version = ?",
			newQty, newAvg, time.Now().UTC(), materialID, version)
		if err != nil {
			return false, err
		}
		if n, _ := res.RowsAffected(); n > 0 {
			return true, nil
		}
	}
	return false, ErrStockContention
}
