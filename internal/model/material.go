package model

import "time"

// Material is a raw-material line with two derived fields: CurrentStockQty
// and AverageCostPerUnit are a materialized view over the purchase/usage
// history, folded forward on every event. The event records remain the
// source of truth; the stock report endpoint recomputes from them.
// StockVersion guards the fold against concurrent writers and is not
// exposed over the API.
type Material struct {
	ID                 string    `json:"id"`
	FactoryID          string    `json:"factory_id"`
	MaterialName       string    `json:"material_name"`
	Unit               string    `json:"unit"`
	CurrentStockQty    float64   `json:"current_stock_qty"`
	AverageCostPerUnit float64   `json:"average_cost_per_unit"`
	StockVersion       int64     `json:"-"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// MaterialUpdate lists the patchable material fields. The stock fields are
// patchable too (the UI uses this for opening-stock corrections); such edits
// bypass the event history on purpose.
type MaterialUpdate struct {
	MaterialName       *string  `json:"material_name"`
	Unit               *string  `json:"unit"`
	CurrentStockQty    *float64 `json:"current_stock_qty"`
	AverageCostPerUnit *float64 `json:"average_cost_per_unit"`
}

// MaterialStockReport is the on-demand cross-check over the full event
// history for one material. CurrentStock is max(0, purchased-used) and can
// differ from the cached Material fields when opening stock was entered
// directly.
type MaterialStockReport struct {
	MaterialID     string  `json:"material_id"`
	TotalPurchased float64 `json:"total_purchased"`
	TotalUsed      float64 `json:"total_used"`
	CurrentStock   float64 `json:"current_stock"`
}
