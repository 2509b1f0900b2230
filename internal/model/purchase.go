package model

import "time"

// MaterialPurchase is a stock-in event: quantity and unit cost feed the
// weighted-average recompute on the referenced material.
type MaterialPurchase struct {
	ID                string    `json:"id"`
	FactoryID         string    `json:"factory_id"`
	Date              string    `json:"date"`
	MaterialID        string    `json:"material_id"`
	QuantityPurchased float64   `json:"quantity_purchased"`
	UnitCost          float64   `json:"unit_cost"`
	SupplierName      string    `json:"supplier_name"`
	SupplierPhone     string    `json:"supplier_phone"`
	PaymentMade       float64   `json:"payment_made"`
	Notes             string    `json:"notes"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
