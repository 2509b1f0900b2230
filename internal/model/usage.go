package model

import "time"

// MaterialUsage is a stock-out event. Usage never drives the cached stock
// below zero; over-consumption clamps.
type MaterialUsage struct {
	ID           string    `json:"id"`
	FactoryID    string    `json:"factory_id"`
	Date         string    `json:"date"`
	MaterialID   string    `json:"material_id"`
	QuantityUsed float64   `json:"quantity_used"`
	Purpose      string    `json:"purpose"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
