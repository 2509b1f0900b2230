package model

import "time"

// Sale records a dispatch of bricks to a customer. Monetary fields are
// plain numbers the caller computes; the server stores what it is given.
type Sale struct {
	ID             string    `json:"id"`
	FactoryID      string    `json:"factory_id"`
	Date           string    `json:"date"`
	CustomerName   string    `json:"customer_name"`
	CustomerPhone  string    `json:"customer_phone"`
	ProductID      string    `json:"product_id"`
	QuantitySold   int       `json:"quantity_sold"`
	RatePerBrick   float64   `json:"rate_per_brick"`
	TotalAmount    float64   `json:"total_amount"`
	AmountReceived float64   `json:"amount_received"`
	BalanceDue     float64   `json:"balance_due"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// SaleUpdate lists the patchable sale fields.
type SaleUpdate struct {
	Date           *string  `json:"date"`
	CustomerName   *string  `json:"customer_name"`
	CustomerPhone  *string  `json:"customer_phone"`
	ProductID      *string  `json:"product_id"`
	QuantitySold   *int     `json:"quantity_sold"`
	RatePerBrick   *float64 `json:"rate_per_brick"`
	TotalAmount    *float64 `json:"total_amount"`
	AmountReceived *float64 `json:"amount_received"`
	BalanceDue     *float64 `json:"balance_due"`
	Notes          *string  `json:"notes"`
}
