package model

import "time"

// ProductionLog records one day's output of a product. Date is kept as an
// ISO YYYY-MM-DD string so range filters compare lexicographically, the same
// way the rest of the dated collections do.
type ProductionLog struct {
	ID          string    `json:"id"`
	FactoryID   string    `json:"factory_id"`
	Date        string    `json:"date"`
	ProductID   string    `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	Punches     *int      `json:"punches"`
	Remarks     string    `json:"remarks"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductionLogUpdate lists the patchable production-log fields.
type ProductionLogUpdate struct {
	Date        *string `json:"date"`
	ProductID   *string `json:"product_id"`
	ProductName *string `json:"product_name"`
	Quantity    *int    `json:"quantity"`
	Punches     *int    `json:"punches"`
	Remarks     *string `json:"remarks"`
}
