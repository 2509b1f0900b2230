package model

import "time"

// Supplier is a raw-material vendor scoped to one factory.
type Supplier struct {
	ID            string    `json:"id"`
	FactoryID     string    `json:"factory_id"`
	Name          string    `json:"name"`
	ContactNumber string    `json:"contact_number"`
	Address       string    `json:"address"`
	MaterialType  string    `json:"material_type"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SupplierUpdate lists the patchable supplier fields.
type SupplierUpdate struct {
	Name          *string `json:"name"`
	ContactNumber *string `json:"contact_number"`
	Address       *string `json:"address"`
	MaterialType  *string `json:"material_type"`
}
