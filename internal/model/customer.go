package model

import "time"

// Customer is an address-book entry scoped to one factory.
type Customer struct {
	ID        string    `json:"id"`
	FactoryID string    `json:"factory_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CustomerUpdate lists the patchable customer fields.
type CustomerUpdate struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
}
