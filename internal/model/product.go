package model

import "time"

// ProductDefinition describes a brick/block type a factory produces.
// ItemsPerPunch is the yield of one press cycle and may be unset.
type ProductDefinition struct {
	ID              string    `json:"id"`
	FactoryID       string    `json:"factory_id"`
	Name            string    `json:"name"`
	ItemsPerPunch   *int      `json:"items_per_punch"`
	SizeDescription string    `json:"size_description"`
	Unit            string    `json:"unit"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ProductDefinitionUpdate lists the patchable product fields.
type ProductDefinitionUpdate struct {
	Name            *string `json:"name"`
	ItemsPerPunch   *int    `json:"items_per_punch"`
	SizeDescription *string `json:"size_description"`
	Unit            *string `json:"unit"`
}
