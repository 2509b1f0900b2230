package model

import "time"

// FactoryRate is a configurable price/wage rate, optionally tied to one
// brick type, effective from a given date.
type FactoryRate struct {
	ID            string    `json:"id"`
	FactoryID     string    `json:"factory_id"`
	RateType      string    `json:"rate_type"`
	RateAmount    float64   `json:"rate_amount"`
	EffectiveDate string    `json:"effective_date"`
	IsActive      bool      `json:"is_active"`
	BrickTypeID   string    `json:"brick_type_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// FactoryRateUpdate lists the patchable rate fields.
type FactoryRateUpdate struct {
	RateType      *string  `json:"rate_type"`
	RateAmount    *float64 `json:"rate_amount"`
	EffectiveDate *string  `json:"effective_date"`
	IsActive      *bool    `json:"is_active"`
	BrickTypeID   *string  `json:"brick_type_id"`
}
