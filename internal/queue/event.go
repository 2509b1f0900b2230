// Package queue defines message payloads exchanged over the message broker.
package queue

// Stock movement kinds carried in StockMovementEvent.Kind.
const (
	MovementPurchase = "purchase"
	MovementUsage    = "usage"
)

// StockMovementEvent is published whenever a material purchase or usage is
// recorded. It carries enough for downstream consumers to log or audit the
// movement without querying the primary database.
type StockMovementEvent struct {
	EventID    string  `json:"event_id"`
	Kind       string  `json:"kind"`
	FactoryID  string  `json:"factory_id"`
	MaterialID string  `json:"material_id"`
	Quantity   float64 `json:"quantity"`
	UnitCost   float64 `json:"unit_cost,omitempty"`
	Date       string  `json:"date"`
	OccurredAt string  `json:"occurred_at"`
}
