package model

import "time"

// AdminUserRow is the raw join of a user with their factory (if any), as the
// admin report reads it from the store. The derived label and days-left are
// computed by the subscription package before serving.
type AdminUserRow struct {
	User    User
	Factory *Factory
}

// AdminUserData is one line of the operational user report.
type AdminUserData struct {
	ID                 string     `json:"id"`
	Email              string     `json:"email"`
	FactoryName        string     `json:"factory_name,omitempty"`
	Location           string     `json:"location,omitempty"`
	SubscriptionStatus string     `json:"subscription_status"`
	DaysLeft           *int       `json:"days_left"`
	LastActiveAt       *time.Time `json:"last_active_at"`
	CreatedAt          time.Time  `json:"created_at"`
}
