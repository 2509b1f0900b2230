package model

import "time"

// Subscription status values stored on a factory. The derived view of these
// fields lives in the subscription package.
const (
	SubscriptionTrial    = "trial"
	SubscriptionActive   = "active"
	SubscriptionExpired  = "expired"
	SubscriptionLifetime = "lifetime"
)

// Factory is the tenant unit: every other record hangs off a factory and a
// factory belongs to exactly one user. A user owns at most one factory,
// enforced by a UNIQUE key on owner_id and checked again at creation.
//
// Fields:
//  ID                 – opaque UUID.
//  OwnerID            – users.id of the owning account.
//  Name               – business name.
//  Location           – free-form location text.
//  SubscriptionStatus – trial | active | expired | lifetime.
//  TrialEndsAt        – end of the free trial (set at creation, now+30d).
//  PlanExpiryDate     – end of the paid plan, nil unless a plan was bought.
//  PlanType           – monthly | yearly | lifetime, nil while on trial.
//  CreatedAt          – timestamp of creation.
type Factory struct {
	ID                 string     `json:"id"`
	OwnerID            string     `json:"owner_id"`
	Name               string     `json:"name"`
	Location           string     `json:"location"`
	SubscriptionStatus string     `json:"subscription_status"`
	TrialEndsAt        *time.Time `json:"trial_ends_at"`
	PlanExpiryDate     *time.Time `json:"plan_expiry_date"`
	PlanType           *string    `json:"plan_type"`
	CreatedAt          time.Time  `json:"created_at"`
}

// FactoryUpdate carries the PATCH-style fields for a factory. Nil pointers
// mean "leave untouched".
type FactoryUpdate struct {
	Name               *string    `json:"name"`
	Location           *string    `json:"location"`
	SubscriptionStatus *string    `json:"subscription_status"`
	PlanType           *string    `json:"plan_type"`
	PlanExpiryDate     *time.Time `json:"plan_expiry_date"`
}
