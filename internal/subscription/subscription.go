// Package subscription derives point-in-time subscription state from a
// factory's stored billing fields. Everything here is a pure function of
// (factory, now): status is never cached, every query re-evaluates.
package subscription

import (
	"errors"
	"time"

	"github.com/yadu32/brickworks-pro-suite/internal/model"
)

// LifetimeDays is the sentinel days-remaining value for lifetime plans.
const LifetimeDays = 99999

// TrialDays is the length of the free trial granted at factory creation.
const TrialDays = 30

// Plan identifiers accepted by the payment flow and their durations.
const (
	PlanMonthly = "monthly"
	PlanYearly  = "yearly"
)

// ErrInvalidPlan is returned for plan identifiers other than monthly/yearly.
var ErrInvalidPlan = errors.New("invalid plan_id")

// Status is the derived subscription view served to clients.
type Status struct {
	SubscriptionStatus string     `json:"subscription_status"`
	TrialEndsAt        *time.Time `json:"trial_ends_at"`
	PlanExpiryDate     *time.Time `json:"plan_expiry_date"`
	PlanType           *string    `json:"plan_type"`
	DaysRemaining      int        `json:"days_remaining"`
	IsTrialExpired     bool       `json:"is_trial_expired"`
	IsActive           bool       `json:"is_active"`
	CanPerformAction   bool       `json:"can_perform_action"`
}

// Evaluate computes the subscription view for a factory at the given
// instant.
//
// Lifetime factories are unconditionally active; stored expiry fields are
// ignored. Otherwise a factory is active only while an "active" status has
// a future plan expiry, and a trial is expired once trial_ends_at has
// passed.
//
// CanPerformAction deliberately diverges from the system this replaces:
// there, any status other than "trial" could never have an expired trial
// and therefore could always act, so an explicitly expired factory kept
// full write access. Here the action gate is active-or-live-trial and
// nothing else; a factory whose status is "expired", or whose "active"
// plan has lapsed, cannot act.
func Evaluate(f *model.Factory, now time.Time) Status {
	if f.SubscriptionStatus == model.SubscriptionLifetime {
		lifetime := model.SubscriptionLifetime
		return Status{
			SubscriptionStatus: model.SubscriptionLifetime,
			PlanType:           &lifetime,
			DaysRemaining:      LifetimeDays,
			IsActive:           true,
			CanPerformAction:   true,
		}
	}

	isActive := f.SubscriptionStatus == model.SubscriptionActive &&
		f.PlanExpiryDate != nil && f.PlanExpiryDate.After(now)
	isTrialExpired := f.SubscriptionStatus == model.SubscriptionTrial &&
		f.TrialEndsAt != nil && f.TrialEndsAt.Before(now)

	days := 0
	switch {
	case isActive:
		days = DaysRemaining(*f.PlanExpiryDate, now)
	case f.SubscriptionStatus == model.SubscriptionTrial && !isTrialExpired && f.TrialEndsAt != nil:
		days = DaysRemaining(*f.TrialEndsAt, now)
	}

	return Status{
		SubscriptionStatus: f.SubscriptionStatus,
		TrialEndsAt:        f.TrialEndsAt,
		PlanExpiryDate:     f.PlanExpiryDate,
		PlanType:           f.PlanType,
		DaysRemaining:      days,
		IsTrialExpired:     isTrialExpired,
		IsActive:           isActive,
		CanPerformAction:   isActive || (f.SubscriptionStatus == model.SubscriptionTrial && !isTrialExpired),
	}
}

// DaysRemaining returns the whole days from now until end, floored and
// clamped to zero.
func DaysRemaining(end, now time.Time) int {
	d := int(end.Sub(now).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

// PlanExpiry maps a plan id to its expiry date counted from now. Unknown
// plan ids yield ErrInvalidPlan.
func PlanExpiry(planID string, now time.Time) (time.Time, error) {
	switch planID {
	case PlanMonthly:
		return now.AddDate(0, 0, 30), nil
	case PlanYearly:
		return now.AddDate(0, 0, 365), nil
	default:
		return time.Time{}, ErrInvalidPlan
	}
}

// AdminLabel condenses a factory's billing state into the coarse label the
// operator dashboard shows (Free/Trial/Premium/Lifetime/Expired) plus a
// days-left figure where one applies. Users without a factory are "Free".
func AdminLabel(f *model.Factory, now time.Time) (string, *int) {
	if f == nil {
		return "Free", nil
	}
	switch f.SubscriptionStatus {
	case model.SubscriptionTrial:
		if f.TrialEndsAt != nil {
			d := DaysRemaining(*f.TrialEndsAt, now)
			if f.TrialEndsAt.Before(now) {
				return "Expired", &d
			}
			return "Trial", &d
		}
		return "Trial", nil
	case model.SubscriptionActive:
		if f.PlanExpiryDate != nil {
			d := DaysRemaining(*f.PlanExpiryDate, now)
			if f.PlanExpiryDate.Before(now) {
				return "Expired", &d
			}
			return "Premium", &d
		}
		return "Premium", nil
	case model.SubscriptionLifetime:
		return "Lifetime", nil
	case model.SubscriptionExpired:
		zero := 0
		return "Expired", &zero
	default:
		return "Free", nil
	}
}
