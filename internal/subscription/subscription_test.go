package subscription

import (
	"testing"
	"time"

	"github.com/yadu32/brickworks-pro-suite/internal/model"
)

var now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func tp(t time.Time) *time.Time { return &t }
func sp(s string) *string       { return &s }

func TestEvaluate(t *testing.T) {
	cases := []struct {
		name    string
		factory model.Factory
		active  bool
		expired bool
		can     bool
		days    int
	}{
		{
			name:    "live trial",
			factory: model.Factory{SubscriptionStatus: model.SubscriptionTrial, TrialEndsAt: tp(now.AddDate(0, 0, 10))},
			can:     true,
			days:    10,
		},
		{
			name:    "trial ended yesterday",
			factory: model.Factory{SubscriptionStatus: model.SubscriptionTrial, TrialEndsAt: tp(now.AddDate(0, 0, -1))},
			expired: true,
			can:     false,
			days:    0,
		},
		{
			name: "paid plan in force",
			factory: model.Factory{
				SubscriptionStatus: model.SubscriptionActive,
				PlanType:           sp(PlanMonthly),
				PlanExpiryDate:     tp(now.AddDate(0, 0, 20)),
			},
			active: true,
			can:    true,
			days:   20,
		},
		{
			name: "paid plan lapsed",
			factory: model.Factory{
				SubscriptionStatus: model.SubscriptionActive,
				PlanType:           sp(PlanYearly),
				PlanExpiryDate:     tp(now.AddDate(0, 0, -3)),
			},
			active: false,
			can:    false,
			days:   0,
		},
		{
			name:    "active status without expiry date",
			factory: model.Factory{SubscriptionStatus: model.SubscriptionActive},
			active:  false,
			can:     false,
			days:    0,
		},
		{
			name:    "explicitly expired",
			factory: model.Factory{SubscriptionStatus: model.SubscriptionExpired},
			can:     false,
			days:    0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Evaluate(&tc.factory, now)
			if got.IsActive != tc.active {
				t.Fatalf("IsActive = %v, want %v", got.IsActive, tc.active)
			}
			if got.IsTrialExpired != tc.expired {
				t.Fatalf("IsTrialExpired = %v, want %v", got.IsTrialExpired, tc.expired)
			}
			if got.CanPerformAction != tc.can {
				t.Fatalf("CanPerformAction = %v, want %v", got.CanPerformAction, tc.can)
			}
			if got.DaysRemaining != tc.days {
				t.Fatalf("DaysRemaining = %d, want %d", got.DaysRemaining, tc.days)
			}
		})
	}
}

func TestEvaluateLifetime(t *testing.T) {
	// Lifetime ignores whatever stale expiry fields are stored.
	f := model.Factory{
		SubscriptionStatus: model.SubscriptionLifetime,
		PlanExpiryDate:     tp(now.AddDate(-1, 0, 0)),
	}
	got := Evaluate(&f, now)
	if !got.IsActive || !got.CanPerformAction {
		t.Fatalf("lifetime must always be active, got %+v", got)
	}
	if got.DaysRemaining != LifetimeDays {
		t.Fatalf("DaysRemaining = %d, want %d", got.DaysRemaining, LifetimeDays)
	}
}

func TestDaysRemaining(t *testing.T) {
	if got := DaysRemaining(now.Add(36*time.Hour), now); got != 1 {
		t.Fatalf("36h = %d days, want 1", got)
	}
	if got := DaysRemaining(now.Add(-time.Hour), now); got != 0 {
		t.Fatalf("past clamps to %d, want 0", got)
	}
}

func TestPlanExpiry(t *testing.T) {
	exp, err := PlanExpiry(PlanMonthly, now)
	if err != nil {
		t.Fatalf("monthly: %v", err)
	}
	if want := now.AddDate(0, 0, 30); !exp.Equal(want) {
		t.Fatalf("monthly expiry = %v, want %v", exp, want)
	}

	exp, err = PlanExpiry(PlanYearly, now)
	if err != nil {
		t.Fatalf("yearly: %v", err)
	}
	if want := now.AddDate(0, 0, 365); !exp.Equal(want) {
		t.Fatalf("yearly expiry = %v, want %v", exp, want)
	}

	if _, err := PlanExpiry("weekly", now); err != ErrInvalidPlan {
		t.Fatalf("weekly err = %v, want ErrInvalidPlan", err)
	}
}

func TestAdminLabel(t *testing.T) {
	cases := []struct {
		name     string
		factory  *model.Factory
		label    string
		wantDays bool
		days     int
	}{
		{name: "no factory", factory: nil, label: "Free"},
		{
			name:     "trial running",
			factory:  &model.Factory{SubscriptionStatus: model.SubscriptionTrial, TrialEndsAt: tp(now.AddDate(0, 0, 5))},
			label:    "Trial",
			wantDays: true,
			days:     5,
		},
		{
			name:     "trial lapsed",
			factory:  &model.Factory{SubscriptionStatus: model.SubscriptionTrial, TrialEndsAt: tp(now.AddDate(0, 0, -2))},
			label:    "Expired",
			wantDays: true,
			days:     0,
		},
		{
			name: "premium",
			factory: &model.Factory{
				SubscriptionStatus: model.SubscriptionActive,
				PlanExpiryDate:     tp(now.AddDate(0, 0, 100)),
			},
			label:    "Premium",
			wantDays: true,
			days:     100,
		},
		{name: "lifetime", factory: &model.Factory{SubscriptionStatus: model.SubscriptionLifetime}, label: "Lifetime"},
		{
			name:     "flagged expired",
			factory:  &model.Factory{SubscriptionStatus: model.SubscriptionExpired},
			label:    "Expired",
			wantDays: true,
			days:     0,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			label, days := AdminLabel(tc.factory, now)
			if label != tc.label {
				t.Fatalf("label = %q, want %q", label, tc.label)
			}
			if tc.wantDays {
				if days == nil {
					t.Fatalf("days = nil, want %d", tc.days)
				}
				if *days != tc.days {
					t.Fatalf("days = %d, want %d", *days, tc.days)
				}
			} else if days != nil {
				t.Fatalf("days = %d, want nil", *days)
			}
		})
	}
}
