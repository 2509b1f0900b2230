package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yadu32/brickworks-pro-suite/internal/model"
)

const factoryCols = "id, owner_id, name, location, subscription_status, trial_ends_at, plan_expiry_date, plan_type, created_at"

// FactoryRepo persists the tenant records. Every other repository leans on
// OwnedBy to decide between 404 and 403.
type FactoryRepo struct{ DB *sql.DB }

func NewFactoryRepo(db *sql.DB) *FactoryRepo { return &FactoryRepo{DB: db} }

func scanFactory(row interface{ Scan(...any) error }) (*model.Factory, error) {
	var f model.Factory
	err := row.Scan(&f.ID, &f.OwnerID, &f.Name, &f.Location, &f.SubscriptionStatus,
		&f.TrialEndsAt, &f.PlanExpiryDate, &f.PlanType, &f.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Create inserts a new factory on trial, trial ending 30 days out. A second
// factory for the same owner trips the owner_id unique key and comes back as
// ErrFactoryExists.
func (r *FactoryRepo) Create(ctx context.Context, ownerID, name, location string) (*model.Factory, error) {
	now := time.Now().UTC()
	trialEnd := now.AddDate(0, 0, 30)
	f := &model.Factory{
		ID:                 uuid.NewString(),
		OwnerID:            ownerID,
		Name:               name,
		Location:           location,
		SubscriptionStatus: model.SubscriptionTrial,
		TrialEndsAt:        &trialEnd,
		CreatedAt:          now,
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO factories (id, owner_id, name, location, subscription_status, trial_ends_at, created_at) VALUES (?,?,?,?,?,?,?)",
		f.ID, f.OwnerID, f.Name, f.Location, f.SubscriptionStatus, f.TrialEndsAt, f.CreatedAt)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return nil, ErrFactoryExists
		}
		return nil, err
	}
	return f, nil
}

// GetByOwner returns the owner's single factory, ErrNotFound if they have none.
func (r *FactoryRepo) GetByOwner(ctx context.Context, ownerID string) (*model.Factory, error) {
	return scanFactory(r.DB.QueryRowContext(ctx,
		"SELECT "+factoryCols+" FROM factories WHERE owner_id = ? LIMIT 1", ownerID))
}

// ListByOwner returns the owner's factories as a slice. At most one row can
// exist, but the list endpoint's contract is an array.
func (r *FactoryRepo) ListByOwner(ctx context.Context, ownerID string) ([]model.Factory, error) {
	f, err := r.GetByOwner(ctx, ownerID)
	if errors.Is(err, ErrNotFound) {
		return []model.Factory{}, nil
	}
	if err != nil {
		return nil, err
	}
	return []model.Factory{*f}, nil
}

func (r *FactoryRepo) GetByID(ctx context.Context, id string) (*model.Factory, error) {
	return scanFactory(r.DB.QueryRowContext(ctx,
		"SELECT "+factoryCols+" FROM factories WHERE id = ? LIMIT 1", id))
}

// GetByIDAndOwner returns the factory only when the caller owns it. A factory
// that exists but belongs to someone else reads as ErrNotFound, which keeps
// foreign tenant ids unguessable on the factory endpoints.
func (r *FactoryRepo) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*model.Factory, error) {
	return scanFactory(r.DB.QueryRowContext(ctx,
		"SELECT "+factoryCols+" FROM factories WHERE id = ? AND owner_id = ? LIMIT 1", id, ownerID))
}

// OwnedBy resolves the ownership question for entity endpoints: ErrNotFound
// when the factory id does not exist at all, ErrForbidden when it exists
// under a different owner, nil when the caller owns it.
func (r *FactoryRepo) OwnedBy(ctx context.Context, factoryID, ownerID string) error {
	var owner string
	err := r.DB.QueryRowContext(ctx,
		"SELECT owner_id FROM factories WHERE id = ? LIMIT 1", factoryID).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if owner != ownerID {
		return ErrForbidden
	}
	return nil
}

// Update applies a partial update and returns the fresh row. No-op patches
// still return the current record.
func (r *FactoryRepo) Update(ctx context.Context, id, ownerID string, upd model.FactoryUpdate) (*model.Factory, error) {
	var set updateSet
	set.String("name", upd.Name)
	set.String("location", upd.Location)
	set.String("subscription_status", upd.SubscriptionStatus)
	set.String("plan_type", upd.PlanType)
	set.Time("plan_expiry_date", upd.PlanExpiryDate)
	if len(set.cols) > 0 {
		res, err := r.DB.ExecContext(ctx,
			"UPDATE factories SET "+set.clause()+" WHERE id = ? AND owner_id = ?",
			append(set.args, id, ownerID)...)
		if err != nil {
			return nil, err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			// Distinguish "no change" from "no row".
			if _, err := r.GetByIDAndOwner(ctx, id, ownerID); err != nil {
				return nil, err
			}
		}
	}
	return r.GetByIDAndOwner(ctx, id, ownerID)
}

// DeleteByIDAndOwner removes the factory. Child records are cascaded by the
// schema's foreign keys.
func (r *FactoryRepo) DeleteByIDAndOwner(ctx context.Context, id, ownerID string) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM factories WHERE id = ? AND owner_id = ?", id, ownerID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ActivatePlan flips the factory to an active paid plan after a completed
// order. Lifetime plans keep the sentinel far-future expiry.
func (r *FactoryRepo) ActivatePlan(ctx context.Context, factoryID, planType string, expiry time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE factories SET subscription_status = ?, plan_type = ?, plan_expiry_date = ? WHERE id = ?",
		model.SubscriptionActive, planType, expiry.UTC(), factoryID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
