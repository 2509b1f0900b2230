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

// UserRepo persists account records. Emails are stored and matched exactly
// as submitted (case-sensitive); uniqueness is enforced by the users.email
// unique key.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user with a fresh id and returns the stored record.
// Duplicate emails surface as ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, email, passwordHash string) (*model.User, error) {
	u := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (id, email, password_hash, created_at) VALUES (?,?,?,?)",
		u.ID, u.Email, u.PasswordHash, u.CreatedAt)
	if err != nil {
		// MySQL duplicate-key error code
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return u, nil
}

// GetByEmail fetches a user by exact email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, email, password_hash, created_at, last_active_at FROM users WHERE email = ? LIMIT 1",
		email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.LastActiveAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, email, password_hash, created_at, last_active_at FROM users WHERE id = ? LIMIT 1",
		id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.LastActiveAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// TouchLastActive stamps the account's last authenticated activity. Called
// best-effort from the auth middleware; failures are the caller's to log.
func (r *UserRepo) TouchLastActive(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET last_active_at = ? WHERE id = ?", time.Now().UTC(), id)
	return err
}

// ListWithFactories returns every user left-joined with their factory,
// ordered by last activity (most recent first, never-seen accounts last).
// This feeds the admin report only.
func (r *UserRepo) ListWithFactories(ctx context.Context) ([]model.AdminUserRow, error) {
	const q = `SELECT u.id, u.email, u.created_at, u.last_active_at,
	                  f.id, f.owner_id, f.name, f.location, f.subscription_status,
	                  f.trial_ends_at, f.plan_expiry_date, f.plan_type, f.created_at
	           FROM users u
	           LEFT JOIN factories f ON f.owner_id = u.id
	           ORDER BY u.last_active_at IS NULL, u.last_active_at DESC`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.AdminUserRow
	for rows.Next() {
		var row model.AdminUserRow
		var (
			fID, fOwner, fName, fLocation, fStatus *string
			fTrial, fExpiry, fCreated              *time.Time
			fPlan                                  *string
		)
		if err := rows.Scan(&row.User.ID, &row.User.Email, &row.User.CreatedAt, &row.User.LastActiveAt,
			&fID, &fOwner, &fName, &fLocation, &fStatus, &fTrial, &fExpiry, &fPlan, &fCreated); err != nil {
			return nil, err
		}
		if fID != nil {
			row.Factory = &model.Factory{
				ID:                 *fID,
				OwnerID:            *fOwner,
				Name:               *fName,
				Location:           *fLocation,
				SubscriptionStatus: *fStatus,
				TrialEndsAt:        fTrial,
				PlanExpiryDate:     fExpiry,
				PlanType:           fPlan,
				CreatedAt:          *fCreated,
			}
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
