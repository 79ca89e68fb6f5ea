package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Dowody/rw-sub000/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = `userid, authid, username, email, avatar_url, currency,
	current_subscription_id, subscription_start_date, subscription_end_date,
	referred_by, created_at, deleted_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	if err := row.Scan(&u.UserID, &u.AuthID, &u.Username, &u.Email, &u.AvatarURL, &u.Currency,
		&u.CurrentSubscriptionID, &u.SubscriptionStartDate, &u.SubscriptionEndDate,
		&u.ReferredBy, &u.CreatedAt, &u.DeletedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a profile row for a newly registered account.
func (r *UserRepository) Create(ctx context.Context, authID int64, email string, referredBy *string) (int64, error) {
	var id int64
	query := `
		INSERT INTO users (authid, email, referred_by, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING userid
	`
	if err := r.DB.QueryRow(ctx, query, authID, email, referredBy, time.Now()).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// GetByAuthID returns the profile for an authenticated identity, or nil
// when no row exists yet (the caller decides whether to lazily create).
func (r *UserRepository) GetByAuthID(ctx context.Context, authID int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE authid=$1 AND deleted_at IS NULL`
	u, err := scanUser(r.DB.QueryRow(ctx, query, authID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE userid=$1`
	u, err := scanUser(r.DB.QueryRow(ctx, query, userID))
	if err != nil {
		return nil, errors.New("user not found")
	}
	return u, nil
}

// UpdateSettings updates the profile-settings fields a user may edit.
// Nil pointers leave the current value untouched.
func (r *UserRepository) UpdateSettings(ctx context.Context, userID int64, username, currency, avatarURL *string) error {
	query := `
		UPDATE users
		SET username   = COALESCE($1, username),
		    currency   = COALESCE($2, currency),
		    avatar_url = COALESCE($3, avatar_url)
		WHERE userid=$4 AND deleted_at IS NULL
	`
	tag, err := r.DB.Exec(ctx, query, username, currency, avatarURL, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("user not found or deleted")
	}
	return nil
}

// SetSubscriptionTx points the profile at a subscription and its validity
// window inside an ongoing checkout transaction.
func (r *UserRepository) SetSubscriptionTx(ctx context.Context, tx pgx.Tx, userID, subscriptionID int64, start, end time.Time) error {
	query := `
		UPDATE users
		SET current_subscription_id=$1,
		    subscription_start_date=$2,
		    subscription_end_date=$3
		WHERE userid=$4 AND deleted_at IS NULL
	`
	tag, err := tx.Exec(ctx, query, subscriptionID, start, end, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("user not found or deleted")
	}
	return nil
}

// ListAll returns all profiles (admin use).
func (r *UserRepository) ListAll(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY userid`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, nil
}
