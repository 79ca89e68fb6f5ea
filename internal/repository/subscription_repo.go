package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Dowody/rw-sub000/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SubscriptionRepository struct {
	DB *pgxpool.Pool
}

func NewSubscriptionRepository(db *pgxpool.Pool) *SubscriptionRepository {
	return &SubscriptionRepository{DB: db}
}

// FindByName looks up a subscription by case-insensitive substring or
// exact match on name. Returns nil when nothing matches.
func (r *SubscriptionRepository) FindByName(ctx context.Context, name string) (*model.Subscription, error) {
	var s model.Subscription
	query := `
		SELECT subscriptionid, name, duration_days, price, created_at, deleted_at
		FROM subscriptions
		WHERE (name ILIKE '%' || $1 || '%' OR LOWER(name) = LOWER($1)) AND deleted_at IS NULL
		ORDER BY subscriptionid
		LIMIT 1
	`
	err := r.DB.QueryRow(ctx, query, name).
		Scan(&s.SubscriptionID, &s.Name, &s.DurationDays, &s.Price, &s.CreatedAt, &s.DeletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// GetByID returns the subscription row, or nil when it does not exist.
func (r *SubscriptionRepository) GetByID(ctx context.Context, id int64) (*model.Subscription, error) {
	var s model.Subscription
	query := `
		SELECT subscriptionid, name, duration_days, price, created_at, deleted_at
		FROM subscriptions
		WHERE subscriptionid=$1 AND deleted_at IS NULL
	`
	if err := r.DB.QueryRow(ctx, query, id).
		Scan(&s.SubscriptionID, &s.Name, &s.DurationDays, &s.Price, &s.CreatedAt, &s.DeletedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// ListByIDs batch-fetches subscriptions keyed by id, used to enrich the
// billing history in one round trip.
func (r *SubscriptionRepository) ListByIDs(ctx context.Context, ids []int64) (map[int64]model.Subscription, error) {
	out := make(map[int64]model.Subscription, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	query := `
		SELECT subscriptionid, name, duration_days, price, created_at, deleted_at
		FROM subscriptions
		WHERE subscriptionid = ANY($1)
	`
	rows, err := r.DB.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var s model.Subscription
		if err := rows.Scan(&s.SubscriptionID, &s.Name, &s.DurationDays, &s.Price, &s.CreatedAt, &s.DeletedAt); err != nil {
			return nil, err
		}
		out[s.SubscriptionID] = s
	}
	return out, nil
}

func (r *SubscriptionRepository) List(ctx context.Context) ([]model.Subscription, error) {
	query := `
		SELECT subscriptionid, name, duration_days, price, created_at, deleted_at
		FROM subscriptions
		WHERE deleted_at IS NULL
		ORDER BY subscriptionid
	`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.Subscription
	for rows.Next() {
		var s model.Subscription
		if err := rows.Scan(&s.SubscriptionID, &s.Name, &s.DurationDays, &s.Price, &s.CreatedAt, &s.DeletedAt); err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, nil
}

func (r *SubscriptionRepository) Create(ctx context.Context, s *model.Subscription) (int64, error) {
	var id int64
	query := `INSERT INTO subscriptions (name, duration_days, price, created_at) VALUES ($1, $2, $3, $4) RETURNING subscriptionid`
	if err := r.DB.QueryRow(ctx, query, s.Name, s.DurationDays, s.Price, time.Now()).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *SubscriptionRepository) Update(ctx context.Context, s *model.Subscription) error {
	query := `UPDATE subscriptions SET name=$1, duration_days=$2, price=$3 WHERE subscriptionid=$4 AND deleted_at IS NULL`
	tag, err := r.DB.Exec(ctx, query, s.Name, s.DurationDays, s.Price, s.SubscriptionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("subscription not found or deleted")
	}
	return nil
}

func (r *SubscriptionRepository) Delete(ctx context.Context, id int64) error {
	query := `UPDATE subscriptions SET deleted_at=$1 WHERE subscriptionid=$2 AND deleted_at IS NULL`
	tag, err := r.DB.Exec(ctx, query, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("subscription not found or already deleted")
	}
	return nil
}
