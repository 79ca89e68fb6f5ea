package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PasswordResetRepository struct {
	db *pgxpool.Pool
}

func NewPasswordResetRepository(db *pgxpool.Pool) *PasswordResetRepository {
	return &PasswordResetRepository{db: db}
}

func (r *PasswordResetRepository) Create(ctx context.Context, authID int64, token string, exp time.Time) error {
	// a fresh reset request supersedes earlier tokens
	if _, err := r.db.Exec(ctx,
		`DELETE FROM password_resets WHERE authid = $1`, authID); err != nil {
		return err
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO password_resets (authid, token, expires_at)
		VALUES ($1, $2, $3)
	`, authID, token, exp)
	return err
}

func (r *PasswordResetRepository) GetAuthID(ctx context.Context, token string) (int64, error) {
	var authID int64
	err := r.db.QueryRow(ctx, `
		SELECT authid FROM password_resets
		WHERE token = $1 AND expires_at > now()
	`, token).Scan(&authID)
	return authID, err
}

func (r *PasswordResetRepository) Delete(ctx context.Context, token string) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM password_resets WHERE token = $1`, token)
	return err
}
