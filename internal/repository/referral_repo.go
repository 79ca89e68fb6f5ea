package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Dowody/rw-sub000/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReferralRepository struct {
	DB *pgxpool.Pool
}

func NewReferralRepository(db *pgxpool.Pool) *ReferralRepository {
	return &ReferralRepository{DB: db}
}

// ReplaceCode deactivates every prior code for the user and inserts the
// new one, so a single active code exists at any time.
func (r *ReferralRepository) ReplaceCode(ctx context.Context, userID int64, code string) (*model.ReferralCode, error) {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE referral_codes SET active=FALSE WHERE userid=$1 AND active`, userID); err != nil {
		return nil, err
	}

	var rc model.ReferralCode
	err = tx.QueryRow(ctx, `
		INSERT INTO referral_codes (userid, code, active, created_at)
		VALUES ($1, $2, TRUE, $3)
		RETURNING codeid, userid, code, active, created_at
	`, userID, code, time.Now()).
		Scan(&rc.CodeID, &rc.UserID, &rc.Code, &rc.Active, &rc.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &rc, nil
}

// GetActiveCode returns the user's current code, or nil when none was
// generated yet.
func (r *ReferralRepository) GetActiveCode(ctx context.Context, userID int64) (*model.ReferralCode, error) {
	var rc model.ReferralCode
	query := `SELECT codeid, userid, code, active, created_at FROM referral_codes WHERE userid=$1 AND active LIMIT 1`
	err := r.DB.QueryRow(ctx, query, userID).
		Scan(&rc.CodeID, &rc.UserID, &rc.Code, &rc.Active, &rc.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rc, nil
}

// CodeExists checks a referral code entered at sign-up. Inactive codes no
// longer link new users.
func (r *ReferralRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM referral_codes WHERE code=$1 AND active)`
	if err := r.DB.QueryRow(ctx, query, code).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// ListReferrals returns users who signed up with any of the referrer's
// codes. Status derives from the referred account: verified accounts are
// "signed up", the rest stay "pending".
func (r *ReferralRepository) ListReferrals(ctx context.Context, userID int64) ([]model.Referral, error) {
	query := `
		SELECT u.username, u.email, ua.email_verified, u.created_at
		FROM users u
		JOIN referral_codes rc ON rc.code = u.referred_by
		JOIN userauth ua ON ua.authid = u.authid
		WHERE rc.userid=$1 AND u.deleted_at IS NULL
		ORDER BY u.created_at DESC
	`
	rows, err := r.DB.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Referral
	for rows.Next() {
		var (
			ref      model.Referral
			verified bool
			joined   *time.Time
		)
		if err := rows.Scan(&ref.Username, &ref.Email, &verified, &joined); err != nil {
			return nil, err
		}
		if verified {
			ref.Status = model.ReferralStatusSignedUp
		} else {
			ref.Status = model.ReferralStatusPending
		}
		if joined != nil {
			ref.JoinedAt = *joined
		}
		out = append(out, ref)
	}
	return out, nil
}
