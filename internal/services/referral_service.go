package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/Dowody/rw-sub000/internal/model"
	"github.com/Dowody/rw-sub000/internal/repository"
)

type ReferralService struct {
	Referrals *repository.ReferralRepository
	Profiles  *repository.UserRepository
}

func NewReferralService(rr *repository.ReferralRepository, pr *repository.UserRepository) *ReferralService {
	return &ReferralService{Referrals: rr, Profiles: pr}
}

// newCode builds an uppercase 8-character code from a fresh UUID.
func newCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// GenerateCode replaces the user's referral code. Any previously issued
// code stops linking new sign-ups.
func (s *ReferralService) GenerateCode(ctx context.Context, authID int64) (*model.ReferralCode, error) {
	profile, err := s.Profiles.GetByAuthID(ctx, authID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, errors.New("profile not found")
	}
	return s.Referrals.ReplaceCode(ctx, profile.UserID, newCode())
}

// GetActiveCode returns the user's current code, or nil.
func (s *ReferralService) GetActiveCode(ctx context.Context, authID int64) (*model.ReferralCode, error) {
	profile, err := s.Profiles.GetByAuthID(ctx, authID)
	if err != nil || profile == nil {
		return nil, err
	}
	return s.Referrals.GetActiveCode(ctx, profile.UserID)
}

// ListReferrals returns everyone who signed up with the user's codes.
func (s *ReferralService) ListReferrals(ctx context.Context, authID int64) ([]model.Referral, error) {
	profile, err := s.Profiles.GetByAuthID(ctx, authID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return []model.Referral{}, nil
	}
	return s.Referrals.ListReferrals(ctx, profile.UserID)
}
