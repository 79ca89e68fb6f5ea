package services

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/Dowody/rw-sub000/internal/model"
	"github.com/Dowody/rw-sub000/internal/repository"
)

// AvatarStorage uploads a profile image and returns its public URL.
type AvatarStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

var allowedCurrencies = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "BTC": true, "ETH": true, "USDT": true,
}

type ProfileService struct {
	Profiles *repository.UserRepository
	Users    *repository.AuthRepository
	Avatars  AvatarStorage // nil when object storage is not configured
}

func NewProfileService(pr *repository.UserRepository, ur *repository.AuthRepository, av AvatarStorage) *ProfileService {
	return &ProfileService{Profiles: pr, Users: ur, Avatars: av}
}

// GetByAuthID returns the profile, lazily creating it on first access.
func (s *ProfileService) GetByAuthID(ctx context.Context, authID int64) (*model.User, error) {
	profile, err := s.Profiles.GetByAuthID(ctx, authID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		return profile, nil
	}
	u, err := s.Users.GetByID(ctx, authID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Profiles.Create(ctx, authID, u.Email, nil); err != nil {
		return nil, err
	}
	return s.Profiles.GetByAuthID(ctx, authID)
}

// UpdateSettings edits username and display currency.
func (s *ProfileService) UpdateSettings(ctx context.Context, authID int64, username, currency *string) error {
	if currency != nil && !allowedCurrencies[strings.ToUpper(*currency)] {
		return errors.New("unsupported currency")
	}
	if currency != nil {
		up := strings.ToUpper(*currency)
		currency = &up
	}
	profile, err := s.GetByAuthID(ctx, authID)
	if err != nil {
		return err
	}
	return s.Profiles.UpdateSettings(ctx, profile.UserID, username, currency, nil)
}

// UploadAvatar stores the image and points the profile at its URL.
func (s *ProfileService) UploadAvatar(ctx context.Context, authID int64, filename, contentType string, body io.Reader) (string, error) {
	if s.Avatars == nil {
		return "", errors.New("avatar storage is not configured")
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", errors.New("avatar must be an image")
	}
	profile, err := s.GetByAuthID(ctx, authID)
	if err != nil {
		return "", err
	}

	key := "avatars/" + uuid.NewString() + strings.ToLower(path.Ext(filename))
	url, err := s.Avatars.Upload(ctx, key, contentType, body)
	if err != nil {
		return "", err
	}
	if err := s.Profiles.UpdateSettings(ctx, profile.UserID, nil, nil, &url); err != nil {
		return "", err
	}
	return url, nil
}
