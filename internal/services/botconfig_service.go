package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Dowody/rw-sub000/internal/model"
	"github.com/Dowody/rw-sub000/internal/repository"
)

var validSchedules = map[string]bool{
	"hourly": true, "daily": true, "weekly": true,
}

type BotConfigService struct {
	Configs  *repository.BotConfigRepository
	Profiles *repository.UserRepository
}

func NewBotConfigService(br *repository.BotConfigRepository, pr *repository.UserRepository) *BotConfigService {
	return &BotConfigService{Configs: br, Profiles: pr}
}

func (s *BotConfigService) validate(c *model.BotConfig) error {
	if strings.TrimSpace(c.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(c.Exchange) == "" {
		return errors.New("exchange is required")
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return errors.New("api key is required")
	}
	if strings.TrimSpace(c.DestinationAddress) == "" {
		return errors.New("destination address is required")
	}
	if c.MinWithdrawal < 0 {
		return errors.New("minimum withdrawal cannot be negative")
	}
	if !validSchedules[c.Schedule] {
		return errors.New("schedule must be hourly, daily or weekly")
	}
	return nil
}

func (s *BotConfigService) resolveUserID(ctx context.Context, authID int64) (int64, error) {
	profile, err := s.Profiles.GetByAuthID(ctx, authID)
	if err != nil {
		return 0, err
	}
	if profile == nil {
		return 0, errors.New("profile not found")
	}
	return profile.UserID, nil
}

// Create stores a new bot configuration. Activation requires an
// unexpired subscription.
func (s *BotConfigService) Create(ctx context.Context, authID int64, c *model.BotConfig) (int64, error) {
	if c.Schedule == "" {
		c.Schedule = "daily"
	}
	if err := s.validate(c); err != nil {
		return 0, err
	}
	profile, err := s.Profiles.GetByAuthID(ctx, authID)
	if err != nil {
		return 0, err
	}
	if profile == nil {
		return 0, errors.New("profile not found")
	}
	if c.Active && !profile.HasActiveSubscription(time.Now()) {
		return 0, errors.New("an active subscription is required to enable the bot")
	}
	c.UserID = profile.UserID
	return s.Configs.Create(ctx, c)
}

func (s *BotConfigService) List(ctx context.Context, authID int64) ([]model.BotConfig, error) {
	uid, err := s.resolveUserID(ctx, authID)
	if err != nil {
		return nil, err
	}
	return s.Configs.ListByUser(ctx, uid)
}

func (s *BotConfigService) Get(ctx context.Context, authID, configID int64) (*model.BotConfig, error) {
	uid, err := s.resolveUserID(ctx, authID)
	if err != nil {
		return nil, err
	}
	c, err := s.Configs.GetByID(ctx, configID)
	if err != nil {
		return nil, err
	}
	if c.UserID != uid {
		return nil, errors.New("bot configuration not found")
	}
	return c, nil
}

func (s *BotConfigService) Update(ctx context.Context, authID int64, c *model.BotConfig) error {
	if err := s.validate(c); err != nil {
		return err
	}
	profile, err := s.Profiles.GetByAuthID(ctx, authID)
	if err != nil {
		return err
	}
	if profile == nil {
		return errors.New("profile not found")
	}
	if c.Active && !profile.HasActiveSubscription(time.Now()) {
		return errors.New("an active subscription is required to enable the bot")
	}
	c.UserID = profile.UserID
	return s.Configs.Update(ctx, c)
}

func (s *BotConfigService) Delete(ctx context.Context, authID, configID int64) error {
	uid, err := s.resolveUserID(ctx, authID)
	if err != nil {
		return err
	}
	return s.Configs.Delete(ctx, configID, uid)
}
