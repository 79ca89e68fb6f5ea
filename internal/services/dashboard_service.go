package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Dowody/rw-sub000/internal/cart"
	"github.com/Dowody/rw-sub000/internal/model"
	"github.com/Dowody/rw-sub000/internal/repository"
)

type DashboardService struct {
	UserRepo  *repository.UserRepository
	AuthRepo  *repository.AuthRepository
	OrderRepo *repository.OrderRepository
	SubRepo   *repository.SubscriptionRepository
	Flags     *cart.Flags
}

func NewDashboardService(
	ur *repository.UserRepository,
	ar *repository.AuthRepository,
	or *repository.OrderRepository,
	sr *repository.SubscriptionRepository,
	fl *cart.Flags,
) *DashboardService {
	return &DashboardService{
		UserRepo:  ur,
		AuthRepo:  ar,
		OrderRepo: or,
		SubRepo:   sr,
		Flags:     fl,
	}
}

// Summary is the dashboard's aggregate view for one user.
type Summary struct {
	Profile          *model.User         `json:"profile"`
	LatestOrder      *model.Order        `json:"latest_order,omitempty"`
	Subscription     *model.Subscription `json:"subscription,omitempty"`
	Status           string              `json:"status"`
	SubscriptionType string              `json:"subscription_type,omitempty"`
	StatusMessage    string              `json:"status_message,omitempty"`
	JustPurchased    bool                `json:"just_purchased"`
}

// GetSummary re-fetches everything on every call: profile, latest
// completed order, its subscription, derived status, and the one-shot
// purchase flags.
func (s *DashboardService) GetSummary(ctx context.Context, authID int64) (*Summary, error) {
	profile, err := s.UserRepo.GetByAuthID(ctx, authID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if profile == nil {
		// first visit after sign-up: create the profile lazily
		u, err := s.AuthRepo.GetByID(ctx, authID)
		if err != nil {
			return nil, err
		}
		if _, err := s.UserRepo.Create(ctx, authID, u.Email, nil); err != nil {
			return nil, fmt.Errorf("create profile: %w", err)
		}
		profile, err = s.UserRepo.GetByAuthID(ctx, authID)
		if err != nil || profile == nil {
			return nil, fmt.Errorf("create profile: %w", err)
		}
	}

	now := time.Now()
	out := &Summary{
		Profile: profile,
		Status:  deriveStatus(profile.SubscriptionEndDate, now),
	}

	order, err := s.OrderRepo.GetLatestCompleted(ctx, profile.UserID)
	if err != nil {
		return nil, fmt.Errorf("load latest order: %w", err)
	}
	if order != nil {
		out.LatestOrder = order
		sub, err := s.SubRepo.GetByID(ctx, order.SubscriptionID)
		if err == nil && sub != nil {
			out.Subscription = sub
			out.SubscriptionType = deriveSubscriptionType(sub.Name)
			if out.Status == SubscriptionExpired {
				out.StatusMessage = expiredMessage(out.SubscriptionType)
			}
		}
	}

	purchased, err := s.Flags.ConsumePurchased(ctx, authID)
	if err == nil {
		out.JustPurchased = purchased
	}

	return out, nil
}

// BillingHistory returns the user's full order list, each row enriched
// with the subscription display name via one batch lookup.
func (s *DashboardService) BillingHistory(ctx context.Context, authID int64) ([]model.BillingEntry, error) {
	profile, err := s.UserRepo.GetByAuthID(ctx, authID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if profile == nil {
		return []model.BillingEntry{}, nil
	}

	orders, err := s.OrderRepo.ListByUser(ctx, profile.UserID)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}

	ids := make([]int64, 0, len(orders))
	seen := make(map[int64]bool, len(orders))
	for _, o := range orders {
		if !seen[o.SubscriptionID] {
			seen[o.SubscriptionID] = true
			ids = append(ids, o.SubscriptionID)
		}
	}
	subs, err := s.SubRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load subscription names: %w", err)
	}

	out := make([]model.BillingEntry, 0, len(orders))
	for _, o := range orders {
		entry := model.BillingEntry{
			OrderID:         o.OrderID,
			SubscriptionID:  o.SubscriptionID,
			TotalAmount:     o.TotalAmount,
			TransactionDate: o.TransactionDate,
			Status:          o.Status,
		}
		if sub, ok := subs[o.SubscriptionID]; ok {
			entry.SubscriptionName = sub.Name
		}
		out = append(out, entry)
	}
	return out, nil
}
