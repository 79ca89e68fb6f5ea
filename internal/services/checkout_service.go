package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Dowody/rw-sub000/internal/cart"
	"github.com/Dowody/rw-sub000/internal/catalog"
	"github.com/Dowody/rw-sub000/internal/model"
	"github.com/Dowody/rw-sub000/internal/repository"
)

// DashboardPath is where successful and empty-cart checkouts send the
// client.
const DashboardPath = "/dashboard"

type CheckoutService struct {
	Cart      *cart.Store
	Flags     *cart.Flags
	AuthRepo  *repository.AuthRepository
	UserRepo  *repository.UserRepository
	SubRepo   *repository.SubscriptionRepository
	OrderRepo *repository.OrderRepository
	Mailer    EmailSender
	Log       zerolog.Logger
}

func NewCheckoutService(
	cs *cart.Store,
	fl *cart.Flags,
	ar *repository.AuthRepository,
	ur *repository.UserRepository,
	sr *repository.SubscriptionRepository,
	or *repository.OrderRepository,
	mailer EmailSender,
	log zerolog.Logger,
) *CheckoutService {
	return &CheckoutService{
		Cart:      cs,
		Flags:     fl,
		AuthRepo:  ar,
		UserRepo:  ur,
		SubRepo:   sr,
		OrderRepo: or,
		Mailer:    mailer,
		Log:       log,
	}
}

// CheckoutResult summarizes a placed order for the success response.
type CheckoutResult struct {
	OrderID          int64     `json:"orderid"`
	SubscriptionID   int64     `json:"subscriptionid"`
	SubscriptionName string    `json:"subscription_name"`
	TotalAmount      float64   `json:"total_amount"`
	ProratedCredit   float64   `json:"prorated_credit"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	RedirectTo       string    `json:"redirect_to"`
	PaymentURL       string    `json:"payment_url,omitempty"`
}

// PlaceOrder runs the checkout flow for the authenticated user. Steps
// are strictly sequential; the first failure aborts with a
// user-addressable error. The order insert and profile update share one
// transaction.
func (s *CheckoutService) PlaceOrder(ctx context.Context, authID int64) (*CheckoutResult, error) {
	items := s.Cart.Items(ctx, authID)

	// 1. cart-local validation, before any database call
	if err := validateSubscriptionItems(items); err != nil {
		return nil, err
	}

	// 2+3. fetch or lazily create the profile
	profile, err := s.UserRepo.GetByAuthID(ctx, authID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if profile == nil {
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

	// 4. map the first cart item to a subscription row
	first := items[0]
	canonical, _ := catalog.CanonicalSubscriptionName(first.Name)
	selected, err := s.SubRepo.FindByName(ctx, canonical)
	if err != nil {
		return nil, fmt.Errorf("find subscription: %w", err)
	}
	if selected == nil {
		return nil, ErrNoMatchingSubscription
	}

	now := time.Now()

	// 2 (continued). an unexpired subscription blocks everything except
	// an upgrade to a strictly longer tier
	var current *model.Subscription
	if profile.CurrentSubscriptionID != nil {
		current, err = s.SubRepo.GetByID(ctx, *profile.CurrentSubscriptionID)
		if err != nil {
			return nil, fmt.Errorf("load current subscription: %w", err)
		}
	}
	if err := checkActiveSubscription(profile, current, selected, now); err != nil {
		return nil, err
	}

	// 5. final subscription + validity window
	window := resolveWindow(profile, current, selected, first.ID, now)
	if window.ProratedCredit > 0 {
		// computed but not charged, kept visible for reconciliation
		s.Log.Warn().
			Int64("authid", authID).
			Float64("prorated_credit", window.ProratedCredit).
			Msg("upgrade credit computed but not applied to order total")
	}

	total := s.Cart.TotalPrice(ctx, authID)

	// 6+7. order insert and profile update, atomically
	tx, err := s.OrderRepo.DB.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	orderID, err := s.OrderRepo.InsertTx(ctx, tx, &model.Order{
		UserID:          profile.UserID,
		SubscriptionID:  selected.SubscriptionID,
		TotalAmount:     total,
		ProratedCredit:  window.ProratedCredit,
		TransactionDate: now,
		Status:          model.OrderStatusCompleted,
	}, model.OrderItem{
		SubscriptionID: selected.SubscriptionID,
		Name:           selected.Name,
		Price:          selected.Price,
		Quantity:       1,
	})
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	if err := s.UserRepo.SetSubscriptionTx(ctx, tx, profile.UserID, window.SubscriptionID, window.Start, window.End); err != nil {
		return nil, fmt.Errorf("update profile subscription: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	// 8. clear the cart and leave the one-shot flags for the dashboard.
	// The order is already committed, so storage failures here are
	// logged rather than surfaced.
	if err := s.Cart.Clear(ctx, authID); err != nil {
		s.Log.Warn().Err(err).Int64("authid", authID).Msg("clear cart after checkout")
	}
	if err := s.Flags.SetPurchased(ctx, authID); err != nil {
		s.Log.Warn().Err(err).Int64("authid", authID).Msg("set purchase flags")
	}
	if s.Mailer != nil {
		if u, err := s.AuthRepo.GetByID(ctx, authID); err == nil {
			if err := s.Mailer.SendOrderConfirmation(ctx, u.Email, selected.Name, total); err != nil {
				s.Log.Warn().Err(err).Int64("authid", authID).Msg("send order confirmation")
			}
		}
	}

	return &CheckoutResult{
		OrderID:          orderID,
		SubscriptionID:   window.SubscriptionID,
		SubscriptionName: selected.Name,
		TotalAmount:      total,
		ProratedCredit:   window.ProratedCredit,
		StartDate:        window.Start,
		EndDate:          window.End,
		RedirectTo:       DashboardPath + "?purchase=success",
	}, nil
}
