package services

import (
	"errors"
	"time"

	"github.com/Dowody/rw-sub000/internal/catalog"
	"github.com/Dowody/rw-sub000/internal/model"
)

// Checkout validation errors, surfaced verbatim to the user.
var (
	ErrEmptyCart              = errors.New("cart is empty")
	ErrMultipleSubscriptions  = errors.New("only one subscription plan can be purchased at a time")
	ErrActiveSubscription     = errors.New("you already have an active subscription")
	ErrNoMatchingSubscription = errors.New("no suitable subscription found, please contact support")
)

// FreeTrialDuration caps the free-trial window regardless of the
// subscription row's nominal duration_days.
const FreeTrialDuration = 2 * 24 * time.Hour

// validateSubscriptionItems rejects carts holding more than one item
// from the mutually-exclusive tier set. Runs before any remote call.
func validateSubscriptionItems(items []model.CartItem) error {
	if len(items) == 0 {
		return ErrEmptyCart
	}
	tiers := 0
	for _, it := range items {
		if catalog.IsSubscriptionTier(it.ID) {
			tiers++
		}
	}
	if tiers > 1 {
		return ErrMultipleSubscriptions
	}
	return nil
}

// checkActiveSubscription enforces the purchase block: an unexpired
// subscription rejects the order unless the selected tier is strictly
// longer than the current one (the upgrade path). A missing current
// row blocks too, there is nothing to compare an upgrade against.
func checkActiveSubscription(profile *model.User, current, selected *model.Subscription, now time.Time) error {
	if !profile.HasActiveSubscription(now) {
		return nil
	}
	if current == nil || selected.DurationDays <= current.DurationDays {
		return ErrActiveSubscription
	}
	return nil
}

// SubscriptionWindow is the outcome of step 5 of the checkout flow: the
// subscription the profile will point at and its validity interval.
type SubscriptionWindow struct {
	SubscriptionID int64
	Start          time.Time
	End            time.Time
	// ProratedCredit is the unused value of a shorter active
	// subscription when upgrading. Reported on the order but not
	// subtracted from the charged total.
	ProratedCredit float64
	// Extended marks the upgrade path (new window replaces an active
	// shorter one).
	Extended bool
}

// resolveWindow determines the final subscription window.
//
//   - no usable current subscription (none, or expired): fresh window
//     starting now; the free-trial tier ends after exactly two days,
//     anything else after the selected subscription's duration_days.
//   - active current subscription and the selected one is strictly
//     longer: upgrade. Remaining days are pro-rated into a credit and
//     the window restarts now for the new duration.
//   - otherwise: the existing subscription id and window stay untouched.
func resolveWindow(profile *model.User, current, selected *model.Subscription, planID string, now time.Time) SubscriptionWindow {
	fresh := func() SubscriptionWindow {
		end := now.Add(time.Duration(selected.DurationDays) * 24 * time.Hour)
		if planID == catalog.PlanFreeTrial {
			end = now.Add(FreeTrialDuration)
		}
		return SubscriptionWindow{
			SubscriptionID: selected.SubscriptionID,
			Start:          now,
			End:            end,
		}
	}

	if profile.CurrentSubscriptionID == nil || profile.SubscriptionEndDate == nil || !profile.SubscriptionEndDate.After(now) {
		return fresh()
	}

	if current != nil && selected.DurationDays > current.DurationDays {
		remainingDays := profile.SubscriptionEndDate.Sub(now).Hours() / 24
		if remainingDays < 0 {
			remainingDays = 0
		}
		credit := (selected.Price / float64(selected.DurationDays)) * remainingDays
		return SubscriptionWindow{
			SubscriptionID: selected.SubscriptionID,
			Start:          now,
			End:            now.Add(time.Duration(selected.DurationDays) * 24 * time.Hour),
			ProratedCredit: credit,
			Extended:       true,
		}
	}

	start := now
	if profile.SubscriptionStartDate != nil {
		start = *profile.SubscriptionStartDate
	}
	return SubscriptionWindow{
		SubscriptionID: *profile.CurrentSubscriptionID,
		Start:          start,
		End:            *profile.SubscriptionEndDate,
	}
}
