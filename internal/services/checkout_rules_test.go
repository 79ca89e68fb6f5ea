package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dowody/rw-sub000/internal/catalog"
	"github.com/Dowody/rw-sub000/internal/model"
)

func cartItem(id, name string) model.CartItem {
	return model.CartItem{ID: id, Name: name, Price: 10, Quantity: 1}
}

func TestValidateSubscriptionItems(t *testing.T) {
	tests := []struct {
		name    string
		items   []model.CartItem
		wantErr error
	}{
		{
			name:    "empty cart",
			items:   nil,
			wantErr: ErrEmptyCart,
		},
		{
			name:  "single tier",
			items: []model.CartItem{cartItem("monthly", "1 Month Licence")},
		},
		{
			name: "two exclusive tiers",
			items: []model.CartItem{
				cartItem("monthly", "1 Month Licence"),
				cartItem("yearly", "12 Months Licence"),
			},
			wantErr: ErrMultipleSubscriptions,
		},
		{
			name: "tier plus non-tier item",
			items: []model.CartItem{
				cartItem("monthly", "1 Month Licence"),
				cartItem("addon-vpn", "VPN Addon"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSubscriptionItems(tt.items)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func sub(id int64, name string, days int, price float64) *model.Subscription {
	return &model.Subscription{SubscriptionID: id, Name: name, DurationDays: days, Price: price}
}

func profileWith(subID int64, start, end time.Time) *model.User {
	return &model.User{
		UserID:                1,
		AuthID:                1,
		Email:                 "u@example.com",
		CurrentSubscriptionID: &subID,
		SubscriptionStartDate: &start,
		SubscriptionEndDate:   &end,
	}
}

func TestCheckActiveSubscription(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	monthly := sub(2, "1 Month Subscription", 30, 49.99)
	sixMonths := sub(3, "6 Months Subscription", 180, 249.99)
	yearly := sub(4, "12 Months Subscription", 365, 449.99)

	activeMonthly := profileWith(2, now.Add(-5*24*time.Hour), now.Add(25*24*time.Hour))
	expiredMonthly := profileWith(2, now.Add(-60*24*time.Hour), now.Add(-30*24*time.Hour))

	tests := []struct {
		name     string
		profile  *model.User
		current  *model.Subscription
		selected *model.Subscription
		wantErr  error
	}{
		{
			name:     "no subscription yet",
			profile:  &model.User{UserID: 1, AuthID: 1, Email: "u@example.com"},
			selected: monthly,
		},
		{
			name:     "expired subscription does not block",
			profile:  expiredMonthly,
			current:  monthly,
			selected: monthly,
		},
		{
			name:     "active blocks same tier",
			profile:  activeMonthly,
			current:  monthly,
			selected: monthly,
			wantErr:  ErrActiveSubscription,
		},
		{
			name:     "active blocks shorter tier",
			profile:  profileWith(3, now.Add(-5*24*time.Hour), now.Add(175*24*time.Hour)),
			current:  sixMonths,
			selected: monthly,
			wantErr:  ErrActiveSubscription,
		},
		{
			name:     "active with missing current row blocks",
			profile:  activeMonthly,
			current:  nil,
			selected: yearly,
			wantErr:  ErrActiveSubscription,
		},
		{
			name:     "strictly longer upgrade passes",
			profile:  activeMonthly,
			current:  monthly,
			selected: yearly,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkActiveSubscription(tt.profile, tt.current, tt.selected, now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResolveWindowFirstPurchase(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	profile := &model.User{UserID: 1, AuthID: 1, Email: "u@example.com"}
	monthly := sub(2, "1 Month Subscription", 30, 49.99)

	w := resolveWindow(profile, nil, monthly, catalog.PlanMonthly, now)
	assert.Equal(t, int64(2), w.SubscriptionID)
	assert.Equal(t, now, w.Start)
	assert.Equal(t, now.Add(30*24*time.Hour), w.End)
	assert.Zero(t, w.ProratedCredit)
	assert.False(t, w.Extended)
}

func TestResolveWindowFreeTrialIsTwoDays(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	profile := &model.User{UserID: 1, AuthID: 1, Email: "u@example.com"}
	// nominal duration says 7 days, the window must still be 2
	trial := sub(1, "Free Trial Subscription", 7, 0)

	w := resolveWindow(profile, nil, trial, catalog.PlanFreeTrial, now)
	assert.Equal(t, now.Add(48*time.Hour), w.End)
}

func TestResolveWindowUpgradeExtension(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	// 1-month subscription with exactly 10 days remaining
	start := now.Add(-20 * 24 * time.Hour)
	end := now.Add(10 * 24 * time.Hour)
	monthly := sub(2, "1 Month Subscription", 30, 49.99)
	yearly := sub(4, "12 Months Subscription", 365, 449.99)
	profile := profileWith(2, start, end)

	w := resolveWindow(profile, monthly, yearly, catalog.PlanYearly, now)
	require.True(t, w.Extended)
	assert.Equal(t, int64(4), w.SubscriptionID)
	assert.Equal(t, now, w.Start)
	assert.Equal(t, now.Add(365*24*time.Hour), w.End)

	wantCredit := (449.99 / 365) * 10
	assert.InDelta(t, wantCredit, w.ProratedCredit, 1e-9)
}

func TestResolveWindowSameOrShorterKeepsExisting(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	start := now.Add(-5 * 24 * time.Hour)
	end := now.Add(175 * 24 * time.Hour)
	sixMonths := sub(3, "6 Months Subscription", 180, 249.99)
	monthly := sub(2, "1 Month Subscription", 30, 49.99)
	profile := profileWith(3, start, end)

	w := resolveWindow(profile, sixMonths, monthly, catalog.PlanMonthly, now)
	assert.False(t, w.Extended)
	assert.Equal(t, int64(3), w.SubscriptionID)
	assert.Equal(t, start, w.Start)
	assert.Equal(t, end, w.End)
	assert.Zero(t, w.ProratedCredit)
}

func TestResolveWindowExpiredSubscriptionStartsFresh(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	start := now.Add(-60 * 24 * time.Hour)
	end := now.Add(-30 * 24 * time.Hour)
	monthly := sub(2, "1 Month Subscription", 30, 49.99)
	profile := profileWith(2, start, end)

	w := resolveWindow(profile, monthly, monthly, catalog.PlanMonthly, now)
	assert.Equal(t, now, w.Start)
	assert.Equal(t, now.Add(30*24*time.Hour), w.End)
	assert.False(t, w.Extended)
}
