package model

import "time"

// User is the profile row backing the dashboard (table: users).
type User struct {
	UserID                int64      `json:"userid"`
	AuthID                int64      `json:"authid"`
	Username              *string    `json:"username,omitempty"`
	Email                 string     `json:"email"`
	AvatarURL             *string    `json:"avatar_url,omitempty"`
	Currency              string     `json:"currency"`
	CurrentSubscriptionID *int64     `json:"current_subscription_id,omitempty"`
	SubscriptionStartDate *time.Time `json:"subscription_start_date,omitempty"`
	SubscriptionEndDate   *time.Time `json:"subscription_end_date,omitempty"`
	ReferredBy            *string    `json:"referred_by,omitempty"`
	CreatedAt             *time.Time `json:"created_at,omitempty"`
	DeletedAt             *time.Time `json:"deleted_at,omitempty"`
}

// HasActiveSubscription reports whether the profile's subscription window
// has not yet expired at the given instant.
func (u *User) HasActiveSubscription(now time.Time) bool {
	return u.SubscriptionEndDate != nil && u.SubscriptionEndDate.After(now)
}
