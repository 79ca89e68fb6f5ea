package model

import "time"

// Subscription is a purchasable offering row (table: subscriptions).
// Read-only from the checkout flow's perspective.
type Subscription struct {
	SubscriptionID int64      `json:"subscriptionid"`
	Name           string     `json:"name"`
	DurationDays   int        `json:"duration_days"`
	Price          float64    `json:"price"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
}
