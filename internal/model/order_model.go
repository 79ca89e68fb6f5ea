package model

import "time"

// Order statuses. The storefront only ever writes completed orders;
// Failed exists for the payment webhook path.
const (
	OrderStatusCompleted = "completed"
	OrderStatusFailed    = "failed"
)

// Order represents an entry in the orders table.
type Order struct {
	OrderID         int64      `json:"orderid"`
	UserID          int64      `json:"userid"`
	SubscriptionID  int64      `json:"subscriptionid"`
	TotalAmount     float64    `json:"total_amount"`
	ProratedCredit  float64    `json:"prorated_credit"`
	TransactionDate time.Time  `json:"transaction_date"`
	Status          string     `json:"status"`
	CreatedAt       *time.Time `json:"created_at,omitempty"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty"`
}

// OrderItem represents a row in the order_items table.
type OrderItem struct {
	OrderItemID    int64   `json:"orderitemid"`
	OrderID        int64   `json:"orderid"`
	SubscriptionID int64   `json:"subscriptionid"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	Quantity       int     `json:"quantity"`
}

// BillingEntry is an order enriched with its subscription display name,
// as rendered in the dashboard's billing history.
type BillingEntry struct {
	OrderID          int64     `json:"orderid"`
	SubscriptionID   int64     `json:"subscriptionid"`
	SubscriptionName string    `json:"subscription_name"`
	TotalAmount      float64   `json:"total_amount"`
	TransactionDate  time.Time `json:"transaction_date"`
	Status           string    `json:"status"`
}
