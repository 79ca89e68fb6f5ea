package services

import (
	"strings"
	"time"
)

// Subscription statuses shown on the dashboard.
const (
	SubscriptionActive  = "active"
	SubscriptionExpired = "expired"
)

// Coarse subscription types, used only to pick the right
// "your subscription ended" message.
const (
	TypeTrial     = "trial"
	TypeMonthly   = "monthly"
	TypeSixMonths = "6-months"
	TypeYearly    = "yearly"
)

func deriveStatus(end *time.Time, now time.Time) string {
	if end != nil && end.After(now) {
		return SubscriptionActive
	}
	return SubscriptionExpired
}

// deriveSubscriptionType classifies a subscription row name by substring.
// Longer tiers are matched first so "12 Months" is not caught by the
// bare "month" check.
func deriveSubscriptionType(name string) string {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "trial"):
		return TypeTrial
	case strings.Contains(n, "12 month"), strings.Contains(n, "year"):
		return TypeYearly
	case strings.Contains(n, "6 month"):
		return TypeSixMonths
	default:
		return TypeMonthly
	}
}

func expiredMessage(subType string) string {
	switch subType {
	case TypeTrial:
		return "Your free trial has ended. Pick a plan to keep your withdrawal bot running."
	case TypeSixMonths:
		return "Your 6-month subscription has ended. Renew to reactivate your withdrawal bot."
	case TypeYearly:
		return "Your yearly subscription has ended. Renew to reactivate your withdrawal bot."
	default:
		return "Your monthly subscription has ended. Renew to reactivate your withdrawal bot."
	}
}
