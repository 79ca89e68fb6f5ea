package services

import (
	"testing"
	"time"
)

func TestDeriveStatus(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	if got := deriveStatus(&future, now); got != SubscriptionActive {
		t.Fatalf("deriveStatus(future) = %q, want active", got)
	}
	if got := deriveStatus(&past, now); got != SubscriptionExpired {
		t.Fatalf("deriveStatus(past) = %q, want expired", got)
	}
	if got := deriveStatus(nil, now); got != SubscriptionExpired {
		t.Fatalf("deriveStatus(nil) = %q, want expired", got)
	}
}

func TestDeriveSubscriptionType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "Free Trial Subscription", want: TypeTrial},
		{in: "1 Month Subscription", want: TypeMonthly},
		{in: "6 Months Subscription", want: TypeSixMonths},
		{in: "12 Months Subscription", want: TypeYearly},
		{in: "Yearly Plan", want: TypeYearly},
		{in: "Something Custom", want: TypeMonthly},
	}

	for _, tt := range tests {
		if got := deriveSubscriptionType(tt.in); got != tt.want {
			t.Fatalf("deriveSubscriptionType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExpiredMessageVariesByType(t *testing.T) {
	seen := map[string]bool{}
	for _, typ := range []string{TypeTrial, TypeMonthly, TypeSixMonths, TypeYearly} {
		msg := expiredMessage(typ)
		if msg == "" {
			t.Fatalf("empty message for %q", typ)
		}
		if seen[msg] {
			t.Fatalf("message for %q reused: %q", typ, msg)
		}
		seen[msg] = true
	}
}
