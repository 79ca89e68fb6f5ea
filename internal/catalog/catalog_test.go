package catalog

import "testing"

func TestCanonicalSubscriptionName(t *testing.T) {
	tests := []struct {
		in       string
		want     string
		wantDays int
	}{
		{in: "1 Month Licence", want: "1 Month Subscription", wantDays: 30},
		{in: "6 Months Licence", want: "6 Months Subscription", wantDays: 180},
		{in: "12 Months Licence", want: "12 Months Subscription", wantDays: 365},
		{in: "Free Trial Licence", want: "Free Trial Subscription", wantDays: 7},
		{in: "  1 Month Licence  ", want: "1 Month Subscription", wantDays: 30},
		{in: "Lifetime Deal", want: "Lifetime Deal", wantDays: DefaultDurationDays},
	}

	for _, tt := range tests {
		got, days := CanonicalSubscriptionName(tt.in)
		if got != tt.want || days != tt.wantDays {
			t.Fatalf("CanonicalSubscriptionName(%q) = (%q, %d), want (%q, %d)", tt.in, got, days, tt.want, tt.wantDays)
		}
	}
}

func TestIsSubscriptionTier(t *testing.T) {
	for _, id := range []string{PlanFreeTrial, PlanMonthly, PlanSixMonths, PlanYearly} {
		if !IsSubscriptionTier(id) {
			t.Fatalf("expected %q to be a subscription tier", id)
		}
	}
	if IsSubscriptionTier("addon-vpn") {
		t.Fatalf("expected non-tier id to be rejected")
	}
}

func TestPlanByID(t *testing.T) {
	p, ok := PlanByID(PlanYearly)
	if !ok {
		t.Fatalf("yearly plan missing")
	}
	if p.DurationDays != 365 {
		t.Fatalf("yearly plan duration = %d, want 365", p.DurationDays)
	}
	if _, ok := PlanByID("unknown"); ok {
		t.Fatalf("unknown plan id should not resolve")
	}
}
