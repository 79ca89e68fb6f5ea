package catalog

import "strings"

// Plan ids. These four tiers are mutually exclusive: a cart may hold at
// most one of them.
const (
	PlanFreeTrial = "free-trial"
	PlanMonthly   = "monthly"
	PlanSixMonths = "6-months"
	PlanYearly    = "yearly"
)

// DefaultDurationDays is used when a cart item name has no entry in the
// canonical mapping table.
const DefaultDurationDays = 30

// Plan is a compiled-in catalog entry shown on the pricing page.
type Plan struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Price        float64  `json:"price"`
	DurationDays int      `json:"duration_days"`
	Features     []string `json:"features"`
}

var plans = []Plan{
	{
		ID:           PlanFreeTrial,
		Name:         "Free Trial Licence",
		Price:        0,
		DurationDays: 7,
		Features:     []string{"1 exchange connection", "Manual withdrawals only", "Community support"},
	},
	{
		ID:           PlanMonthly,
		Name:         "1 Month Licence",
		Price:        49.99,
		DurationDays: 30,
		Features:     []string{"3 exchange connections", "Automated withdrawals", "Email support"},
	},
	{
		ID:           PlanSixMonths,
		Name:         "6 Months Licence",
		Price:        249.99,
		DurationDays: 180,
		Features:     []string{"Unlimited exchange connections", "Automated withdrawals", "Priority support"},
	},
	{
		ID:           PlanYearly,
		Name:         "12 Months Licence",
		Price:        449.99,
		DurationDays: 365,
		Features:     []string{"Unlimited exchange connections", "Automated withdrawals", "Priority support", "Early feature access"},
	},
}

// canonicalNames maps plan display names to the subscription row names
// used by the backend. The storefront historically sold "licences" while
// the subscriptions table stores "subscriptions"; this table bridges the
// two. Unmapped names fall through to the literal name with a
// DefaultDurationDays duration.
var canonicalNames = map[string]struct {
	Name         string
	DurationDays int
}{
	"Free Trial Licence": {"Free Trial Subscription", 7},
	"1 Month Licence":    {"1 Month Subscription", 30},
	"6 Months Licence":   {"6 Months Subscription", 180},
	"12 Months Licence":  {"12 Months Subscription", 365},
}

// Plans returns every purchasable plan.
func Plans() []Plan {
	out := make([]Plan, len(plans))
	copy(out, plans)
	return out
}

// PlanByID returns the plan with the given id, or false when unknown.
func PlanByID(id string) (Plan, bool) {
	for _, p := range plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}

// IsSubscriptionTier reports whether the id belongs to the mutually
// exclusive subscription tier set.
func IsSubscriptionTier(id string) bool {
	switch id {
	case PlanFreeTrial, PlanMonthly, PlanSixMonths, PlanYearly:
		return true
	}
	return false
}

// CanonicalSubscriptionName resolves a cart item display name to the
// canonical subscription name and its nominal duration.
func CanonicalSubscriptionName(displayName string) (string, int) {
	if m, ok := canonicalNames[strings.TrimSpace(displayName)]; ok {
		return m.Name, m.DurationDays
	}
	return displayName, DefaultDurationDays
}
