package model

import "time"

// Referral statuses, derived from the referred account's state.
const (
	ReferralStatusPending  = "pending"
	ReferralStatusSignedUp = "signed up"
)

// ReferralCode is a row in referral_codes. At most one active code per user.
type ReferralCode struct {
	CodeID    int64     `json:"codeid"`
	UserID    int64     `json:"userid"`
	Code      string    `json:"code"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// Referral is a user linked through one of the referrer's codes.
type Referral struct {
	Username *string   `json:"username,omitempty"`
	Email    string    `json:"email"`
	Status   string    `json:"status"`
	JoinedAt time.Time `json:"joined_at"`
}
