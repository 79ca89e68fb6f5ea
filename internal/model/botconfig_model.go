package model

import "time"

// BotConfig is a row in bot_configurations: one withdrawal-bot setup
// owned by a user.
type BotConfig struct {
	ConfigID           int64      `json:"configid"`
	UserID             int64      `json:"userid"`
	Name               string     `json:"name"`
	Exchange           string     `json:"exchange"`
	APIKey             string     `json:"api_key"`
	MinWithdrawal      float64    `json:"min_withdrawal"`
	DestinationAddress string     `json:"destination_address"`
	Schedule           string     `json:"schedule"`
	Active             bool       `json:"active"`
	CreatedAt          *time.Time `json:"created_at,omitempty"`
	DeletedAt          *time.Time `json:"deleted_at,omitempty"`
}
