package events

import "time"

// Event emitted by the bet-confirmation-worker after settling a pending bet.
type BetConfirmed struct {
	BetID       string    `json:"bet_id"`
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	MarketID    string    `json:"market_id"`
	MarketTitle string    `json:"market_title"`
	Outcome     string    `json:"outcome"`
	StakeCents  int64     `json:"stake_cents"`
	Status      string    `json:"status"` // "CONFIRMED" | "REJECTED"
	Reason      string    `json:"reason,omitempty"`
	Ts          time.Time `json:"ts"`
}
