package dto

type PlaceBetResponse struct {
	BetID                string `json:"bet_id"`
	Status               string `json:"status"` // PENDING_CONFIRMATION
	OddsFormatted        string `json:"odds_formatted"`
	PotentialPayoutCents int64  `json:"potential_payout_cents"`
	PotentialProfitCents int64  `json:"potential_profit_cents"`
	Message              string `json:"message,omitempty"`
}

type BetStatusResponse struct {
	BetID  string `json:"bet_id"`
	Status string `json:"status"`
}
