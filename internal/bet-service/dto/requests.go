package dto

type PlaceBetRequest struct {
	UserID     string  `json:"user_id"`
	Username   string  `json:"username"` // display name, carried into events
	MarketID   string  `json:"market_id"`
	Outcome    string  `json:"outcome"` // "yes" | "no"
	StakeCents int64   `json:"stake_cents"`
	Price      float64 `json:"price"` // probability the client was quoted
}
