package events

type BetPlaced struct {
	BetID       string  `json:"bet_id"`
	UserID      string  `json:"user_id"`
	Username    string  `json:"username"`
	MarketID    string  `json:"market_id"`
	MarketTitle string  `json:"market_title"`
	Outcome     string  `json:"outcome"` // "yes" | "no"
	StakeCents  int64   `json:"stake_cents"`
	Price       float64 `json:"price"`        // probability the bettor was quoted
	ReservedRef string  `json:"reserved_ref"` // external_ref used for the wallet reserve (betID)
	TsUnixMs    int64   `json:"ts_unix_ms"`
}
