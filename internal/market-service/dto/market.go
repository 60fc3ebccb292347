package dto

// Market is the read model served to the UI shell. Prices are implied
// probabilities in [0,1]; yes + no always sums to 1 at the source.
type Market struct {
	MarketID         string  `json:"market_id"`
	Title            string  `json:"title"`
	YesPrice         float64 `json:"yes_price"`
	NoPrice          float64 `json:"no_price"`
	YesPercent       int     `json:"yes_percent"`
	NoPercent        int     `json:"no_percent"`
	Status           string  `json:"status"` // active | closed | resolved
	TotalVolumeCents int64   `json:"total_volume_cents"`
	EndDate          string  `json:"end_date"`
	UpdatedAt        string  `json:"updated_at"`
}

// QuoteResponse is what the bet modal renders while the user types a stake.
type QuoteResponse struct {
	MarketID             string  `json:"market_id"`
	Outcome              string  `json:"outcome"`
	Probability          float64 `json:"probability"`
	StakeCents           int64   `json:"stake_cents"`
	DecimalOdds          float64 `json:"decimal_odds"`
	OddsFormatted        string  `json:"odds_formatted"`
	PotentialPayoutCents int64   `json:"potential_payout_cents"`
	PotentialProfitCents int64   `json:"potential_profit_cents"`
}

// QuoteError tells the UI which input was bad so it can disable the Place Bet
// button and show the "-" placeholder instead of odds.
type QuoteError struct {
	Error         string `json:"error"` // invalid_probability | invalid_stake
	OddsFormatted string `json:"odds_formatted"`
}
