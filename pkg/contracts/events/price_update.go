package events

import "time"

// Event published on the "market_price_updates" topic. YesPrice and NoPrice
// are implied probabilities in [0,1] and always sum to 1 at the source.
type PriceUpdate struct {
	MarketID         string    `json:"market_id"`
	Title            string    `json:"title"`
	YesPrice         float64   `json:"yes_price"`
	NoPrice          float64   `json:"no_price"`
	Status           string    `json:"status"` // "active" | "closed" | "resolved"
	TotalVolumeCents int64     `json:"total_volume_cents"`
	EndDate          time.Time `json:"end_date"`
	UpdatedAt        time.Time `json:"updated_at"`
	Source           string    `json:"source"`  // "market-simulator"
	Version          int       `json:"version"` // incremented on every update
}
