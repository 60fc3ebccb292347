package repo

import "time"

// Bet is the model persisted in Postgres.
type Bet struct {
	ID                   string
	UserID               string
	MarketID             string
	Outcome              string
	StakeCents           int64
	Price                float64
	PotentialPayoutCents int64
	Status               string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
