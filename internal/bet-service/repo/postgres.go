package repo

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// Postgres persists bets.
type Postgres struct{ db *sql.DB }

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

// CreatePending inserts a new bet with status PENDING_CONFIRMATION and
// returns its id.
func (p *Postgres) CreatePending(ctx context.Context, b *Bet) (string, error) {
	id := uuid.NewString()
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO bets (id,user_id,market_id,outcome,stake_cents,price,potential_payout_cents,status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,'PENDING_CONFIRMATION')`,
		id, b.UserID, b.MarketID, b.Outcome, b.StakeCents, b.Price, b.PotentialPayoutCents,
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

// GetStatus returns the current status of a bet.
func (p *Postgres) GetStatus(ctx context.Context, betID string) (string, error) {
	var s string
	err := p.db.QueryRowContext(ctx, `SELECT status FROM bets WHERE id=$1`, betID).Scan(&s)
	return s, err
}
