package repo

import (
	"context"
	"database/sql"
	"time"
)

// MarketSnapshot is the slice of a market row the confirmation check needs.
// Title rides along so the settlement event carries it for the live feed.
type MarketSnapshot struct {
	Title    string
	Status   string
	EndDate  time.Time
	YesPrice float64
	NoPrice  float64
}

type PostgresRepo struct {
	DB *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{DB: db}
}

func (r *PostgresRepo) GetMarketSnapshot(ctx context.Context, marketID string) (MarketSnapshot, error) {
	const q = `SELECT title, status, end_date, yes_price, no_price FROM markets WHERE id = $1`
	var m MarketSnapshot
	err := r.DB.QueryRowContext(ctx, q, marketID).
		Scan(&m.Title, &m.Status, &m.EndDate, &m.YesPrice, &m.NoPrice)
	return m, err
}

func (r *PostgresRepo) UpdateBetStatus(ctx context.Context, betID, status string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE bets SET status = $1, updated_at = NOW() WHERE id = $2`, status, betID)
	return err
}

// InsertBetTransaction records the status transition for audit.
func (r *PostgresRepo) InsertBetTransaction(ctx context.Context, betID, oldStatus, newStatus, reason string) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO bet_transactions (bet_id, old_status, new_status, reason, created_at)
		VALUES ($1,$2,$3,$4,NOW())`, betID, oldStatus, newStatus, reason)
	return err
}
