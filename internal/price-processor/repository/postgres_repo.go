package repository

import (
	"context"
	"database/sql"

	"github.com/Cruelhelp/GoatMouth-sub000/pkg/contracts/events"
)

// PostgresRepo persists market prices.
type PostgresRepo struct {
	DB *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{DB: db}
}

// UpsertCurrent inserts or refreshes a market's current prices. ON CONFLICT
// keeps one row per market id.
func (r *PostgresRepo) UpsertCurrent(ctx context.Context, e events.PriceUpdate) error {
	const q = `
		INSERT INTO markets
		  (id, title, yes_price, no_price, status, total_volume_cents, end_date, version, updated_at)
		VALUES
		  ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (id) DO UPDATE SET
		  title              = EXCLUDED.title,
		  yes_price          = EXCLUDED.yes_price,
		  no_price           = EXCLUDED.no_price,
		  status             = EXCLUDED.status,
		  total_volume_cents = EXCLUDED.total_volume_cents,
		  end_date           = EXCLUDED.end_date,
		  version            = EXCLUDED.version,
		  updated_at         = EXCLUDED.updated_at
	`
	_, err := r.DB.ExecContext(ctx, q,
		e.MarketID, e.Title, e.YesPrice, e.NoPrice,
		e.Status, e.TotalVolumeCents, e.EndDate,
		e.Version, e.UpdatedAt,
	)
	return err
}

// InsertHistory appends a row to the price history used for market charts.
func (r *PostgresRepo) InsertHistory(ctx context.Context, e events.PriceUpdate) error {
	const q = `
		INSERT INTO market_price_history
		  (market_id, yes_price, no_price, version, updated_at)
		VALUES
		  ($1,$2,$3,$4,$5)
	`
	_, err := r.DB.ExecContext(ctx, q,
		e.MarketID, e.YesPrice, e.NoPrice, e.Version, e.UpdatedAt,
	)
	return err
}
