package repo

import (
	"context"
	"database/sql"

	"github.com/Cruelhelp/GoatMouth-sub000/internal/market-service/dto"
	"github.com/Cruelhelp/GoatMouth-sub000/pkg/pricing"
)

// ReadRepo serves market reads from the tables maintained by the
// price-processor-worker.
type ReadRepo struct {
	DB *sql.DB
}

func (r *ReadRepo) ListMarkets(ctx context.Context) ([]dto.Market, error) {
	const q = `
		SELECT id, title, yes_price, no_price, status, total_volume_cents,
		       to_char(end_date, 'YYYY-MM-DD"T"HH24:MI:SSZ'),
		       to_char(updated_at, 'YYYY-MM-DD"T"HH24:MI:SSZ')
		FROM markets
		ORDER BY updated_at DESC;
	`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []dto.Market
	for rows.Next() {
		m, err := scanMarket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *ReadRepo) GetMarket(ctx context.Context, marketID string) (dto.Market, error) {
	const q = `
		SELECT id, title, yes_price, no_price, status, total_volume_cents,
		       to_char(end_date, 'YYYY-MM-DD"T"HH24:MI:SSZ'),
		       to_char(updated_at, 'YYYY-MM-DD"T"HH24:MI:SSZ')
		FROM markets
		WHERE id = $1;
	`
	row := r.DB.QueryRowContext(ctx, q, marketID)
	return scanMarket(row)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMarket(s scanner) (dto.Market, error) {
	var m dto.Market
	if err := s.Scan(&m.MarketID, &m.Title, &m.YesPrice, &m.NoPrice,
		&m.Status, &m.TotalVolumeCents, &m.EndDate, &m.UpdatedAt); err != nil {
		return dto.Market{}, err
	}
	m.YesPercent = pricing.Percent(m.YesPrice)
	m.NoPercent = pricing.Percent(m.NoPrice)
	return m, nil
}
