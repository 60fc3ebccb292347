package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/Cruelhelp/GoatMouth-sub000/pkg/activity"
)

// SourceRepo fetches the raw rows behind each feed source. Every query joins
// its user relation with a LEFT JOIN so a missing user yields an empty actor
// instead of dropping the row.
type SourceRepo struct {
	DB *sql.DB
}

func NewSourceRepo(db *sql.DB) *SourceRepo {
	return &SourceRepo{DB: db}
}

func nullStr(s sql.NullString) string {
	if s.Valid {
		return s.String
	}
	return ""
}

// RecentBets returns the latest confirmed bets with their market titles.
func (r *SourceRepo) RecentBets(ctx context.Context, limit int) ([]activity.Row, error) {
	const q = `
		SELECT b.created_at, u.username, m.title, b.outcome, b.stake_cents
		FROM bets b
		LEFT JOIN users u ON u.id = b.user_id
		LEFT JOIN markets m ON m.id = b.market_id
		WHERE b.status = 'CONFIRMED'
		ORDER BY b.created_at DESC
		LIMIT $1
	`
	rows, err := r.DB.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []activity.Row
	for rows.Next() {
		var (
			createdAt       time.Time
			username, title sql.NullString
			outcome         string
			stakeCents      int64
		)
		if err := rows.Scan(&createdAt, &username, &title, &outcome, &stakeCents); err != nil {
			return nil, err
		}
		out = append(out, activity.Row{
			OccurredAt:  createdAt,
			Actor:       nullStr(username),
			MarketTitle: nullStr(title),
			Outcome:     outcome,
			AmountCents: stakeCents,
		})
	}
	return out, rows.Err()
}

func (r *SourceRepo) RecentMarkets(ctx context.Context, limit int) ([]activity.Row, error) {
	const q = `
		SELECT m.created_at, u.username, m.title
		FROM markets m
		LEFT JOIN users u ON u.id = m.creator_id
		ORDER BY m.created_at DESC
		LIMIT $1
	`
	rows, err := r.DB.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []activity.Row
	for rows.Next() {
		var (
			createdAt time.Time
			username  sql.NullString
			title     string
		)
		if err := rows.Scan(&createdAt, &username, &title); err != nil {
			return nil, err
		}
		out = append(out, activity.Row{
			OccurredAt:  createdAt,
			Actor:       nullStr(username),
			MarketTitle: title,
		})
	}
	return out, rows.Err()
}

func (r *SourceRepo) RecentComments(ctx context.Context, limit int) ([]activity.Row, error) {
	const q = `
		SELECT c.created_at, u.username, m.title
		FROM comments c
		LEFT JOIN users u ON u.id = c.user_id
		LEFT JOIN markets m ON m.id = c.market_id
		ORDER BY c.created_at DESC
		LIMIT $1
	`
	rows, err := r.DB.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []activity.Row
	for rows.Next() {
		var (
			createdAt       time.Time
			username, title sql.NullString
		)
		if err := rows.Scan(&createdAt, &username, &title); err != nil {
			return nil, err
		}
		out = append(out, activity.Row{
			OccurredAt:  createdAt,
			Actor:       nullStr(username),
			MarketTitle: nullStr(title),
		})
	}
	return out, rows.Err()
}

func (r *SourceRepo) RecentSignups(ctx context.Context, limit int) ([]activity.Row, error) {
	const q = `
		SELECT created_at, username
		FROM users
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.DB.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []activity.Row
	for rows.Next() {
		var (
			createdAt time.Time
			username  string
		)
		if err := rows.Scan(&createdAt, &username); err != nil {
			return nil, err
		}
		out = append(out, activity.Row{
			OccurredAt: createdAt,
			Actor:      username,
			Username:   username,
		})
	}
	return out, rows.Err()
}

func (r *SourceRepo) RecentProposals(ctx context.Context, limit int) ([]activity.Row, error) {
	const q = `
		SELECT p.created_at, u.username, p.title
		FROM proposals p
		LEFT JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC
		LIMIT $1
	`
	rows, err := r.DB.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []activity.Row
	for rows.Next() {
		var (
			createdAt time.Time
			username  sql.NullString
			title     string
		)
		if err := rows.Scan(&createdAt, &username, &title); err != nil {
			return nil, err
		}
		out = append(out, activity.Row{
			OccurredAt:    createdAt,
			Actor:         nullStr(username),
			ProposalTitle: title,
		})
	}
	return out, rows.Err()
}

// RecentWalletTx returns ledger movements of one operation type (DEPOSIT,
// WITHDRAWAL or PAYOUT).
func (r *SourceRepo) RecentWalletTx(ctx context.Context, opType string, limit int) ([]activity.Row, error) {
	const q = `
		SELECT l.created_at, u.username, l.amount_cents
		FROM wallet_ledger l
		JOIN wallets w ON w.id = l.wallet_id
		LEFT JOIN users u ON u.id = w.user_id
		WHERE l.operation_type = $1
		ORDER BY l.created_at DESC
		LIMIT $2
	`
	rows, err := r.DB.QueryContext(ctx, q, opType, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []activity.Row
	for rows.Next() {
		var (
			createdAt   time.Time
			username    sql.NullString
			amountCents int64
		)
		if err := rows.Scan(&createdAt, &username, &amountCents); err != nil {
			return nil, err
		}
		out = append(out, activity.Row{
			OccurredAt:  createdAt,
			Actor:       nullStr(username),
			AmountCents: amountCents,
		})
	}
	return out, rows.Err()
}
