package repo

import (
	"context"
	"database/sql"

	"github.com/Cruelhelp/GoatMouth-sub000/pkg/activity"
)

// PostgresRepo stores projected activity events for the feed backfill.
type PostgresRepo struct {
	DB *sql.DB
}

func NewPostgresRepo(db *sql.DB) *PostgresRepo {
	return &PostgresRepo{DB: db}
}

func (r *PostgresRepo) InsertEvent(ctx context.Context, e activity.Event) error {
	const q = `
		INSERT INTO activity_events
		  (kind, occurred_at, actor, icon, color, label, description)
		VALUES
		  ($1,$2,$3,$4,$5,$6,$7)
	`
	_, err := r.DB.ExecContext(ctx, q,
		string(e.Kind), e.OccurredAt, e.Actor,
		e.Icon, e.Color, e.Label, e.Description,
	)
	return err
}
