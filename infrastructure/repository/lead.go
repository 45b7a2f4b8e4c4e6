package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/leadreports/lead-report-bot/infrastructure/database/postgres"
	"github.com/leadreports/lead-report-bot/internal/domain"
)

const leadsTable = "leads"

//go:generate mockgen -source=lead.go -destination=mocks/lead.go -package=mocks

// LeadRepository persists and lists advertising leads. Listing is inclusive
// on both ends and interprets the range as calendar dates in the report
// timezone.
type LeadRepository interface {
	Save(ctx context.Context, lead *domain.Lead) error
	ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.Lead, error)
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
}

type leadRepository struct {
	conn     postgres.Queryer
	timezone string
}

func NewLeadRepository(conn postgres.Queryer, timezone string) (LeadRepository, error) {
	r := &leadRepository{conn: conn, timezone: timezone}
	if err := r.migrate(context.Background()); err != nil {
		return nil, errors.Wrap(err, "migrating leads table")
	}
	return r, nil
}

func (r *leadRepository) migrate(ctx context.Context) error {
	_, err := r.conn.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS leads (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL DEFAULT '',
    phone TEXT NOT NULL DEFAULT '',
    area TEXT NOT NULL DEFAULT '',
    location TEXT NOT NULL DEFAULT '',
    mount TEXT NOT NULL DEFAULT '',
    timing TEXT NOT NULL DEFAULT '',
    platform TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_leads_created_at ON leads(created_at);
`)
	return err
}

func (r *leadRepository) Save(ctx context.Context, lead *domain.Lead) error {
	// Work on a copy so a zero CreatedAt is backfilled for the insert
	// without mutating the caller's lead.
	record := *lead
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	query, args, err := squirrel.StatementBuilder.
		Insert(leadsTable).
		Columns("id", "name", "phone", "area", "location", "mount", "timing", "platform", "created_at").
		Values(
			record.ID,
			record.Name,
			record.Phone,
			record.Area,
			record.Location,
			record.Mount,
			record.Timing,
			record.Platform,
			record.CreatedAt,
		).
		Suffix(`ON CONFLICT (id) DO NOTHING`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return errors.Wrap(err, "building lead insert")
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "saving lead")
	}

	return nil
}

func (r *leadRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.Lead, error) {
	query, args, err := squirrel.
		Select("id, name, phone, area, location, mount, timing, platform, created_at").
		From(leadsTable).
		Where(squirrel.Expr("(created_at AT TIME ZONE ?)::date >= ?::date", r.timezone, start.Format(time.DateOnly))).
		Where(squirrel.Expr("(created_at AT TIME ZONE ?)::date <= ?::date", r.timezone, end.Format(time.DateOnly))).
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building lead range query")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "listing leads by date range")
	}
	defer rows.Close()

	leads := make([]domain.Lead, 0)
	for rows.Next() {
		var lead domain.Lead
		if err := rows.Scan(
			&lead.ID,
			&lead.Name,
			&lead.Phone,
			&lead.Area,
			&lead.Location,
			&lead.Mount,
			&lead.Timing,
			&lead.Platform,
			&lead.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "scanning lead")
		}
		leads = append(leads, lead)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating lead rows")
	}

	return leads, nil
}

func (r *leadRepository) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	query, args, err := squirrel.
		Delete(leadsTable).
		Where(squirrel.Expr("created_at < NOW() - (? * INTERVAL '1 day')", days)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "building retention delete")
	}

	result, err := r.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, errors.Wrap(err, "deleting old leads")
	}

	return result.RowsAffected()
}
