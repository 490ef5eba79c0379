package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"phonecheck/internal/domain"
)

// PostgresStore backs history with PostgreSQL for deployments that already
// run one. Opened with database/sql and the pq driver; the driver import
// lives in the caller so this package stays driver-agnostic.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the lookups table if it does not exist. Kept here
// instead of a migration tool because the schema is a single append-only
// table.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS lookups (
	  id           TEXT PRIMARY KEY,
	  phone_number TEXT NOT NULL,
	  country      TEXT NOT NULL,
	  carrier      TEXT NOT NULL,
	  verdict      TEXT NOT NULL,
	  risk_score   TEXT NOT NULL,
	  checked_at   BIGINT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_lookups_checked_at ON lookups (checked_at DESC);
	`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply history schema: %w", err)
	}
	return nil
}

// Append inserts one decision inside the driver's implicit transaction.
func (s *PostgresStore) Append(ctx context.Context, d domain.Decision) error {
	query := `
		INSERT INTO lookups (id, phone_number, country, carrier, verdict, risk_score, checked_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(ctx, query,
		d.ID, d.Number, d.Country, d.Carrier, string(d.Verdict), string(d.RiskScore), d.CheckedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert lookup: %w", err)
	}
	return nil
}

// Recent returns the limit most recent decisions, oldest of the window first.
func (s *PostgresStore) Recent(ctx context.Context, limit int) ([]domain.Decision, error) {
	if limit <= 0 {
		return []domain.Decision{}, nil
	}

	query := `
		SELECT id, phone_number, country, carrier, verdict, risk_score, checked_at
		FROM lookups
		ORDER BY checked_at DESC, id DESC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query lookups: %w", err)
	}
	defer rows.Close()

	decisions, err := scanDecisions(rows, func(millis int64) time.Time {
		return time.UnixMilli(millis).UTC()
	})
	if err != nil {
		return nil, err
	}
	reverse(decisions)
	return decisions, nil
}
