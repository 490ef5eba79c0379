package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"phonecheck/internal/domain"
)

// SQLiteStore is the default durable backend: an embedded database under the
// configured data directory, WAL mode so readers never block the writer.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite initializes the database at baseDir/phonecheck.db. The baseDir
// parameter lets tests use t.TempDir().
func OpenSQLite(baseDir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	dbPath := filepath.Join(baseDir, "phonecheck.db")
	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS lookups (
	  id           TEXT PRIMARY KEY,
	  phone_number TEXT NOT NULL,
	  country      TEXT NOT NULL,
	  carrier      TEXT NOT NULL,
	  verdict      TEXT NOT NULL,
	  risk_score   TEXT NOT NULL,
	  checked_at   INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_lookups_checked_at
	ON lookups(checked_at DESC);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}

	_ = os.Chmod(dbPath, 0o600)

	return &SQLiteStore{db: db}, nil
}

// Append inserts one decision. The single-statement insert is atomic, so a
// failure leaves prior entries untouched.
func (s *SQLiteStore) Append(ctx context.Context, d domain.Decision) error {
	query := `
		INSERT INTO lookups (id, phone_number, country, carrier, verdict, risk_score, checked_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
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
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]domain.Decision, error) {
	if limit <= 0 {
		return []domain.Decision{}, nil
	}

	query := `
		SELECT id, phone_number, country, carrier, verdict, risk_score, checked_at
		FROM lookups
		ORDER BY checked_at DESC, id DESC
		LIMIT ?
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

// Health verifies the database handle is still usable.
func (s *SQLiteStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func scanDecisions(rows *sql.Rows, toTime func(int64) time.Time) ([]domain.Decision, error) {
	decisions := []domain.Decision{}
	for rows.Next() {
		var d domain.Decision
		var verdict, risk string
		var millis int64
		if err := rows.Scan(&d.ID, &d.Number, &d.Country, &d.Carrier, &verdict, &risk, &millis); err != nil {
			return nil, fmt.Errorf("scan lookup row: %w", err)
		}
		d.Verdict = domain.Verdict(verdict)
		d.RiskScore = domain.RiskScore(risk)
		d.CheckedAt = toTime(millis)
		decisions = append(decisions, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lookup rows: %w", err)
	}
	return decisions, nil
}

func reverse(decisions []domain.Decision) {
	for i, j := 0, len(decisions)-1; i < j; i, j = i+1, j-1 {
		decisions[i], decisions[j] = decisions[j], decisions[i]
	}
}
