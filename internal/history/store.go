// Package history records sent reminders in a local SQLite database so past
// runs can be listed and a double-send on the same day is visible.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Run is one recorded reminder run.
type Run struct {
	ID         int64
	Account    string
	Subject    string
	Recipients  []string
	DaysLeft    int
	OverflowPct float64
	DryRun      bool
	SentAt      time.Time
}

type Store struct {
	db *sql.DB
}

// Open opens (and if needed creates) the history database at dbPath and
// brings its schema up to date.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping history database: %w", err)
	}
	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history database: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record stores one run. Recipients are joined with commas; addresses never
// contain commas so the join is reversible.
func (s *Store) Record(ctx context.Context, run Run) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (account, subject, recipients, days_left, overflow_pct, dry_run, sent_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.Account, run.Subject, strings.Join(run.Recipients, ","),
		run.DaysLeft, run.OverflowPct, run.DryRun, run.SentAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("record run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("record run id: %w", err)
	}
	return id, nil
}

// Recent returns the latest runs for an account, newest first. An empty
// account matches every account.
func (s *Store) Recent(ctx context.Context, account string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `SELECT id, account, subject, recipients, days_left, overflow_pct, dry_run, sent_at FROM runs`
	args := []any{}
	if account != "" {
		query += ` WHERE account = ?`
		args = append(args, account)
	}
	query += ` ORDER BY sent_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			run        Run
			recipients string
		)
		if err := rows.Scan(&run.ID, &run.Account, &run.Subject, &recipients,
			&run.DaysLeft, &run.OverflowPct, &run.DryRun, &run.SentAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if recipients != "" {
			run.Recipients = strings.Split(recipients, ",")
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return out, nil
}
