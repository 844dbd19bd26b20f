package store

import (
	"context"
	"database/sql"
	"time"
)

// Run is one generation run. History only: nothing here feeds the next run.
type Run struct {
	ID         int64
	StartedAt  time.Time
	FinishedAt time.Time
	Source     string
	Records    int // raw records fetched
	Jobs       int // unique jobs rendered
	Artifacts  int // files written
	FetchError string
	Published  bool
}

func (r Run) Duration() time.Duration {
	if r.FinishedAt.Before(r.StartedAt) {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

func Migrate(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRowContext(ctx, `PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}
	if v >= 1 {
		return tx.Commit()
	}

	// ---- Schema v1 ----

	if _, err := tx.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  started_at TEXT NOT NULL,
  finished_at TEXT NOT NULL,
  source TEXT NOT NULL,
  records INTEGER NOT NULL DEFAULT 0,
  jobs INTEGER NOT NULL DEFAULT 0,
  artifacts INTEGER NOT NULL DEFAULT 0,
  fetch_error TEXT NOT NULL DEFAULT '',
  published INTEGER NOT NULL DEFAULT 0
);
`); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `PRAGMA user_version = 1;`); err != nil {
		return err
	}
	return tx.Commit()
}

// RecordRun inserts r and returns its id.
func (d *DB) RecordRun(ctx context.Context, r Run) (int64, error) {
	res, err := d.Pool.ExecContext(ctx, `
INSERT INTO runs(started_at, finished_at, source, records, jobs, artifacts, fetch_error, published)
VALUES(?,?,?,?,?,?,?,?);`,
		r.StartedAt.UTC().Format(time.RFC3339Nano),
		r.FinishedAt.UTC().Format(time.RFC3339Nano),
		r.Source,
		r.Records,
		r.Jobs,
		r.Artifacts,
		r.FetchError,
		r.Published,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListRuns returns the most recent runs first.
func (d *DB) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := d.Pool.QueryContext(ctx, `
SELECT id, started_at, finished_at, source, records, jobs, artifacts, fetch_error, published
FROM runs
ORDER BY id DESC
LIMIT ?;`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		var started, finished string
		if err := rows.Scan(
			&r.ID,
			&started,
			&finished,
			&r.Source,
			&r.Records,
			&r.Jobs,
			&r.Artifacts,
			&r.FetchError,
			&r.Published,
		); err != nil {
			return nil, err
		}
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		r.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		out = append(out, r)
	}
	return out, rows.Err()
}
