package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"jobspy-engine/internal/domain"
)

// InsertJobIgnore writes one normalized job unless its URL is already
// stored. The unique index on url makes the whole thing a single atomic
// statement, so two overlapping sync calls cannot double-insert.
func InsertJobIgnore(ctx context.Context, db *sql.DB, j domain.Job) (added bool, err error) {
	now := time.Now().UTC().Format(time.RFC3339)

	var publishedAt sql.NullString
	if j.PublishedAt != nil {
		publishedAt = sql.NullString{String: j.PublishedAt.UTC().Format(time.RFC3339), Valid: true}
	}

	status := j.Status
	if status == "" {
		status = domain.StatusNew
	}

	_, err = db.ExecContext(ctx, `
INSERT OR IGNORE INTO jobs (title, company, location, description, url, source, salary, remote, status, published_at, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		j.Title, j.Company, j.Location, j.Description, j.URL,
		string(j.Source), j.Salary, boolToInt(j.Remote), string(status),
		publishedAt, now, now,
	)
	if err != nil {
		return false, fmt.Errorf("insert job: %w", err)
	}

	// SQLite doesn't report rows affected reliably with IGNORE across
	// drivers; changes() does.
	var changes int
	if e := db.QueryRowContext(ctx, `SELECT changes();`).Scan(&changes); e == nil {
		return changes > 0, nil
	}
	return true, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
