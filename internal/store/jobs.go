package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"jobspy-engine/internal/domain"
)

// ErrNotFound reports an id that matches no stored job. Callers distinguish
// it from store failures with errors.Is.
var ErrNotFound = errors.New("job not found")

func Migrate(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var v int
	if err := tx.QueryRow(`PRAGMA user_version;`).Scan(&v); err != nil {
		return err
	}

	if v >= 1 {
		return tx.Commit()
	}

	// ---- Schema v1 ----

	if _, err := tx.Exec(`
CREATE TABLE IF NOT EXISTS jobs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  title TEXT NOT NULL DEFAULT '',
  company TEXT NOT NULL DEFAULT '',
  location TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  url TEXT NOT NULL,
  source TEXT NOT NULL,
  salary TEXT NOT NULL DEFAULT '',
  remote INTEGER NOT NULL DEFAULT 0,
  status TEXT NOT NULL DEFAULT 'NEW',
  published_at TEXT,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
`); err != nil {
		return err
	}

	// The store owns the dedup invariant: one row per exact URL, across
	// all sources.
	if _, err := tx.Exec(`
CREATE UNIQUE INDEX IF NOT EXISTS idx_jobs_url
ON jobs(url);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`
CREATE INDEX IF NOT EXISTS idx_jobs_created_at
ON jobs(created_at DESC);
`); err != nil {
		return err
	}

	if _, err := tx.Exec(`PRAGMA user_version = 1;`); err != nil {
		return err
	}

	return tx.Commit()
}

type ListJobsOpts struct {
	Filter string        // title substring, case-insensitive; "" matches all
	Status domain.Status // optional exact match
	Limit  int
}

func ListJobs(ctx context.Context, db *sql.DB, opts ListJobsOpts) ([]domain.Job, error) {
	if opts.Limit <= 0 {
		opts.Limit = 500
	}

	where := []string{}
	args := []any{}
	if opts.Filter != "" {
		// sqlite LIKE is case-insensitive for ASCII, which is the
		// matching mode we document for the title filter.
		where = append(where, "title LIKE ? ESCAPE '\\'")
		args = append(args, "%"+escapeLike(opts.Filter)+"%")
	}
	if opts.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(opts.Status))
	}
	cond := ""
	if len(where) > 0 {
		cond = "WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, opts.Limit)

	query := fmt.Sprintf(`
SELECT id, title, company, location, description, url, source, salary, remote, status, published_at, created_at, updated_at
FROM jobs
%s
ORDER BY created_at DESC, id DESC
LIMIT ?;
`, cond)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func GetJob(ctx context.Context, db *sql.DB, id int64) (domain.Job, error) {
	row := db.QueryRowContext(ctx, `
SELECT id, title, company, location, description, url, source, salary, remote, status, published_at, created_at, updated_at
FROM jobs
WHERE id = ?;
`, id)
	j, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Job{}, ErrNotFound
	}
	return j, err
}

// UpdateStatus sets the lifecycle status of one job and returns the updated
// row. Legal from any status to any status.
func UpdateStatus(ctx context.Context, db *sql.DB, id int64, status domain.Status) (domain.Job, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := db.ExecContext(ctx, `
UPDATE jobs SET status = ?, updated_at = ? WHERE id = ?;
`, string(status), now, id)
	if err != nil {
		return domain.Job{}, fmt.Errorf("update status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.Job{}, ErrNotFound
	}
	return GetJob(ctx, db, id)
}

func CountJobs(ctx context.Context, db *sql.DB) (int64, error) {
	var n int64
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM jobs;`).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(r rowScanner) (domain.Job, error) {
	var j domain.Job
	var source, status, createdAt, updatedAt string
	var publishedAt sql.NullString
	var remote int

	if err := r.Scan(
		&j.ID, &j.Title, &j.Company, &j.Location, &j.Description,
		&j.URL, &source, &j.Salary, &remote, &status,
		&publishedAt, &createdAt, &updatedAt,
	); err != nil {
		return domain.Job{}, err
	}

	j.Source = domain.Source(source)
	j.Status = domain.Status(status)
	j.Remote = remote != 0
	if publishedAt.Valid {
		if t, err := time.Parse(time.RFC3339, publishedAt.String); err == nil {
			j.PublishedAt = &t
		}
	}
	j.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	j.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return j, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
