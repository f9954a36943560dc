package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"jobspy-engine/internal/domain"

	_ "modernc.org/sqlite"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file::memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	if err := Migrate(db); err != nil {
		t.Fatal(err)
	}
	return db
}

func seed(t *testing.T, db *sql.DB, title, url string) domain.Job {
	t.Helper()
	added, err := InsertJobIgnore(context.Background(), db, domain.Job{
		Title:  title,
		URL:    url,
		Source: domain.SourceRemotive,
		Status: domain.StatusNew,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !added {
		t.Fatalf("seed %q not inserted", url)
	}
	jobs, err := ListJobs(context.Background(), db, ListJobsOpts{Filter: title})
	if err != nil || len(jobs) == 0 {
		t.Fatalf("seed lookup: %v", err)
	}
	return jobs[0]
}

func TestInsertJobIgnoreDedup(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	j := domain.Job{Title: "Go Dev", URL: "https://x.test/1", Source: domain.SourceRemotive}

	added, err := InsertJobIgnore(ctx, db, j)
	if err != nil || !added {
		t.Fatalf("first insert: added=%v err=%v", added, err)
	}

	// Identical URL again, even from another source, is a no-op.
	j.Source = domain.SourceAdzuna
	j.Title = "Different Title"
	added, err = InsertJobIgnore(ctx, db, j)
	if err != nil {
		t.Fatal(err)
	}
	if added {
		t.Error("duplicate URL reported as added")
	}

	n, err := CountJobs(ctx, db)
	if err != nil || n != 1 {
		t.Fatalf("count = %d err=%v", n, err)
	}
}

func TestInsertDefaultsStatusNew(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	// No status on the way in; the insert fills in NEW.
	if _, err := InsertJobIgnore(ctx, db, domain.Job{
		Title: "Anything", URL: "https://x.test/status", Source: domain.SourceJSearch,
	}); err != nil {
		t.Fatal(err)
	}

	jobs, err := ListJobs(ctx, db, ListJobsOpts{})
	if err != nil || len(jobs) != 1 {
		t.Fatalf("list: %v", err)
	}
	if jobs[0].Status != domain.StatusNew {
		t.Errorf("status = %q, want NEW", jobs[0].Status)
	}
}

func TestListJobsOrderAndFilter(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	seed(t, db, "Go Backend Engineer", "https://x.test/a")
	seed(t, db, "Rust Engineer", "https://x.test/b")
	seed(t, db, "Senior Go Engineer", "https://x.test/c")

	// Empty filter returns everything, newest first.
	all, err := ListJobs(ctx, db, ListJobsOpts{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].CreatedAt.Before(all[i].CreatedAt) {
			t.Errorf("not ordered by recency at %d", i)
		}
		if all[i-1].CreatedAt.Equal(all[i].CreatedAt) && all[i-1].ID < all[i].ID {
			t.Errorf("same-second rows not newest-id-first at %d", i)
		}
	}

	// Substring filter, case-insensitive.
	got, err := ListJobs(ctx, db, ListJobsOpts{Filter: "go"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("filter go: len = %d, want 2", len(got))
	}

	// LIKE metacharacters are literal.
	got, err = ListJobs(ctx, db, ListJobsOpts{Filter: "%"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("filter %%: len = %d, want 0", len(got))
	}
}

func TestListJobsStatusFilter(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	a := seed(t, db, "One", "https://x.test/1")
	seed(t, db, "Two", "https://x.test/2")

	if _, err := UpdateStatus(ctx, db, a.ID, domain.StatusApplied); err != nil {
		t.Fatal(err)
	}

	got, err := ListJobs(ctx, db, ListJobsOpts{Status: domain.StatusApplied})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != a.ID {
		t.Fatalf("status filter = %+v", got)
	}
}

func TestUpdateStatus(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	j := seed(t, db, "Track Me", "https://x.test/t")

	got, err := UpdateStatus(ctx, db, j.ID, domain.StatusInterviewing)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != domain.StatusInterviewing {
		t.Errorf("status = %q", got.Status)
	}
	if got.UpdatedAt.Before(got.CreatedAt) {
		t.Error("updated_at not bumped")
	}

	// Unknown id is a distinguishable not-found, not a generic failure.
	_, err = UpdateStatus(ctx, db, 99999, domain.StatusApplied)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestGetJob(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	published := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	added, err := InsertJobIgnore(ctx, db, domain.Job{
		Title:       "With Date",
		URL:         "https://x.test/d",
		Source:      domain.SourceArbeitnow,
		Remote:      true,
		Salary:      "1000 - 2000",
		PublishedAt: &published,
	})
	if err != nil || !added {
		t.Fatalf("insert: %v", err)
	}

	jobs, err := ListJobs(ctx, db, ListJobsOpts{})
	if err != nil || len(jobs) != 1 {
		t.Fatalf("list: %v", err)
	}

	got, err := GetJob(ctx, db, jobs[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Remote || got.Salary != "1000 - 2000" {
		t.Errorf("round trip = %+v", got)
	}
	if got.PublishedAt == nil || !got.PublishedAt.Equal(published) {
		t.Errorf("publishedAt = %v", got.PublishedAt)
	}

	if _, err := GetJob(ctx, db, 424242); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
