package sync

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"jobspy-engine/internal/domain"
	"jobspy-engine/internal/ingest/types"
	"jobspy-engine/internal/store"

	_ "modernc.org/sqlite"
)

type stubFetcher struct {
	source domain.Source
	jobs   []domain.Job
	err    error
	calls  []string
	log    *[]string
}

func (s *stubFetcher) Source() domain.Source { return s.source }

func (s *stubFetcher) Fetch(ctx context.Context, filter string) (types.FetchResult, error) {
	s.calls = append(s.calls, filter)
	if s.log != nil {
		*s.log = append(*s.log, string(s.source)+":"+filter)
	}
	if s.err != nil {
		return types.FetchResult{}, s.err
	}
	return types.FetchResult{Jobs: s.jobs}, nil
}

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file::memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	if err := store.Migrate(db); err != nil {
		t.Fatal(err)
	}
	return db
}

func TestRunAllContinuesPastFailures(t *testing.T) {
	db := testDB(t)

	var order []string
	ok := &stubFetcher{
		source: domain.SourceRemotive,
		jobs: []domain.Job{
			{Title: "A", URL: "https://r.test/a", Source: domain.SourceRemotive},
		},
		log: &order,
	}
	broken := &stubFetcher{
		source: domain.SourceAdzuna,
		err:    errors.New("boom"),
		log:    &order,
	}

	d := &Driver{
		DB:       db,
		Fetchers: []types.Fetcher{broken, ok},
		Keywords: []string{"go", "rust"},
		DelayMin: time.Millisecond,
		DelayMax: 2 * time.Millisecond,
	}
	sum := d.RunAll(context.Background())

	if sum.Calls != 4 {
		t.Errorf("calls = %d, want 4 (2 keywords x 2 sources)", sum.Calls)
	}
	if len(sum.Errors) != 2 {
		t.Errorf("errors = %v, want one per broken call", sum.Errors)
	}
	// Duplicate URL across keywords dedups, so only one insert lands.
	if sum.Inserted != 1 {
		t.Errorf("inserted = %d, want 1", sum.Inserted)
	}

	want := []string{"Adzuna:go", "Remotive:go", "Adzuna:rust", "Remotive:rust"}
	if len(order) != len(want) {
		t.Fatalf("order = %v", order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q (strictly sequential)", i, order[i], want[i])
		}
	}
}

func TestRunAllNotifiesOnInsert(t *testing.T) {
	db := testDB(t)

	f := &stubFetcher{
		source: domain.SourceArbeitnow,
		jobs: []domain.Job{
			{Title: "A", URL: "https://a.test/1", Source: domain.SourceArbeitnow},
			{Title: "B", URL: "https://a.test/2", Source: domain.SourceArbeitnow},
		},
	}

	var notified int
	d := &Driver{
		DB:       db,
		Fetchers: []types.Fetcher{f},
		Keywords: []string{"go"},
		DelayMin: time.Millisecond,
		DelayMax: 2 * time.Millisecond,
		OnInsert: func(source string, inserted int) { notified = inserted },
	}
	sum := d.RunAll(context.Background())

	if sum.Inserted != 2 || notified != 2 {
		t.Errorf("inserted=%d notified=%d", sum.Inserted, notified)
	}
}

func TestRunAllHonorsCancel(t *testing.T) {
	db := testDB(t)

	f := &stubFetcher{source: domain.SourceRemotive}
	d := &Driver{
		DB:       db,
		Fetchers: []types.Fetcher{f},
		Keywords: []string{"go", "rust", "java"},
		DelayMin: time.Hour, // cancel must cut the jitter sleep short
		DelayMax: 2 * time.Hour,
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	done := make(chan Summary, 1)
	go func() { done <- d.RunAll(ctx) }()

	select {
	case sum := <-done:
		if len(sum.Errors) == 0 {
			t.Error("cancelled run should report the abort")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("RunAll did not return after cancel")
	}
}
