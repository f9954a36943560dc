package ingest

import (
	"context"
	"database/sql"
	"log"

	"jobspy-engine/internal/ingest/types"
	"jobspy-engine/internal/store"
)

// Result summarizes one (source, filter) ingestion.
type Result struct {
	Fetched  int
	Inserted int
	Skipped  int
	Warning  string
}

// Run performs one fetch-normalize-dedup-insert pass for a single source.
// Items are handled strictly in order; a failed insert skips that item
// only, so one bad record cannot blank out the rest of the batch. Dedup is
// the store's unique URL index, not a read-then-write.
func Run(ctx context.Context, db *sql.DB, f types.Fetcher, filter string) (Result, error) {
	res, err := f.Fetch(ctx, filter)
	if err != nil {
		return Result{}, err
	}
	if res.Warning != "" {
		log.Printf("[ingest:%s] upstream warning: %s", f.Source(), res.Warning)
	}

	out := Result{Fetched: len(res.Jobs), Warning: res.Warning}
	for _, j := range res.Jobs {
		if j.URL == "" {
			out.Skipped++
			continue
		}
		added, err := store.InsertJobIgnore(ctx, db, j)
		if err != nil {
			log.Printf("[ingest:%s] insert url=%q err=%v", f.Source(), j.URL, err)
			out.Skipped++
			continue
		}
		if added {
			out.Inserted++
		} else {
			out.Skipped++
		}
	}

	log.Printf("[ingest:%s] filter=%q fetched=%d inserted=%d skipped=%d",
		f.Source(), filter, out.Fetched, out.Inserted, out.Skipped)
	return out, nil
}
