package sync

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"math/rand"
	"time"

	"jobspy-engine/internal/ingest"
	"jobspy-engine/internal/ingest/types"
)

// Driver walks the configured keyword list across every source, strictly
// sequentially, sleeping a jittered delay between calls so no upstream sees
// a burst. Failures are collected, never fatal: one dead board must not
// starve the others.
type Driver struct {
	DB       *sql.DB
	Fetchers []types.Fetcher
	Keywords []string

	// Jitter bounds between consecutive ingest calls. A delay is drawn
	// uniformly from [DelayMin, DelayMax).
	DelayMin time.Duration
	DelayMax time.Duration

	// OnInsert fires once per call that inserted at least one job.
	OnInsert func(source string, inserted int)
}

type Summary struct {
	Calls    int      `json:"calls"`
	Inserted int      `json:"inserted"`
	Errors   []string `json:"errors,omitempty"`
}

func (d *Driver) RunAll(ctx context.Context) Summary {
	var sum Summary

	first := true
	for _, kw := range d.Keywords {
		for _, f := range d.Fetchers {
			if ctx.Err() != nil {
				sum.Errors = append(sum.Errors, fmt.Sprintf("sync aborted: %v", ctx.Err()))
				return sum
			}
			if !first {
				if err := d.sleep(ctx); err != nil {
					sum.Errors = append(sum.Errors, fmt.Sprintf("sync aborted: %v", err))
					return sum
				}
			}
			first = false

			sum.Calls++
			res, err := ingest.Run(ctx, d.DB, f, kw)
			if err != nil {
				log.Printf("[sync] source=%s filter=%q err=%v", f.Source(), kw, err)
				sum.Errors = append(sum.Errors, fmt.Sprintf("%s %q: %v", f.Source(), kw, err))
				continue
			}
			sum.Inserted += res.Inserted
			if res.Inserted > 0 && d.OnInsert != nil {
				d.OnInsert(string(f.Source()), res.Inserted)
			}
		}
	}

	log.Printf("[sync] done calls=%d inserted=%d errors=%d", sum.Calls, sum.Inserted, len(sum.Errors))
	return sum
}

func (d *Driver) sleep(ctx context.Context) error {
	min, max := d.DelayMin, d.DelayMax
	if min <= 0 {
		min = time.Second
	}
	if max <= min {
		max = min + 2*time.Second
	}
	delay := min + time.Duration(rand.Int63n(int64(max-min)))

	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
