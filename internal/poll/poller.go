package poll

import (
	"context"
	"database/sql"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"jobspy-engine/internal/config"
	"jobspy-engine/internal/events"
	"jobspy-engine/internal/ingest/types"
	"jobspy-engine/internal/scheduler"
	enginesync "jobspy-engine/internal/sync"
)

// pollTick is how often the poller re-reads the config. Enabling or
// disabling the background sync via PUT /config takes effect within one
// tick, no restart.
const pollTick = 30 * time.Second

// StartPoller runs a full sync whenever the configured interval elapses.
// The fetcher set is fixed per process; enable state, interval, keywords
// and delays all come from whatever config is current at each tick.
func StartPoller(ctx context.Context, db *sql.DB, cfgVal *atomic.Value, syncStatus *atomic.Value, gate *atomic.Bool, fetchers []types.Fetcher, hub *events.Hub) {
	var last time.Time
	go scheduler.Every(ctx, pollTick, "poll", func(ctx context.Context) error {
		cfg, ok := cfgVal.Load().(config.Config)
		if !ok || !pollDue(cfg, last, time.Now()) {
			return nil
		}
		if !gate.CompareAndSwap(false, true) {
			return nil
		}
		defer gate.Store(false)
		last = time.Now()
		RunOnce(ctx, db, cfg, syncStatus, fetchers, hub)
		return nil
	})
}

// pollDue reports whether a background pass should run now.
func pollDue(cfg config.Config, last, now time.Time) bool {
	if !cfg.Sync.PollEnabled || cfg.Sync.PollIntervalSec <= 0 {
		return false
	}
	if last.IsZero() {
		return true
	}
	return now.Sub(last) >= time.Duration(cfg.Sync.PollIntervalSec)*time.Second
}

// RunOnce drives one full sync pass and records the outcome. Shared by the
// poller and POST /sync/run; callers serialize through the run gate before
// entering.
func RunOnce(ctx context.Context, db *sql.DB, cfg config.Config, syncStatus *atomic.Value, fetchers []types.Fetcher, hub *events.Hub) {
	st := loadStatus(syncStatus)
	st.Running = true
	st.LastRunAt = time.Now().Format(time.RFC3339)
	syncStatus.Store(st)

	d := &enginesync.Driver{
		DB:       db,
		Fetchers: fetchers,
		Keywords: cfg.Sync.Keywords,
		DelayMin: time.Duration(cfg.Sync.DelayMinMS) * time.Millisecond,
		DelayMax: time.Duration(cfg.Sync.DelayMaxMS) * time.Millisecond,
		OnInsert: func(source string, inserted int) {
			hub.Publish(events.JobsInserted("", source, inserted))
		},
	}
	sum := d.RunAll(ctx)

	st = loadStatus(syncStatus)
	st.Running = false
	st.LastAdded = sum.Inserted
	st.LastErrors = sum.Errors
	if len(sum.Errors) == 0 {
		st.LastOkAt = time.Now().Format(time.RFC3339)
		log.Printf("[poll] ok added=%d", sum.Inserted)
	} else {
		log.Printf("[poll] finished with errors added=%d errs=%s", sum.Inserted, strings.Join(sum.Errors, "; "))
	}
	syncStatus.Store(st)

	hub.Publish(events.SyncDone("", sum.Inserted, sum.Errors))
}

func loadStatus(v *atomic.Value) enginesync.Status {
	if st, ok := v.Load().(enginesync.Status); ok {
		return st
	}
	return enginesync.Status{}
}
