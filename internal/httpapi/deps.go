package httpapi

import (
	"context"
	"database/sql"
	"sync/atomic"

	"jobspy-engine/internal/config"
	"jobspy-engine/internal/events"
	"jobspy-engine/internal/ingest/types"
)

type Deps struct {
	DB *sql.DB

	Hub *events.Hub

	// Atomic stores
	CfgVal     *atomic.Value // stores config.Config
	SyncStatus *atomic.Value // stores sync.Status

	// RunGate serializes full syncs across POST /sync/run and the poller.
	RunGate *atomic.Bool

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// One fetcher per source, sync order.
	Fetchers []types.Fetcher

	// Full-sync entrypoint (inject for testability)
	RunFullSync func(ctx context.Context, cfg config.Config)
}
