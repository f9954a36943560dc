package httpapi

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"sync/atomic"

	"jobspy-engine/internal/config"
	"jobspy-engine/internal/domain"
	"jobspy-engine/internal/events"
	"jobspy-engine/internal/ingest"
	"jobspy-engine/internal/ingest/types"
	enginesync "jobspy-engine/internal/sync"
)

type SyncHandler struct {
	DB          *sql.DB
	CfgVal      *atomic.Value // config.Config
	SyncStatus  *atomic.Value // sync.Status
	RunGate     *atomic.Bool
	Hub         *events.Hub
	Fetchers    []types.Fetcher
	RunFullSync func(ctx context.Context, cfg config.Config)
}

// IngestOne serves GET /sync?action=<source>&filter=<text>: one fetch-
// normalize-insert pass for a single source. Upstream trouble maps to 502
// for every source; a Remotive notice delivered inside a 200 response is
// not an error and surfaces as a warning header over an OK body.
func (h SyncHandler) IngestOne(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	source, err := domain.ParseSource(q.Get("action"))
	if err != nil {
		WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid action"})
		return
	}

	var fetcher types.Fetcher
	for _, f := range h.Fetchers {
		if f.Source() == source {
			fetcher = f
			break
		}
	}
	if fetcher == nil {
		WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid action"})
		return
	}

	res, err := ingest.Run(r.Context(), h.DB, fetcher, q.Get("filter"))
	if err != nil {
		var ue *ingest.UpstreamError
		if errors.As(err, &ue) {
			log.Printf("[sync] %s upstream failure: %v", source, err)
			WriteJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
			return
		}
		WriteJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	if res.Warning != "" {
		w.Header().Set("X-Remotive-Warning", res.Warning)
	}
	if res.Inserted > 0 {
		reqID := RequestIDFrom(r.Context())
		h.Hub.Publish(events.JobsInserted(reqID, string(source), res.Inserted))
	}
	writeJSON(w, map[string]string{"message": "OK"})
}

func (h SyncHandler) Status(w http.ResponseWriter, r *http.Request) {
	st, _ := h.SyncStatus.Load().(enginesync.Status)
	writeJSON(w, st)
}

// Run kicks a full keyword and source sync in the background. The gate CAS
// is the overlap guard, so two concurrent kicks cannot both start a driver;
// two engines never share a db thanks to the data-dir lock.
func (h SyncHandler) Run(w http.ResponseWriter, r *http.Request) {
	if !h.RunGate.CompareAndSwap(false, true) {
		writeJSON(w, map[string]any{"ok": false, "msg": "already running"})
		return
	}

	cfg := h.CfgVal.Load().(config.Config)
	go func() {
		defer h.RunGate.Store(false)
		h.RunFullSync(context.Background(), cfg)
	}()

	writeJSON(w, map[string]any{"ok": true})
}
