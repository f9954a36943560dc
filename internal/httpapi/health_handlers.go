package httpapi

import (
	"database/sql"
	"net/http"
	"time"

	"jobspy-engine/internal/events"
	"jobspy-engine/internal/store"
)

type HealthHandler struct {
	DB  *sql.DB
	Hub *events.Hub
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	jobs, err := store.CountJobs(r.Context(), h.DB)
	writeJSON(w, map[string]any{
		"ok":          err == nil,
		"time":        time.Now().Format(time.RFC3339),
		"jobs":        jobs,
		"subscribers": h.Hub.Subscribers(),
	})
}
