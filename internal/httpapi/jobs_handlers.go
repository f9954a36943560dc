package httpapi

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"jobspy-engine/internal/domain"
	"jobspy-engine/internal/events"
	"jobspy-engine/internal/ingest/util"
	"jobspy-engine/internal/store"
)

type JobsHandler struct {
	DB  *sql.DB
	Hub *events.Hub
}

// jobView is a Job plus a plain-text excerpt; descriptions arrive from the
// boards as HTML and the listing UI wants something readable.
type jobView struct {
	domain.Job
	Excerpt string `json:"excerpt"`
}

func (h JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	opts := store.ListJobsOpts{Filter: q.Get("filter")}

	if s := q.Get("status"); s != "" {
		st, err := domain.ParseStatus(s)
		if err != nil {
			WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid status"})
			return
		}
		opts.Status = st
	}
	if l := q.Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil {
			opts.Limit = n
		}
	}

	jobs, err := store.ListJobs(r.Context(), h.DB, opts)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}

	out := make([]jobView, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, jobView{Job: j, Excerpt: util.Excerpt(j.Description, 280)})
	}
	writeJSON(w, out)
}

type updateStatusReq struct {
	Status string `json:"status"`
}

// UpdateStatusByPath expects /jobs/{id}/status.
func (h JobsHandler) UpdateStatusByPath(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/jobs/")
	idStr, ok := strings.CutSuffix(rest, "/status")
	if !ok {
		http.NotFound(w, r)
		return
	}
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid job id"})
		return
	}

	var req updateStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid JSON body"})
		return
	}
	if strings.TrimSpace(req.Status) == "" {
		WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Status is required"})
		return
	}
	status, err := domain.ParseStatus(req.Status)
	if err != nil {
		WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid status"})
		return
	}

	job, err := store.UpdateStatus(r.Context(), h.DB, id, status)
	if errors.Is(err, store.ErrNotFound) {
		WriteJSON(w, http.StatusNotFound, map[string]string{"error": "Job not found"})
		return
	}
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.StatusChanged(reqID, job.ID, string(job.Status)))
	writeJSON(w, job)
}
