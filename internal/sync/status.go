package sync

// Status is the last-known state of the background/full sync, kept in an
// atomic.Value and served by GET /sync/status.
type Status struct {
	LastRunAt  string   `json:"last_run_at"`
	LastOkAt   string   `json:"last_ok_at"`
	LastErrors []string `json:"last_errors,omitempty"`
	LastAdded  int      `json:"last_added"`
	Running    bool     `json:"running"`
}
