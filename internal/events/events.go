package events

import (
	"encoding/json"
	"time"
)

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

func MakeEvent(reqID, typ string, v int, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type:      typ,
		Version:   v,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}

// JobsInserted tells a listening UI that a sync call landed new rows.
func JobsInserted(reqID, source string, n int) string {
	return MakeEvent(reqID, "jobs_inserted", 1, map[string]any{"source": source, "count": n})
}

// StatusChanged reports a single job moving to a new lifecycle status.
func StatusChanged(reqID string, id int64, status string) string {
	return MakeEvent(reqID, "status_changed", 1, map[string]any{"id": id, "status": status})
}

// SyncDone closes out a full driver run.
func SyncDone(reqID string, inserted int, errs []string) string {
	return MakeEvent(reqID, "sync_done", 1, map[string]any{"inserted": inserted, "errors": errs})
}
