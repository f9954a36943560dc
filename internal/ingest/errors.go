package ingest

import (
	"fmt"

	"jobspy-engine/internal/domain"
)

// UpstreamError reports a failed or undecodable upstream response. Status
// is zero when the request never completed (timeout, DNS, connection).
type UpstreamError struct {
	Source domain.Source
	Status int
	Err    error
}

func (e *UpstreamError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s upstream status %d: %v", e.Source, e.Status, e.Err)
	}
	return fmt.Sprintf("%s upstream: %v", e.Source, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
