package types

import (
	"context"

	"jobspy-engine/internal/domain"
)

// Fetcher is one upstream job board. Fetch issues a single search request
// for the given keyword filter and returns the already-normalized batch.
type Fetcher interface {
	Source() domain.Source
	Fetch(ctx context.Context, filter string) (FetchResult, error)
}

type FetchResult struct {
	Jobs []domain.Job

	// Warning carries an upstream notice delivered inside a 200 response
	// (Remotive does this when rate limiting). The batch is empty but the
	// call did not fail.
	Warning string
}
