package remotive

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"jobspy-engine/internal/domain"
	"jobspy-engine/internal/ingest"
	"jobspy-engine/internal/ingest/types"
	"jobspy-engine/internal/ingest/util"
)

const defaultBaseURL = "https://remotive.com/api/remote-jobs"

type Client struct {
	baseURL string
	hc      *http.Client
	limiter *util.HostLimiter
}

func New(limiter *util.HostLimiter) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		hc:      &http.Client{Timeout: 20 * time.Second},
		limiter: limiter,
	}
}

// NewWithBaseURL points the client at a fake upstream.
func NewWithBaseURL(baseURL string, limiter *util.HostLimiter) *Client {
	c := New(limiter)
	c.baseURL = baseURL
	return c
}

func (c *Client) Source() domain.Source { return domain.SourceRemotive }

type searchResponse struct {
	Jobs []Item `json:"jobs"`

	// Remotive answers rate-limited calls with 200 and a notice object
	// instead of a jobs array.
	Warning00   string `json:"00-warning"`
	LegalNotice string `json:"0-legal-notice"`
	Message     string `json:"message"`
}

type Item struct {
	Title           string `json:"title"`
	CompanyName     string `json:"company_name"`
	Location        string `json:"candidate_required_location"`
	URL             string `json:"url"`
	Description     string `json:"description"`
	Salary          string `json:"salary"`
	Remote          bool   `json:"remote"`
	PublicationDate string `json:"publication_date"`
}

func (c *Client) Fetch(ctx context.Context, filter string) (types.FetchResult, error) {
	apiURL := fmt.Sprintf("%s?search=%s", c.baseURL, url.QueryEscape(filter))

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	req.Header.Set("User-Agent", "jobs-spy/1.0 (+local)")

	if c.limiter != nil {
		if err := c.limiter.WaitURL(ctx, apiURL); err != nil {
			return types.FetchResult{}, err
		}
	}
	res, err := c.hc.Do(req)
	if err != nil {
		return types.FetchResult{}, &ingest.UpstreamError{Source: c.Source(), Err: err}
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return types.FetchResult{}, &ingest.UpstreamError{
			Source: c.Source(),
			Status: res.StatusCode,
			Err:    fmt.Errorf("search returned %s", res.Status),
		}
	}

	var body searchResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return types.FetchResult{}, &ingest.UpstreamError{Source: c.Source(), Status: res.StatusCode, Err: fmt.Errorf("decode: %w", err)}
	}

	if body.Jobs == nil {
		warning := body.Warning00
		if warning == "" {
			warning = body.LegalNotice
		}
		if warning == "" {
			warning = body.Message
		}
		return types.FetchResult{Warning: warning}, nil
	}

	out := make([]domain.Job, 0, len(body.Jobs))
	for _, it := range body.Jobs {
		out = append(out, Normalize(it))
	}
	return types.FetchResult{Jobs: out}, nil
}

// Normalize maps one Remotive item to the canonical record. Remote is taken
// from the explicit flag only; Remotive lists remote roles, but the flag is
// what the source asserts.
func Normalize(it Item) domain.Job {
	j := domain.Job{
		Title:       it.Title,
		Company:     it.CompanyName,
		Location:    it.Location,
		URL:         it.URL,
		Description: it.Description,
		Salary:      it.Salary,
		Remote:      it.Remote,
		Source:      domain.SourceRemotive,
		Status:      domain.StatusNew,
	}
	if it.PublicationDate != "" {
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
			if t, err := time.Parse(layout, it.PublicationDate); err == nil {
				j.PublishedAt = &t
				break
			}
		}
	}
	return j
}
