package arbeitnow

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

const defaultBaseURL = "https://arbeitnow.com/api/job-board-api"

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

func NewWithBaseURL(baseURL string, limiter *util.HostLimiter) *Client {
	c := New(limiter)
	c.baseURL = baseURL
	return c
}

func (c *Client) Source() domain.Source { return domain.SourceArbeitnow }

type searchResponse struct {
	Data []Item `json:"data"`
}

type Item struct {
	Title       string   `json:"title"`
	CompanyName string   `json:"company_name"`
	Location    string   `json:"location"`
	URL         string   `json:"url"`
	Description string   `json:"description"`
	Remote      bool     `json:"remote"`
	Tags        []string `json:"tags"`
	CreatedAt   int64    `json:"created_at"` // unix seconds
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

	out := make([]domain.Job, 0, len(body.Data))
	for _, it := range body.Data {
		out = append(out, Normalize(it))
	}
	return types.FetchResult{Jobs: out}, nil
}

// Normalize maps one Arbeitnow item. Remote is the OR of the explicit flag
// and a "Remote" entry in the tag list; the board tags plenty of remote
// roles without setting the flag.
func Normalize(it Item) domain.Job {
	remote := it.Remote
	if !remote {
		for _, t := range it.Tags {
			if t == "Remote" {
				remote = true
				break
			}
		}
	}

	j := domain.Job{
		Title:       it.Title,
		Company:     it.CompanyName,
		Location:    it.Location,
		URL:         it.URL,
		Description: it.Description,
		Remote:      remote,
		Source:      domain.SourceArbeitnow,
		Status:      domain.StatusNew,
	}
	if it.CreatedAt > 0 {
		t := time.Unix(it.CreatedAt, 0).UTC()
		j.PublishedAt = &t
	}
	return j
}
