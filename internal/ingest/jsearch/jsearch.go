package jsearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"jobspy-engine/internal/domain"
	"jobspy-engine/internal/ingest"
	"jobspy-engine/internal/ingest/types"
	"jobspy-engine/internal/ingest/util"
)

const (
	defaultBaseURL = "https://jsearch.p.rapidapi.com/search"
	rapidAPIHost   = "jsearch.p.rapidapi.com"
)

type Client struct {
	baseURL string
	apiKey  string
	hc      *http.Client
	limiter *util.HostLimiter

	// now is swappable so the relative-date fallback chain is testable.
	now func() time.Time
}

func New(apiKey string, limiter *util.HostLimiter) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		hc:      &http.Client{Timeout: 20 * time.Second},
		limiter: limiter,
		now:     time.Now,
	}
}

func NewWithBaseURL(baseURL, apiKey string, limiter *util.HostLimiter) *Client {
	c := New(apiKey, limiter)
	c.baseURL = baseURL
	return c
}

func (c *Client) Source() domain.Source { return domain.SourceJSearch }

type searchResponse struct {
	Data []Item `json:"data"`
}

type Item struct {
	JobTitle     string `json:"job_title"`
	EmployerName string `json:"employer_name"`
	JobCity      string `json:"job_city"`
	JobState     string `json:"job_state"`
	JobCountry   string `json:"job_country"`
	ApplyLink    string `json:"job_apply_link"`
	ApplyOptions []struct {
		Link string `json:"apply_link"`
	} `json:"apply_options"`
	Description       string   `json:"job_description"`
	IsRemote          bool     `json:"job_is_remote"`
	SalaryMin         *float64 `json:"job_min_salary"`
	SalaryMax         *float64 `json:"job_max_salary"`
	PostedAt          string   `json:"job_posted_at"` // relative, pt ("há 3 dias")
	PostedAtTimestamp int64    `json:"job_posted_at_timestamp"`
	PostedAtDatetime  string   `json:"job_posted_at_datetime_utc"`
}

func (c *Client) Fetch(ctx context.Context, filter string) (types.FetchResult, error) {
	apiURL := fmt.Sprintf("%s?query=%s&page=1&num_pages=1&country=us&date_posted=all&work_from_home=true&language=pt",
		c.baseURL, url.QueryEscape(filter))

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	req.Header.Set("User-Agent", "jobs-spy/1.0 (+local)")
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", rapidAPIHost)

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
		out = append(out, Normalize(it, c.now()))
	}
	return types.FetchResult{Jobs: out}, nil
}

// Normalize maps one JSearch item. URL prefers job_apply_link, falling back
// to the first apply_options entry. The posted date resolves through a
// fallback chain: relative phrase, unix timestamp, UTC datetime, then now.
func Normalize(it Item, now time.Time) domain.Job {
	u := it.ApplyLink
	if u == "" && len(it.ApplyOptions) > 0 {
		u = it.ApplyOptions[0].Link
	}

	published := resolvePostedAt(it, now)

	return domain.Job{
		Title:       it.JobTitle,
		Company:     it.EmployerName,
		Location:    fmt.Sprintf("%s, %s, %s", it.JobCity, it.JobState, it.JobCountry),
		URL:         u,
		Description: it.Description,
		Salary:      salaryRange(it.SalaryMin, it.SalaryMax),
		Remote:      it.IsRemote,
		Source:      domain.SourceJSearch,
		Status:      domain.StatusNew,
		PublishedAt: &published,
	}
}

func resolvePostedAt(it Item, now time.Time) time.Time {
	if t, ok := ParseRelative(it.PostedAt, now); ok {
		return t
	}
	if it.PostedAtTimestamp > 0 {
		return time.Unix(it.PostedAtTimestamp, 0).UTC()
	}
	if it.PostedAtDatetime != "" {
		if t, err := time.Parse(time.RFC3339, it.PostedAtDatetime); err == nil {
			return t
		}
	}
	return now
}

func salaryRange(min, max *float64) string {
	f := func(v *float64) string {
		if v == nil {
			return ""
		}
		return fmt.Sprintf("%d", int64(*v))
	}
	s := fmt.Sprintf("%s - %s", f(min), f(max))
	if strings.TrimSpace(s) == "-" {
		// JSearch rarely carries salary; keep the column empty rather
		// than storing a bare dash for every row.
		return ""
	}
	return s
}
