package adzuna

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

const defaultBaseURL = "https://api.adzuna.com/v1/api/jobs"

// Credentials is the app_id/app_key pair Adzuna issues per application.
type Credentials struct {
	AppID  string
	AppKey string
}

type Client struct {
	baseURL        string
	creds          Credentials
	country        string
	resultsPerPage int
	hc             *http.Client
	limiter        *util.HostLimiter
}

func New(creds Credentials, country string, resultsPerPage int, limiter *util.HostLimiter) *Client {
	if country == "" {
		country = "us"
	}
	if resultsPerPage <= 0 {
		resultsPerPage = 20
	}
	return &Client{
		baseURL:        defaultBaseURL,
		creds:          creds,
		country:        country,
		resultsPerPage: resultsPerPage,
		hc:             &http.Client{Timeout: 20 * time.Second},
		limiter:        limiter,
	}
}

func NewWithBaseURL(baseURL string, creds Credentials, limiter *util.HostLimiter) *Client {
	c := New(creds, "", 0, limiter)
	c.baseURL = baseURL
	return c
}

func (c *Client) Source() domain.Source { return domain.SourceAdzuna }

type searchResponse struct {
	Results []Item `json:"results"`
}

type Item struct {
	Title   string `json:"title"`
	Company struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
	Category struct {
		Tag string `json:"tag"`
	} `json:"category"`
	Tags        []string `json:"tags"`
	RedirectURL string   `json:"redirect_url"`
	Description string   `json:"description"`
	SalaryMin   *float64 `json:"salary_min"`
	SalaryMax   *float64 `json:"salary_max"`
	Created     string   `json:"created"`
}

func (c *Client) Fetch(ctx context.Context, filter string) (types.FetchResult, error) {
	apiURL := fmt.Sprintf("%s/%s/search/1?app_id=%s&app_key=%s&results_per_page=%d&what=%s",
		c.baseURL, c.country,
		url.QueryEscape(c.creds.AppID), url.QueryEscape(c.creds.AppKey),
		c.resultsPerPage, url.QueryEscape(filter))

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

	out := make([]domain.Job, 0, len(body.Results))
	for _, it := range body.Results {
		out = append(out, Normalize(it))
	}
	return types.FetchResult{Jobs: out}, nil
}

// Normalize maps one Adzuna result. Salary is rendered as "min - max" with
// absent sides left blank, so a result with neither bound yields " - ".
func Normalize(it Item) domain.Job {
	remote := it.Category.Tag == "remote"
	if !remote {
		for _, t := range it.Tags {
			if t == "remote" {
				remote = true
				break
			}
		}
	}

	j := domain.Job{
		Title:       it.Title,
		Company:     it.Company.DisplayName,
		Location:    it.Location.DisplayName,
		URL:         it.RedirectURL,
		Description: it.Description,
		Salary:      fmt.Sprintf("%s - %s", formatSalary(it.SalaryMin), formatSalary(it.SalaryMax)),
		Remote:      remote,
		Source:      domain.SourceAdzuna,
		Status:      domain.StatusNew,
	}
	if it.Created != "" {
		if t, err := time.Parse(time.RFC3339, it.Created); err == nil {
			j.PublishedAt = &t
		} else if t, err := time.Parse("2006-01-02T15:04:05", it.Created); err == nil {
			j.PublishedAt = &t
		}
	}
	return j
}

func formatSalary(v *float64) string {
	if v == nil {
		return ""
	}
	// Adzuna sends whole-currency amounts; drop the fraction like the UI does.
	return fmt.Sprintf("%d", int64(*v))
}
