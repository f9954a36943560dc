package jsearch

import (
	"testing"
	"time"

	"jobspy-engine/internal/domain"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestNormalizeFields(t *testing.T) {
	it := Item{
		JobTitle:     "Backend Engineer",
		EmployerName: "Acme",
		JobCity:      "Austin",
		JobState:     "TX",
		JobCountry:   "US",
		ApplyLink:    "https://jobs.example.com/1",
		IsRemote:     true,
	}
	j := Normalize(it, testNow)

	if j.Source != domain.SourceJSearch {
		t.Errorf("source = %q", j.Source)
	}
	if j.Title != "Backend Engineer" || j.Company != "Acme" {
		t.Errorf("title/company = %q/%q", j.Title, j.Company)
	}
	if j.Location != "Austin, TX, US" {
		t.Errorf("location = %q", j.Location)
	}
	if !j.Remote {
		t.Error("remote not carried over")
	}
	if j.Status != domain.StatusNew {
		t.Errorf("status = %q", j.Status)
	}
}

func TestNormalizeURLFallback(t *testing.T) {
	it := Item{ApplyOptions: []struct {
		Link string `json:"apply_link"`
	}{{Link: "https://ats.example.com/apply/9"}}}

	if j := Normalize(it, testNow); j.URL != "https://ats.example.com/apply/9" {
		t.Errorf("url = %q, want first apply_options link", j.URL)
	}

	it.ApplyLink = "https://jobs.example.com/primary"
	if j := Normalize(it, testNow); j.URL != "https://jobs.example.com/primary" {
		t.Errorf("url = %q, want job_apply_link to win", j.URL)
	}
}

func TestPostedAtFallbackChain(t *testing.T) {
	// Relative phrase wins over everything.
	it := Item{
		PostedAt:          "há 2 horas",
		PostedAtTimestamp: 1700000000,
		PostedAtDatetime:  "2023-11-01T00:00:00Z",
	}
	j := Normalize(it, testNow)
	if want := testNow.Add(-7200 * time.Second); !j.PublishedAt.Equal(want) {
		t.Errorf("publishedAt = %v, want %v (relative)", j.PublishedAt, want)
	}

	// Unrecognized phrase falls through to the unix timestamp.
	it.PostedAt = "há 2 anos-luz"
	j = Normalize(it, testNow)
	if want := time.Unix(1700000000, 0).UTC(); !j.PublishedAt.Equal(want) {
		t.Errorf("publishedAt = %v, want %v (timestamp)", j.PublishedAt, want)
	}

	// Then the absolute datetime.
	it.PostedAtTimestamp = 0
	j = Normalize(it, testNow)
	if want := time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC); !j.PublishedAt.Equal(want) {
		t.Errorf("publishedAt = %v, want %v (datetime)", j.PublishedAt, want)
	}

	// And finally now.
	it.PostedAtDatetime = ""
	j = Normalize(it, testNow)
	if !j.PublishedAt.Equal(testNow) {
		t.Errorf("publishedAt = %v, want now", j.PublishedAt)
	}
}

func TestSalaryRange(t *testing.T) {
	min, max := 90000.0, 120000.0
	it := Item{SalaryMin: &min, SalaryMax: &max}
	if j := Normalize(it, testNow); j.Salary != "90000 - 120000" {
		t.Errorf("salary = %q", j.Salary)
	}
	if j := Normalize(Item{}, testNow); j.Salary != "" {
		t.Errorf("salary = %q, want empty when unsalaried", j.Salary)
	}
}
