package adzuna

import (
	"testing"

	"jobspy-engine/internal/domain"
)

func TestNormalizeSalaryRange(t *testing.T) {
	min, max := 1000.0, 2000.0
	it := Item{SalaryMin: &min, SalaryMax: &max}
	if j := Normalize(it); j.Salary != "1000 - 2000" {
		t.Errorf("salary = %q, want %q", j.Salary, "1000 - 2000")
	}

	// Both bounds absent still renders the separator; the UI keys off it.
	if j := Normalize(Item{}); j.Salary != " - " {
		t.Errorf("salary = %q, want %q", j.Salary, " - ")
	}

	it = Item{SalaryMin: &min}
	if j := Normalize(it); j.Salary != "1000 - " {
		t.Errorf("salary = %q, want %q", j.Salary, "1000 - ")
	}
}

func TestNormalizeRemoteHeuristic(t *testing.T) {
	var it Item
	it.Category.Tag = "remote"
	if j := Normalize(it); !j.Remote {
		t.Error("category.tag=remote should mark remote")
	}

	it = Item{Tags: []string{"fulltime", "remote"}}
	if j := Normalize(it); !j.Remote {
		t.Error("tag list containing remote should mark remote")
	}

	it = Item{Tags: []string{"Remote"}} // adzuna tags are lowercase; exact match only
	if j := Normalize(it); j.Remote {
		t.Error("capitalized tag should not mark remote for this source")
	}

	if j := Normalize(Item{}); j.Remote {
		t.Error("default should be not remote")
	}
}

func TestNormalizeNestedFields(t *testing.T) {
	var it Item
	it.Title = "Data Engineer"
	it.Company.DisplayName = "Initech"
	it.Location.DisplayName = "Denver, CO"
	it.RedirectURL = "https://adzuna.example.com/land/1"

	j := Normalize(it)
	if j.Company != "Initech" || j.Location != "Denver, CO" {
		t.Errorf("company/location = %q/%q", j.Company, j.Location)
	}
	if j.URL != "https://adzuna.example.com/land/1" {
		t.Errorf("url = %q", j.URL)
	}
	if j.Source != domain.SourceAdzuna || j.Status != domain.StatusNew {
		t.Errorf("source/status = %q/%q", j.Source, j.Status)
	}
}
