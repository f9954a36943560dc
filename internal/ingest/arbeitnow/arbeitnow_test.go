package arbeitnow

import (
	"testing"
	"time"

	"jobspy-engine/internal/domain"
)

func TestNormalizeRemoteOR(t *testing.T) {
	// Tag alone is enough, even with the explicit flag false.
	it := Item{Remote: false, Tags: []string{"Engineering", "Remote"}}
	if j := Normalize(it); !j.Remote {
		t.Error("tags containing Remote should mark remote despite flag=false")
	}

	it = Item{Remote: true}
	if j := Normalize(it); !j.Remote {
		t.Error("explicit flag should mark remote")
	}

	// This source matches the tag capitalized; "remote" is not a hit.
	it = Item{Tags: []string{"remote"}}
	if j := Normalize(it); j.Remote {
		t.Error("lowercase tag should not mark remote for this source")
	}
}

func TestNormalizePublishedAt(t *testing.T) {
	it := Item{CreatedAt: 1717200000}
	j := Normalize(it)
	if j.PublishedAt == nil {
		t.Fatal("publishedAt missing")
	}
	if want := time.Unix(1717200000, 0).UTC(); !j.PublishedAt.Equal(want) {
		t.Errorf("publishedAt = %v, want %v", j.PublishedAt, want)
	}

	if j := Normalize(Item{}); j.PublishedAt != nil {
		t.Errorf("publishedAt = %v, want nil when source omits it", j.PublishedAt)
	}
}

func TestNormalizeFields(t *testing.T) {
	it := Item{
		Title:       "SRE",
		CompanyName: "Hooli",
		Location:    "Berlin",
		URL:         "https://arbeitnow.example.com/j/1",
		Description: "<p>on-call</p>",
	}
	j := Normalize(it)
	if j.Company != "Hooli" || j.Location != "Berlin" {
		t.Errorf("company/location = %q/%q", j.Company, j.Location)
	}
	if j.Source != domain.SourceArbeitnow || j.Status != domain.StatusNew {
		t.Errorf("source/status = %q/%q", j.Source, j.Status)
	}
}
