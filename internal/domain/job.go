package domain

import (
	"fmt"
	"strings"
	"time"
)

// Job is the canonical record one posting normalizes into, regardless of
// which upstream board it came from. URL is the dedup key: the store keeps
// at most one row per exact URL.
type Job struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
	URL         string     `json:"url"`
	Source      Source     `json:"source"`
	Salary      string     `json:"salary,omitempty"`
	Remote      bool       `json:"remote"`
	Status      Status     `json:"status"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type Source string

const (
	SourceRemotive  Source = "Remotive"
	SourceArbeitnow Source = "Arbeitnow"
	SourceAdzuna    Source = "Adzuna"
	SourceJSearch   Source = "JSearch"
)

// Sources lists every upstream in sync order. The set is closed; adding a
// board means a new Fetcher implementation, not a config entry.
func Sources() []Source {
	return []Source{SourceRemotive, SourceArbeitnow, SourceAdzuna, SourceJSearch}
}

func ParseSource(s string) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "remotive":
		return SourceRemotive, nil
	case "arbeitnow":
		return SourceArbeitnow, nil
	case "adzuna":
		return SourceAdzuna, nil
	case "jsearch":
		return SourceJSearch, nil
	}
	return "", fmt.Errorf("unknown source %q", s)
}

// Status is the user-assigned application tracking state. Any status may
// move to any other; there is no transition graph.
type Status string

const (
	StatusNew          Status = "NEW"
	StatusDiscarded    Status = "DISCARDED"
	StatusApplied      Status = "APPLIED"
	StatusRejected     Status = "REJECTED"
	StatusInterviewing Status = "INTERVIEWING"
	StatusInContact    Status = "IN_CONTACT"
	StatusSeeLater     Status = "SEE_LATER"
)

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case StatusNew, StatusDiscarded, StatusApplied, StatusRejected,
		StatusInterviewing, StatusInContact, StatusSeeLater:
		return st, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}
