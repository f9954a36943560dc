package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus everything wrong or
// suspicious about it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Sync.Keywords = trimList(out.Sync.Keywords)

	// ---- Validation rules ----

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	if len(out.Sync.Keywords) == 0 {
		res.addWarn("sync.keywords is empty; a full sync will do nothing.")
	}

	if out.Sync.DelayMinMS <= 0 {
		out.Sync.DelayMinMS = 1000
	}
	if out.Sync.DelayMaxMS <= out.Sync.DelayMinMS {
		out.Sync.DelayMaxMS = out.Sync.DelayMinMS + 2000
	}
	if out.Sync.DelayMinMS < 250 {
		res.addWarn("sync.delay_min_ms is very low (%d) and may trip upstream rate limits.", out.Sync.DelayMinMS)
	}

	if out.Sync.PollEnabled && out.Sync.PollIntervalSec <= 0 {
		res.addErr("sync.poll_interval_seconds must be > 0 when poll_enabled=true")
	}
	if out.Sync.PollEnabled && out.Sync.PollIntervalSec > 0 && out.Sync.PollIntervalSec < 60 {
		res.addWarn("sync.poll_interval_seconds is very low (%d); the boards update slowly.", out.Sync.PollIntervalSec)
	}

	if out.Sources.Adzuna.Country == "" {
		out.Sources.Adzuna.Country = "us"
	}
	if out.Sources.Adzuna.ResultsPerPage <= 0 {
		out.Sources.Adzuna.ResultsPerPage = 20
	} else if out.Sources.Adzuna.ResultsPerPage > 50 {
		res.addWarn("sources.adzuna.results_per_page above 50 is clamped by Adzuna.")
	}

	if out.Sources.RatePerHost <= 0 {
		out.Sources.RatePerHost = 1.0
	}
	if out.Sources.RateBurst <= 0 {
		out.Sources.RateBurst = 2
	}

	return out, res
}
