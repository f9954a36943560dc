package config

import "testing"

func TestNormalizeAndValidateDefaults(t *testing.T) {
	var cfg Config
	cfg.App.Port = 38472

	out, vr := NormalizeAndValidate(cfg)
	if !vr.OK() {
		t.Fatalf("errors = %v", vr.Errors)
	}
	if out.Sync.DelayMinMS != 1000 || out.Sync.DelayMaxMS != 3000 {
		t.Errorf("delays = %d/%d", out.Sync.DelayMinMS, out.Sync.DelayMaxMS)
	}
	if out.Sources.Adzuna.Country != "us" || out.Sources.Adzuna.ResultsPerPage != 20 {
		t.Errorf("adzuna defaults = %+v", out.Sources.Adzuna)
	}
	if out.Sources.RatePerHost != 1.0 || out.Sources.RateBurst != 2 {
		t.Errorf("rate defaults = %v/%d", out.Sources.RatePerHost, out.Sources.RateBurst)
	}
}

func TestNormalizeKeywords(t *testing.T) {
	var cfg Config
	cfg.App.Port = 1
	cfg.Sync.Keywords = []string{" golang ", "", "Golang", "backend"}

	out, _ := NormalizeAndValidate(cfg)
	if len(out.Sync.Keywords) != 2 {
		t.Fatalf("keywords = %v, want trimmed and deduped", out.Sync.Keywords)
	}
	if out.Sync.Keywords[0] != "golang" || out.Sync.Keywords[1] != "backend" {
		t.Errorf("keywords = %v", out.Sync.Keywords)
	}
}

func TestValidateRejectsBadPort(t *testing.T) {
	var cfg Config
	cfg.App.Port = 0
	if _, vr := NormalizeAndValidate(cfg); vr.OK() {
		t.Error("port 0 should fail validation")
	}
}

func TestValidatePollInterval(t *testing.T) {
	var cfg Config
	cfg.App.Port = 1
	cfg.Sync.PollEnabled = true
	cfg.Sync.PollIntervalSec = 0
	if _, vr := NormalizeAndValidate(cfg); vr.OK() {
		t.Error("poll enabled without interval should fail validation")
	}
}
