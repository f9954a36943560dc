package domain

import "testing"

func TestParseSource(t *testing.T) {
	for _, s := range []string{"remotive", "Remotive", " ADZUNA ", "jsearch", "arbeitnow"} {
		if _, err := ParseSource(s); err != nil {
			t.Errorf("ParseSource(%q) = %v", s, err)
		}
	}
	if _, err := ParseSource("linkedin"); err == nil {
		t.Error("ParseSource should reject sources outside the closed set")
	}
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("see_later")
	if err != nil || st != StatusSeeLater {
		t.Errorf("ParseStatus = %q, %v", st, err)
	}
	if _, err := ParseStatus("HIRED"); err == nil {
		t.Error("ParseStatus should reject unknown statuses")
	}
}
