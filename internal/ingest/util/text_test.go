package util

import "testing"

func TestExcerpt(t *testing.T) {
	cases := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"strips markup", "<p>Build <b>things</b> in Go.</p>", 100, "Build things in Go."},
		{"plain text passes through", "Just text", 100, "Just text"},
		{"collapses whitespace", "<div>a\n\n  b c</div>", 100, "a b c"},
		{"empty", "   ", 100, ""},
		{"truncates", "<p>abcdefghij</p>", 4, "abcd…"},
	}
	for _, tc := range cases {
		if got := Excerpt(tc.in, tc.max); got != tc.want {
			t.Errorf("%s: Excerpt = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestCleanText(t *testing.T) {
	if got := CleanText("  a  b \n c "); got != "a b c" {
		t.Errorf("CleanText = %q", got)
	}
}
