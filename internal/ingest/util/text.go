package util

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

func CleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// Excerpt reduces an HTML job description to a plain-text snippet of at
// most max runes. Upstream descriptions arrive as markup (Remotive and
// Arbeitnow ship full HTML); list responses want readable text.
func Excerpt(html string, max int) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}

	text := html
	if strings.ContainsAny(html, "<>") {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err == nil {
			text = doc.Text()
		}
	}

	text = CleanText(text)
	if max > 0 {
		r := []rune(text)
		if len(r) > max {
			text = strings.TrimSpace(string(r[:max])) + "…"
		}
	}
	return text
}
