package jsearch

import (
	"regexp"
	"strconv"
	"time"
)

// JSearch posts dates as Portuguese relative phrases like "há 3 dias"
// ("3 days ago") when queried with language=pt.
// The unit match must swallow hyphenated words whole so "anos-luz" is an
// unrecognized unit rather than a false match on "anos".
var relRe = regexp.MustCompile(`há\s+(\d+)\s+([\p{L}-]+)`)

var unitSeconds = map[string]int64{
	"minuto":  60,
	"minutos": 60,
	"hora":    3600,
	"horas":   3600,
	"dia":     86400,
	"dias":    86400,
	"semana":  604800,
	"semanas": 604800,
	"mês":     2592000, // 30-day month
	"meses":   2592000,
	"ano":     31536000, // 365-day year
	"anos":    31536000,
}

// ParseRelative resolves a relative phrase against now. The second return
// is false for text that is not a recognized phrase, which is not an
// error: callers fall through to the absolute-date fields.
func ParseRelative(text string, now time.Time) (time.Time, bool) {
	m := relRe.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	secs, ok := unitSeconds[m[2]]
	if !ok {
		return time.Time{}, false
	}
	return now.Add(-time.Duration(n*secs) * time.Second), true
}
