package normalize

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate accepts an ISO calendar date or a full RFC 3339 timestamp.
// Whatever arrives, the result is the instant's UTC calendar day; any time
// or zone component on the input is discarded by the caller via ToDateOnly.
func ParseDate(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, false
	}
	if parsed, err := time.ParseInLocation(dateLayout, value, time.UTC); err == nil {
		return parsed, true
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, true
	}
	return time.Time{}, false
}

// ToDateOnly renders the UTC year/month/day of an instant. Rendering from
// UTC components keeps a timestamp like 2024-03-05T23:00:00+05:00 on
// 2024-03-05 instead of drifting to an adjacent day under a local zone.
func ToDateOnly(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

func addDays(date string, days int) string {
	parsed, _ := ParseDate(date)
	return ToDateOnly(parsed.AddDate(0, 0, days))
}

// Canonical YYYY-MM-DD strings order lexicographically, so plain string
// comparison is a correct day-granularity date comparison.
func dateBefore(a string, b string) bool {
	return a < b
}
