package omni

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Relative date expressions resolve to this hour of the day.
const defaultHour = 17

var (
	plusDaysRe  = regexp.MustCompile(`^\+(\d+)d$`)
	plusWeeksRe = regexp.MustCompile(`^\+(\d+)w$`)
	adjustRe    = regexp.MustCompile(`^([+-]?\d+)([dwm])$`)
)

// Layouts attempted for absolute date literals, most specific first.
var absoluteLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ResolveDate parses a date expression relative to now. Recognized forms:
// "today", "tomorrow", "next week", "+Nd", "+Nw" (all at 17:00 local), and
// absolute literals such as "2026-03-15" or RFC 3339 timestamps. The second
// return value is false when the expression is empty or unparseable; callers
// treat that as "no date", never as an error.
func ResolveDate(expr string, now time.Time) (time.Time, bool) {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" {
		return time.Time{}, false
	}
	lower := strings.ToLower(trimmed)

	switch lower {
	case "today":
		return atHour(now, defaultHour), true
	case "tomorrow":
		return atHour(now.AddDate(0, 0, 1), defaultHour), true
	case "next week":
		return atHour(now.AddDate(0, 0, 7), defaultHour), true
	}

	if m := plusDaysRe.FindStringSubmatch(lower); m != nil {
		n, _ := strconv.Atoi(m[1])
		return atHour(now.AddDate(0, 0, n), defaultHour), true
	}
	if m := plusWeeksRe.FindStringSubmatch(lower); m != nil {
		n, _ := strconv.Atoi(m[1])
		return atHour(now.AddDate(0, 0, n*7), defaultHour), true
	}

	for _, layout := range absoluteLayouts {
		if t, err := time.ParseInLocation(layout, trimmed, now.Location()); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// AdjustDate applies a relative offset ("+3d", "-1w", "+2m") to an existing
// timestamp. Unlike ResolveDate this preserves the time of day; months use
// calendar arithmetic, so "+1m" from Jan 31 normalizes past February rather
// than adding a fixed 30 days. Returns false when the offset does not match
// the [+-]N[dwm] grammar.
func AdjustDate(t time.Time, offset string) (time.Time, bool) {
	m := adjustRe.FindStringSubmatch(strings.TrimSpace(offset))
	if m == nil {
		return time.Time{}, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, false
	}
	switch m[2] {
	case "d":
		return t.AddDate(0, 0, n), true
	case "w":
		return t.AddDate(0, 0, n*7), true
	case "m":
		return t.AddDate(0, n, 0), true
	}
	return time.Time{}, false
}

func atHour(t time.Time, hour int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, t.Location())
}
