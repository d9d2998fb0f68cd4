package records

import (
	"strings"
	"time"
)

// Date layouts observed in LubeLogger responses, tried in order. European
// day-first layouts come before US month-first layouts on purpose: a value
// like "03/04/2025" reads as 3 April, not 4 March.
var dateLayouts = []string{
	"02/01/2006",
	"02/01/2006 15:04:05",
	"01/02/2006",
	"01/02/2006 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000000",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses a date string of unknown format into a timezone-aware
// instant. Offset-less values are pinned to UTC on every branch. A failed
// parse reports ok=false; malformed input never produces an error.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	// ISO-8601 first. RFC 3339 covers the trailing-Z and explicit-offset
	// forms the API emits.
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
