package entity

import (
	"fmt"
	"time"
)

// naiveLayouts are timestamp layouts without a zone designator. Values in
// these layouts are interpreted as UTC, never as server-local time.
var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// ParseTime parses an RFC3339 timestamp, or a zone-less timestamp which is
// normalized to UTC. Returns ErrInvalidDueAt when the value fits neither.
func ParseTime(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDueAt, value)
}
