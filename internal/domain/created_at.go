package domain

import (
	"fmt"
	"strings"
	"time"
)

var createdAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02 15:04:05.999999999",
}

const dateOnlyLayout = "2006-01-02"

// ParseCreatedAt reads the timestamp formats the account store emits. Date-only values and
// timestamps without an offset are interpreted in loc.
func ParseCreatedAt(raw string, loc *time.Location) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, ErrMissingCreatedAt
	}
	if loc == nil {
		loc = time.Local
	}

	if parsed, err := time.ParseInLocation(dateOnlyLayout, trimmed, loc); err == nil {
		return parsed, nil
	}

	for _, layout := range createdAtLayouts {
		if parsed, err := time.ParseInLocation(layout, trimmed, loc); err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseableDate, raw)
}
