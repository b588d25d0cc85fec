package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/kursadbilgin/call-assistant/internal/domain"
)

// CeilToMinute rounds a timestamp up to the next whole minute. Timestamps
// already aligned to a minute boundary are returned unchanged.
func CeilToMinute(t time.Time) time.Time {
	if t.Second() == 0 && t.Nanosecond() == 0 {
		return t
	}
	return t.Truncate(time.Minute).Add(time.Minute)
}

// acceptedLayouts are tried in order against operator-supplied timestamps.
var acceptedLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

const maxTimestampLength = 19 // "2006-01-02 15:04:05"

// ParseLocalDateTime parses an operator-supplied date+time string in the
// given location. Trailing fragments beyond seconds precision are ignored.
func ParseLocalDateTime(raw string, loc *time.Location) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("%w: timestamp is required", domain.ErrValidation)
	}
	if len(trimmed) > maxTimestampLength {
		trimmed = trimmed[:maxTimestampLength]
	}
	if loc == nil {
		loc = time.UTC
	}

	for _, layout := range acceptedLayouts {
		if t, err := time.ParseInLocation(layout, trimmed, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: invalid date/time format %q", domain.ErrValidation, raw)
}
