// Package timefmt converts between the command-line timestamp format and the
// millisecond UTC format expected by the log query API.
package timefmt

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

const (
	// LocalLayout is the accepted input format. It carries no zone; parsed
	// values are interpreted as UTC.
	LocalLayout = "2006-01-02T15:04:05"

	// WireLayout is the format sent in query bodies.
	WireLayout = "2006-01-02T15:04:05.000Z"
)

// ErrFormat is returned when an input timestamp does not match LocalLayout.
var ErrFormat = errors.New("timestamp format")

// time.Parse tolerates single-digit hours and trailing fractional seconds,
// so the shape is checked before parsing.
var localPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}$`)

// ParseLocal parses s strictly as YYYY-MM-DDTHH:MM:SS.
func ParseLocal(s string) (time.Time, error) {
	if !localPattern.MatchString(s) {
		return time.Time{}, fmt.Errorf("%w: %q does not match %s", ErrFormat, s, LocalLayout)
	}
	t, err := time.ParseInLocation(LocalLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	return t, nil
}

// ToWire renders t in UTC with millisecond precision and a literal Z suffix.
func ToWire(t time.Time) string {
	return t.UTC().Format(WireLayout)
}
