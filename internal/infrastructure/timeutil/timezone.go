package timeutil

import (
	"fmt"
	"sync"
	"time"
)

// locationCache stores cached timezone locations.
var locationCache sync.Map

// UTC is the Coordinated Universal Time zone name.
const UTC = "UTC"

// ClockLayout renders a time as 24-hour clock with minute precision.
const ClockLayout = "15:04"

// localDateTimeLayout is the offset-less ISO-8601 layout used by the upstream API.
const localDateTimeLayout = "2006-01-02T15:04:05"

// GetLocation returns a cached timezone location.
// It caches the result for subsequent calls with the same name.
func GetLocation(name string) (*time.Location, error) {
	if loc, ok := locationCache.Load(name); ok {
		return loc.(*time.Location), nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", name, err)
	}

	locationCache.Store(name, loc)
	return loc, nil
}

// MustGetLocation returns a cached timezone location or panics on error.
// Use this for known-good timezone names (e.g., constants).
func MustGetLocation(name string) *time.Location {
	loc, err := GetLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// ParseInstant parses an ISO-8601 date-time. Values carrying an offset are
// honoured; offset-less values are interpreted in loc.
func ParseInstant(value string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(localDateTimeLayout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse datetime %q", value)
	}
	return t, nil
}

// FormatClockTime renders t as HH:MM in loc. A nil loc keeps t's own location.
func FormatClockTime(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(ClockLayout)
}

// ClearLocationCache clears the cached timezone locations.
// This is primarily useful for testing.
func ClearLocationCache() {
	locationCache.Range(func(key, _ interface{}) bool {
		locationCache.Delete(key)
		return true
	})
}
