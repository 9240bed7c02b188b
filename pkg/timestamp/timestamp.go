// Package timestamp normalizes the heterogeneous timestamp shapes that
// appear in sync payloads into a single epoch-millisecond value. Parsing
// is best effort and total: any input either yields a tagged Parsed value
// or reports not-ok, so callers can never operate on a sentinel.
package timestamp

import (
	"strconv"
	"strings"
	"time"
)

// Format tags the source representation a timestamp was parsed from.
type Format string

// Recognized source formats.
const (
	FormatISO8601      Format = "iso8601"
	FormatMySQL        Format = "mysql"
	FormatEpochMillis  Format = "epoch_millis"
	FormatEpochSeconds Format = "epoch_seconds"
	FormatNative       Format = "native"
	FormatUnknown      Format = "unknown"
)

// epochMillisFloor separates numeric seconds from numeric milliseconds.
// Values below 10^12 are read as seconds.
const epochMillisFloor = 1_000_000_000_000

// Parsed is a successfully normalized timestamp.
type Parsed struct {
	// Millis is the normalized epoch-millisecond value.
	Millis int64

	// Format is the source representation the value was parsed from.
	Format Format

	// HasTimezone reports whether the source carried explicit timezone
	// information. Epoch values are timezone-absolute by definition.
	HasTimezone bool
}

// Time returns the parsed instant.
func (p Parsed) Time() time.Time {
	return time.UnixMilli(p.Millis).UTC()
}

// Reliability returns a calibrated trust weight for the source format,
// used when scoring confidence on timestamp conflicts.
func (p Parsed) Reliability() float64 {
	switch p.Format {
	case FormatISO8601:
		return 0.95
	case FormatNative:
		return 0.95
	case FormatEpochMillis:
		return 0.9
	case FormatEpochSeconds:
		return 0.85
	case FormatMySQL:
		return 0.75
	default:
		return 0.5
	}
}

// isoLayouts are tried in order for string input carrying a 'T'
// separator. The first two carry explicit zone information.
var isoLayouts = []struct {
	layout      string
	hasTimezone bool
}{
	{time.RFC3339Nano, true},
	{time.RFC3339, true},
	{"2006-01-02T15:04:05.999999999", false},
	{"2006-01-02T15:04:05", false},
}

// mysqlLayouts cover the space-separated datetime style. No zone
// information is representable, values are read as UTC.
var mysqlLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Parse normalizes a raw field value into a Parsed timestamp. Supported
// inputs: numeric epoch seconds or milliseconds, ISO-8601 strings,
// MySQL-style datetime strings, and native time.Time values. Anything
// else reports not-ok.
func Parse(v any) (Parsed, bool) {
	switch val := v.(type) {
	case time.Time:
		if val.IsZero() {
			return Parsed{}, false
		}
		return Parsed{Millis: val.UnixMilli(), Format: FormatNative, HasTimezone: true}, true
	case float64:
		return parseEpoch(int64(val))
	case float32:
		return parseEpoch(int64(val))
	case int:
		return parseEpoch(int64(val))
	case int64:
		return parseEpoch(val)
	case uint64:
		return parseEpoch(int64(val))
	case string:
		return parseString(val)
	}
	return Parsed{}, false
}

// parseEpoch reads a numeric epoch value, distinguishing seconds from
// milliseconds by magnitude.
func parseEpoch(n int64) (Parsed, bool) {
	if n <= 0 {
		return Parsed{}, false
	}
	if n < epochMillisFloor {
		return Parsed{Millis: n * 1000, Format: FormatEpochSeconds, HasTimezone: true}, true
	}
	return Parsed{Millis: n, Format: FormatEpochMillis, HasTimezone: true}, true
}

func parseString(s string) (Parsed, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Parsed{}, false
	}

	// Numeric strings are epoch values that lost their type in transit.
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		p, ok := parseEpoch(n)
		if ok {
			p.Format = FormatUnknown
		}
		return p, ok
	}

	if strings.Contains(s, "T") {
		for _, candidate := range isoLayouts {
			if t, err := time.Parse(candidate.layout, s); err == nil {
				return Parsed{
					Millis:      t.UnixMilli(),
					Format:      FormatISO8601,
					HasTimezone: candidate.hasTimezone,
				}, true
			}
		}
		return Parsed{}, false
	}

	for _, layout := range mysqlLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Parsed{Millis: t.UnixMilli(), Format: FormatMySQL, HasTimezone: false}, true
		}
	}

	return Parsed{}, false
}

// maxOffsetHours bounds timezone-offset estimation; no real-world zone is
// further than 14 hours from UTC.
const maxOffsetHours = 14

// offsetSlackMillis is how far from a whole hour a delta may land and
// still read as a timezone artifact.
const offsetSlackMillis = 2 * 60 * 1000

// EstimateOffsetHours guesses whether a millisecond delta between two
// timestamps is explained by a common integer-hour timezone offset.
// It reports the offset in whole hours when the delta sits within a
// couple of minutes of one.
func EstimateOffsetHours(deltaMillis int64) (int, bool) {
	if deltaMillis < 0 {
		deltaMillis = -deltaMillis
	}
	hourMillis := int64(time.Hour / time.Millisecond)
	hours := (deltaMillis + hourMillis/2) / hourMillis
	if hours < 1 || hours > maxOffsetHours {
		return 0, false
	}
	remainder := deltaMillis - hours*hourMillis
	if remainder < 0 {
		remainder = -remainder
	}
	if remainder > offsetSlackMillis {
		return 0, false
	}
	return int(hours), true
}
