package timestamp_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readtrack/syncguard/pkg/timestamp"
)

func TestParseFormats(t *testing.T) {
	ref := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		input       any
		wantMillis  int64
		wantFormat  timestamp.Format
		wantZone    bool
	}{
		{
			name:       "iso8601 with zone",
			input:      "2025-01-15T09:00:00Z",
			wantMillis: ref.UnixMilli(),
			wantFormat: timestamp.FormatISO8601,
			wantZone:   true,
		},
		{
			name:       "iso8601 with offset",
			input:      "2025-01-15T10:00:00+01:00",
			wantMillis: ref.UnixMilli(),
			wantFormat: timestamp.FormatISO8601,
			wantZone:   true,
		},
		{
			name:       "iso8601 without zone",
			input:      "2025-01-15T09:00:00",
			wantMillis: ref.UnixMilli(),
			wantFormat: timestamp.FormatISO8601,
			wantZone:   false,
		},
		{
			name:       "mysql datetime",
			input:      "2025-01-15 09:00:00",
			wantMillis: ref.UnixMilli(),
			wantFormat: timestamp.FormatMySQL,
			wantZone:   false,
		},
		{
			name:       "epoch seconds",
			input:      float64(ref.Unix()),
			wantMillis: ref.UnixMilli(),
			wantFormat: timestamp.FormatEpochSeconds,
			wantZone:   true,
		},
		{
			name:       "epoch millis",
			input:      ref.UnixMilli(),
			wantMillis: ref.UnixMilli(),
			wantFormat: timestamp.FormatEpochMillis,
			wantZone:   true,
		},
		{
			name:       "native time",
			input:      ref,
			wantMillis: ref.UnixMilli(),
			wantFormat: timestamp.FormatNative,
			wantZone:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, ok := timestamp.Parse(tt.input)
			require.True(t, ok)
			assert.Equal(t, tt.wantMillis, parsed.Millis)
			assert.Equal(t, tt.wantFormat, parsed.Format)
			assert.Equal(t, tt.wantZone, parsed.HasTimezone)
		})
	}
}

func TestParseUnusable(t *testing.T) {
	for _, input := range []any{
		nil,
		"",
		"not a date",
		"2025-13-45T99:00:00Z",
		true,
		[]string{"2025-01-15"},
		0,
		-1,
		time.Time{},
	} {
		_, ok := timestamp.Parse(input)
		assert.False(t, ok, "input %v (%T) should not parse", input, input)
	}
}

// Numeric strings are epoch values that lost their type somewhere in
// transit; they parse but rank as the least reliable format.
func TestParseNumericString(t *testing.T) {
	parsed, ok := timestamp.Parse("1736931600")
	require.True(t, ok)
	assert.Equal(t, timestamp.FormatUnknown, parsed.Format)
	assert.Equal(t, int64(1736931600)*1000, parsed.Millis)
}

func TestReliabilityOrdering(t *testing.T) {
	iso := timestamp.Parsed{Format: timestamp.FormatISO8601}
	mysql := timestamp.Parsed{Format: timestamp.FormatMySQL}
	unknown := timestamp.Parsed{Format: timestamp.FormatUnknown}

	assert.Greater(t, iso.Reliability(), mysql.Reliability())
	assert.Greater(t, mysql.Reliability(), unknown.Reliability())
	assert.Equal(t, 0.5, unknown.Reliability())
}

func TestEstimateOffsetHours(t *testing.T) {
	hour := int64(time.Hour / time.Millisecond)

	tests := []struct {
		name      string
		delta     int64
		wantHours int
		wantOK    bool
	}{
		{"exactly one hour", hour, 1, true},
		{"negative delta", -3 * hour, 3, true},
		{"one hour plus slack", hour + 60*1000, 1, true},
		{"well off an hour", hour + 30*60*1000, 0, false},
		{"ten minutes", 10 * 60 * 1000, 0, false},
		{"beyond any real zone", 20 * hour, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hours, ok := timestamp.EstimateOffsetHours(tt.delta)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantHours, hours)
			}
		})
	}
}
