package detect

import (
	"time"

	"github.com/readtrack/syncguard/pkg/conflicts"
	"github.com/readtrack/syncguard/pkg/constants"
	"github.com/readtrack/syncguard/pkg/record"
	"github.com/readtrack/syncguard/pkg/timestamp"
)

// TimestampConfig tunes the timestamp detector. Zero-valued fields fall
// back to the documented defaults.
type TimestampConfig struct {
	// MinConflictThreshold suppresses gaps smaller than this as noise.
	MinConflictThreshold time.Duration

	// MediumConflictThreshold is the gap at which severity drops from
	// HIGH to MEDIUM for conflicts without a regression.
	MediumConflictThreshold time.Duration

	// HighConflictThreshold is the gap at which severity drops to LOW.
	HighConflictThreshold time.Duration

	// MaxReasonableAge rejects timestamps further in the past.
	MaxReasonableAge time.Duration

	// MaxFutureDrift rejects timestamps further in the future.
	MaxFutureDrift time.Duration

	// AllowDataRegression disables the regression override: when set, a
	// small time gap stays noise even if monotonic fields went backward.
	AllowDataRegression bool

	// Now overrides the clock used by the validity gate. Nil means
	// time.Now.
	Now func() time.Time
}

func (c TimestampConfig) withDefaults() TimestampConfig {
	if c.MinConflictThreshold == 0 {
		c.MinConflictThreshold = constants.MinConflictThreshold
	}
	if c.MediumConflictThreshold == 0 {
		c.MediumConflictThreshold = constants.MediumConflictThreshold
	}
	if c.HighConflictThreshold == 0 {
		c.HighConflictThreshold = constants.HighConflictThreshold
	}
	if c.MaxReasonableAge == 0 {
		c.MaxReasonableAge = constants.MaxReasonableAge
	}
	if c.MaxFutureDrift == 0 {
		c.MaxFutureDrift = constants.MaxFutureDrift
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// TimestampDetector flags record pairs whose update timestamps diverge
// beyond the noise threshold, with special weight on pairs where
// monotonically-expected data went backward between the older and newer
// side.
type TimestampDetector struct {
	cfg TimestampConfig
}

// NewTimestampDetector creates a timestamp detector with the given
// configuration.
func NewTimestampDetector(cfg TimestampConfig) *TimestampDetector {
	return &TimestampDetector{cfg: cfg.withDefaults()}
}

// Type returns the conflict type this detector reports.
func (d *TimestampDetector) Type() conflicts.Type {
	return conflicts.TypeTimestampConflict
}

// metadata identifies this detector on every draft it produces.
func (d *TimestampDetector) metadata() conflicts.Metadata {
	return conflicts.Metadata{
		Detector:  "timestamp",
		Version:   "1.0.0",
		Algorithm: "gap-with-regression-override",
	}
}

// extracted is a record timestamp located by field probing.
type extracted struct {
	field  string
	raw    any
	parsed timestamp.Parsed
}

// extract probes the ordered candidate field list and normalizes the
// first present field. A present-but-unparseable value means the record
// has no usable timestamp; later candidates are not consulted because
// they describe different events.
func (d *TimestampDetector) extract(r record.Record) (extracted, bool) {
	for _, field := range record.TimestampFields {
		raw, ok := r.Value(field)
		if !ok || raw == nil {
			continue
		}
		parsed, ok := timestamp.Parse(raw)
		if !ok {
			return extracted{}, false
		}
		if !d.reasonable(parsed) {
			return extracted{}, false
		}
		return extracted{field: field, raw: raw, parsed: parsed}, true
	}
	return extracted{}, false
}

// reasonable rejects normalized timestamps outside the plausible window
// around now, guarding against clock-skew garbage.
func (d *TimestampDetector) reasonable(p timestamp.Parsed) bool {
	now := d.cfg.Now()
	t := p.Time()
	if t.Before(now.Add(-d.cfg.MaxReasonableAge)) {
		return false
	}
	if t.After(now.Add(d.cfg.MaxFutureDrift)) {
		return false
	}
	return true
}

// Detect compares the two records' timestamps.
func (d *TimestampDetector) Detect(a, b record.Record) (*conflicts.Draft, error) {
	tsA, okA := d.extract(a)
	tsB, okB := d.extract(b)
	if !okA || !okB {
		return nil, nil
	}

	deltaMillis := tsA.parsed.Millis - tsB.parsed.Millis
	if deltaMillis < 0 {
		deltaMillis = -deltaMillis
	}
	delta := time.Duration(deltaMillis) * time.Millisecond

	analysis := d.analyzeConsistency(a, b, tsA.parsed, tsB.parsed)

	// A regression overrides the noise gate: inconsistent data on a
	// small time gap is the strongest signal this detector has.
	regressed := !analysis.Consistent && !d.cfg.AllowDataRegression
	if delta < d.cfg.MinConflictThreshold && !regressed {
		return nil, nil
	}

	details := conflicts.TimestampDetails{
		RawA:        tsA.raw,
		RawB:        tsB.raw,
		FieldA:      tsA.field,
		FieldB:      tsB.field,
		NormalizedA: tsA.parsed.Millis,
		NormalizedB: tsB.parsed.Millis,
		DeltaMillis: deltaMillis,
		Delta:       delta,
		Consistency: analysis,
	}
	if hours, ok := timestamp.EstimateOffsetHours(deltaMillis); ok {
		details.TimezoneOffset = &conflicts.TimezoneOffsetHours{Hours: hours}
	}

	return &conflicts.Draft{
		Severity:   d.severity(delta, regressed),
		Confidence: d.confidence(tsA.parsed, tsB.parsed, analysis, regressed),
		Details:    details,
		Metadata:   d.metadata(),
	}, nil
}

// analyzeConsistency determines the chronologically newer record and
// checks that monotonically-expected fields did not regress going from
// older to newer.
func (d *TimestampDetector) analyzeConsistency(a, b record.Record, pa, pb timestamp.Parsed) conflicts.ConsistencyAnalysis {
	older, newer := a, b
	newerSide := "b"
	if pa.Millis > pb.Millis {
		older, newer = b, a
		newerSide = "a"
	}

	analysis := conflicts.ConsistencyAnalysis{
		NewerSide:  newerSide,
		Consistent: true,
	}

	if oldProgress, ok := older.Progress(); ok {
		if newProgress, ok := newer.Progress(); ok && newProgress < oldProgress {
			analysis.Regressions = append(analysis.Regressions, conflicts.Regression{
				Field:    record.FieldProgress,
				OldValue: oldProgress,
				NewValue: newProgress,
			})
		}
	}

	for _, field := range record.MonotonicFields {
		oldItems, ok := older.StringSlice(field)
		if !ok {
			continue
		}
		newItems, ok := newer.StringSlice(field)
		if !ok {
			continue
		}
		if len(newItems) < len(oldItems) {
			analysis.Regressions = append(analysis.Regressions, conflicts.Regression{
				Field:    field,
				OldValue: float64(len(oldItems)),
				NewValue: float64(len(newItems)),
			})
		}
	}

	analysis.Consistent = len(analysis.Regressions) == 0
	return analysis
}

// severity ranks a timestamp conflict. Any regression dominates. Without
// one, severity is inversely tied to the gap: a short gap with divergent
// data is more suspicious than a long one, which usually just reflects
// offline divergence.
func (d *TimestampDetector) severity(delta time.Duration, regressed bool) conflicts.Severity {
	if regressed {
		return conflicts.SeverityHigh
	}
	switch {
	case delta >= d.cfg.HighConflictThreshold:
		return conflicts.SeverityLow
	case delta >= d.cfg.MediumConflictThreshold:
		return conflicts.SeverityMedium
	default:
		return conflicts.SeverityHigh
	}
}

// confidence scores trust in the conflict. Base 0.8 scaled by the average
// format reliability, adjusted for timezone knowledge, boosted by a
// corroborating regression, and discounted when the time gap is the only
// signal present.
func (d *TimestampDetector) confidence(pa, pb timestamp.Parsed, analysis conflicts.ConsistencyAnalysis, regressed bool) float64 {
	c := 0.8 * (pa.Reliability() + pb.Reliability()) / 2

	switch {
	case pa.HasTimezone && pb.HasTimezone:
		c *= 1.1
	case !pa.HasTimezone && !pb.HasTimezone:
		c *= 0.9
	}

	if regressed {
		c *= 1.3
	} else if analysis.Consistent {
		// A lone time gap with nothing corroborating it is the weakest
		// kind of conflict.
		c *= 0.7
	}

	return clampConfidence(c)
}
