package detect

import (
	"github.com/readtrack/syncguard/pkg/conflicts"
	"github.com/readtrack/syncguard/pkg/constants"
	"github.com/readtrack/syncguard/pkg/record"
	"github.com/readtrack/syncguard/pkg/timestamp"
)

// ProgressConfig tunes the progress detector.
type ProgressConfig struct {
	// Tolerance is the largest progress gap, in percentage points, that
	// is ignored as rounding drift between devices.
	Tolerance float64

	// LargeGap is the gap at which severity escalates regardless of
	// chronology.
	LargeGap float64
}

func (c ProgressConfig) withDefaults() ProgressConfig {
	if c.Tolerance == 0 {
		c.Tolerance = constants.ProgressTolerance
	}
	if c.LargeGap == 0 {
		c.LargeGap = constants.ProgressLargeGap
	}
	return c
}

// ProgressDetector flags record pairs whose reading progress diverges
// beyond tolerance. The most suspicious shape is a chronologically newer
// record carrying lower progress, mirroring the timestamp detector's
// regression rule.
type ProgressDetector struct {
	cfg ProgressConfig
}

// NewProgressDetector creates a progress detector with the given
// configuration.
func NewProgressDetector(cfg ProgressConfig) *ProgressDetector {
	return &ProgressDetector{cfg: cfg.withDefaults()}
}

// Type returns the conflict type this detector reports.
func (d *ProgressDetector) Type() conflicts.Type {
	return conflicts.TypeProgressMismatch
}

func (d *ProgressDetector) metadata() conflicts.Metadata {
	return conflicts.Metadata{
		Detector:  "progress",
		Version:   "1.0.0",
		Algorithm: "tolerance-gap-with-chronology",
	}
}

// Detect compares the two records' progress values.
func (d *ProgressDetector) Detect(a, b record.Record) (*conflicts.Draft, error) {
	progressA, okA := a.Progress()
	progressB, okB := b.Progress()
	if !okA || !okB {
		return nil, nil
	}

	gap := progressA - progressB
	if gap < 0 {
		gap = -gap
	}
	if gap <= d.cfg.Tolerance {
		return nil, nil
	}

	newerIsLower := d.newerIsLower(a, b, progressA, progressB)

	return &conflicts.Draft{
		Severity:   d.severity(gap, newerIsLower),
		Confidence: d.confidence(gap, newerIsLower),
		Details: conflicts.ProgressDetails{
			ProgressA:    progressA,
			ProgressB:    progressB,
			Gap:          gap,
			NewerIsLower: newerIsLower,
		},
		Metadata: d.metadata(),
	}, nil
}

// newerIsLower reports whether the chronologically newer record carries
// the lower progress value. Without usable timestamps on both sides no
// chronology can be established and the answer is false.
func (d *ProgressDetector) newerIsLower(a, b record.Record, progressA, progressB float64) bool {
	tsA, okA := probeTimestamp(a)
	tsB, okB := probeTimestamp(b)
	if !okA || !okB || tsA.Millis == tsB.Millis {
		return false
	}
	if tsA.Millis > tsB.Millis {
		return progressA < progressB
	}
	return progressB < progressA
}

// severity scales with gap magnitude; a newer-but-lower value is scored
// at HIGH or above because it reads as lost progress, not drift.
func (d *ProgressDetector) severity(gap float64, newerIsLower bool) conflicts.Severity {
	if newerIsLower {
		if gap >= d.cfg.LargeGap {
			return conflicts.SeverityCritical
		}
		return conflicts.SeverityHigh
	}
	switch {
	case gap >= d.cfg.LargeGap:
		return conflicts.SeverityHigh
	case gap >= d.cfg.LargeGap/2:
		return conflicts.SeverityMedium
	default:
		return conflicts.SeverityLow
	}
}

func (d *ProgressDetector) confidence(gap float64, newerIsLower bool) float64 {
	c := 0.7 + gap/100*0.2
	if newerIsLower {
		c += 0.15
	}
	return clampConfidence(c)
}

// probeTimestamp locates a record's timestamp for chronology purposes,
// without the validity gating the timestamp detector applies.
func probeTimestamp(r record.Record) (timestamp.Parsed, bool) {
	for _, field := range record.TimestampFields {
		raw, ok := r.Value(field)
		if !ok || raw == nil {
			continue
		}
		return timestamp.Parse(raw)
	}
	return timestamp.Parsed{}, false
}
