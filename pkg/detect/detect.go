// Package detect implements the field detectors that inspect a paired
// record for semantically significant conflicts. Each detector covers one
// field family, is pure with respect to its inputs, and follows a shared
// failure posture: malformed or missing fields yield no conflict, never
// an abort.
package detect

import (
	"github.com/readtrack/syncguard/pkg/conflicts"
	"github.com/readtrack/syncguard/pkg/errors"
	"github.com/readtrack/syncguard/pkg/record"
)

// Detector inspects one field family across two records sharing an id and
// optionally produces a conflict draft. Implementations must be safe for
// concurrent use: any configuration is fixed at construction and no state
// is carried between calls. A nil draft with a nil error means "no
// conflict", the common case. An error is a detector fault the engine
// isolates, never a verdict.
type Detector interface {
	// Type returns the conflict type this detector reports.
	Type() conflicts.Type

	// Detect compares two paired records.
	Detect(a, b record.Record) (*conflicts.Draft, error)
}

// Config bundles the tunables for every registered detector. The zero
// value means "all defaults".
type Config struct {
	Timestamp TimestampConfig
	Progress  ProgressConfig
	Title     TitleConfig
	Tag       TagConfig
}

// ForType constructs the detector for a registered conflict type. The
// detector set is closed: unknown types are rejected here rather than
// discovered mid-run.
func ForType(t conflicts.Type, cfg Config) (Detector, error) {
	switch t {
	case conflicts.TypeTimestampConflict:
		return NewTimestampDetector(cfg.Timestamp), nil
	case conflicts.TypeProgressMismatch:
		return NewProgressDetector(cfg.Progress), nil
	case conflicts.TypeTitleDifference:
		return NewTitleDetector(cfg.Title), nil
	case conflicts.TypeTagDifference:
		return NewTagDetector(cfg.Tag), nil
	}
	return nil, errors.NewValidationError("conflictTypes", t, errors.ErrUnknownConflictType.Error())
}

// ForTypes constructs detectors for a type list, preserving order so
// dispatch and result ordering stay deterministic.
func ForTypes(types []conflicts.Type, cfg Config) ([]Detector, error) {
	detectors := make([]Detector, 0, len(types))
	for _, t := range types {
		d, err := ForType(t, cfg)
		if err != nil {
			return nil, err
		}
		detectors = append(detectors, d)
	}
	return detectors, nil
}

// clampConfidence bounds a confidence score to the contract range.
// Detectors never emit full zero: a reported conflict always carries at
// least residual confidence.
func clampConfidence(c float64) float64 {
	if c < 0.1 {
		return 0.1
	}
	if c > 1.0 {
		return 1.0
	}
	return c
}
