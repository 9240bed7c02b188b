// Package conflicts defines the shared vocabulary for sync conflict
// detection: conflict types, severities, the Conflict record produced by
// detectors, and the report returned by the detection engine.
package conflicts

import (
	"time"

	"github.com/agentstation/utc"

	"github.com/readtrack/syncguard/pkg/record"
)

// Type identifies the family of conflict a detector reports.
type Type string

// Registered conflict types.
const (
	TypeProgressMismatch  Type = "PROGRESS_MISMATCH"
	TypeTitleDifference   Type = "TITLE_DIFFERENCE"
	TypeTimestampConflict Type = "TIMESTAMP_CONFLICT"
	TypeTagDifference     Type = "TAG_DIFFERENCE"
)

// String returns the string representation of a conflict type.
func (t Type) String() string {
	return string(t)
}

// AllTypes returns every registered conflict type in declaration order.
func AllTypes() []Type {
	return []Type{
		TypeProgressMismatch,
		TypeTitleDifference,
		TypeTimestampConflict,
		TypeTagDifference,
	}
}

// Severity is the coarse impact ranking of a conflict.
type Severity string

// Severity levels, lowest to highest.
const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// String returns the string representation of a severity.
func (s Severity) String() string {
	return string(s)
}

// Valid reports whether s is one of the defined severity levels.
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// Weight returns a numeric rank for ordering severities.
func (s Severity) Weight() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// Metadata identifies the detector that produced a conflict, for audit
// and reproducibility.
type Metadata struct {
	Detector  string `json:"detector" yaml:"detector"`
	Version   string `json:"version" yaml:"version"`
	Algorithm string `json:"algorithm" yaml:"algorithm"`
}

// Draft is the output of a single detector before the engine wraps it
// into a Conflict. Detectors fill in classification; the engine owns
// identity and timing.
type Draft struct {
	Severity   Severity
	Confidence float64
	Details    any
	Metadata   Metadata
}

// Conflict is one detected, classified difference between two records
// sharing an identity.
type Conflict struct {
	ID         string        `json:"id" yaml:"id"`
	ItemID     string        `json:"item_id" yaml:"item_id"`
	Type       Type          `json:"type" yaml:"type"`
	Severity   Severity      `json:"severity" yaml:"severity"`
	Confidence float64       `json:"confidence" yaml:"confidence"`
	Details    any           `json:"details,omitempty" yaml:"details,omitempty"`
	RecordA    record.Record `json:"record_a,omitempty" yaml:"record_a,omitempty"`
	RecordB    record.Record `json:"record_b,omitempty" yaml:"record_b,omitempty"`
	DetectedAt utc.Time      `json:"detected_at" yaml:"detected_at"`
	Metadata   Metadata      `json:"metadata" yaml:"metadata"`
}

// Performance carries timing and cache metadata for one engine invocation.
type Performance struct {
	Duration       time.Duration `json:"duration" yaml:"duration"`
	CacheHitRate   float64       `json:"cache_hit_rate" yaml:"cache_hit_rate"`
	PairsProcessed int           `json:"pairs_processed" yaml:"pairs_processed"`
}

// Report is the result of one detection run.
type Report struct {
	Conflicts   []Conflict  `json:"conflicts" yaml:"conflicts"`
	Summary     Summary     `json:"summary" yaml:"summary"`
	Performance Performance `json:"performance" yaml:"performance"`
}

// HasConflicts reports whether any conflicts were detected.
func (r *Report) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// Empty returns a terminal report for absent or empty input. By contract
// this is not an error case: zero conflicts, zero risk, and a cache hit
// rate of 1.0 since nothing had to be computed.
func Empty() *Report {
	return &Report{
		Conflicts: []Conflict{},
		Summary:   Summarize(nil),
		Performance: Performance{
			CacheHitRate: 1.0,
		},
	}
}
