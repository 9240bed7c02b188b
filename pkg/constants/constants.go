// Package constants provides shared constants used throughout the
// syncguard codebase. This includes detection thresholds, cache tuning,
// and other configuration values that should be consistent across the
// application.
package constants

import "time"

// Timestamp detector thresholds
const (
	// MinConflictThreshold is the smallest timestamp gap reported as a
	// conflict. Gaps below it are treated as ordinary sync jitter.
	MinConflictThreshold = 1 * time.Hour

	// MediumConflictThreshold is the gap at which a pure time-gap
	// conflict drops from HIGH to MEDIUM severity.
	MediumConflictThreshold = 24 * time.Hour

	// HighConflictThreshold is the gap at which a pure time-gap conflict
	// drops to LOW severity; divergence this old usually reflects normal
	// offline usage.
	HighConflictThreshold = 7 * 24 * time.Hour

	// MaxReasonableAge is how far in the past a timestamp may sit before
	// it is rejected as clock-skew garbage.
	MaxReasonableAge = 365 * 24 * time.Hour

	// MaxFutureDrift is how far in the future a timestamp may sit before
	// it is rejected.
	MaxFutureDrift = 24 * time.Hour
)

// Progress detector defaults
const (
	// ProgressTolerance is the largest progress gap (percentage points)
	// that is not worth reporting.
	ProgressTolerance = 1.0

	// ProgressLargeGap is the gap at which a progress mismatch is scored
	// HIGH even without a regression signal.
	ProgressLargeGap = 25.0
)

// Title detector defaults
const (
	// TitleSimilarityFloor is the similarity below which two titles are
	// considered entirely different works rather than formatting drift.
	TitleSimilarityFloor = 0.4
)

// Cache tuning defaults
const (
	// DefaultCacheTTL is the default lifetime of a cached pair result.
	DefaultCacheTTL = 10 * time.Minute

	// DefaultCacheCleanupInterval is how often expired cache entries are
	// swept from memory.
	DefaultCacheCleanupInterval = 5 * time.Minute
)

// Engine defaults
const (
	// DetectionTimeSmoothing is the smoothing factor for the engine's
	// moving average of per-call detection time.
	DetectionTimeSmoothing = 0.1
)
