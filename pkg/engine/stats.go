package engine

import (
	"time"

	"github.com/readtrack/syncguard/pkg/constants"
)

// Stats are the engine's observability counters. They are monotonically
// increasing across the engine's lifetime and play no part in detection
// correctness.
type Stats struct {
	// TotalDetections counts DetectConflicts invocations.
	TotalDetections uint64 `json:"total_detections" yaml:"total_detections"`

	// CacheHits counts record pairs served from the cache.
	CacheHits uint64 `json:"cache_hits" yaml:"cache_hits"`

	// CacheMisses counts record pairs that required detector work.
	CacheMisses uint64 `json:"cache_misses" yaml:"cache_misses"`

	// AverageDetectionTime is an exponentially-smoothed moving average
	// of per-call wall-clock detection time.
	AverageDetectionTime time.Duration `json:"average_detection_time" yaml:"average_detection_time"`
}

// HitRate returns the lifetime cache hit ratio, 0 when nothing has been
// looked up yet.
func (s Stats) HitRate() float64 {
	total := s.CacheHits + s.CacheMisses
	if total == 0 {
		return 0
	}
	return float64(s.CacheHits) / float64(total)
}

// Stats returns a snapshot of the engine's counters.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stats
}

// recordCall folds one invocation into the counters.
func (e *Engine) recordCall(duration time.Duration, hits, misses int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stats.TotalDetections++
	e.stats.CacheHits += uint64(hits)
	e.stats.CacheMisses += uint64(misses)

	if e.stats.AverageDetectionTime == 0 {
		e.stats.AverageDetectionTime = duration
		return
	}
	alpha := constants.DetectionTimeSmoothing
	smoothed := alpha*float64(duration) + (1-alpha)*float64(e.stats.AverageDetectionTime)
	e.stats.AverageDetectionTime = time.Duration(smoothed)
}
