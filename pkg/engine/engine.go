// Package engine orchestrates conflict detection: it pairs records from
// two snapshots by identity, consults the result cache, fans uncached
// pairs out to the registered detectors concurrently, and aggregates
// everything into a risk-scored report.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/agentstation/utc"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/readtrack/syncguard/pkg/cache"
	"github.com/readtrack/syncguard/pkg/conflicts"
	"github.com/readtrack/syncguard/pkg/constants"
	"github.com/readtrack/syncguard/pkg/detect"
	"github.com/readtrack/syncguard/pkg/logging"
	"github.com/readtrack/syncguard/pkg/record"
)

// Engine is the conflict detection orchestrator. It is safe for
// concurrent use; all mutable state is the cache and the statistics
// counters, both guarded.
type Engine struct {
	detectorConfig detect.Config
	detectors      []detect.Detector
	cache          cache.Cache
	logger         *zerolog.Logger

	mu    sync.Mutex
	stats Stats
}

// New creates an Engine. Without options it carries the default detector
// configuration and a TTL-bounded in-memory cache.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		cache:  cache.NewMemory(constants.DefaultCacheTTL, constants.DefaultCacheCleanupInterval),
		logger: logging.Default(),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// DetectConflicts reconciles two record snapshots and reports every
// semantically significant conflict the requested detectors find. With no
// explicit types, all registered detectors run.
//
// Absent or empty input is a defined terminal case, not an error: the
// result is an empty report with zero risk and a cache hit rate of 1.0.
// A fault inside a single detector never aborts the pair or the run; it
// is logged and that detector simply contributes nothing for that pair.
func (e *Engine) DetectConflicts(ctx context.Context, setA, setB []record.Record, types ...conflicts.Type) (*conflicts.Report, error) {
	start := time.Now()

	if len(types) == 0 {
		types = e.allTypes()
	}
	detectors, err := e.detectorsFor(types)
	if err != nil {
		return nil, err
	}

	if len(setA) == 0 || len(setB) == 0 {
		report := conflicts.Empty()
		report.Performance.Duration = time.Since(start)
		e.recordCall(report.Performance.Duration, 0, 0)
		return report, nil
	}

	logger := logging.FromContext(ctx)
	if logger == logging.Default() {
		logger = e.logger
	}

	index := record.Index(setB)

	var all []conflicts.Conflict
	var pairs, hits, misses int

	for _, a := range setA {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		id := a.ID()
		if id == "" {
			continue
		}
		b, ok := index[id]
		if !ok {
			// No counterpart, no conflict possible.
			continue
		}
		pairs++

		key := cache.NewKey(id, b.ID(), a.Digest(), b.Digest(), types)
		if cached, ok := e.cacheGet(key, logger); ok {
			hits++
			all = append(all, cached...)
			continue
		}
		misses++

		pairConflicts := e.detectPair(ctx, logger, detectors, a, b, id)
		e.cacheSet(key, pairConflicts, logger)
		all = append(all, pairConflicts...)
	}

	duration := time.Since(start)
	e.recordCall(duration, hits, misses)

	hitRate := 1.0
	if hits+misses > 0 {
		hitRate = float64(hits) / float64(hits+misses)
	}

	if all == nil {
		all = []conflicts.Conflict{}
	}

	logger.Debug().
		Int("pairs", pairs).
		Int("conflicts", len(all)).
		Int("cache_hits", hits).
		Dur("duration", duration).
		Msg("Detection run complete")

	return &conflicts.Report{
		Conflicts: all,
		Summary:   conflicts.Summarize(all),
		Performance: conflicts.Performance{
			Duration:       duration,
			CacheHitRate:   hitRate,
			PairsProcessed: pairs,
		},
	}, nil
}

// allTypes returns the full detector type list for this engine: the
// registered set, or the declared order of an installed custom set.
func (e *Engine) allTypes() []conflicts.Type {
	if e.detectors == nil {
		return conflicts.AllTypes()
	}
	types := make([]conflicts.Type, 0, len(e.detectors))
	for _, d := range e.detectors {
		types = append(types, d.Type())
	}
	return types
}

// detectorsFor resolves the detector list for the requested types,
// preserving declaration order so dispatch stays deterministic.
func (e *Engine) detectorsFor(types []conflicts.Type) ([]detect.Detector, error) {
	if e.detectors == nil {
		return detect.ForTypes(types, e.detectorConfig)
	}
	requested := make(map[conflicts.Type]bool, len(types))
	for _, t := range types {
		requested[t] = true
	}
	detectors := make([]detect.Detector, 0, len(e.detectors))
	for _, d := range e.detectors {
		if requested[d.Type()] {
			detectors = append(detectors, d)
		}
	}
	return detectors, nil
}

// detectPair fans one record pair out to every requested detector
// concurrently and collects the results back in detector order, keeping
// the final conflict list deterministic.
func (e *Engine) detectPair(ctx context.Context, logger *zerolog.Logger, detectors []detect.Detector, a, b record.Record, itemID string) []conflicts.Conflict {
	drafts := make([]*conflicts.Draft, len(detectors))

	var wg sync.WaitGroup
	for i, d := range detectors {
		wg.Add(1)
		go func(slot int, d detect.Detector) {
			defer wg.Done()
			drafts[slot] = e.runDetector(ctx, logger, d, a, b, itemID)
		}(i, d)
	}
	wg.Wait()

	result := []conflicts.Conflict{}
	now := utc.Now()
	for i, draft := range drafts {
		if draft == nil {
			continue
		}
		result = append(result, conflicts.Conflict{
			ID:         uuid.NewString(),
			ItemID:     itemID,
			Type:       detectors[i].Type(),
			Severity:   draft.Severity,
			Confidence: draft.Confidence,
			Details:    draft.Details,
			RecordA:    a,
			RecordB:    b,
			DetectedAt: now,
			Metadata:   draft.Metadata,
		})
	}
	return result
}

// runDetector invokes one detector with full fault isolation. Errors and
// panics are logged as warnings and read as "no conflict produced";
// detectors are extensible and must not be able to crash the engine.
func (e *Engine) runDetector(_ context.Context, logger *zerolog.Logger, d detect.Detector, a, b record.Record, itemID string) (draft *conflicts.Draft) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn().
				Str("detector", d.Type().String()).
				Str("item_id", itemID).
				Interface("panic", r).
				Msg("Detector panicked; treating as no conflict")
			draft = nil
		}
	}()

	draft, err := d.Detect(a, b)
	if err != nil {
		logger.Warn().
			Err(fmt.Errorf("detector %s failed on item %s: %w", d.Type(), itemID, err)).
			Str("detector", d.Type().String()).
			Str("item_id", itemID).
			Msg("Detector fault isolated")
		return nil
	}
	return draft
}

// cacheGet consults the cache, degrading to a miss if the backend
// misbehaves.
func (e *Engine) cacheGet(key cache.Key, logger *zerolog.Logger) (result []conflicts.Conflict, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn().Interface("panic", r).Msg("Cache get failed; treating as miss")
			result, ok = nil, false
		}
	}()
	return e.cache.Get(key)
}

// cacheSet stores a pair result, tolerating backend failure. Empty
// results are cached too: knowing a pair is clean is as valuable as
// knowing it conflicts.
func (e *Engine) cacheSet(key cache.Key, result []conflicts.Conflict, logger *zerolog.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Warn().Interface("panic", r).Msg("Cache set failed; result not memoized")
		}
	}()
	e.cache.Set(key, result)
}

// Cleanup evicts expired cache entries.
func (e *Engine) Cleanup() {
	e.cache.Cleanup()
}

// FlushCache drops every cached pair result.
func (e *Engine) FlushCache() {
	e.cache.Flush()
}
