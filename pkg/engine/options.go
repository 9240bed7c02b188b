package engine

import (
	"github.com/rs/zerolog"

	"github.com/readtrack/syncguard/pkg/cache"
	"github.com/readtrack/syncguard/pkg/detect"
	"github.com/readtrack/syncguard/pkg/errors"
)

// Option configures an Engine.
type Option func(*Engine) error

// WithCache sets the cache backend. Alternative backends (LRU, TTL,
// distributed) can be swapped in without touching detection.
func WithCache(c cache.Cache) Option {
	return func(e *Engine) error {
		if c == nil {
			return errors.NewConfigError("engine", "cache cannot be nil", nil)
		}
		e.cache = c
		return nil
	}
}

// WithDetectorConfig sets the tunables handed to every detector the
// engine constructs.
func WithDetectorConfig(cfg detect.Config) Option {
	return func(e *Engine) error {
		e.detectorConfig = cfg
		return nil
	}
}

// WithDetectors installs a custom detector set instead of the registered
// one, in the declared dispatch order. Detectors are extensible this way
// precisely because the engine isolates their faults; a misbehaving
// detector can only ever under-report.
func WithDetectors(detectors ...detect.Detector) Option {
	return func(e *Engine) error {
		if len(detectors) == 0 {
			return errors.NewConfigError("engine", "at least one detector required", nil)
		}
		e.detectors = detectors
		return nil
	}
}

// WithLogger sets the engine's logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			return errors.NewConfigError("engine", "logger cannot be nil", nil)
		}
		e.logger = logger
		return nil
	}
}
