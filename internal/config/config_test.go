package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readtrack/syncguard/internal/config"
	"github.com/readtrack/syncguard/pkg/constants"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, constants.DefaultCacheTTL, cfg.Cache.TTL)
	assert.Equal(t, constants.MinConflictThreshold, cfg.Detectors.Timestamp.MinConflictThreshold)
	assert.Equal(t, constants.ProgressTolerance, cfg.Detectors.Progress.Tolerance)
	assert.Equal(t, constants.TitleSimilarityFloor, cfg.Detectors.Title.SimilarityFloor)
	assert.False(t, cfg.Detectors.Timestamp.AllowDataRegression)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "syncguard.yaml")
	content := `
log:
  level: debug
cache:
  ttl: 30m
detectors:
  timestamp:
    min_conflict_threshold: 2h
    allow_data_regression: true
  progress:
    tolerance: 2.5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 30*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, 2*time.Hour, cfg.Detectors.Timestamp.MinConflictThreshold)
	assert.True(t, cfg.Detectors.Timestamp.AllowDataRegression)
	assert.Equal(t, 2.5, cfg.Detectors.Progress.Tolerance)

	// Untouched keys keep their defaults.
	assert.Equal(t, constants.ProgressLargeGap, cfg.Detectors.Progress.LargeGap)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("SYNCGUARD_LOG_LEVEL", "warn")
	t.Setenv("SYNCGUARD_CACHE_TTL", "1h")
	t.Setenv("SYNCGUARD_DETECTORS_PROGRESS_TOLERANCE", "3")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 3.0, cfg.Detectors.Progress.Tolerance)
}

func TestDetectorConfigConversion(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	dc := cfg.DetectorConfig()
	assert.Equal(t, constants.MinConflictThreshold, dc.Timestamp.MinConflictThreshold)
	assert.Equal(t, constants.MaxFutureDrift, dc.Timestamp.MaxFutureDrift)
	assert.Equal(t, constants.ProgressLargeGap, dc.Progress.LargeGap)
	assert.Equal(t, constants.TitleSimilarityFloor, dc.Title.SimilarityFloor)
}
