// Package config loads syncguard configuration from config files and the
// environment via Viper. Every knob has a sane default; an empty
// environment yields the documented detection semantics unchanged.
package config

import (
	stderrors "errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/readtrack/syncguard/pkg/constants"
	"github.com/readtrack/syncguard/pkg/detect"
	"github.com/readtrack/syncguard/pkg/errors"
)

// envPrefix namespaces syncguard environment variables, e.g.
// SYNCGUARD_CACHE_TTL.
const envPrefix = "SYNCGUARD"

// Config is the full application configuration.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Detectors DetectorsConfig `mapstructure:"detectors"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "console", "json", or "" for auto
}

// CacheConfig tunes the pair-result cache.
type CacheConfig struct {
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// DetectorsConfig carries per-detector tunables.
type DetectorsConfig struct {
	Timestamp TimestampConfig `mapstructure:"timestamp"`
	Progress  ProgressConfig  `mapstructure:"progress"`
	Title     TitleConfig     `mapstructure:"title"`
}

// TimestampConfig mirrors detect.TimestampConfig in config-file shape.
type TimestampConfig struct {
	MinConflictThreshold    time.Duration `mapstructure:"min_conflict_threshold"`
	MediumConflictThreshold time.Duration `mapstructure:"medium_conflict_threshold"`
	HighConflictThreshold   time.Duration `mapstructure:"high_conflict_threshold"`
	MaxReasonableAge        time.Duration `mapstructure:"max_reasonable_age"`
	MaxFutureDrift          time.Duration `mapstructure:"max_future_drift"`
	AllowDataRegression     bool          `mapstructure:"allow_data_regression"`
}

// ProgressConfig mirrors detect.ProgressConfig.
type ProgressConfig struct {
	Tolerance float64 `mapstructure:"tolerance"`
	LargeGap  float64 `mapstructure:"large_gap"`
}

// TitleConfig mirrors detect.TitleConfig.
type TitleConfig struct {
	SimilarityFloor float64 `mapstructure:"similarity_floor"`
}

// setDefaults registers every default with viper.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "")
	v.SetDefault("cache.ttl", constants.DefaultCacheTTL)
	v.SetDefault("cache.cleanup_interval", constants.DefaultCacheCleanupInterval)
	v.SetDefault("detectors.timestamp.min_conflict_threshold", constants.MinConflictThreshold)
	v.SetDefault("detectors.timestamp.medium_conflict_threshold", constants.MediumConflictThreshold)
	v.SetDefault("detectors.timestamp.high_conflict_threshold", constants.HighConflictThreshold)
	v.SetDefault("detectors.timestamp.max_reasonable_age", constants.MaxReasonableAge)
	v.SetDefault("detectors.timestamp.max_future_drift", constants.MaxFutureDrift)
	v.SetDefault("detectors.timestamp.allow_data_regression", false)
	v.SetDefault("detectors.progress.tolerance", constants.ProgressTolerance)
	v.SetDefault("detectors.progress.large_gap", constants.ProgressLargeGap)
	v.SetDefault("detectors.title.similarity_floor", constants.TitleSimilarityFloor)
}

// Load reads configuration from an optional config file, .env files, and
// SYNCGUARD_* environment variables, in ascending precedence.
func Load(configFile string) (*Config, error) {
	// .env files load before viper env binding so both see the values.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "reading config file", err)
		}
	} else {
		v.SetConfigName(".syncguard")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		// A missing default config file is fine; anything else is not.
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !stderrors.As(err, &notFound) {
				return nil, errors.NewConfigError("config", "reading config file", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.NewConfigError("config", "unmarshaling config", err)
	}

	return &cfg, nil
}

// DetectorConfig converts the file/env representation into the typed
// detector configuration the engine consumes.
func (c *Config) DetectorConfig() detect.Config {
	return detect.Config{
		Timestamp: detect.TimestampConfig{
			MinConflictThreshold:    c.Detectors.Timestamp.MinConflictThreshold,
			MediumConflictThreshold: c.Detectors.Timestamp.MediumConflictThreshold,
			HighConflictThreshold:   c.Detectors.Timestamp.HighConflictThreshold,
			MaxReasonableAge:        c.Detectors.Timestamp.MaxReasonableAge,
			MaxFutureDrift:          c.Detectors.Timestamp.MaxFutureDrift,
			AllowDataRegression:     c.Detectors.Timestamp.AllowDataRegression,
		},
		Progress: detect.ProgressConfig{
			Tolerance: c.Detectors.Progress.Tolerance,
			LargeGap:  c.Detectors.Progress.LargeGap,
		},
		Title: detect.TitleConfig{
			SimilarityFloor: c.Detectors.Title.SimilarityFloor,
		},
	}
}
