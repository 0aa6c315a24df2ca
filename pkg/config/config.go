package config

import (
	"time"

	"github.com/arthur-debert/vuegen/pkg/errors"
)

// Config is the complete vuegen configuration
type Config struct {
	Roots     Roots     `koanf:"roots"`
	Templates Templates `koanf:"templates"`
	Pipeline  Pipeline  `koanf:"pipeline"`
}

// Roots holds the locations root kinds resolve to
type Roots struct {
	Engine           string   `koanf:"engine"`
	Plugins          string   `koanf:"plugins"`
	UserPlugins      string   `koanf:"user_plugins"`
	Workspace        string   `koanf:"workspace"`
	InstalledPlugins []string `koanf:"installed_plugins"`
}

// Templates holds manifest discovery and rendering settings
type Templates struct {
	PreferencesDir     string   `koanf:"preferences_dir"`
	Manifest           string   `koanf:"manifest"`
	DefaultEncoding    string   `koanf:"default_encoding"`
	MissingPlaceholder string   `koanf:"missing_placeholder"`
	SortExtraMatches   bool     `koanf:"sort_extra_matches"`
	Ignore             []string `koanf:"ignore"`
}

// Pipeline holds change processing settings
type Pipeline struct {
	Concurrency     int           `koanf:"concurrency"`
	SerializeWrites bool          `koanf:"serialize_writes"`
	Debounce        time.Duration `koanf:"debounce"`
	MaxWait         time.Duration `koanf:"max_wait"`
	CacheSize       int           `koanf:"cache_size"`
}

// Missing placeholder policies
const (
	MissingFail      = "fail"
	MissingEmpty     = "empty"
	MissingUndefined = "undefined"
)

// Validate checks values that cannot be expressed by types alone
func (c *Config) Validate() error {
	switch c.Templates.MissingPlaceholder {
	case MissingFail, MissingEmpty, MissingUndefined:
	default:
		return errors.Newf(errors.ErrConfigValid,
			"templates.missing_placeholder must be one of fail, empty, undefined; got %q", c.Templates.MissingPlaceholder).
			WithDetail("key", "templates.missing_placeholder")
	}

	if c.Templates.PreferencesDir == "" {
		return errors.New(errors.ErrConfigValid, "templates.preferences_dir must not be empty").
			WithDetail("key", "templates.preferences_dir")
	}
	if c.Templates.Manifest == "" {
		return errors.New(errors.ErrConfigValid, "templates.manifest must not be empty").
			WithDetail("key", "templates.manifest")
	}
	if c.Pipeline.Concurrency < 1 {
		return errors.Newf(errors.ErrConfigValid, "pipeline.concurrency must be at least 1; got %d", c.Pipeline.Concurrency).
			WithDetail("key", "pipeline.concurrency")
	}
	if c.Pipeline.CacheSize < 1 {
		return errors.Newf(errors.ErrConfigValid, "pipeline.cache_size must be at least 1; got %d", c.Pipeline.CacheSize).
			WithDetail("key", "pipeline.cache_size")
	}
	if c.Pipeline.Debounce < 0 {
		return errors.New(errors.ErrConfigValid, "pipeline.debounce must not be negative").
			WithDetail("key", "pipeline.debounce")
	}
	if c.Pipeline.MaxWait < 0 {
		return errors.New(errors.ErrConfigValid, "pipeline.max_wait must not be negative").
			WithDetail("key", "pipeline.max_wait")
	}
	return nil
}
