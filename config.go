package dalil

import "time"

// Default configuration values.
const (
	DefaultCacheTTL      = time.Hour
	DefaultMaxConcurrent = 5
	DefaultItemTimeout   = 60 * time.Second
)

// Config holds the tunable surface of the catalog core.
// All fields are optional; Normalize fills in defaults.
type Config struct {
	// CacheEnabled toggles result caching. Defaults to true.
	CacheEnabled *bool `yaml:"cache_enabled"`

	// CacheTTLMillis is the cache entry lifetime in milliseconds.
	CacheTTLMillis int `yaml:"cache_ttl_ms"`

	// MaxConcurrent caps in-flight acquisitions.
	MaxConcurrent int `yaml:"max_concurrent"`

	// DefaultLanguage is used when a search specifies none.
	DefaultLanguage Language `yaml:"default_language"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Normalize returns a copy of the config with defaults applied.
func (c Config) Normalize() Config {
	if c.CacheEnabled == nil {
		enabled := true
		c.CacheEnabled = &enabled
	}
	if c.CacheTTLMillis <= 0 {
		c.CacheTTLMillis = int(DefaultCacheTTL / time.Millisecond)
	}
	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = DefaultMaxConcurrent
	}
	if c.DefaultLanguage == "" {
		c.DefaultLanguage = DefaultLanguage
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	return c
}

// CacheTTL returns the cache TTL as a duration.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMillis) * time.Millisecond
}
