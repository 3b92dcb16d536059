// Package config provides YAML configuration for the pip-ingester
// binaries. The library itself is configured through functional
// options; this package maps a config file (plus a few environment
// overrides) onto those options.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	pi "github.com/pipid/ingester"
)

// Configuration validation errors.
var (
	ErrInvalidTimeout       = errors.New("ingest.timeout_ms must be at least 1")
	ErrInvalidMaxConcurrent = errors.New("ingest.max_concurrent must be non-negative")
	ErrInvalidMaxBodyBytes  = errors.New("ingest.max_body_bytes must be at least 1")
	ErrInvalidCacheTTL      = errors.New("cache.ttl_sec must be non-negative")
	ErrMissingCachePath     = errors.New("cache.path is required when cache is enabled")
	ErrInvalidLogLevel      = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrMissingListenAddr    = errors.New("server.addr is required")
)

// Config is the complete binary configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Ingest  IngestConfig  `yaml:"ingest"`
	Cache   CacheConfig   `yaml:"cache"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// IngestConfig configures the ingestion pipeline.
type IngestConfig struct {
	TimeoutMs     int    `yaml:"timeout_ms"`
	MaxConcurrent int    `yaml:"max_concurrent"`
	MaxBodyBytes  int64  `yaml:"max_body_bytes"`
	UserAgent     string `yaml:"user_agent"`
	SkipValidate  bool   `yaml:"skip_validate"`
	SkipNormalize bool   `yaml:"skip_normalize"`
}

// CacheConfig configures the optional persistent identity cache.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
	TTLSec  int    `yaml:"ttl_sec"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: "127.0.0.1:8787"},
		Ingest: IngestConfig{
			TimeoutMs:    int(pi.DefaultTimeout / time.Millisecond),
			MaxBodyBytes: pi.DefaultMaxBodyBytes,
		},
		Cache:   CacheConfig{Path: "identities.db", TTLSec: 300},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads the config at path, layered over the defaults and under
// the environment overrides. An empty path skips the file entirely.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays the supported environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("PIP_SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("PIP_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("PIP_CACHE_PATH"); v != "" {
		c.Cache.Path = v
	}
	if v := os.Getenv("PIP_USER_AGENT"); v != "" {
		c.Ingest.UserAgent = v
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return ErrMissingListenAddr
	}
	if c.Ingest.TimeoutMs < 1 {
		return ErrInvalidTimeout
	}
	if c.Ingest.MaxConcurrent < 0 {
		return ErrInvalidMaxConcurrent
	}
	if c.Ingest.MaxBodyBytes < 1 {
		return ErrInvalidMaxBodyBytes
	}
	if c.Cache.TTLSec < 0 {
		return ErrInvalidCacheTTL
	}
	if c.Cache.Enabled && c.Cache.Path == "" {
		return ErrMissingCachePath
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return ErrInvalidLogLevel
	}
	return nil
}

// Timeout returns the ingest timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Ingest.TimeoutMs) * time.Millisecond
}

// CacheTTL returns the cache TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSec) * time.Second
}

// Options converts the ingest section into functional options.
func (c *Config) Options() []pi.Option {
	opts := []pi.Option{
		pi.WithTimeout(c.Timeout()),
		pi.WithValidate(!c.Ingest.SkipValidate),
		pi.WithNormalize(!c.Ingest.SkipNormalize),
		pi.WithMaxBodyBytes(c.Ingest.MaxBodyBytes),
		pi.WithMaxConcurrent(c.Ingest.MaxConcurrent),
	}
	if c.Ingest.UserAgent != "" {
		opts = append(opts, pi.WithUserAgent(c.Ingest.UserAgent))
	}
	return opts
}
