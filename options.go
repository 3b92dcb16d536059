package pipingester

import (
	"net/http"
	"time"
)

// DefaultTimeout bounds a single identity fetch.
const DefaultTimeout = 5 * time.Second

// DefaultMaxBodyBytes bounds the size of a fetched identity document.
const DefaultMaxBodyBytes = 5 << 20 // 5MB

// Option configures ingestion and validation behavior.
type Option func(*Options)

// Options holds all configuration for the Ingester and Validator.
type Options struct {
	// Timeout bounds a single fetch, enforced via context cancellation
	// of the in-flight request.
	Timeout time.Duration

	// Validate runs the schema validator on fetched documents.
	Validate bool

	// Normalize fills documented defaults into fetched documents.
	Normalize bool

	// UserAgent is sent with every fetch.
	UserAgent string

	// HTTPClient overrides the default HTTP client. Its Timeout field is
	// ignored; Timeout above governs.
	HTTPClient *http.Client

	// MaxBodyBytes caps the response body size.
	MaxBodyBytes int64

	// MaxErrors stops validation after this many errors (0 = unlimited,
	// so callers see every problem at once).
	MaxErrors int

	// MaxConcurrent bounds concurrent fetches in batch ingestion
	// (0 = unlimited).
	MaxConcurrent int
}

// DefaultOptions returns the default configuration: 5s timeout,
// validation and normalization both enabled.
func DefaultOptions() *Options {
	return &Options{
		Timeout:      DefaultTimeout,
		Validate:     true,
		Normalize:    true,
		UserAgent:    DefaultUserAgent,
		MaxBodyBytes: DefaultMaxBodyBytes,
	}
}

// Apply runs every option against o and returns o.
func (o *Options) Apply(opts ...Option) *Options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithTimeout sets the per-fetch timeout. Non-positive values keep the
// default.
func WithTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		if timeout > 0 {
			o.Timeout = timeout
		}
	}
}

// WithValidate enables or disables schema validation.
func WithValidate(enable bool) Option {
	return func(o *Options) {
		o.Validate = enable
	}
}

// WithNormalize enables or disables default-filling normalization.
func WithNormalize(enable bool) Option {
	return func(o *Options) {
		o.Normalize = enable
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *Options) {
		if ua != "" {
			o.UserAgent = ua
		}
	}
}

// WithHTTPClient sets a custom HTTP client, e.g. one with a proxy or a
// test transport.
func WithHTTPClient(client *http.Client) Option {
	return func(o *Options) {
		o.HTTPClient = client
	}
}

// WithMaxBodyBytes caps the response body size. Non-positive values
// keep the default.
func WithMaxBodyBytes(n int64) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxBodyBytes = n
		}
	}
}

// WithMaxErrors stops validation after n errors. Use 0 for unlimited.
func WithMaxErrors(n int) Option {
	return func(o *Options) {
		if n >= 0 {
			o.MaxErrors = n
		}
	}
}

// WithMaxConcurrent bounds concurrent fetches in batch ingestion.
// Use 0 for unlimited.
func WithMaxConcurrent(n int) Option {
	return func(o *Options) {
		if n >= 0 {
			o.MaxConcurrent = n
		}
	}
}
