package pipingester

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrAllFailed is returned by batch ingestion when every URL in the
// batch failed. Per-URL errors are reported alongside it.
var ErrAllFailed = errors.New("all identity URLs failed to ingest")

// InvalidInputError reports a URL that was rejected before any network
// call was made (empty, or not using the https scheme).
type InvalidInputError struct {
	URL    string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid identity URL %q: %s", e.URL, e.Reason)
}

// NetworkError reports a transport-level failure while fetching an
// identity.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("failed to fetch identity from %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// TimeoutError reports that a fetch exceeded its deadline. It is
// distinct from NetworkError so callers can tell a slow origin from an
// unreachable one.
type TimeoutError struct {
	URL     string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("identity fetch from %s timed out after %s", e.URL, e.Timeout)
}

// HTTPStatusError reports a non-2xx response.
type HTTPStatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("identity fetch from %s returned %s", e.URL, e.Status)
}

// ParseError reports a response body that is not valid JSON.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse identity JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError carries the full, ordered list of schema violations
// found in a document. Ingestion aborts on the first non-empty list;
// there is no partial continuation.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "identity validation failed: " + strings.Join(e.Violations, ", ")
}

// NormalizationError reports a value that could not be normalized
// because it is not a JSON object.
type NormalizationError struct {
	Reason string
}

func (e *NormalizationError) Error() string {
	return "failed to normalize identity: " + e.Reason
}
