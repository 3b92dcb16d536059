// Package ingest implements the PIP ingestion pipeline: HTTPS fetch,
// schema validation and default-filling normalization, composed
// linearly with no state retained between calls.
//
// The Ingester performs no caching and no retries; both are caller
// concerns (see the store package for a URL-keyed cache).
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	pi "github.com/pipid/ingester"
	"github.com/pipid/ingester/engine"
	"github.com/pipid/ingester/normalize"
)

// Ingester fetches, validates and normalizes PIP identity documents.
// It is safe for concurrent use.
type Ingester struct {
	options    *pi.Options
	client     *http.Client
	validator  *engine.Validator
	normalizer *normalize.Normalizer
	metrics    *pi.Metrics
}

// New creates an Ingester. Defaults: 5s timeout, validation and
// normalization enabled.
func New(opts ...pi.Option) *Ingester {
	options := pi.DefaultOptions().Apply(opts...)

	client := options.HTTPClient
	if client == nil {
		client = &http.Client{}
	}

	return &Ingester{
		options:    options,
		client:     client,
		validator:  engine.New(opts...),
		normalizer: normalize.New(nil),
		metrics:    pi.NewMetrics(),
	}
}

// Ingest fetches an identity document from url and runs it through the
// configured pipeline. Only https:// URLs are accepted; everything else
// is rejected before any network call.
func (ing *Ingester) Ingest(ctx context.Context, url string) (map[string]any, error) {
	if err := CheckURL(url); err != nil {
		return nil, err
	}

	start := time.Now()
	body, err := ing.fetch(ctx, url)
	ing.metrics.RecordIngest(time.Since(start), err == nil)
	if err != nil {
		return nil, err
	}

	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		return nil, &pi.ParseError{URL: url, Err: err}
	}

	if ing.options.Validate {
		result := ing.validator.ValidateValue(ctx, value)
		err := result.Err()
		result.Release()
		if err != nil {
			return nil, err
		}
	}

	if ing.options.Normalize {
		return ing.normalizer.Apply(value)
	}

	identity, ok := value.(map[string]any)
	if !ok {
		return nil, &pi.ParseError{URL: url, Err: errors.New("identity is not a JSON object")}
	}
	return identity, nil
}

// fetch performs the single GET request with the configured timeout,
// cancelling the in-flight request cooperatively when the deadline
// passes.
func (ing *Ingester) fetch(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, ing.options.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, &pi.InvalidInputError{URL: url, Reason: err.Error()}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", ing.options.UserAgent)

	resp, err := ing.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return nil, &pi.TimeoutError{URL: url, Timeout: ing.options.Timeout}
		}
		return nil, &pi.NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &pi.HTTPStatusError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, ing.options.MaxBodyBytes))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return nil, &pi.TimeoutError{URL: url, Timeout: ing.options.Timeout}
		}
		return nil, &pi.NetworkError{URL: url, Err: err}
	}
	return body, nil
}

// Validator returns the underlying validator, e.g. for metrics.
func (ing *Ingester) Validator() *engine.Validator { return ing.validator }

// Metrics returns the ingester's fetch metrics.
func (ing *Ingester) Metrics() *pi.Metrics { return ing.metrics }

// Options returns the ingester's options.
func (ing *Ingester) Options() *pi.Options { return ing.options }

// CheckURL validates an identity URL without touching the network:
// it must be non-empty and use the https scheme. HTTP and every other
// scheme are refused as a security baseline.
func CheckURL(url string) error {
	if url == "" {
		return &pi.InvalidInputError{URL: url, Reason: "must be a non-empty string"}
	}
	if !strings.HasPrefix(url, "https://") {
		return &pi.InvalidInputError{URL: url, Reason: "must use HTTPS"}
	}
	return nil
}

// Preferences extracts the preferences object from an identity,
// returning an empty object when absent.
func Preferences(identity map[string]any) map[string]any {
	if prefs, ok := identity["preferences"].(map[string]any); ok {
		return prefs
	}
	return map[string]any{}
}

// Behaviors extracts the behaviors object from an identity, returning
// an empty object when absent.
func Behaviors(identity map[string]any) map[string]any {
	if behaviors, ok := identity["behaviors"].(map[string]any); ok {
		return behaviors
	}
	return map[string]any{}
}
