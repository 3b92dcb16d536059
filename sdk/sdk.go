// Package sdk provides one-call helpers for applications that just
// want to load a PIP identity and go. Each call builds a fresh
// Ingester from the given options; embedders with custom transports or
// caching should use the ingest package directly.
package sdk

import (
	"context"

	pi "github.com/pipid/ingester"
	"github.com/pipid/ingester/ingest"
)

// LoadIdentity fetches, validates and normalizes the identity at url.
func LoadIdentity(ctx context.Context, url string, opts ...pi.Option) (map[string]any, error) {
	return ingest.New(opts...).Ingest(ctx, url)
}

// LoadPreferences loads only the preferences object from the identity
// at url.
func LoadPreferences(ctx context.Context, url string, opts ...pi.Option) (map[string]any, error) {
	identity, err := LoadIdentity(ctx, url, opts...)
	if err != nil {
		return nil, err
	}
	return ingest.Preferences(identity), nil
}

// LoadBehaviors loads only the behaviors object from the identity at
// url.
func LoadBehaviors(ctx context.Context, url string, opts ...pi.Option) (map[string]any, error) {
	identity, err := LoadIdentity(ctx, url, opts...)
	if err != nil {
		return nil, err
	}
	return ingest.Behaviors(identity), nil
}
