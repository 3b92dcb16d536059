package store

import (
	"context"
	"time"

	pi "github.com/pipid/ingester"
	"github.com/pipid/ingester/ingest"
)

// CachedIngester layers the store over an Ingester: a live cached
// entry short-circuits the fetch, a miss ingests and fills the cache.
// Failed ingestions are never cached.
type CachedIngester struct {
	ingester *ingest.Ingester
	store    *Store
	ttl      time.Duration
	metrics  *pi.Metrics
}

// NewCachedIngester wraps ingester with the store. Entries live for
// ttl; zero means they never expire.
func NewCachedIngester(ingester *ingest.Ingester, store *Store, ttl time.Duration) *CachedIngester {
	return &CachedIngester{
		ingester: ingester,
		store:    store,
		ttl:      ttl,
		metrics:  pi.NewMetrics(),
	}
}

// Ingest returns the cached identity for url when one is live,
// otherwise ingests and caches the result. Store read failures fall
// back to a normal ingest rather than failing the call.
func (c *CachedIngester) Ingest(ctx context.Context, url string) (map[string]any, error) {
	if err := ingest.CheckURL(url); err != nil {
		return nil, err
	}

	if identity, ok, err := c.store.Get(url); err == nil && ok {
		c.metrics.RecordCacheHit()
		return identity, nil
	}
	c.metrics.RecordCacheMiss()

	identity, err := c.ingester.Ingest(ctx, url)
	if err != nil {
		return nil, err
	}

	if err := c.store.Put(url, identity, c.ttl); err != nil {
		// The identity is good; a cache write failure is not a reason
		// to fail the caller.
		return identity, nil
	}
	return identity, nil
}

// Invalidate drops the cached entry for url.
func (c *CachedIngester) Invalidate(url string) error {
	return c.store.Delete(url)
}

// Metrics returns hit/miss counters for the cache layer.
func (c *CachedIngester) Metrics() *pi.Metrics { return c.metrics }
