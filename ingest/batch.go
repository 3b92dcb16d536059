package ingest

import (
	"context"

	"golang.org/x/sync/errgroup"

	pi "github.com/pipid/ingester"
)

// BatchItem is one successfully ingested document, tagged with its
// source URL.
type BatchItem struct {
	URL      string
	Identity map[string]any
}

// Failure is one failed URL from a batch.
type Failure struct {
	URL string
	Err error
}

// IngestAll ingests every URL independently and concurrently, bounded
// by the configured MaxConcurrent, and waits for all outcomes. One bad
// URL never fails its co-requested URLs: successes and failures are
// returned side by side, and the error is non-nil (ErrAllFailed) only
// when every URL failed.
func (ing *Ingester) IngestAll(ctx context.Context, urls []string) ([]BatchItem, []Failure, error) {
	if len(urls) == 0 {
		return nil, nil, nil
	}

	identities := make([]map[string]any, len(urls))
	errs := make([]error, len(urls))

	g := new(errgroup.Group)
	if ing.options.MaxConcurrent > 0 {
		g.SetLimit(ing.options.MaxConcurrent)
	}

	for i, url := range urls {
		i, url := i, url
		g.Go(func() error {
			identities[i], errs[i] = ing.Ingest(ctx, url)
			return nil
		})
	}
	// Workers never return errors; Wait is a pure join.
	_ = g.Wait()

	items := make([]BatchItem, 0, len(urls))
	var failures []Failure
	for i, url := range urls {
		if errs[i] != nil {
			failures = append(failures, Failure{URL: url, Err: errs[i]})
			continue
		}
		items = append(items, BatchItem{URL: url, Identity: identities[i]})
	}

	if len(items) == 0 {
		return nil, failures, pi.ErrAllFailed
	}
	return items, failures, nil
}
