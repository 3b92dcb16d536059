package worker

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func stubIngest(failSuffix string) IngestFunc {
	return func(_ context.Context, url string) (map[string]any, error) {
		if failSuffix != "" && strings.HasSuffix(url, failSuffix) {
			return nil, errors.New("ingest failed")
		}
		return map[string]any{"url": url}, nil
	}
}

func TestPoolCloseAndWait(t *testing.T) {
	p := NewPool(stubIngest("/bad"), 2)

	urls := []string{
		"https://example.com/a",
		"https://example.com/bad",
		"https://example.com/b",
	}
	for _, url := range urls {
		if !p.Submit(NewJob(url)) {
			t.Fatalf("Submit(%s) = false", url)
		}
	}

	batch := p.CloseAndWait()
	if batch.TotalJobs != 3 {
		t.Errorf("TotalJobs = %d; want 3", batch.TotalJobs)
	}
	if batch.Succeeded != 2 || batch.Failed != 1 {
		t.Errorf("Succeeded, Failed = %d, %d; want 2, 1", batch.Succeeded, batch.Failed)
	}
	if len(batch.Results) != 3 {
		t.Fatalf("Results = %d; want 3", len(batch.Results))
	}
	for _, r := range batch.Results {
		if r.ID == "" {
			t.Error("result missing job ID")
		}
		if r.Err == nil && r.Identity["url"] != r.URL {
			t.Errorf("result identity = %v; want tagged with %q", r.Identity, r.URL)
		}
	}
}

func TestPoolRejectsAfterClose(t *testing.T) {
	p := NewPool(stubIngest(""), 1)
	p.CloseAndWait()

	if p.Submit(NewJob("https://example.com/a")) {
		t.Error("Submit after close = true; want false")
	}
	if p.SubmitAsync(NewJob("https://example.com/a")) {
		t.Error("SubmitAsync after close = true; want false")
	}
	// A second close is a no-op.
	if batch := p.CloseAndWait(); batch.TotalJobs != 0 {
		t.Errorf("second CloseAndWait TotalJobs = %d; want 0", batch.TotalJobs)
	}
}

func TestPoolNoIngester(t *testing.T) {
	p := NewPool(nil, 1)
	p.Submit(NewJob("https://example.com/a"))

	batch := p.CloseAndWait()
	if batch.Failed != 1 {
		t.Fatalf("Failed = %d; want 1", batch.Failed)
	}
	if !errors.Is(batch.Results[0].Err, ErrNoIngester) {
		t.Errorf("error = %v; want ErrNoIngester", batch.Results[0].Err)
	}
}

func TestPoolStats(t *testing.T) {
	p := NewPool(stubIngest(""), 3)
	for i := 0; i < 5; i++ {
		p.Submit(NewJob("https://example.com/a"))
	}
	p.CloseAndWait()

	stats := p.Stats()
	if stats.Workers != 3 {
		t.Errorf("Workers = %d; want 3", stats.Workers)
	}
	if stats.JobsSubmitted != 5 || stats.JobsCompleted != 5 {
		t.Errorf("submitted, completed = %d, %d; want 5, 5", stats.JobsSubmitted, stats.JobsCompleted)
	}
}

func TestNewJobIDs(t *testing.T) {
	a, b := NewJob("https://example.com/a"), NewJob("https://example.com/a")
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("NewJob IDs = %q, %q; want distinct non-empty", a.ID, b.ID)
	}
}
