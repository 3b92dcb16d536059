package worker

import (
	"time"

	"github.com/google/uuid"
)

// Job is one identity URL to ingest.
type Job struct {
	// ID correlates the job with its result.
	ID string

	// URL is the identity document location.
	URL string
}

// NewJob creates a job with a generated ID.
func NewJob(url string) Job {
	return Job{ID: uuid.NewString(), URL: url}
}

// JobResult is the outcome of one job.
type JobResult struct {
	ID       string
	URL      string
	Identity map[string]any
	Err      error
	Duration time.Duration
}

// BatchResult aggregates the outcomes of a pool run.
type BatchResult struct {
	Results   []*JobResult
	TotalJobs int
	Succeeded int
	Failed    int
}
