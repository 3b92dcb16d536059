// Package worker provides a goroutine pool for bulk identity
// ingestion. It suits long-running consumers that stream URLs in and
// results out; for one-shot batches the ingest package's IngestAll is
// simpler.
package worker

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// IngestFunc ingests a single URL. It matches (*ingest.Ingester).Ingest.
type IngestFunc func(ctx context.Context, url string) (map[string]any, error)

// ErrNoIngester is returned on every job when the pool was built
// without an ingest function.
var ErrNoIngester = errors.New("no ingest function configured")

// Pool manages worker goroutines that ingest identity URLs in
// parallel.
type Pool struct {
	workers    int
	jobsChan   chan Job
	resultChan chan *JobResult
	ingest     IngestFunc
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	closed     atomic.Bool

	jobsSubmitted atomic.Uint64
	jobsCompleted atomic.Uint64
	totalDuration atomic.Uint64
}

// NewPool creates a pool with the given number of workers. If workers
// <= 0, it defaults to runtime.NumCPU().
func NewPool(ingest IngestFunc, workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		workers:    workers,
		jobsChan:   make(chan Job, workers*2),
		resultChan: make(chan *JobResult, workers*2),
		ingest:     ingest,
		ctx:        ctx,
		cancel:     cancel,
	}

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

// Submit queues a job, blocking while the queue is full. It returns
// false once the pool is closed.
func (p *Pool) Submit(job Job) bool {
	if p.closed.Load() {
		return false
	}

	select {
	case <-p.ctx.Done():
		return false
	case p.jobsChan <- job:
		p.jobsSubmitted.Add(1)
		return true
	}
}

// SubmitAsync queues a job without blocking; false when the queue is
// full or the pool is closed.
func (p *Pool) SubmitAsync(job Job) bool {
	if p.closed.Load() {
		return false
	}

	select {
	case <-p.ctx.Done():
		return false
	case p.jobsChan <- job:
		p.jobsSubmitted.Add(1)
		return true
	default:
		return false
	}
}

// Results returns the channel of completed jobs.
func (p *Pool) Results() <-chan *JobResult {
	return p.resultChan
}

// CloseAndWait stops accepting jobs, drains all pending results and
// returns them.
func (p *Pool) CloseAndWait() *BatchResult {
	if p.closed.Swap(true) {
		return &BatchResult{}
	}

	close(p.jobsChan)

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(p.resultChan)
		close(done)
	}()

	results := make([]*JobResult, 0, p.jobsSubmitted.Load())
	for result := range p.resultChan {
		results = append(results, result)
	}
	<-done
	p.cancel()

	batch := &BatchResult{
		Results:   results,
		TotalJobs: int(p.jobsSubmitted.Load()),
	}
	for _, r := range results {
		if r.Err == nil {
			batch.Succeeded++
		} else {
			batch.Failed++
		}
	}
	return batch
}

// Close shuts the pool down, discarding pending results.
func (p *Pool) Close() {
	if p.closed.Swap(true) {
		return
	}

	p.cancel()
	close(p.jobsChan)

	done := make(chan struct{})
	go func() {
		for range p.resultChan {
		}
		close(done)
	}()

	p.wg.Wait()
	close(p.resultChan)
	<-done
}

// Stats returns current pool statistics.
func (p *Pool) Stats() PoolStats {
	return PoolStats{
		Workers:       p.workers,
		JobsSubmitted: p.jobsSubmitted.Load(),
		JobsCompleted: p.jobsCompleted.Load(),
		AvgDuration:   p.averageDuration(),
	}
}

// PoolStats contains pool statistics.
type PoolStats struct {
	Workers       int
	JobsSubmitted uint64
	JobsCompleted uint64
	AvgDuration   time.Duration
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for job := range p.jobsChan {
		select {
		case <-p.ctx.Done():
			return
		default:
		}

		result := p.processJob(job)
		p.jobsCompleted.Add(1)
		p.totalDuration.Add(uint64(result.Duration.Nanoseconds()))

		select {
		case <-p.ctx.Done():
			return
		case p.resultChan <- result:
		}
	}
}

func (p *Pool) processJob(job Job) *JobResult {
	start := time.Now()

	result := &JobResult{ID: job.ID, URL: job.URL}
	if p.ingest == nil {
		result.Err = ErrNoIngester
		result.Duration = time.Since(start)
		return result
	}

	result.Identity, result.Err = p.ingest(p.ctx, job.URL)
	result.Duration = time.Since(start)
	return result
}

func (p *Pool) averageDuration() time.Duration {
	completed := p.jobsCompleted.Load()
	if completed == 0 {
		return 0
	}
	return time.Duration(p.totalDuration.Load() / completed)
}
