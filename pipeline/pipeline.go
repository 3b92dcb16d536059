// Package pipeline orchestrates the ordered execution of PIP
// validation phases.
//
// Unlike validators whose checks are independent, the PIP contract
// promises callers an ordered violation list (version first, then
// metadata, preferences, behaviors), so phases always run sequentially
// in registration order. The pipeline still honors context
// cancellation and an optional error cap.
package pipeline

import (
	"context"
	"sync"
	"time"

	pi "github.com/pipid/ingester"
)

// Options configures pipeline behavior.
type Options struct {
	// MaxErrors stops the run after this many errors (0 = unlimited).
	MaxErrors int

	// FailFast stops at the first phase that produced an error.
	FailFast bool

	// CollectMetrics enables per-phase timing collection.
	CollectMetrics bool
}

// DefaultOptions returns the defaults: unlimited errors, metrics on.
func DefaultOptions() *Options {
	return &Options{CollectMetrics: true}
}

// Pipeline runs validation phases in registration order.
type Pipeline struct {
	mu      sync.RWMutex
	phases  []Phase
	options *Options
	metrics *pi.Metrics
}

// New creates a pipeline with the given options (nil for defaults).
func New(opts *Options) *Pipeline {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Pipeline{
		phases:  make([]Phase, 0, 4),
		options: opts,
		metrics: pi.NewMetrics(),
	}
}

// Register appends a phase. Registration order is execution order.
func (p *Pipeline) Register(phase Phase) {
	if phase == nil {
		return
	}
	p.mu.Lock()
	p.phases = append(p.phases, phase)
	p.mu.Unlock()
}

// PhaseCount returns the number of registered phases.
func (p *Pipeline) PhaseCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.phases)
}

// Execute runs every phase against the context's document, accumulating
// issues into the context's Result, and returns that Result.
func (p *Pipeline) Execute(ctx context.Context, pctx *Context) *pi.Result {
	if pctx.Result == nil {
		pctx.Result = pi.AcquireResult()
	}

	p.mu.RLock()
	phases := p.phases
	p.mu.RUnlock()

	for _, phase := range phases {
		select {
		case <-ctx.Done():
			pctx.Result.AddIssue(pi.WarningIssue(
				pi.CodeProcessing,
				"validation cancelled: "+ctx.Err().Error(),
				"",
			))
			return pctx.Result
		default:
		}

		if p.options.MaxErrors > 0 && pctx.Result.ErrorCount() >= p.options.MaxErrors {
			break
		}
		if p.options.FailFast && pctx.Result.ErrorCount() > 0 {
			break
		}

		start := time.Now()
		issues := phase.Validate(ctx, pctx)
		if p.options.CollectMetrics && p.metrics != nil {
			p.metrics.RecordPhase(phase.Name(), time.Since(start), len(issues))
		}

		for i := range issues {
			if issues[i].Phase == "" {
				issues[i].Phase = phase.Name()
			}
		}
		pctx.Result.AddIssues(issues)
	}

	return pctx.Result
}

// Metrics returns the pipeline's metrics collector.
func (p *Pipeline) Metrics() *pi.Metrics {
	return p.metrics
}

// SetMetrics replaces the metrics collector, letting an engine share
// one collector across its pipeline and fetch path.
func (p *Pipeline) SetMetrics(m *pi.Metrics) {
	p.metrics = m
}
