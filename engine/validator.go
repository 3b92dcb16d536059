// Package engine provides the PIP document validator.
//
// The validator is a pure function over parsed JSON: it never mutates
// its input, performs no I/O, and accumulates every violation into one
// ordered Result instead of stopping at the first problem.
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	pi "github.com/pipid/ingester"
	"github.com/pipid/ingester/phase"
	"github.com/pipid/ingester/pipeline"
	"github.com/pipid/ingester/schema"
)

// Validator validates PIP identity documents against the registered
// schema. It is safe for concurrent use.
type Validator struct {
	options  *pi.Options
	registry *schema.Registry
	pipe     *pipeline.Pipeline
	metrics  *pi.Metrics

	workerPool     chan struct{}
	workerPoolOnce sync.Once
}

// New creates a Validator with the standard PIP schema.
func New(opts ...pi.Option) *Validator {
	return NewWithRegistry(nil, opts...)
}

// NewWithRegistry creates a Validator over a custom category registry.
// A nil registry uses the standard PIP categories.
func NewWithRegistry(registry *schema.Registry, opts ...pi.Option) *Validator {
	if registry == nil {
		registry = schema.Default()
	}

	options := pi.DefaultOptions().Apply(opts...)
	v := &Validator{
		options:  options,
		registry: registry,
		metrics:  pi.NewMetrics(),
	}
	v.buildPipeline()
	return v
}

// buildPipeline wires the four PIP phases in contract order.
func (v *Validator) buildPipeline() {
	v.pipe = pipeline.New(&pipeline.Options{
		MaxErrors:      v.options.MaxErrors,
		FailFast:       v.options.MaxErrors == 1,
		CollectMetrics: true,
	})
	v.pipe.SetMetrics(v.metrics)

	v.pipe.Register(phase.NewVersionPhase())
	v.pipe.Register(phase.NewMetadataPhase())
	v.pipe.Register(phase.NewPreferencesPhase(v.registry))
	v.pipe.Register(phase.NewBehaviorsPhase())
}

// Validate parses raw JSON and validates the resulting document.
// Invalid JSON is reported as a structure issue, not an error return.
func (v *Validator) Validate(ctx context.Context, raw []byte) *pi.Result {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		result := pi.AcquireResult()
		result.AddError(pi.CodeStructure, fmt.Sprintf("Invalid JSON: %v", err), "")
		v.metrics.RecordValidation(false)
		return result
	}
	return v.ValidateValue(ctx, value)
}

// ValidateValue validates an arbitrary parsed value. A value that is
// not a JSON object yields exactly one issue and no further checks.
func (v *Validator) ValidateValue(ctx context.Context, value any) *pi.Result {
	identity, ok := value.(map[string]any)
	if !ok {
		result := pi.AcquireResult()
		result.AddError(pi.CodeStructure, "Identity must be an object", "")
		v.metrics.RecordValidation(false)
		return result
	}
	return v.ValidateMap(ctx, identity)
}

// ValidateMap validates a document already parsed to a map.
func (v *Validator) ValidateMap(ctx context.Context, identity map[string]any) *pi.Result {
	pctx := pipeline.AcquireContext()
	pctx.Identity = identity
	pctx.Result = pi.AcquireResult()

	v.pipe.Execute(ctx, pctx)

	result := pctx.Result
	pctx.Result = nil // keep the result alive past the context release
	pipeline.ReleaseContext(pctx)

	v.metrics.RecordValidation(result.Valid)
	return result
}

// ValidateBatch validates multiple raw documents concurrently, bounded
// by the configured worker count. Results are positionally aligned
// with the input.
func (v *Validator) ValidateBatch(ctx context.Context, documents [][]byte) []*pi.Result {
	results := make([]*pi.Result, len(documents))

	v.workerPoolOnce.Do(func() {
		workers := v.options.MaxConcurrent
		if workers <= 0 {
			workers = 4
		}
		v.workerPool = make(chan struct{}, workers)
	})

	var wg sync.WaitGroup
	for i, raw := range documents {
		wg.Add(1)
		go func(idx int, raw []byte) {
			defer wg.Done()

			v.workerPool <- struct{}{}
			defer func() { <-v.workerPool }()

			results[idx] = v.Validate(ctx, raw)
		}(i, raw)
	}

	wg.Wait()
	return results
}

// Metrics returns the validator's metrics.
func (v *Validator) Metrics() *pi.Metrics { return v.metrics }

// Options returns the validator's options.
func (v *Validator) Options() *pi.Options { return v.options }

// Registry returns the category registry in use.
func (v *Validator) Registry() *schema.Registry { return v.registry }
