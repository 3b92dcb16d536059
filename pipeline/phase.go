package pipeline

import (
	"context"

	pi "github.com/pipid/ingester"
)

// Phase is one aspect of PIP validation. Phases run in registration
// order so the accumulated issue list is deterministic.
//
// Phases must be stateless and thread-safe; all per-document state
// lives in the Context.
type Phase interface {
	// Name returns the unique identifier for this phase.
	Name() string

	// Validate checks one aspect of the document and returns any issues
	// found. It must not mutate the document.
	Validate(ctx context.Context, pctx *Context) []pi.Issue
}

// PhaseFunc adapts a function to the Phase interface.
type PhaseFunc struct {
	name string
	fn   func(ctx context.Context, pctx *Context) []pi.Issue
}

// NewPhaseFunc creates a Phase from a function.
func NewPhaseFunc(name string, fn func(ctx context.Context, pctx *Context) []pi.Issue) Phase {
	return &PhaseFunc{name: name, fn: fn}
}

// Name returns the phase name.
func (p *PhaseFunc) Name() string { return p.name }

// Validate calls the wrapped function.
func (p *PhaseFunc) Validate(ctx context.Context, pctx *Context) []pi.Issue {
	return p.fn(ctx, pctx)
}

// Standard phase names.
const (
	PhaseVersion     = "version"
	PhaseMetadata    = "metadata"
	PhasePreferences = "preferences"
	PhaseBehaviors   = "behaviors"
)
