package phase

import (
	"context"

	pi "github.com/pipid/ingester"
	"github.com/pipid/ingester/pipeline"
	"github.com/pipid/ingester/schema"
)

// BehaviorsPhase checks the optional behaviors object: workflow,
// learningStyle and decisionSpeed must belong to their enumerations
// when present.
type BehaviorsPhase struct{}

// NewBehaviorsPhase creates the behaviors phase.
func NewBehaviorsPhase() *BehaviorsPhase { return &BehaviorsPhase{} }

// Name returns the phase name.
func (p *BehaviorsPhase) Name() string { return pipeline.PhaseBehaviors }

// Validate checks the behaviors object.
func (p *BehaviorsPhase) Validate(_ context.Context, pctx *pipeline.Context) []pi.Issue {
	raw, present := pctx.Identity["behaviors"]
	if !present {
		return nil
	}
	return schema.ValidateBehaviors(raw)
}
