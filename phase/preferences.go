package phase

import (
	"context"

	pi "github.com/pipid/ingester"
	"github.com/pipid/ingester/pipeline"
	"github.com/pipid/ingester/schema"
)

// PreferencesPhase checks every recognized preference category present
// in the document against its registered sub-schema. Unknown
// categories, and unknown fields inside known categories, are never
// flagged: the schema is additive.
type PreferencesPhase struct {
	registry *schema.Registry
}

// NewPreferencesPhase creates the preferences phase. A nil registry
// uses the standard PIP categories.
func NewPreferencesPhase(registry *schema.Registry) *PreferencesPhase {
	if registry == nil {
		registry = schema.Default()
	}
	return &PreferencesPhase{registry: registry}
}

// Name returns the phase name.
func (p *PreferencesPhase) Name() string { return pipeline.PhasePreferences }

// Validate checks the preferences object category by category.
func (p *PreferencesPhase) Validate(_ context.Context, pctx *pipeline.Context) []pi.Issue {
	raw, present := pctx.Identity["preferences"]
	if !present {
		return nil
	}

	prefs, ok := raw.(map[string]any)
	if !ok {
		return []pi.Issue{pi.ErrorIssue(pi.CodeStructure, "Preferences must be an object", "preferences")}
	}

	var issues []pi.Issue
	for _, name := range p.registry.Names() {
		value, present := prefs[name]
		if !present {
			continue
		}
		category, _ := p.registry.Lookup(name)
		issues = append(issues, category.Validate(value)...)
	}
	return issues
}
