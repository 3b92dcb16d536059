// Package phase implements the PIP validation phases: version,
// metadata, preferences and behaviors. Each phase checks one aspect of
// the document and reports every violation it finds; none of them
// short-circuits on the first problem.
package phase

import (
	"context"

	pi "github.com/pipid/ingester"
	"github.com/pipid/ingester/pipeline"
	"github.com/pipid/ingester/schema"
)

// VersionPhase checks the required top-level version field: presence,
// string type and MAJOR.MINOR.PATCH format.
type VersionPhase struct{}

// NewVersionPhase creates the version phase.
func NewVersionPhase() *VersionPhase { return &VersionPhase{} }

// Name returns the phase name.
func (p *VersionPhase) Name() string { return pipeline.PhaseVersion }

// Validate checks the version field.
func (p *VersionPhase) Validate(_ context.Context, pctx *pipeline.Context) []pi.Issue {
	raw, present := pctx.Identity["version"]
	if !present {
		return []pi.Issue{pi.ErrorIssue(pi.CodeRequired, "Missing required field: version", "version")}
	}

	s, ok := raw.(string)
	if !ok {
		return []pi.Issue{pi.ErrorIssue(pi.CodeStructure, `Field "version" must be a string`, "version")}
	}

	if pctx.Result != nil {
		pctx.Result.SpecVersion = s
	}

	if !schema.SemverPattern.MatchString(s) {
		return []pi.Issue{pi.ErrorIssue(
			pi.CodeFormat,
			`Field "version" must follow semantic versioning (e.g., "0.1.0")`,
			"version",
		)}
	}
	return nil
}
