package phase

import (
	"context"
	"strings"
	"time"

	pi "github.com/pipid/ingester"
	"github.com/pipid/ingester/pipeline"
)

// dateTimeLayouts are the ISO 8601 shapes accepted for metadata
// timestamps: RFC 3339 with or without fractional seconds, and the
// zone-less local forms.
var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
}

// MetadataPhase checks the required metadata object and its created
// and updated timestamps.
type MetadataPhase struct{}

// NewMetadataPhase creates the metadata phase.
func NewMetadataPhase() *MetadataPhase { return &MetadataPhase{} }

// Name returns the phase name.
func (p *MetadataPhase) Name() string { return pipeline.PhaseMetadata }

// Validate checks the metadata object.
func (p *MetadataPhase) Validate(_ context.Context, pctx *pipeline.Context) []pi.Issue {
	raw, present := pctx.Identity["metadata"]
	if !present {
		return []pi.Issue{pi.ErrorIssue(pi.CodeRequired, "Missing required field: metadata", "metadata")}
	}

	metadata, ok := raw.(map[string]any)
	if !ok {
		return []pi.Issue{pi.ErrorIssue(pi.CodeStructure, `Field "metadata" must be an object`, "metadata")}
	}

	var issues []pi.Issue
	for _, field := range []string{"created", "updated"} {
		value, present := metadata[field]
		if !present {
			issues = append(issues, pi.ErrorIssue(
				pi.CodeRequired,
				"Missing required field: metadata."+field,
				"metadata."+field,
			))
			continue
		}
		if !IsValidDateTime(value) {
			issues = append(issues, pi.ErrorIssue(
				pi.CodeFormat,
				`Field "metadata.`+field+`" must be a valid ISO 8601 date-time`,
				"metadata."+field,
			))
		}
	}
	return issues
}

// IsValidDateTime reports whether v is a parseable ISO 8601 date-time
// string containing a literal 'T' separator.
func IsValidDateTime(v any) bool {
	s, ok := v.(string)
	if !ok || !strings.Contains(s, "T") {
		return false
	}
	for _, layout := range dateTimeLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
