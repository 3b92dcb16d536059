// Package schema defines the PIP document schema: the recognized
// preference categories with their enumerated values, format patterns
// and documented defaults, plus the behavioral field enumerations.
//
// The schema is open by construction. It is a registry mapping category
// name to an independently defined sub-schema; validation and
// normalization consult the registry and pass everything unregistered
// through untouched. Embedders may register additional categories to
// extend the format.
package schema

import (
	"fmt"
	"regexp"
	"strings"

	pi "github.com/pipid/ingester"
)

// Pattern is a format constraint on a string field, with the message
// reported when the constraint fails.
type Pattern struct {
	Regexp  *regexp.Regexp
	Message string
}

// CheckFunc performs bespoke validation of a category object beyond
// enum and pattern checks. It returns one issue per violation.
type CheckFunc func(fields map[string]any) []pi.Issue

// Category is the sub-schema for one preference category.
type Category struct {
	// Name is the key under "preferences".
	Name string

	// EnumOrder lists the enumerated fields in check order.
	EnumOrder []string

	// Enums maps field name to its fixed value set.
	Enums map[string][]string

	// Patterns maps field name to a format constraint.
	Patterns map[string]Pattern

	// Check runs any bespoke constraints (array membership, numeric
	// ranges).
	Check CheckFunc

	// Defaults maps field name to the value filled in when the field is
	// absent from the input.
	Defaults map[string]any
}

// Validate checks a category value against the sub-schema. A non-object
// value yields a single structure issue; otherwise every applicable
// check runs so all problems surface at once. Unknown fields are never
// flagged.
func (c *Category) Validate(value any) []pi.Issue {
	fields, ok := value.(map[string]any)
	if !ok {
		return []pi.Issue{pi.ErrorIssue(
			pi.CodeStructure,
			fmt.Sprintf("Field %q must be an object", "preferences."+c.Name),
			"preferences."+c.Name,
		)}
	}

	var issues []pi.Issue
	for _, field := range c.EnumOrder {
		raw, present := fields[field]
		if !present {
			continue
		}
		if allowed, ok := c.Enums[field]; ok {
			if !isOneOf(raw, allowed) {
				issues = append(issues, pi.ErrorIssue(
					pi.CodeValue,
					fmt.Sprintf("Invalid %s.%s value", c.Name, field),
					fieldPath(c.Name, field),
				))
			}
			continue
		}
		if pat, ok := c.Patterns[field]; ok {
			s, isStr := raw.(string)
			if !isStr || !pat.Regexp.MatchString(s) {
				issues = append(issues, pi.ErrorIssue(pi.CodeFormat, pat.Message, fieldPath(c.Name, field)))
			}
		}
	}

	if c.Check != nil {
		issues = append(issues, c.Check(fields)...)
	}
	return issues
}

// DefaultObject returns a fresh object populated with the category's
// defaults. Slice defaults are cloned so callers can append safely.
func (c *Category) DefaultObject() map[string]any {
	out := make(map[string]any, len(c.Defaults))
	for k, v := range c.Defaults {
		if s, ok := v.([]any); ok {
			out[k] = append([]any(nil), s...)
			continue
		}
		out[k] = v
	}
	return out
}

func fieldPath(category, field string) string {
	return "preferences." + category + "." + field
}

func isOneOf(v any, allowed []string) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}

// Registry holds the recognized categories in validation order.
type Registry struct {
	order      []string
	categories map[string]*Category
}

// NewRegistry creates a registry containing the standard PIP
// categories.
func NewRegistry() *Registry {
	r := &Registry{categories: make(map[string]*Category)}
	for _, c := range standardCategories() {
		r.Register(c)
	}
	return r
}

// Register adds or replaces a category sub-schema. This is the open
// extension point: registered categories are validated and defaulted,
// everything else passes through.
func (r *Registry) Register(c *Category) {
	if _, exists := r.categories[c.Name]; !exists {
		r.order = append(r.order, c.Name)
	}
	r.categories[c.Name] = c
}

// Lookup returns the sub-schema for a category name.
func (r *Registry) Lookup(name string) (*Category, bool) {
	c, ok := r.categories[name]
	return c, ok
}

// Names returns the registered category names in validation order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

var defaultRegistry = NewRegistry()

// Default returns the shared registry of standard PIP categories.
func Default() *Registry {
	return defaultRegistry
}

// formatInvalid renders the offending values as a comma-joined list
// for the invalid-channels message.
func formatInvalid(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}
