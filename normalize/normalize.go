// Package normalize fills a PIP identity document with documented
// defaults. Normalization is a pure transformation: it returns a new
// document, never mutates its input, and never discards a
// caller-supplied value, even an invalid one.
package normalize

import (
	"maps"

	pi "github.com/pipid/ingester"
	"github.com/pipid/ingester/schema"
)

// Normalizer fills defaults per a category registry.
type Normalizer struct {
	registry *schema.Registry
}

// New creates a Normalizer. A nil registry uses the standard PIP
// categories.
func New(registry *schema.Registry) *Normalizer {
	if registry == nil {
		registry = schema.Default()
	}
	return &Normalizer{registry: registry}
}

// Apply normalizes a parsed value. It fails with a NormalizationError
// when the value is not a JSON object.
//
// Every registered category in the result is its default mapping
// overlaid by whatever the input supplied: supplied fields always win,
// known and unknown alike, and absent fields fall back to defaults.
// Categories absent from the input are synthesized from pure defaults.
// Preference keys belonging to no registered category are copied
// through verbatim. Behaviors are copied without defaulting; the
// format intentionally leaves them caller-supplied only.
func (n *Normalizer) Apply(value any) (map[string]any, error) {
	identity, ok := value.(map[string]any)
	if !ok {
		return nil, &pi.NormalizationError{Reason: "identity is not an object"}
	}

	out := make(map[string]any, len(identity)+2)
	maps.Copy(out, identity)

	out["preferences"] = n.normalizePreferences(identity["preferences"])
	out["behaviors"] = normalizeBehaviors(identity["behaviors"])

	return out, nil
}

// normalizePreferences builds the defaulted preferences object. A
// present non-object value is returned unchanged: supplied values win,
// and the validator is where malformed shapes get reported.
func (n *Normalizer) normalizePreferences(raw any) any {
	var prefs map[string]any
	switch v := raw.(type) {
	case nil:
		prefs = nil
	case map[string]any:
		prefs = v
	default:
		return raw
	}

	names := n.registry.Names()
	out := make(map[string]any, len(names)+len(prefs))

	for _, name := range names {
		category, _ := n.registry.Lookup(name)
		supplied, present := prefs[name]
		if !present {
			out[name] = category.DefaultObject()
			continue
		}

		fields, ok := supplied.(map[string]any)
		if !ok {
			// Not an object: pass the supplied value through untouched.
			out[name] = supplied
			continue
		}

		merged := category.DefaultObject()
		maps.Copy(merged, fields)
		out[name] = merged
	}

	// Unrecognized categories pass through verbatim.
	for key, value := range prefs {
		if _, recognized := n.registry.Lookup(key); !recognized {
			out[key] = value
		}
	}

	return out
}

// normalizeBehaviors copies the behaviors object without applying any
// defaults. An absent value materializes as an empty object.
func normalizeBehaviors(raw any) any {
	switch v := raw.(type) {
	case nil:
		return map[string]any{}
	case map[string]any:
		out := make(map[string]any, len(v))
		maps.Copy(out, v)
		return out
	default:
		return raw
	}
}

// Apply normalizes a value against the standard PIP categories.
func Apply(value any) (map[string]any, error) {
	return New(nil).Apply(value)
}
