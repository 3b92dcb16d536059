// Package pipingester implements ingestion of Portable Identity Profile
// (PIP) documents: fetch a JSON identity from an HTTPS URL, validate it
// against the PIP schema, and normalize it by filling documented defaults.
//
// # Quick Start
//
//	import (
//	    pi "github.com/pipid/ingester"
//	    "github.com/pipid/ingester/ingest"
//	)
//
//	ing := ingest.New()
//	identity, err := ing.Ingest(ctx, "https://example.com/identity.json")
//	if err != nil {
//	    var verr *pi.ValidationError
//	    if errors.As(err, &verr) {
//	        for _, msg := range verr.Violations {
//	            fmt.Println(msg)
//	        }
//	    }
//	    return err
//	}
//
// # Pipeline
//
// Ingestion is a linear composition of three stateless components:
//
//   - Validator (engine package): checks shape, required fields,
//     enumerated values and format patterns, accumulating every
//     violation into one ordered Result.
//   - Normalizer (normalize package): overlays caller-supplied values
//     on the documented defaults, category by category, preserving
//     unrecognized fields verbatim.
//   - Ingester (ingest package): HTTPS GET with a bounded timeout,
//     then validation and normalization per the configured options.
//
// Validation runs as ordered phases (version, metadata, preferences,
// behaviors) so callers see all problems at once rather than only the
// first failure. The schema is open: unknown preference categories and
// unknown fields inside known categories are accepted and passed
// through untouched.
//
// # Functional Options
//
//	ing := ingest.New(
//	    pi.WithTimeout(10*time.Second),
//	    pi.WithNormalize(false),
//	)
//
// # Errors
//
// Every failure mode has a distinct type usable with errors.As:
// InvalidInputError, NetworkError, TimeoutError, HTTPStatusError,
// ParseError, ValidationError and NormalizationError. The core never
// substitutes defaults on failure; fallback behavior belongs to the
// caller.
package pipingester
