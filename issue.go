package pipingester

// IssueSeverity classifies how serious a validation issue is.
type IssueSeverity string

const (
	// SeverityError marks a schema violation that makes the document invalid.
	SeverityError IssueSeverity = "error"
	// SeverityWarning marks a potential problem that does not invalidate
	// the document.
	SeverityWarning IssueSeverity = "warning"
)

// IssueCode identifies the kind of validation issue.
type IssueCode string

const (
	// CodeStructure indicates a value of the wrong JSON kind (e.g. a
	// string where an object was expected).
	CodeStructure IssueCode = "structure"
	// CodeRequired indicates a missing required field.
	CodeRequired IssueCode = "required"
	// CodeValue indicates a value outside its enumerated set or range.
	CodeValue IssueCode = "value"
	// CodeFormat indicates a string that does not match its required
	// pattern (semver, ISO 8601, language tag, currency code).
	CodeFormat IssueCode = "format"
	// CodeProcessing indicates an internal processing failure such as a
	// cancelled validation.
	CodeProcessing IssueCode = "processing"
)

// Issue is a single validation finding. The Diagnostics string is the
// caller-facing violation message; Path locates the offending field.
type Issue struct {
	Severity    IssueSeverity `json:"severity"`
	Code        IssueCode     `json:"code"`
	Diagnostics string        `json:"diagnostics"`
	Path        string        `json:"path,omitempty"`
	Phase       string        `json:"phase,omitempty"`
}

// IsError reports whether the issue invalidates the document.
func (i Issue) IsError() bool { return i.Severity == SeverityError }

// String renders the issue for human consumption.
func (i Issue) String() string {
	if i.Path == "" {
		return string(i.Severity) + ": " + i.Diagnostics
	}
	return string(i.Severity) + ": " + i.Diagnostics + " at " + i.Path
}

// ErrorIssue builds an error-severity issue.
func ErrorIssue(code IssueCode, diagnostics, path string) Issue {
	return Issue{Severity: SeverityError, Code: code, Diagnostics: diagnostics, Path: path}
}

// WarningIssue builds a warning-severity issue.
func WarningIssue(code IssueCode, diagnostics, path string) Issue {
	return Issue{Severity: SeverityWarning, Code: code, Diagnostics: diagnostics, Path: path}
}
