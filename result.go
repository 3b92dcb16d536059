package pipingester

import (
	"sync"
)

// Result contains the outcome of validating a PIP identity document.
// Issues appear in check order (version, metadata, preferences,
// behaviors), so Messages() reproduces the ordered violation list the
// PIP contract requires.
//
// Results are pooled; call Release() when done to reduce allocations in
// batch workloads.
type Result struct {
	// Valid is true iff no error-severity issues were found.
	Valid bool `json:"valid"`

	// Issues contains every issue found, in check order.
	Issues []Issue `json:"issues,omitempty"`

	// JobID correlates results in batch workloads.
	JobID string `json:"jobId,omitempty"`

	// SpecVersion is the document's declared version string, when one
	// was present and well-typed.
	SpecVersion string `json:"specVersion,omitempty"`

	mu sync.Mutex
}

var resultPool = sync.Pool{
	New: func() any {
		return &Result{Issues: make([]Issue, 0, 8)}
	},
}

// AcquireResult gets a Result from the pool, reset to valid and empty.
func AcquireResult() *Result {
	r := resultPool.Get().(*Result)
	r.Reset()
	return r
}

// Release returns the Result to the pool. The Result must not be used
// after Release.
func (r *Result) Release() {
	if r == nil {
		return
	}
	// Oversized issue slices are left for the GC rather than pinned in
	// the pool.
	if cap(r.Issues) <= 256 {
		resultPool.Put(r)
	}
}

// Reset clears the result for reuse.
func (r *Result) Reset() {
	r.Valid = true
	r.Issues = r.Issues[:0]
	r.JobID = ""
	r.SpecVersion = ""
}

// NewResult creates a non-pooled result. Prefer AcquireResult for hot
// paths.
func NewResult() *Result {
	return &Result{Valid: true, Issues: make([]Issue, 0, 4)}
}

// AddIssue appends a single issue. Safe for concurrent use.
func (r *Result) AddIssue(issue Issue) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Issues = append(r.Issues, issue)
	if issue.IsError() {
		r.Valid = false
	}
}

// AddIssues appends multiple issues, preserving their order.
func (r *Result) AddIssues(issues []Issue) {
	if len(issues) == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.Issues = append(r.Issues, issues...)
	for _, issue := range issues {
		if issue.IsError() {
			r.Valid = false
			break
		}
	}
}

// AddError appends an error-severity issue.
func (r *Result) AddError(code IssueCode, diagnostics, path string) {
	r.AddIssue(ErrorIssue(code, diagnostics, path))
}

// HasErrors reports whether any error-severity issues were found.
func (r *Result) HasErrors() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, issue := range r.Issues {
		if issue.IsError() {
			return true
		}
	}
	return false
}

// ErrorCount returns the number of error-severity issues.
func (r *Result) ErrorCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, issue := range r.Issues {
		if issue.IsError() {
			count++
		}
	}
	return count
}

// Errors returns the error-severity issues in check order.
func (r *Result) Errors() []Issue {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []Issue
	for _, issue := range r.Issues {
		if issue.IsError() {
			errs = append(errs, issue)
		}
	}
	return errs
}

// Messages returns the diagnostics of the error-severity issues, in
// check order. This is the violation list carried by ValidationError.
func (r *Result) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	msgs := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		if issue.IsError() {
			msgs = append(msgs, issue.Diagnostics)
		}
	}
	return msgs
}

// Err converts the result into a *ValidationError, or nil when the
// document is valid.
func (r *Result) Err() error {
	if !r.HasErrors() {
		return nil
	}
	return &ValidationError{Violations: r.Messages()}
}

// Clone creates a non-pooled copy of the result.
func (r *Result) Clone() *Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := &Result{
		Valid:       r.Valid,
		Issues:      make([]Issue, len(r.Issues)),
		JobID:       r.JobID,
		SpecVersion: r.SpecVersion,
	}
	copy(clone.Issues, r.Issues)
	return clone
}
