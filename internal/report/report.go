// Package report aggregates per-file formatting outcomes into a run report
// that can be rendered as JSON.
package report

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"github.com/jorge-barreto/rpyfmt/internal/document"
	"github.com/jorge-barreto/rpyfmt/internal/pipeline"
)

// Per-file statuses.
const (
	StatusFormatted = "formatted"
	StatusUnchanged = "unchanged"
	StatusAborted   = "aborted"
	StatusError     = "error"
)

// File is the report entry for one document.
type File struct {
	Path        string                `json:"path"`
	Status      string                `json:"status"`
	Changed     bool                  `json:"changed"`
	Diagnostics []document.Diagnostic `json:"diagnostics,omitempty"`
	Error       string                `json:"error,omitempty"`
}

// Report is the aggregate outcome of one run.
type Report struct {
	RunID         string `json:"run_id"`
	Files         []File `json:"files"`
	Changed       int    `json:"changed"`
	Unchanged     int    `json:"unchanged"`
	Aborted       int    `json:"aborted"`
	FailedRegions int    `json:"failed_regions"`
}

// New returns an empty report with a fresh run ID.
func New() *Report {
	return &Report{RunID: uuid.NewString()}
}

// Add records one pipeline result.
func (r *Report) Add(res pipeline.Result) {
	f := File{
		Path:        res.Path,
		Changed:     res.Changed,
		Diagnostics: res.Diags,
	}
	switch {
	case res.Err != nil:
		var abortErr *document.AbortError
		if errors.As(res.Err, &abortErr) {
			f.Status = StatusAborted
			r.Aborted++
		} else {
			f.Status = StatusError
		}
		f.Error = res.Err.Error()
	case res.Changed:
		f.Status = StatusFormatted
		r.Changed++
	default:
		f.Status = StatusUnchanged
		r.Unchanged++
	}
	if res.Err == nil {
		r.FailedRegions += len(res.Diags)
	}
	r.Files = append(r.Files, f)
}

// HasFailures reports whether any document aborted, errored, or contained
// a failed region.
func (r *Report) HasFailures() bool {
	if r.Aborted > 0 || r.FailedRegions > 0 {
		return true
	}
	for _, f := range r.Files {
		if f.Status == StatusError {
			return true
		}
	}
	return false
}

// HasErrors reports document-scoped failures only (aborts, unreadable or
// unwritable files). These fail a run even without strict mode.
func (r *Report) HasErrors() bool {
	for _, f := range r.Files {
		if f.Status == StatusAborted || f.Status == StatusError {
			return true
		}
	}
	return false
}

// JSON renders the report.
func (r *Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
