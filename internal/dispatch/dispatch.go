// Package dispatch runs the external formatting engine over extracted
// regions. Regions are independent by contract, so they are formatted in
// parallel under a process-wide worker pool; each region owns one result
// slot, written exactly once, and no region's failure aborts its siblings.
package dispatch

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/jorge-barreto/rpyfmt/internal/document"
	"github.com/jorge-barreto/rpyfmt/internal/engine"
)

// Pool bounds concurrent engine invocations. A single pool is shared across
// all documents in a run.
type Pool struct {
	sem *semaphore.Weighted
}

// NewPool returns a pool allowing n concurrent engine invocations.
func NewPool(n int) *Pool {
	if n < 1 {
		n = 1
	}
	return &Pool{sem: semaphore.NewWeighted(int64(n))}
}

// Options for a dispatch run.
type Options struct {
	Engine engine.Options // options for block regions
	// InlineLineLength overrides the line length for $ statements so a
	// single statement stays on one physical line.
	InlineLineLength int
}

// All formats every region of a document and returns one result per region,
// index-aligned with the input.
func All(ctx context.Context, eng engine.Engine, doc *document.Document, regions []*document.Region, opts Options, pool *Pool) []document.FormatResult {
	results := make([]document.FormatResult, len(regions))
	var wg sync.WaitGroup
	for i, r := range regions {
		wg.Add(1)
		go func(i int, r *document.Region) {
			defer wg.Done()
			results[i] = one(ctx, eng, doc, r, opts, pool)
		}(i, r)
	}
	wg.Wait()
	return results
}

func one(ctx context.Context, eng engine.Engine, doc *document.Document, r *document.Region, opts Options, pool *Pool) document.FormatResult {
	if err := pool.sem.Acquire(ctx, 1); err != nil {
		return engineFailure(doc, r, err)
	}
	defer pool.sem.Release(1)

	eopts := opts.Engine
	if r.Kind == document.KindInline && opts.InlineLineLength > 0 {
		eopts.LineLength = opts.InlineLineLength
	}

	out, err := eng.Format(ctx, r.Code, eopts)
	if err != nil {
		var se *engine.SyntaxError
		if errors.As(err, &se) {
			return document.FormatResult{Diag: &document.Diagnostic{
				File:    doc.Path,
				Line:    r.BodyLine + se.Line - 1,
				Column:  se.Column + r.BodyCol - 1,
				Kind:    document.DiagSyntaxError,
				Message: se.Message,
			}}
		}
		return engineFailure(doc, r, err)
	}
	return document.FormatResult{Formatted: out}
}

// engineFailure records a region-scoped engine error (timeout, crash,
// missing binary) against the introducer line.
func engineFailure(doc *document.Document, r *document.Region, err error) document.FormatResult {
	return document.FormatResult{Diag: &document.Diagnostic{
		File:    doc.Path,
		Line:    r.IntroLine + 1,
		Column:  1,
		Kind:    document.DiagEngineError,
		Message: err.Error(),
	}}
}
