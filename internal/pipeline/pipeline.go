// Package pipeline drives a document through the formatting stages:
// scan, extract, dispatch, splice. Each document is sequential; regions
// within the dispatch stage and documents across a run are parallel.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/jorge-barreto/rpyfmt/internal/config"
	"github.com/jorge-barreto/rpyfmt/internal/dispatch"
	"github.com/jorge-barreto/rpyfmt/internal/document"
	"github.com/jorge-barreto/rpyfmt/internal/engine"
	"github.com/jorge-barreto/rpyfmt/internal/parse"
	"github.com/jorge-barreto/rpyfmt/internal/scan"
	"github.com/jorge-barreto/rpyfmt/internal/splice"
)

// Options wire the formatting run together. The same Engine and Pool are
// shared by every document in the run.
type Options struct {
	Config *config.Config
	Engine engine.Engine
	Pool   *dispatch.Pool
}

// Result is the outcome for one document.
type Result struct {
	Path    string
	Output  []byte
	Changed bool
	Diags   []document.Diagnostic
	Err     error // non-nil only when the document was aborted or unreadable
}

// FormatDocument formats one document. Region-scoped failures surface as
// Diags with the region passed through unchanged; document-scoped failures
// (malformed introducer, inconsistent indentation) set Err and leave Output
// empty; the caller must not write anything for an aborted document.
func FormatDocument(ctx context.Context, path, text string, opts Options) Result {
	cfg := opts.Config
	res := Result{Path: path}

	src := scan.Scan(text)
	doc := &document.Document{Path: path, Text: text, EOL: src.EOL}

	segs, regions, err := parse.Parse(doc, src, parse.Options{
		TabPolicy: cfg.TabPolicy,
		TabWidth:  cfg.TabWidth,
	})
	if err != nil {
		var abortErr *document.AbortError
		if errors.As(err, &abortErr) {
			res.Diags = append(res.Diags, abortErr.Diag)
		}
		res.Err = err
		return res
	}

	if len(regions) == 0 {
		res.Output = []byte(text)
		return res
	}

	results := dispatch.All(ctx, opts.Engine, doc, regions, dispatch.Options{
		Engine: engine.Options{
			LineLength: cfg.LineLength,
			ExtraArgs:  cfg.EngineArgs,
			Timeout:    time.Duration(cfg.Timeout) * time.Second,
		},
		InlineLineLength: cfg.InlineLineLength,
	}, opts.Pool)

	for _, r := range results {
		if r.Diag != nil {
			res.Diags = append(res.Diags, *r.Diag)
		}
	}

	out, err := splice.Assemble(doc, segs, results)
	if err != nil {
		res.Err = err
		return res
	}
	res.Output = out
	res.Changed = !bytes.Equal(out, []byte(text))
	return res
}
