// Package parse locates embedded python regions in a Ren'Py script. It
// recognizes the introducer forms ($ statements and python block headers),
// determines each region's extent and indentation, and partitions the
// document into host and embedded segments. It does not interpret any other
// Ren'Py construct.
package parse

import (
	"errors"
	"fmt"

	"github.com/jorge-barreto/rpyfmt/internal/document"
	"github.com/jorge-barreto/rpyfmt/internal/scan"
)

// Parse scans the document once and returns its segment partition plus the
// extracted regions in order of appearance. Document-scoped failures
// (malformed introducer, inconsistent indentation) return a
// *document.AbortError; the document must then be left untouched.
func Parse(doc *document.Document, src *scan.Source, opts Options) ([]document.Segment, []*document.Region, error) {
	var segs []document.Segment
	var regions []*document.Region
	hostStart := 0

	addRegion := func(r *document.Region) {
		r.Index = len(regions)
		if r.Start > hostStart {
			segs = append(segs, document.Segment{Kind: document.Host, Start: hostStart, End: r.Start})
		}
		segs = append(segs, document.Segment{Kind: document.Embedded, Start: r.Start, End: r.End, Region: r})
		regions = append(regions, r)
		hostStart = r.End
	}

	i := 0
	for i < len(src.Lines) {
		m, err := Recognize(src.Lines[i].Text)
		if err != nil {
			return nil, nil, abort(doc, i, err)
		}

		switch m.Kind {
		case InlineIntroducer:
			if r := extractInline(src, i, m); r != nil {
				addRegion(r)
			}
			i++

		case BlockIntroducer:
			r, next, err := extractBlock(src, i, m, opts)
			if err != nil {
				return nil, nil, abort(doc, i, err)
			}
			addRegion(r)
			i = next

		default:
			i++
		}
	}

	if hostStart < len(doc.Text) {
		segs = append(segs, document.Segment{Kind: document.Host, Start: hostStart, End: len(doc.Text)})
	}

	if err := document.CheckPartition(len(doc.Text), segs); err != nil {
		return nil, nil, fmt.Errorf("segment partition violated: %w", err)
	}
	return segs, regions, nil
}

// abort wraps a recognizer/extractor error into a document-scoped abort
// with original-document coordinates.
func abort(doc *document.Document, line int, err error) error {
	kind := document.DiagMalformedIntroducer
	var inconsistent *InconsistentIndentationError
	if errors.As(err, &inconsistent) {
		kind = document.DiagInconsistentIndentation
	}
	return &document.AbortError{Diag: document.Diagnostic{
		File:    doc.Path,
		Line:    line + 1,
		Column:  1,
		Kind:    kind,
		Message: err.Error(),
	}}
}
