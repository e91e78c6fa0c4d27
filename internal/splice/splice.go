// Package splice rebuilds the output document: original bytes everywhere,
// formatted region bodies re-indented back to their recorded margins.
package splice

import (
	"fmt"
	"strings"

	"github.com/jorge-barreto/rpyfmt/internal/document"
)

// Assemble produces the final output text. Host segments and failed regions
// emit their original bytes untouched; formatted regions keep the introducer
// line as-is and re-indent the engine's output, reusing the document's
// dominant line-ending style for every line the engine produced.
func Assemble(doc *document.Document, segs []document.Segment, results []document.FormatResult) ([]byte, error) {
	var out strings.Builder
	out.Grow(len(doc.Text) + len(doc.Text)/8)

	for _, seg := range segs {
		if seg.Kind == document.Host {
			out.WriteString(doc.Text[seg.Start:seg.End])
			continue
		}
		r := seg.Region
		if r == nil || r.Index >= len(results) {
			return nil, fmt.Errorf("embedded segment [%d, %d) has no result slot", seg.Start, seg.End)
		}
		res := results[r.Index]
		if res.Diag != nil {
			// Pass-through: the region's original bytes, unchanged.
			out.WriteString(doc.Text[seg.Start:seg.End])
			continue
		}
		if r.Kind == document.KindInline {
			spliceInline(&out, doc, r, res.Formatted)
		} else {
			spliceBlock(&out, doc, r, res.Formatted)
		}
	}
	return []byte(out.String()), nil
}

// spliceBlock emits the introducer line verbatim, then the formatted body
// with the region's margin restored on every non-blank line.
func spliceBlock(out *strings.Builder, doc *document.Document, r *document.Region, formatted string) {
	out.WriteString(doc.Text[r.Start:r.BodyStart])
	writeIndented(out, formatted, r.Margin, doc.EOL, r.TrailEOL)
}

// spliceInline re-emits the $ marker at the original indentation, followed
// by the formatted statement. Continuation lines, if the engine produced
// any, stay at the same indentation.
func spliceInline(out *strings.Builder, doc *document.Document, r *document.Region, formatted string) {
	lines := splitFormatted(formatted)
	for i, line := range lines {
		if i == 0 {
			out.WriteString(r.Indent + "$ " + line)
		} else if line == "" {
			// blank stays blank
		} else {
			out.WriteString(r.Indent + line)
		}
		if i == len(lines)-1 {
			out.WriteString(r.TrailEOL)
		} else {
			out.WriteString(doc.EOL)
		}
	}
}

// writeIndented writes the formatted body, prefixing non-blank lines with
// the margin. The final line reuses the region's original terminator so a
// document without a trailing newline stays that way.
func writeIndented(out *strings.Builder, formatted, margin, eol, trailEOL string) {
	lines := splitFormatted(formatted)
	for i, line := range lines {
		if line != "" {
			out.WriteString(margin)
			out.WriteString(line)
		}
		if i == len(lines)-1 {
			out.WriteString(trailEOL)
		} else {
			out.WriteString(eol)
		}
	}
}

// splitFormatted splits engine output into lines, dropping the final
// trailing newline and any trailing-whitespace pollution.
func splitFormatted(formatted string) []string {
	formatted = strings.TrimRight(formatted, "\n")
	lines := strings.Split(formatted, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t\r")
	}
	return lines
}
