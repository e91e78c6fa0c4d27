package parse

import (
	"strings"

	"github.com/jorge-barreto/rpyfmt/internal/document"
	"github.com/jorge-barreto/rpyfmt/internal/scan"
)

// Tab handling policies for embedded-region indentation.
const (
	TabReject = "reject" // mixed tabs and spaces in a region abort the document
	TabExpand = "expand" // tabs in leading whitespace expand to TabWidth stops
)

// Options control indentation handling during extraction.
type Options struct {
	TabPolicy string // TabReject (default) or TabExpand
	TabWidth  int    // tab stop width, used for depth comparison and expansion
}

func (o Options) tabWidth() int {
	if o.TabWidth > 0 {
		return o.TabWidth
	}
	return 8
}

// InconsistentIndentationError reports a region whose indentation cannot be
// unambiguously dedented. The caller aborts the document.
type InconsistentIndentationError struct {
	Reason string
}

func (e *InconsistentIndentationError) Error() string {
	return "inconsistent indentation: " + e.Reason
}

// extractBlock determines the extent of a block region introduced at line
// intro, dedents the body, and returns the region plus the index of the
// first line after it. The body is every immediately following line that is
// blank or indented strictly deeper than the introducer; trailing blank
// lines belong to the host text, not the region.
func extractBlock(src *scan.Source, intro int, m Match, opts Options) (*document.Region, int, error) {
	width := opts.tabWidth()
	base := effWidth(m.Indent, width)

	last := -1
	next := len(src.Lines)
	for j := intro + 1; j < len(src.Lines); j++ {
		l := src.Lines[j]
		if l.Blank() {
			continue
		}
		if effWidth(l.Indent(), width) <= base {
			next = j
			break
		}
		last = j
	}
	if last < 0 {
		return nil, 0, &MalformedIntroducerError{Reason: "block introducer has an empty body"}
	}
	if next > last+1 {
		next = last + 1
	}

	body := src.Lines[intro+1 : last+1]
	leads := make([]string, 0, len(body))
	texts := make([]string, len(body))
	for i, l := range body {
		if l.Blank() {
			continue
		}
		lead := l.Indent()
		if opts.TabPolicy == TabExpand {
			lead = expandTabs(lead, width)
			texts[i] = lead + l.Text[len(l.Indent()):]
		} else {
			texts[i] = l.Text
		}
		leads = append(leads, lead)
	}

	margin := commonMargin(leads)
	if opts.TabPolicy != TabExpand {
		if err := checkConsistent(leads, margin); err != nil {
			return nil, 0, err
		}
	}

	var code strings.Builder
	for i, l := range body {
		if l.Blank() {
			code.WriteByte('\n')
			continue
		}
		code.WriteString(strings.TrimRight(texts[i][len(margin):], " \t"))
		code.WriteByte('\n')
	}

	introLine := src.Lines[intro]
	lastLine := src.Lines[last]
	return &document.Region{
		Kind:      m.Variant,
		Start:     introLine.Offset,
		End:       lastLine.Offset + lastLine.Len(),
		IntroLine: intro,
		Indent:    m.Indent,
		Margin:    margin,
		Code:      code.String(),
		BodyLine:  intro + 2,
		BodyCol:   len(margin) + 1,
		BodyStart: introLine.Offset + introLine.Len(),
		TrailEOL:  lastLine.EOL,
	}, next, nil
}

// extractInline builds a region for a $ statement: exactly the remainder of
// the introducer line, never any following line. Returns nil for a bare $
// with no code.
func extractInline(src *scan.Source, intro int, m Match) *document.Region {
	l := src.Lines[intro]
	code := strings.TrimRight(l.Text[m.CodeStart:], " \t")
	if code == "" {
		return nil
	}
	return &document.Region{
		Kind:      document.KindInline,
		Start:     l.Offset,
		End:       l.Offset + l.Len(),
		IntroLine: intro,
		Indent:    m.Indent,
		Margin:    m.Indent,
		Code:      code + "\n",
		BodyLine:  intro + 1,
		BodyCol:   m.CodeStart + 1,
		BodyStart: l.Offset,
		TrailEOL:  l.EOL,
	}
}

// effWidth is the effective display width of leading whitespace, with tabs
// advancing to the next tab stop.
func effWidth(ws string, tabWidth int) int {
	w := 0
	for i := 0; i < len(ws); i++ {
		if ws[i] == '\t' {
			w += tabWidth - w%tabWidth
		} else {
			w++
		}
	}
	return w
}

// expandTabs rewrites tabs in leading whitespace as spaces at tabWidth stops.
func expandTabs(ws string, tabWidth int) string {
	var b strings.Builder
	w := 0
	for i := 0; i < len(ws); i++ {
		if ws[i] == '\t' {
			n := tabWidth - w%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			w += n
		} else {
			b.WriteByte(' ')
			w++
		}
	}
	return b.String()
}

// checkConsistent rejects regions whose indentation cannot be unambiguously
// dedented: a body mixing tab and space indentation, or a tab remaining
// below the common margin, makes relative depths depend on a tab-width
// assumption the reject policy refuses to make.
func checkConsistent(leads []string, margin string) error {
	var hasTab, hasSpace bool
	for _, lead := range leads {
		if strings.ContainsRune(lead, '\t') {
			hasTab = true
		}
		if strings.ContainsRune(lead, ' ') {
			hasSpace = true
		}
	}
	if hasTab && hasSpace {
		return &InconsistentIndentationError{Reason: "region mixes tabs and spaces in leading whitespace"}
	}
	for _, lead := range leads {
		if strings.ContainsRune(lead[len(margin):], '\t') {
			return &InconsistentIndentationError{Reason: "tab in indentation below the region margin"}
		}
	}
	return nil
}

// commonMargin returns the longest leading-whitespace prefix shared by
// every non-blank body line.
func commonMargin(leads []string) string {
	margin := ""
	for i, lead := range leads {
		switch {
		case i == 0:
			margin = lead
		case strings.HasPrefix(lead, margin):
			// keep current margin
		case strings.HasPrefix(margin, lead):
			margin = lead
		default:
			k := 0
			for k < len(margin) && k < len(lead) && margin[k] == lead[k] {
				k++
			}
			margin = margin[:k]
		}
	}
	return margin
}
