package document

import "fmt"

// Document is the full input text of one script file. It is never mutated;
// formatting produces a new buffer.
type Document struct {
	Path string
	Text string
	EOL  string // dominant line-ending style
}

// Kind tags a segment as untouched host text or an embedded python region.
type Kind int

const (
	Host Kind = iota
	Embedded
)

// IntroducerKind is the recognized embedded-construct variant.
type IntroducerKind int

const (
	KindInline IntroducerKind = iota // $ statement
	KindBlock                        // python:
	KindInit                         // init [offset] python:
	KindEarly                        // python early:
)

func (k IntroducerKind) String() string {
	switch k {
	case KindInline:
		return "inline"
	case KindBlock:
		return "python"
	case KindInit:
		return "init python"
	case KindEarly:
		return "python early"
	}
	return "unknown"
}

// Segment is a contiguous byte span [Start, End) of the document. The
// ordered segments of a document partition it with no gaps and no overlap.
type Segment struct {
	Kind   Kind
	Start  int
	End    int
	Region *Region // set when Kind == Embedded
}

// Region is an embedded python region located within the document.
type Region struct {
	Index     int            // ordinal within the document; indexes the result slots
	Kind      IntroducerKind
	Start     int    // byte span in the original document, introducer line included
	End       int
	IntroLine int    // 0-based physical line index of the introducer
	Indent    string // leading whitespace of the introducer line
	Margin    string // whitespace prefix stripped from body lines; restored on splice
	Code      string // normalized, dedented code; ends with exactly one newline
	BodyLine  int    // 1-based line number of the first code line
	BodyCol   int    // 1-based column where code begins on BodyLine (inline regions)
	BodyStart int    // byte offset where the body begins (block regions)
	TrailEOL  string // terminator bytes of the region's last physical line
}

// FormatResult is the outcome of formatting one region. Exactly one of
// Formatted/Diag is meaningful: a nil Diag means success.
type FormatResult struct {
	Formatted string
	Diag      *Diagnostic
}

// Diagnostic kinds.
const (
	DiagSyntaxError             = "syntax-error"
	DiagEngineError             = "engine-error"
	DiagMalformedIntroducer     = "malformed-introducer"
	DiagInconsistentIndentation = "inconsistent-indentation"
)

// Diagnostic is a structured per-region or per-document failure record.
type Diagnostic struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: %s: %s", d.File, d.Line, d.Column, d.Kind, d.Message)
}

// AbortError is a document-scoped failure: region boundaries cannot be
// trusted, so the whole document is left untouched. Other documents in the
// same run are unaffected.
type AbortError struct {
	Diag Diagnostic
}

func (e *AbortError) Error() string {
	return e.Diag.String()
}

// CheckPartition verifies that segments cover [0, docLen) in order with no
// gaps and no overlap.
func CheckPartition(docLen int, segs []Segment) error {
	pos := 0
	for i, s := range segs {
		if s.Start != pos {
			return fmt.Errorf("segment %d starts at %d, expected %d", i, s.Start, pos)
		}
		if s.End < s.Start {
			return fmt.Errorf("segment %d has negative span [%d, %d)", i, s.Start, s.End)
		}
		pos = s.End
	}
	if pos != docLen {
		return fmt.Errorf("segments end at %d, document has %d bytes", pos, docLen)
	}
	return nil
}
