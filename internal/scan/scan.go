package scan

import "strings"

// Line is a single physical line of a document. The terminator bytes are
// kept separate from the content so the original document can be rebuilt
// exactly from the line sequence.
type Line struct {
	Text   string // content without the terminator
	EOL    string // "", "\n", or "\r\n"
	Offset int    // byte offset of the line start in the document
}

// Len returns the byte length of the line including its terminator.
func (l Line) Len() int {
	return len(l.Text) + len(l.EOL)
}

// Blank reports whether the line is empty or whitespace-only.
func (l Line) Blank() bool {
	return strings.TrimSpace(l.Text) == ""
}

// Indent returns the leading whitespace (spaces and tabs) of the line.
func (l Line) Indent() string {
	i := 0
	for i < len(l.Text) && (l.Text[i] == ' ' || l.Text[i] == '\t') {
		i++
	}
	return l.Text[:i]
}

// Source is an indexed view over a document's physical lines.
type Source struct {
	Lines []Line
	EOL   string // dominant line-ending style of the document
}

// Scan splits text into physical lines, preserving per-line terminator
// bytes and byte offsets, and detects the dominant line-ending style.
// Mixed documents resolve to the majority style; ties and documents with
// no terminator at all resolve to "\n".
func Scan(text string) *Source {
	src := &Source{}
	var lf, crlf int

	offset := 0
	for offset < len(text) {
		nl := strings.IndexByte(text[offset:], '\n')
		if nl < 0 {
			src.Lines = append(src.Lines, Line{Text: text[offset:], Offset: offset})
			break
		}
		end := offset + nl
		eol := "\n"
		if end > offset && text[end-1] == '\r' {
			eol = "\r\n"
			end--
			crlf++
		} else {
			lf++
		}
		src.Lines = append(src.Lines, Line{Text: text[offset:end], EOL: eol, Offset: offset})
		offset = end + len(eol)
	}

	if crlf > lf {
		src.EOL = "\r\n"
	} else {
		src.EOL = "\n"
	}
	return src
}
