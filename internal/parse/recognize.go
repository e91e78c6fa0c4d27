package parse

import (
	"fmt"
	"strings"

	"github.com/jorge-barreto/rpyfmt/internal/document"
)

// MatchKind classifies a physical line.
type MatchKind int

const (
	NotIntroducer MatchKind = iota
	InlineIntroducer
	BlockIntroducer
)

// Match is the recognizer's verdict on one line.
type Match struct {
	Kind      MatchKind
	Variant   document.IntroducerKind
	Indent    string // leading whitespace of the line
	CodeStart int    // inline only: byte offset within the line where code begins
}

// MalformedIntroducerError reports a line that matches a python block header
// form but violates the block grammar. Region boundaries cannot be trusted
// past it, so the caller aborts the document.
type MalformedIntroducerError struct {
	Reason string
}

func (e *MalformedIntroducerError) Error() string {
	return "malformed introducer: " + e.Reason
}

// Recognize classifies a physical line as a host-language line, an inline
// python statement ($ ...), or a python block header. Block headers require
// a block-opening colon at the logical end of line; the colon search runs a
// small lexical state machine so colons inside string literals or comments
// are ignored.
func Recognize(line string) (Match, error) {
	indent := leadingWhitespace(line)
	rest := line[len(indent):]

	if rest == "" || rest[0] == '#' {
		return Match{Kind: NotIntroducer}, nil
	}

	if rest[0] == '$' {
		code := len(indent) + 1
		for code < len(line) && (line[code] == ' ' || line[code] == '\t') {
			code++
		}
		return Match{
			Kind:      InlineIntroducer,
			Variant:   document.KindInline,
			Indent:    indent,
			CodeStart: code,
		}, nil
	}

	w, pos := word(rest, 0)
	switch w {
	case "python":
		variant, err := pythonHeader(rest, pos, true)
		if err != nil {
			return Match{}, err
		}
		return Match{Kind: BlockIntroducer, Variant: variant, Indent: indent}, nil

	case "init":
		pos = skipSignedInt(rest, pos)
		next, after := word(rest, pos)
		if next != "python" {
			// Plain init block or init offset statement: host construct.
			return Match{Kind: NotIntroducer}, nil
		}
		if _, err := pythonHeader(rest, after, false); err != nil {
			return Match{}, err
		}
		return Match{Kind: BlockIntroducer, Variant: document.KindInit, Indent: indent}, nil
	}

	return Match{Kind: NotIntroducer}, nil
}

// pythonHeader validates the tail of a python block header after the
// "python" keyword: optional modifiers ("early" when allowed, "hide",
// "in <name>") followed by the block-opening colon.
func pythonHeader(rest string, pos int, allowEarly bool) (document.IntroducerKind, error) {
	head, err := headerColon(rest, pos)
	if err != nil {
		return 0, err
	}

	variant := document.KindBlock
	mods := strings.Fields(head)
	i := 0
	if i < len(mods) && mods[i] == "early" {
		if !allowEarly {
			return 0, &MalformedIntroducerError{Reason: "'early' is not valid in an init python header"}
		}
		variant = document.KindEarly
		i++
	}
	if i < len(mods) && mods[i] == "hide" {
		i++
	}
	if i < len(mods) && mods[i] == "in" {
		i++
		if i >= len(mods) || !isName(mods[i]) {
			return 0, &MalformedIntroducerError{Reason: "'in' requires a store name"}
		}
		i++
	}
	if i != len(mods) {
		return 0, &MalformedIntroducerError{Reason: fmt.Sprintf("unexpected %q in python block header", mods[i])}
	}
	return variant, nil
}

// headerColon scans s from pos, tracking string-literal and comment lexical
// state, and locates the block-opening colon. It returns the text between
// pos and the colon. The colon must be the last meaningful content on the
// line; a trailing comment is permitted.
func headerColon(s string, pos int) (string, error) {
	const (
		outside = iota
		single
		double
	)
	state := outside
	escaped := false

	for i := pos; i < len(s); i++ {
		c := s[i]
		switch state {
		case outside:
			switch c {
			case '#':
				return "", &MalformedIntroducerError{Reason: "missing block-opening colon"}
			case '\'':
				state = single
			case '"':
				state = double
			case ':':
				tail := strings.TrimLeft(s[i+1:], " \t")
				if tail != "" && tail[0] != '#' {
					return "", &MalformedIntroducerError{
						Reason: fmt.Sprintf("unexpected content after colon: %q", tail),
					}
				}
				return s[pos:i], nil
			}
		case single, double:
			if escaped {
				escaped = false
				continue
			}
			switch {
			case c == '\\':
				escaped = true
			case c == '\'' && state == single:
				state = outside
			case c == '"' && state == double:
				state = outside
			}
		}
	}
	return "", &MalformedIntroducerError{Reason: "missing block-opening colon"}
}

func leadingWhitespace(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return s[:i]
}

// word reads an identifier starting at or after pos, skipping leading
// spaces. Returns the word and the position just past it.
func word(s string, pos int) (string, int) {
	for pos < len(s) && (s[pos] == ' ' || s[pos] == '\t') {
		pos++
	}
	start := pos
	for pos < len(s) && isNameByte(s[pos], pos > start) {
		pos++
	}
	return s[start:pos], pos
}

// skipSignedInt skips an optional [+|-]digits token (the init offset).
func skipSignedInt(s string, pos int) int {
	i := pos
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	j := i
	if j < len(s) && (s[j] == '+' || s[j] == '-') {
		j++
	}
	digits := j
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j == digits {
		return pos
	}
	return j
}

func isName(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isNameByte(s[i], i > 0) {
			return false
		}
	}
	return len(s) > 0
}

func isNameByte(c byte, interior bool) bool {
	if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' {
		return true
	}
	if interior && (c >= '0' && c <= '9' || c == '.') {
		return true
	}
	return false
}
