package dispatch

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/jorge-barreto/rpyfmt/internal/document"
	"github.com/jorge-barreto/rpyfmt/internal/engine"
)

// fakeEngine formats by normalizing spaces around '=' and fails on sources
// containing "boom".
type fakeEngine struct {
	concurrent atomic.Int32
	peak       atomic.Int32
}

func (f *fakeEngine) Format(ctx context.Context, source string, opts engine.Options) (string, error) {
	cur := f.concurrent.Add(1)
	defer f.concurrent.Add(-1)
	for {
		old := f.peak.Load()
		if cur <= old || f.peak.CompareAndSwap(old, cur) {
			break
		}
	}

	if strings.Contains(source, "boom") {
		return "", &engine.SyntaxError{Line: 1, Column: 1, Message: "cannot parse: boom"}
	}
	var out strings.Builder
	for _, line := range strings.Split(strings.TrimSuffix(source, "\n"), "\n") {
		if k := strings.Index(line, "="); k >= 0 && !strings.Contains(line, "==") {
			out.WriteString(strings.TrimRight(line[:k], " ") + " = " + strings.TrimLeft(line[k+1:], " "))
		} else {
			out.WriteString(line)
		}
		out.WriteByte('\n')
	}
	return out.String(), nil
}

func testRegions(codes ...string) (*document.Document, []*document.Region) {
	doc := &document.Document{Path: "test.rpy", EOL: "\n"}
	var regions []*document.Region
	for i, c := range codes {
		regions = append(regions, &document.Region{
			Index:    i,
			Kind:     document.KindBlock,
			Code:     c,
			BodyLine: 2 + i*10,
			BodyCol:  5,
		})
	}
	return doc, regions
}

func TestAll_IndependentResults(t *testing.T) {
	doc, regions := testRegions("x=1\n", "boom\n", "y =2\n")
	eng := &fakeEngine{}
	results := All(context.Background(), eng, doc, regions, Options{}, NewPool(4))

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Diag != nil || results[0].Formatted != "x = 1\n" {
		t.Fatalf("region 0: got %+v", results[0])
	}
	if results[1].Diag == nil {
		t.Fatal("region 1: expected failure")
	}
	if results[2].Diag != nil || results[2].Formatted != "y = 2\n" {
		t.Fatalf("region 2: got %+v", results[2])
	}
}

func TestAll_SyntaxErrorCoordinates(t *testing.T) {
	doc, regions := testRegions("boom\n")
	results := All(context.Background(), &fakeEngine{}, doc, regions, Options{}, NewPool(1))

	d := results[0].Diag
	if d == nil {
		t.Fatal("expected a diagnostic")
	}
	if d.Kind != document.DiagSyntaxError {
		t.Fatalf("expected syntax-error, got %s", d.Kind)
	}
	// Engine reported 1:1 in normalized code; region body starts at line 2
	// with a 4-byte margin, so the document coordinates are 2:5.
	if d.Line != 2 || d.Column != 5 {
		t.Fatalf("expected 2:5, got %d:%d", d.Line, d.Column)
	}
	if d.File != "test.rpy" {
		t.Fatalf("expected file test.rpy, got %q", d.File)
	}
}

func TestAll_PoolBoundsConcurrency(t *testing.T) {
	codes := make([]string, 16)
	for i := range codes {
		codes[i] = "x=1\n"
	}
	doc, regions := testRegions(codes...)
	eng := &fakeEngine{}
	All(context.Background(), eng, doc, regions, Options{}, NewPool(2))

	if peak := eng.peak.Load(); peak > 2 {
		t.Fatalf("pool of 2 allowed %d concurrent invocations", peak)
	}
}

func TestAll_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	doc, regions := testRegions("x=1\n")
	results := All(ctx, &fakeEngine{}, doc, regions, Options{}, NewPool(1))

	d := results[0].Diag
	if d == nil || d.Kind != document.DiagEngineError {
		t.Fatalf("expected engine-error diagnostic, got %+v", results[0])
	}
}

func TestAll_InlineLineLengthOverride(t *testing.T) {
	doc := &document.Document{Path: "test.rpy", EOL: "\n"}
	r := &document.Region{Kind: document.KindInline, Code: "a=1\n", BodyLine: 1, BodyCol: 3}
	captured := &optionCapture{}
	All(context.Background(), captured, doc, []*document.Region{r}, Options{
		Engine:           engine.Options{LineLength: 88},
		InlineLineLength: 1000,
	}, NewPool(1))

	if captured.lineLength != 1000 {
		t.Fatalf("expected inline line length 1000, got %d", captured.lineLength)
	}
}

type optionCapture struct {
	lineLength int
}

func (c *optionCapture) Format(ctx context.Context, source string, opts engine.Options) (string, error) {
	c.lineLength = opts.LineLength
	return source, nil
}
