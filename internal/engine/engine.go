// Package engine invokes the external python formatting engine. The engine
// is a black box: normalized code in, formatted code or a failure out.
package engine

import (
	"context"
	"fmt"
	"time"
)

// Options are passed through from configuration to the engine; the core
// does not interpret them beyond argument assembly.
type Options struct {
	LineLength int           // maximum line length for formatted output
	ExtraArgs  []string      // additional engine arguments, verbatim
	Timeout    time.Duration // per-invocation deadline; 0 means none
}

// SyntaxError reports that the engine rejected the region's code. Line and
// Column are 1-based coordinates in the normalized code the engine saw; the
// dispatcher translates them back into document coordinates.
type SyntaxError struct {
	Line    int
	Column  int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// Engine formats a self-contained piece of python source. Implementations
// return *SyntaxError when the source does not parse, and any other error
// for engine failures (missing binary, timeout, crash).
type Engine interface {
	Format(ctx context.Context, source string, opts Options) (string, error)
}
