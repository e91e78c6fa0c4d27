// Package ux renders run progress and diagnostics for the terminal.
package ux

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/jorge-barreto/rpyfmt/internal/document"
)

var (
	red    = color.New(color.FgRed)
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	cyan   = color.New(color.FgCyan)
	dim    = color.New(color.Faint)
)

// Reformatted reports a file rewritten in place.
func Reformatted(path string) {
	fmt.Printf("%s %s\n", green.Sprint("reformatted"), path)
}

// WouldReformat reports a file that check mode found out of date.
func WouldReformat(path string) {
	fmt.Printf("%s %s\n", yellow.Sprint("would reformat"), path)
}

// Diag prints a region-scoped diagnostic. The region passed through
// unchanged, so this is a warning, not an error.
func Diag(d document.Diagnostic) {
	fmt.Fprintf(os.Stderr, "%s %s\n", yellow.Sprint("warning:"), d)
}

// Aborted reports a document-scoped failure: the file was left untouched.
func Aborted(d document.Diagnostic) {
	fmt.Fprintf(os.Stderr, "%s %s\n", red.Sprint("error:"), d)
}

// FileError reports a file that could not be read or written.
func FileError(path string, err error) {
	fmt.Fprintf(os.Stderr, "%s %s: %v\n", red.Sprint("error:"), path, err)
}

// Summary prints run totals.
func Summary(changed, unchanged, failedRegions, aborted int) {
	line := fmt.Sprintf("%d reformatted, %d unchanged", changed, unchanged)
	if failedRegions > 0 {
		line += fmt.Sprintf(", %d region(s) failed", failedRegions)
	}
	if aborted > 0 {
		line += fmt.Sprintf(", %d file(s) aborted", aborted)
	}
	fmt.Println(dim.Sprint(line))
}

// Check prints one doctor check result.
func Check(name string, ok bool, detail string) {
	mark := green.Sprint("✓")
	if !ok {
		mark = red.Sprint("✗")
	}
	if detail != "" {
		fmt.Printf("  %s %s %s\n", mark, name, dim.Sprint(detail))
		return
	}
	fmt.Printf("  %s %s\n", mark, name)
}

// Header prints a section header.
func Header(text string) {
	fmt.Printf("\n%s\n", cyan.Sprint(text))
}

// Errorf prints a top-level error line.
func Errorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", red.Sprint("error:"), fmt.Sprintf(format, args...))
}
