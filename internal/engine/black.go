package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// Black runs the black formatter as a subprocess, feeding source on stdin
// and reading the result from stdout.
type Black struct {
	Command string // binary name or path; defaults to "black"
}

func (b *Black) command() string {
	if b.Command != "" {
		return b.Command
	}
	return "black"
}

func (b *Black) Format(ctx context.Context, source string, opts Options) (string, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	args := []string{"-q"}
	if opts.LineLength > 0 {
		args = append(args, "--line-length", strconv.Itoa(opts.LineLength))
	}
	args = append(args, opts.ExtraArgs...)
	args = append(args, "-")

	cmd := exec.CommandContext(ctx, b.command(), args...)
	cmd.Stdin = strings.NewReader(source)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// The engine may be a wrapper script that spawns children; signal the
	// whole process group on cancel so a timed-out region cannot hold its
	// worker slot via an inherited pipe.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGTERM)
	}
	cmd.WaitDelay = 5 * time.Second

	code, err := exitCode(cmd.Run())
	if ctxErr := ctx.Err(); errors.Is(ctxErr, context.DeadlineExceeded) {
		return "", fmt.Errorf("%s timed out after %s", b.command(), opts.Timeout)
	}
	if err != nil {
		return "", fmt.Errorf("running %s: %w", b.command(), err)
	}
	if code != 0 {
		if se := parseSyntaxError(stderr.String()); se != nil {
			return "", se
		}
		return "", fmt.Errorf("%s exited %d: %s", b.command(), code, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// black reports parse failures on stderr as
// "error: cannot format -: Cannot parse: LINE:COL: source line".
var cannotParseRe = regexp.MustCompile(`[Cc]annot parse: (\d+):(\d+):\s*(.*)`)

// parseSyntaxError extracts structured syntax-error coordinates from the
// engine's stderr. Returns nil when stderr does not look like a parse
// failure.
func parseSyntaxError(stderr string) *SyntaxError {
	m := cannotParseRe.FindStringSubmatch(stderr)
	if m == nil {
		return nil
	}
	line, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	col, err := strconv.Atoi(m[2])
	if err != nil {
		return nil
	}
	msg := strings.TrimSpace(m[3])
	if msg == "" {
		msg = "cannot parse"
	}
	return &SyntaxError{Line: line, Column: col, Message: "cannot parse: " + msg}
}
