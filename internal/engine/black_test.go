package engine

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// stubEngine writes a shell script standing in for the black binary.
func stubEngine(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fake-black")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBlackFormat_Success(t *testing.T) {
	// Record the argument assembly and echo stdin back.
	path := stubEngine(t, "echo \"$@\" > \"$0.args\"\ncat\n")
	b := &Black{Command: path}

	out, err := b.Format(context.Background(), "x = 1\n", Options{
		LineLength: 88,
		ExtraArgs:  []string{"--fast"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "x = 1\n" {
		t.Fatalf("output = %q", out)
	}
	args, err := os.ReadFile(path + ".args")
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(string(args)); got != "-q --line-length 88 --fast -" {
		t.Fatalf("args = %q", got)
	}
}

func TestBlackFormat_SyntaxErrorFromStderr(t *testing.T) {
	path := stubEngine(t, "echo 'error: cannot format -: Cannot parse: 3:7: bad = = 1' >&2\nexit 123\n")
	b := &Black{Command: path}

	_, err := b.Format(context.Background(), "bad = = 1\n", Options{})
	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("expected SyntaxError, got %v", err)
	}
	if se.Line != 3 || se.Column != 7 {
		t.Fatalf("expected 3:7, got %d:%d", se.Line, se.Column)
	}
}

func TestBlackFormat_GenericFailure(t *testing.T) {
	path := stubEngine(t, "echo boom >&2\nexit 2\n")
	b := &Black{Command: path}

	_, err := b.Format(context.Background(), "x = 1\n", Options{})
	if err == nil {
		t.Fatal("expected an error")
	}
	var se *SyntaxError
	if errors.As(err, &se) {
		t.Fatalf("nonsense stderr must not map to SyntaxError: %v", err)
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Fatalf("stderr not surfaced: %v", err)
	}
}

func TestBlackFormat_TimeoutKillsSubprocess(t *testing.T) {
	path := stubEngine(t, "sleep 5\n")
	b := &Black{Command: path}

	start := time.Now()
	_, err := b.Format(context.Background(), "x = 1\n", Options{Timeout: 200 * time.Millisecond})
	elapsed := time.Since(start)
	if err == nil {
		t.Fatal("expected a timeout error")
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Fatalf("expected a timeout error, got %v", err)
	}
	// The whole process group must die with the deadline, not after the
	// engine finishes on its own.
	if elapsed > 3*time.Second {
		t.Fatalf("timeout took %s to cancel the engine", elapsed)
	}
}

func TestParseSyntaxError(t *testing.T) {
	stderr := "error: cannot format -: Cannot parse: 2:8: x ===== 3\n"
	se := parseSyntaxError(stderr)
	if se == nil {
		t.Fatal("expected a syntax error")
	}
	if se.Line != 2 || se.Column != 8 {
		t.Fatalf("expected 2:8, got %d:%d", se.Line, se.Column)
	}
	if se.Message != "cannot parse: x ===== 3" {
		t.Fatalf("unexpected message %q", se.Message)
	}
}

func TestParseSyntaxError_NotAParseFailure(t *testing.T) {
	if se := parseSyntaxError("error: no such option: --bogus\n"); se != nil {
		t.Fatalf("expected nil, got %v", se)
	}
	if se := parseSyntaxError(""); se != nil {
		t.Fatalf("expected nil for empty stderr, got %v", se)
	}
}

func TestSyntaxError_Error(t *testing.T) {
	se := &SyntaxError{Line: 3, Column: 1, Message: "cannot parse: bad"}
	if se.Error() != "3:1: cannot parse: bad" {
		t.Fatalf("unexpected error string %q", se.Error())
	}
}

func TestExitCode(t *testing.T) {
	if code, err := exitCode(nil); code != 0 || err != nil {
		t.Fatalf("nil error: got (%d, %v)", code, err)
	}
	// A non-ExitError passes through.
	sentinel := errors.New("spawn failed")
	if _, err := exitCode(sentinel); !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel passthrough, got %v", err)
	}
	// A real ExitError maps to its code.
	cmdErr := exec.Command("sh", "-c", "exit 3").Run()
	code, err := exitCode(cmdErr)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if code != 3 {
		t.Fatalf("expected exit code 3, got %d", code)
	}
}
