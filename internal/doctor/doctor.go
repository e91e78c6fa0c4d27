// Package doctor verifies that a run could succeed: the engine binary
// resolves, answers, and formats a trivial snippet.
package doctor

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/jorge-barreto/rpyfmt/internal/config"
	"github.com/jorge-barreto/rpyfmt/internal/engine"
)

// Check is one diagnosis step.
type Check struct {
	Name   string
	OK     bool
	Detail string
}

// Run performs the checks. It returns every check for rendering plus an
// error when any check failed.
func Run(ctx context.Context, cfg *config.Config, eng engine.Engine) ([]Check, error) {
	checks := []Check{
		binaryCheck(cfg.Engine),
		versionCheck(ctx, cfg.Engine),
		trialCheck(ctx, cfg, eng),
	}

	for _, c := range checks {
		if !c.OK {
			return checks, fmt.Errorf("doctor found problems — fix them and re-run")
		}
	}
	return checks, nil
}

func binaryCheck(command string) Check {
	path, err := exec.LookPath(command)
	if err != nil {
		return Check{Name: "engine binary", Detail: fmt.Sprintf("%q not found on PATH", command)}
	}
	return Check{Name: "engine binary", OK: true, Detail: path}
}

func versionCheck(ctx context.Context, command string) Check {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, command, "--version")
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return Check{Name: "engine version", Detail: err.Error()}
	}
	version := strings.TrimSpace(out.String())
	if i := strings.IndexByte(version, '\n'); i >= 0 {
		version = version[:i]
	}
	return Check{Name: "engine version", OK: true, Detail: version}
}

func trialCheck(ctx context.Context, cfg *config.Config, eng engine.Engine) Check {
	out, err := eng.Format(ctx, "x=1\n", engine.Options{
		LineLength: cfg.LineLength,
		ExtraArgs:  cfg.EngineArgs,
		Timeout:    time.Duration(cfg.Timeout) * time.Second,
	})
	if err != nil {
		return Check{Name: "trial format", Detail: err.Error()}
	}
	if strings.TrimSpace(out) != "x = 1" {
		return Check{Name: "trial format", Detail: fmt.Sprintf("unexpected output %q", strings.TrimSpace(out))}
	}
	return Check{Name: "trial format", OK: true}
}
