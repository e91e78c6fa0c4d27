package doctor

import (
	"context"
	"testing"

	"github.com/jorge-barreto/rpyfmt/internal/config"
	"github.com/jorge-barreto/rpyfmt/internal/engine"
)

type okEngine struct{}

func (okEngine) Format(ctx context.Context, source string, opts engine.Options) (string, error) {
	return "x = 1\n", nil
}

func testConfig(t *testing.T, binary string) *config.Config {
	t.Helper()
	cfg := &config.Config{Engine: binary}
	if err := config.Validate(cfg); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestRun_AllChecksPass(t *testing.T) {
	// "true" stands in for the engine binary: it resolves on PATH and
	// exits zero for --version.
	cfg := testConfig(t, "true")
	checks, err := Run(context.Background(), cfg, okEngine{})
	if err != nil {
		t.Fatalf("unexpected error: %v (checks: %+v)", err, checks)
	}
	if len(checks) != 3 {
		t.Fatalf("expected 3 checks, got %d", len(checks))
	}
	for _, c := range checks {
		if !c.OK {
			t.Fatalf("check %q failed: %s", c.Name, c.Detail)
		}
	}
}

func TestRun_MissingBinary(t *testing.T) {
	cfg := testConfig(t, "rpyfmt-test-no-such-binary")
	checks, err := Run(context.Background(), cfg, okEngine{})
	if err == nil {
		t.Fatal("expected an error for a missing engine binary")
	}
	if checks[0].OK {
		t.Fatal("binary check should fail")
	}
}

func TestRun_TrialFailure(t *testing.T) {
	cfg := testConfig(t, "true")
	checks, err := Run(context.Background(), cfg, badEngine{})
	if err == nil {
		t.Fatal("expected an error when the trial format fails")
	}
	last := checks[len(checks)-1]
	if last.OK {
		t.Fatal("trial check should fail")
	}
}

type badEngine struct{}

func (badEngine) Format(ctx context.Context, source string, opts engine.Options) (string, error) {
	return "", &engine.SyntaxError{Line: 1, Column: 1, Message: "cannot parse: nope"}
}
