package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileErrors(t *testing.T) {
	// An explicit config path that does not exist is a user error, not a
	// silent fall-back to defaults.
	_, err := Load(filepath.Join(t.TempDir(), FileName))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestValidate_Defaults(t *testing.T) {
	cfg := &Config{}
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LineLength != 88 {
		t.Fatalf("expected default line-length 88, got %d", cfg.LineLength)
	}
	if cfg.InlineLineLength != 1000 {
		t.Fatalf("expected default inline-line-length 1000, got %d", cfg.InlineLineLength)
	}
	if cfg.Engine != "black" {
		t.Fatalf("expected default engine black, got %q", cfg.Engine)
	}
	if cfg.Timeout != 60 {
		t.Fatalf("expected default timeout 60, got %d", cfg.Timeout)
	}
	if cfg.TabPolicy != "reject" {
		t.Fatalf("expected default tab-policy reject, got %q", cfg.TabPolicy)
	}
	if cfg.TabWidth != 8 {
		t.Fatalf("expected default tab-width 8, got %d", cfg.TabWidth)
	}
	if cfg.Jobs < 1 {
		t.Fatalf("expected jobs >= 1, got %d", cfg.Jobs)
	}
}

func TestLoad_ValidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	content := "line-length: 100\nengine: black\nengine-args: [--fast]\ntab-policy: expand\ntab-width: 4\nstrict: true\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LineLength != 100 {
		t.Fatalf("expected line-length 100, got %d", cfg.LineLength)
	}
	if len(cfg.EngineArgs) != 1 || cfg.EngineArgs[0] != "--fast" {
		t.Fatalf("unexpected engine-args %v", cfg.EngineArgs)
	}
	if cfg.TabPolicy != "expand" || cfg.TabWidth != 4 {
		t.Fatalf("unexpected tab policy %q/%d", cfg.TabPolicy, cfg.TabWidth)
	}
	if !cfg.Strict {
		t.Fatal("expected strict to be true")
	}
}

func TestValidate_Errors(t *testing.T) {
	cases := []Config{
		{LineLength: -1},
		{Timeout: -5},
		{Jobs: -1},
		{TabPolicy: "tabs-are-fine"},
		{TabWidth: -2},
		{Exclude: []string{""}},
	}
	for i, cfg := range cases {
		if err := Validate(&cfg); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
}

func TestFind_WalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "game", "scripts")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(root, FileName)
	if err := os.WriteFile(path, []byte("line-length: 88\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := Find(nested); got != path {
		t.Fatalf("expected %q, got %q", path, got)
	}
}

func TestFind_NotFound(t *testing.T) {
	if got := Find(t.TempDir()); got != "" {
		t.Fatalf("expected empty result, got %q", got)
	}
}
