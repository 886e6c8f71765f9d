package mcp

import (
	"context"
	"flag"
	"path/filepath"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	t.Setenv("SOLO_SPACE_PACK_PATH", "")
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.PackPath != "" {
		t.Fatalf("expected empty pack path, got %q", cfg.PackPath)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("SOLO_SPACE_PACK_PATH", "env.yaml")
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.PackPath != "env.yaml" {
		t.Fatalf("expected env pack path, got %q", cfg.PackPath)
	}

	fs = flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err = ParseConfig(fs, []string{"-pack", "flag.yaml"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.PackPath != "flag.yaml" {
		t.Fatalf("expected flag pack path, got %q", cfg.PackPath)
	}
}

func TestRunRejectsMissingPack(t *testing.T) {
	err := Run(context.Background(), Config{PackPath: filepath.Join(t.TempDir(), "missing.yaml")})
	if err == nil {
		t.Fatal("expected error for missing pack")
	}
}
