package server

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/louisbranch/solo.space/internal/services/api"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != ":8090" {
		t.Fatalf("expected default addr :8090, got %q", cfg.HTTPAddr)
	}
	if cfg.DBPath != "data/solo.db" {
		t.Fatalf("expected default db path, got %q", cfg.DBPath)
	}
	if cfg.RateLimit != 20 || cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("expected rate 20 and ttl 24h, got %v and %v", cfg.RateLimit, cfg.TokenTTL)
	}
}

func TestParseConfigEnvAndFlags(t *testing.T) {
	t.Setenv("SOLO_SPACE_DB_PATH", "/tmp/env.db")
	t.Setenv("SOLO_SPACE_RATE_LIMIT", "5")
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-http-addr", "127.0.0.1:9999", "-rate-limit", "0", "-issue-token", "me"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.DBPath != "/tmp/env.db" {
		t.Fatalf("expected env db path, got %q", cfg.DBPath)
	}
	if cfg.HTTPAddr != "127.0.0.1:9999" || cfg.RateLimit != 0 {
		t.Fatalf("expected flag overrides, got %q and %v", cfg.HTTPAddr, cfg.RateLimit)
	}
	if cfg.IssueToken != "me" {
		t.Fatalf("issue token = %q, want me", cfg.IssueToken)
	}
}

func TestPrintToken(t *testing.T) {
	now := time.Now()
	var out bytes.Buffer
	cfg := Config{TokenKey: "secret", TokenTTL: time.Hour, IssueToken: "player-1"}
	if err := PrintToken(&out, cfg, now); err != nil {
		t.Fatalf("print token: %v", err)
	}
	subject, err := api.NewTokenVerifier([]byte("secret")).Verify(strings.TrimSpace(out.String()))
	if err != nil {
		t.Fatalf("verify printed token: %v", err)
	}
	if subject != "player-1" {
		t.Fatalf("subject = %q, want player-1", subject)
	}

	if err := PrintToken(&out, Config{IssueToken: "player-1"}, now); err == nil {
		t.Fatal("expected error without a token key")
	}
}

func TestRunRejectsMissingPack(t *testing.T) {
	err := Run(context.Background(), Config{
		HTTPAddr: "127.0.0.1:0",
		DBPath:   filepath.Join(t.TempDir(), "solo.db"),
		PackPath: filepath.Join(t.TempDir(), "missing.yaml"),
	})
	if err == nil {
		t.Fatal("expected error for missing pack")
	}
}

func TestRunCreatesDataDirAndStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	dbPath := filepath.Join(t.TempDir(), "nested", "solo.db")
	if err := Run(ctx, Config{HTTPAddr: "127.0.0.1:0", DBPath: dbPath}); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
	if _, err := os.Stat(filepath.Dir(dbPath)); err != nil {
		t.Fatalf("expected data dir to exist: %v", err)
	}
}
