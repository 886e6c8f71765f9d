// Package server parses API server flags and starts the HTTP API.
package server

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/solo.space/internal/campaign"
	"github.com/louisbranch/solo.space/internal/content"
	entrypoint "github.com/louisbranch/solo.space/internal/platform/cmd"
	"github.com/louisbranch/solo.space/internal/services/api"
	"github.com/louisbranch/solo.space/internal/storage/sqlite"
)

// Config holds API server command configuration.
type Config struct {
	HTTPAddr  string        `env:"SOLO_SPACE_HTTP_ADDR"      envDefault:":8090"`
	DBPath    string        `env:"SOLO_SPACE_DB_PATH"        envDefault:"data/solo.db"`
	PackPath  string        `env:"SOLO_SPACE_PACK_PATH"`
	TokenKey  string        `env:"SOLO_SPACE_API_TOKEN_KEY"`
	TokenTTL  time.Duration `env:"SOLO_SPACE_API_TOKEN_TTL"  envDefault:"24h"`
	RateLimit float64       `env:"SOLO_SPACE_RATE_LIMIT"     envDefault:"20"`

	// IssueToken, when set, prints a bearer token for that subject instead
	// of serving.
	IssueToken string
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	fs.StringVar(&cfg.PackPath, "pack", cfg.PackPath, "content pack file (defaults to the embedded starter pack)")
	fs.Float64Var(&cfg.RateLimit, "rate-limit", cfg.RateLimit, "requests per second per client; 0 disables limiting")
	fs.DurationVar(&cfg.TokenTTL, "token-ttl", cfg.TokenTTL, "lifetime of tokens printed by -issue-token")
	fs.StringVar(&cfg.IssueToken, "issue-token", "", "print a bearer token for this subject and exit")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// PrintToken writes a bearer token for cfg.IssueToken to w.
func PrintToken(w io.Writer, cfg Config, now time.Time) error {
	if strings.TrimSpace(cfg.TokenKey) == "" {
		return errors.New("SOLO_SPACE_API_TOKEN_KEY is required to issue tokens")
	}
	token, err := api.IssueToken([]byte(cfg.TokenKey), cfg.IssueToken, cfg.TokenTTL, now)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}
	_, err = fmt.Fprintln(w, token)
	return err
}

// Run starts the campaign HTTP API.
func Run(ctx context.Context, cfg Config) error {
	pack, err := content.LoadOrStarter(cfg.PackPath)
	if err != nil {
		return err
	}
	for _, issue := range pack.Validate() {
		log.Printf("pack %s: %s", pack.ID, issue)
	}

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceServer, func(ctx context.Context) error {
		if dir := filepath.Dir(cfg.DBPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create data dir: %w", err)
			}
		}
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer func() {
			if err := store.Close(); err != nil {
				log.Printf("close store: %v", err)
			}
		}()

		if cfg.TokenKey == "" {
			log.Printf("bearer-token auth disabled; set SOLO_SPACE_API_TOKEN_KEY to enable it")
		}
		server := api.NewServer(campaign.NewService(store, pack), api.Config{
			TokenKey:  []byte(cfg.TokenKey),
			RateLimit: cfg.RateLimit,
		})
		return server.ListenAndServe(ctx, cfg.HTTPAddr)
	})
}
