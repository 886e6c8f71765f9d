// Package mcp parses MCP server flags and serves the solo play tools on stdio.
package mcp

import (
	"context"
	"flag"
	"log"

	"github.com/louisbranch/solo.space/internal/content"
	entrypoint "github.com/louisbranch/solo.space/internal/platform/cmd"
	"github.com/louisbranch/solo.space/internal/services/mcp/service"
)

// Config holds MCP command configuration.
type Config struct {
	PackPath string `env:"SOLO_SPACE_PACK_PATH"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.PackPath, "pack", cfg.PackPath, "content pack file (defaults to the embedded starter pack)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run loads the pack and serves MCP over stdio until ctx ends.
func Run(ctx context.Context, cfg Config) error {
	pack, err := content.LoadOrStarter(cfg.PackPath)
	if err != nil {
		return err
	}
	// Stdout carries the protocol; diagnostics go to the standard logger.
	for _, issue := range pack.Validate() {
		log.Printf("pack %s: %s", pack.ID, issue)
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, service.New(pack).Serve)
}
