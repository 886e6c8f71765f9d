// Package roll executes a single pack table from the command line.
package roll

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/louisbranch/solo.space/internal/content"
	"github.com/louisbranch/solo.space/internal/core/random"
	entrypoint "github.com/louisbranch/solo.space/internal/platform/cmd"
	"github.com/louisbranch/solo.space/internal/tables"
)

// Config holds roll command configuration.
type Config struct {
	PackPath string `env:"SOLO_SPACE_PACK_PATH"`
	Table    string
	// Seed pins the stream; nil draws a fresh seed. An explicit zero is
	// replayed like any other seed.
	Seed     *uint64
	Sequence uint64
	Tags     string
	Danger   int
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.PackPath, "pack", cfg.PackPath, "content pack file (defaults to the embedded starter pack)")
	fs.StringVar(&cfg.Table, "table", "", "table id to roll")
	fs.Func("seed", "seed to roll from (omit to draw a random seed)", func(raw string) error {
		seed, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid seed %q: %w", raw, err)
		}
		cfg.Seed = &seed
		return nil
	})
	fs.Uint64Var(&cfg.Sequence, "sequence", 0, "starting sequence")
	fs.StringVar(&cfg.Tags, "tags", "", "comma-separated context tags")
	fs.IntVar(&cfg.Danger, "danger", 0, "danger modifier visible to guards")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Output is what the command prints.
type Output struct {
	Seed   uint64        `json:"seed,string"`
	Result tables.Result `json:"result"`
}

// Run executes cfg.Table once and writes the result as JSON to out.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	table := strings.TrimSpace(cfg.Table)
	if table == "" {
		return errors.New("table is required")
	}
	pack, err := content.LoadOrStarter(cfg.PackPath)
	if err != nil {
		return err
	}
	var seed uint64
	if cfg.Seed != nil {
		seed = *cfg.Seed
	} else if seed, err = random.NewSeed(); err != nil {
		return fmt.Errorf("generate seed: %w", err)
	}

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceRoll, func(context.Context) error {
		result := tables.FromPack(pack).Execute(table, tables.Context{
			Tags:           splitTags(cfg.Tags),
			DangerModifier: cfg.Danger,
		}, seed, cfg.Sequence)

		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(Output{Seed: seed, Result: result}); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
		return nil
	})
}

func splitTags(raw string) []string {
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
