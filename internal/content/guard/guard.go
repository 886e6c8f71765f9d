// Package guard compiles and evaluates the optional `when` expressions that
// gate outcome actions on the roll context.
package guard

import (
	"fmt"
	"slices"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Env is the data a guard expression can see.
type Env struct {
	CampaignID string
	SceneID    string
	LocationID string
	NodeID     string
	Tags       []string
	Danger     int
	Depth      int
}

func (e Env) values() map[string]any {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return map[string]any{
		"campaign_id": e.CampaignID,
		"scene_id":    e.SceneID,
		"location_id": e.LocationID,
		"node_id":     e.NodeID,
		"tags":        tags,
		"danger":      e.Danger,
		"depth":       e.Depth,
		"has": func(tag string) bool {
			return slices.ContainsFunc(tags, func(candidate string) bool {
				return strings.EqualFold(candidate, tag)
			})
		},
	}
}

// Program is a compiled guard.
type Program struct {
	source  string
	program *vm.Program
}

// Compile compiles a boolean guard expression.
func Compile(source string) (*Program, error) {
	program, err := expr.Compile(source, expr.Env(Env{}.values()), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile guard %q: %w", source, err)
	}
	return &Program{source: source, program: program}, nil
}

// Eval runs the guard against env.
func (p *Program) Eval(env Env) (bool, error) {
	out, err := expr.Run(p.program, env.values())
	if err != nil {
		return false, fmt.Errorf("run guard %q: %w", p.source, err)
	}
	ok, isBool := out.(bool)
	if !isBool {
		return false, fmt.Errorf("run guard %q: result is %T, not bool", p.source, out)
	}
	return ok, nil
}
