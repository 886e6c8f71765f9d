package domain

import (
	"context"
	"strings"

	"github.com/louisbranch/solo.space/internal/core/check"
	"github.com/louisbranch/solo.space/internal/core/dice"
	apperrors "github.com/louisbranch/solo.space/internal/platform/errors"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// EvaluateCheckInput represents the MCP tool input for a skill check.
type EvaluateCheckInput struct {
	Skill              string  `json:"skill" jsonschema:"skill being tested"`
	Ability            string  `json:"ability,omitempty" jsonschema:"ability backing the skill"`
	Kind               string  `json:"kind,omitempty" jsonschema:"single or opposed; defaults to single"`
	Difficulty         int     `json:"difficulty,omitempty" jsonschema:"difficulty, snapped to 5..30 in steps of 5; defaults to 15"`
	OpponentDifficulty int     `json:"opponent_difficulty,omitempty" jsonschema:"opponent difficulty for opposed checks"`
	Advantage          string  `json:"advantage,omitempty" jsonschema:"none, advantage or disadvantage"`
	Stakes             string  `json:"stakes,omitempty" jsonschema:"what happens on a failure"`
	PartialThreshold   *int    `json:"partial_threshold,omitempty" jsonschema:"lowest total that earns a partial success"`
	PartialOutcome     string  `json:"partial_outcome,omitempty" jsonschema:"what a partial success costs"`
	Modifier           int     `json:"modifier,omitempty" jsonschema:"flat modifier added to the d20"`
	Roll               *int    `json:"roll,omitempty" jsonschema:"d20 already rolled; evaluates without drawing"`
	Seed               *uint64 `json:"seed,omitempty" jsonschema:"seed of the roll stream; drawn at random when omitted"`
	Sequence           uint64  `json:"sequence,omitempty" jsonschema:"number of draws already consumed from the stream"`
}

// EvaluateCheckResult represents the MCP tool output for a skill check.
type EvaluateCheckResult struct {
	Skill       string  `json:"skill" jsonschema:"skill tested"`
	Kind        string  `json:"kind" jsonschema:"single or opposed"`
	Advantage   string  `json:"advantage" jsonschema:"advantage state"`
	Difficulty  int     `json:"difficulty" jsonschema:"difficulty the total was compared against"`
	Dice        []int   `json:"dice" jsonschema:"d20 results; two when rolled with advantage or disadvantage"`
	Roll        int     `json:"roll" jsonschema:"d20 kept"`
	Modifier    int     `json:"modifier" jsonschema:"modifier applied"`
	Total       int     `json:"total" jsonschema:"roll plus modifier"`
	Margin      int     `json:"margin" jsonschema:"total minus difficulty"`
	Outcome     string  `json:"outcome" jsonschema:"success, partial_success or failure"`
	Consequence string  `json:"consequence" jsonschema:"narration for the outcome"`
	Seed        *uint64 `json:"seed,omitempty" jsonschema:"seed used when the d20 was rolled"`
	Sequence    uint64  `json:"sequence" jsonschema:"cursor to pass as sequence on the next call"`
}

// EvaluateCheckTool defines the MCP tool schema for skill checks.
func EvaluateCheckTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "evaluate_check",
		Description: "Rolls or evaluates a d20 skill check as success, partial success or failure",
	}
}

// EvaluateCheckHandler evaluates a check, rolling the d20 unless one is given.
func EvaluateCheckHandler(seeds SeedSource) mcp.ToolHandlerFor[EvaluateCheckInput, EvaluateCheckResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input EvaluateCheckInput) (*mcp.CallToolResult, EvaluateCheckResult, error) {
		skill := strings.TrimSpace(input.Skill)
		if skill == "" {
			return nil, EvaluateCheckResult{}, apperrors.New(apperrors.CodeCheckInvalid, "check skill is required")
		}
		request := check.Request{
			Skill:              skill,
			Ability:            strings.TrimSpace(input.Ability),
			Kind:               check.ParseKind(input.Kind),
			Difficulty:         input.Difficulty,
			OpponentDifficulty: input.OpponentDifficulty,
			Advantage:          check.ParseAdvantage(input.Advantage),
			Stakes:             input.Stakes,
			PartialThreshold:   input.PartialThreshold,
			PartialOutcome:     input.PartialOutcome,
		}.WithDefaults()

		result := EvaluateCheckResult{
			Skill:      request.Skill,
			Kind:       request.Kind.String(),
			Advantage:  request.Advantage.String(),
			Difficulty: request.Target(),
			Sequence:   input.Sequence,
		}
		var evaluation check.Evaluation
		if input.Roll != nil {
			evaluation = check.Evaluate(request, *input.Roll, input.Modifier)
			result.Dice = []int{*input.Roll}
		} else {
			seed, err := resolveSeed(input.Seed, seeds)
			if err != nil {
				return nil, EvaluateCheckResult{}, err
			}
			roller := dice.NewRoller(seed, input.Sequence)
			rolled := check.Roll(roller, request, input.Modifier)
			evaluation = rolled.Evaluation
			result.Dice = rolled.Dice
			result.Seed = &seed
			result.Sequence = roller.Sequence()
		}
		result.Roll = evaluation.Roll
		result.Modifier = evaluation.Modifier
		result.Total = evaluation.Total
		result.Margin = evaluation.Margin
		result.Outcome = evaluation.Outcome.String()
		result.Consequence = evaluation.Consequence
		return nil, result, nil
	}
}
