package domain

import (
	"context"
	"fmt"

	"github.com/louisbranch/solo.space/internal/core/dice"
	apperrors "github.com/louisbranch/solo.space/internal/platform/errors"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RollDiceInput represents the MCP tool input for rolling dice.
type RollDiceInput struct {
	Dice     []string `json:"dice" jsonschema:"dice notations to roll in order, such as 2d6+1"`
	Seed     *uint64  `json:"seed,omitempty" jsonschema:"seed of the roll stream; drawn at random when omitted"`
	Sequence uint64   `json:"sequence,omitempty" jsonschema:"number of draws already consumed from the stream"`
}

// RollDiceResult represents the MCP tool output for rolling dice.
type RollDiceResult struct {
	Rolls    []RollDetail `json:"rolls" jsonschema:"results for each notation"`
	Total    int          `json:"total" jsonschema:"sum of all roll totals"`
	Seed     uint64       `json:"seed" jsonschema:"seed used for the roll stream"`
	Sequence uint64       `json:"sequence" jsonschema:"cursor to pass as sequence on the next call"`
}

// RollDiceTool defines the MCP tool schema for rolling dice.
func RollDiceTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "roll_dice",
		Description: "Rolls a pool of dice notations from a seeded stream",
	}
}

// RollDiceHandler rolls a strict dice pool.
func RollDiceHandler(seeds SeedSource) mcp.ToolHandlerFor[RollDiceInput, RollDiceResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input RollDiceInput) (*mcp.CallToolResult, RollDiceResult, error) {
		if len(input.Dice) == 0 {
			return nil, RollDiceResult{}, apperrors.Wrap(apperrors.CodeDiceMissing, dice.ErrMissingDice.Error(), dice.ErrMissingDice)
		}
		notations := make([]dice.Notation, 0, len(input.Dice))
		for _, text := range input.Dice {
			notation, ok := dice.ParseNotationStrict(text)
			if !ok {
				return nil, RollDiceResult{}, &apperrors.Error{
					Code:     apperrors.CodeDiceInvalidSpec,
					Message:  fmt.Sprintf("dice notation %q is invalid", text),
					Metadata: map[string]string{"notation": text},
					Cause:    dice.ErrInvalidDiceSpec,
				}
			}
			notations = append(notations, notation)
		}
		seed, err := resolveSeed(input.Seed, seeds)
		if err != nil {
			return nil, RollDiceResult{}, err
		}

		rolled, err := dice.RollDice(dice.Request{Dice: notations, Seed: seed, Sequence: input.Sequence})
		if err != nil {
			return nil, RollDiceResult{}, fmt.Errorf("roll dice: %w", err)
		}
		rolls := make([]RollDetail, 0, len(rolled.Rolls))
		for _, roll := range rolled.Rolls {
			rolls = append(rolls, rollDetail(roll))
		}
		return nil, RollDiceResult{
			Rolls:    rolls,
			Total:    rolled.Total,
			Seed:     seed,
			Sequence: rolled.Sequence,
		}, nil
	}
}

func rollDetail(roll dice.Roll) RollDetail {
	return RollDetail{
		Notation: roll.Notation,
		Dice:     nonNil(roll.Dice),
		Modifier: roll.Modifier,
		Total:    roll.Total,
	}
}
