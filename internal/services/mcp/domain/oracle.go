package domain

import (
	"context"
	"strings"

	"github.com/louisbranch/solo.space/internal/core/dice"
	"github.com/louisbranch/solo.space/internal/oracle"
	"github.com/louisbranch/solo.space/internal/oracle/fate"
	apperrors "github.com/louisbranch/solo.space/internal/platform/errors"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ClassifySceneInput represents the MCP tool input for a scene check.
type ClassifySceneInput struct {
	Tension  int     `json:"tension,omitempty" jsonschema:"current tension from 1 to 9; defaults to 5"`
	Roll     *int    `json:"roll,omitempty" jsonschema:"d10 already rolled; classifies without drawing a twist"`
	Seed     *uint64 `json:"seed,omitempty" jsonschema:"seed of the roll stream; drawn at random when omitted"`
	Sequence uint64  `json:"sequence,omitempty" jsonschema:"number of draws already consumed from the stream"`
}

// ClassifySceneResult represents the MCP tool output for a scene check.
type ClassifySceneResult struct {
	Tension   int     `json:"tension" jsonschema:"tension the roll was compared against"`
	Roll      int     `json:"roll" jsonschema:"d10 result"`
	Type      string  `json:"type" jsonschema:"expected, altered or interrupt"`
	FocusRoll int     `json:"focus_roll,omitempty" jsonschema:"d100 rolled on the event focus table"`
	Focus     string  `json:"focus,omitempty" jsonschema:"event focus of an interrupt"`
	Action    string  `json:"action,omitempty" jsonschema:"meaning action word"`
	Subject   string  `json:"subject,omitempty" jsonschema:"meaning subject word"`
	Seed      *uint64 `json:"seed,omitempty" jsonschema:"seed used when the check was rolled"`
	Sequence  uint64  `json:"sequence" jsonschema:"cursor to pass as sequence on the next call"`
}

// UpdateTensionInput represents the MCP tool input for closing a scene.
type UpdateTensionInput struct {
	Tension   int  `json:"tension" jsonschema:"tension before the scene closed"`
	InControl bool `json:"in_control" jsonschema:"whether the protagonists were in control of the scene"`
}

// UpdateTensionResult represents the MCP tool output for closing a scene.
type UpdateTensionResult struct {
	Previous int `json:"previous" jsonschema:"tension before the update, clamped"`
	Tension  int `json:"tension" jsonschema:"tension for the next scene"`
}

// FateQuestionInput represents the MCP tool input for a fate question.
type FateQuestionInput struct {
	Question   string  `json:"question,omitempty" jsonschema:"the yes/no question being asked"`
	Likelihood string  `json:"likelihood" jsonschema:"impossible, very_unlikely, unlikely, fifty_fifty, likely, very_likely or nearly_certain"`
	Tension    int     `json:"tension,omitempty" jsonschema:"current tension from 1 to 9; defaults to 5"`
	Seed       *uint64 `json:"seed,omitempty" jsonschema:"seed of the roll stream; drawn at random when omitted"`
	Sequence   uint64  `json:"sequence,omitempty" jsonschema:"number of draws already consumed from the stream"`
}

// FateQuestionResult represents the MCP tool output for a fate question.
type FateQuestionResult struct {
	Question    string `json:"question,omitempty" jsonschema:"the question that was asked"`
	Likelihood  string `json:"likelihood" jsonschema:"parsed likelihood label"`
	Tension     int    `json:"tension" jsonschema:"tension used for the target"`
	Target      int    `json:"target" jsonschema:"percentile target; rolls at or under it answer yes"`
	Roll        int    `json:"roll" jsonschema:"d100 result"`
	Answer      string `json:"answer" jsonschema:"yes or no"`
	Exceptional bool   `json:"exceptional" jsonschema:"whether the answer is exceptional"`
	RandomEvent bool   `json:"random_event" jsonschema:"whether the roll triggers a random event"`
	Seed        uint64 `json:"seed" jsonschema:"seed used for the roll stream"`
	Sequence    uint64 `json:"sequence" jsonschema:"cursor to pass as sequence on the next call"`
}

// ClassifySceneTool defines the MCP tool schema for scene checks.
func ClassifySceneTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "classify_scene",
		Description: "Rolls or classifies a scene check against tension as expected, altered or interrupt",
	}
}

// UpdateTensionTool defines the MCP tool schema for tension updates.
func UpdateTensionTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "update_tension",
		Description: "Moves tension one step after a scene closes",
	}
}

// FateQuestionTool defines the MCP tool schema for fate questions.
func FateQuestionTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "fate_question",
		Description: "Answers a yes/no question with a percentile roll against likelihood and tension",
	}
}

// ClassifySceneHandler rolls a scene check, or classifies a known roll.
func ClassifySceneHandler(lists oracle.Lists, seeds SeedSource) mcp.ToolHandlerFor[ClassifySceneInput, ClassifySceneResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ClassifySceneInput) (*mcp.CallToolResult, ClassifySceneResult, error) {
		tension := tensionOrDefault(input.Tension)
		if input.Roll != nil {
			return nil, ClassifySceneResult{
				Tension:  tension,
				Roll:     *input.Roll,
				Type:     oracle.ClassifyScene(tension, *input.Roll).String(),
				Sequence: input.Sequence,
			}, nil
		}

		seed, err := resolveSeed(input.Seed, seeds)
		if err != nil {
			return nil, ClassifySceneResult{}, err
		}
		roller := dice.NewRoller(seed, input.Sequence)
		check := oracle.RollScene(roller, tension, lists)
		result := ClassifySceneResult{
			Tension:  check.Tension,
			Roll:     check.Roll.Total,
			Type:     check.Type.String(),
			Seed:     &seed,
			Sequence: roller.Sequence(),
		}
		if check.Focus != nil {
			result.FocusRoll = check.Focus.Roll
			result.Focus = check.Focus.Focus
		}
		if check.Meaning != nil {
			result.Action = check.Meaning.Action
			result.Subject = check.Meaning.Subject
		}
		return nil, result, nil
	}
}

// UpdateTensionHandler applies the end-of-scene tension step.
func UpdateTensionHandler() mcp.ToolHandlerFor[UpdateTensionInput, UpdateTensionResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input UpdateTensionInput) (*mcp.CallToolResult, UpdateTensionResult, error) {
		return nil, UpdateTensionResult{
			Previous: oracle.ClampTension(input.Tension),
			Tension:  oracle.UpdateTension(input.Tension, input.InControl),
		}, nil
	}
}

// FateQuestionHandler answers a fate question.
func FateQuestionHandler(seeds SeedSource) mcp.ToolHandlerFor[FateQuestionInput, FateQuestionResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input FateQuestionInput) (*mcp.CallToolResult, FateQuestionResult, error) {
		likelihood, err := fate.ParseLikelihood(input.Likelihood)
		if err != nil {
			return nil, FateQuestionResult{}, apperrors.Wrap(apperrors.CodeUnknownLikelihood, err.Error(), err)
		}
		seed, err := resolveSeed(input.Seed, seeds)
		if err != nil {
			return nil, FateQuestionResult{}, err
		}
		roller := dice.NewRoller(seed, input.Sequence)
		question := fate.Ask(roller, likelihood, tensionOrDefault(input.Tension))
		return nil, FateQuestionResult{
			Question:    strings.TrimSpace(input.Question),
			Likelihood:  question.Likelihood.String(),
			Tension:     question.Tension,
			Target:      question.Target,
			Roll:        question.Roll.Total,
			Answer:      question.Answer.String(),
			Exceptional: question.Exceptional,
			RandomEvent: question.RandomEvent,
			Seed:        seed,
			Sequence:    roller.Sequence(),
		}, nil
	}
}

// tensionOrDefault treats an omitted tension as the midpoint.
func tensionOrDefault(tension int) int {
	if tension == 0 {
		return oracle.DefaultTension
	}
	return oracle.ClampTension(tension)
}
