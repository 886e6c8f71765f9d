package domain

import (
	"context"
	"strings"

	"github.com/louisbranch/solo.space/internal/content"
	apperrors "github.com/louisbranch/solo.space/internal/platform/errors"
	"github.com/louisbranch/solo.space/internal/tables"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RollTableInput represents the MCP tool input for executing a table.
type RollTableInput struct {
	TableID    string   `json:"table_id" jsonschema:"id of the table to execute"`
	Seed       *uint64  `json:"seed,omitempty" jsonschema:"seed of the roll stream; drawn at random when omitted"`
	Sequence   uint64   `json:"sequence,omitempty" jsonschema:"number of draws already consumed from the stream"`
	CampaignID string   `json:"campaign_id,omitempty" jsonschema:"campaign the roll belongs to"`
	SceneID    string   `json:"scene_id,omitempty" jsonschema:"scene the roll belongs to"`
	LocationID string   `json:"location_id,omitempty" jsonschema:"location being generated"`
	NodeID     string   `json:"node_id,omitempty" jsonschema:"node being generated"`
	Tags       []string `json:"tags,omitempty" jsonschema:"tags visible to when guards"`
	Danger     int      `json:"danger,omitempty" jsonschema:"danger modifier visible to when guards"`
}

// TableRoll is one roll made while executing a table.
type TableRoll struct {
	TableID     string     `json:"table_id" jsonschema:"table the roll was made on"`
	EntryMin    int        `json:"entry_min" jsonschema:"lower bound of the selected entry"`
	EntryMax    int        `json:"entry_max" jsonschema:"upper bound of the selected entry"`
	Conditional bool       `json:"conditional" jsonschema:"whether the roll was a conditional check"`
	Roll        RollDetail `json:"roll" jsonschema:"dice rolled"`
	Sequence    uint64     `json:"sequence" jsonschema:"cursor after the roll"`
}

// RollTableResult represents the MCP tool output for executing a table.
type RollTableResult struct {
	Seed     uint64        `json:"seed" jsonschema:"seed used for the roll stream"`
	Sequence uint64        `json:"sequence" jsonschema:"cursor to pass as sequence on the next call"`
	Rolls    []TableRoll   `json:"rolls" jsonschema:"rolls in execution order"`
	Nodes    []tables.Node `json:"nodes" jsonschema:"location nodes to create"`
	Edges    []tables.Edge `json:"edges" jsonschema:"connections to create"`
	Traps    []tables.Trap `json:"traps" jsonschema:"traps to create"`
	Logs     []string      `json:"logs" jsonschema:"narration and diagnostic lines"`
}

// TableSummary describes one rollable table.
type TableSummary struct {
	ID    string `json:"id" jsonschema:"table id"`
	Name  string `json:"name" jsonschema:"display name"`
	Scope string `json:"scope" jsonschema:"what the table generates"`
	Dice  string `json:"dice" jsonschema:"dice notation rolled on the table"`
}

// ListTablesInput represents the MCP tool input for listing tables.
type ListTablesInput struct{}

// ListTablesResult represents the MCP tool output for listing tables.
type ListTablesResult struct {
	Tables []TableSummary `json:"tables" jsonschema:"tables in pack order"`
}

// RollTableTool defines the MCP tool schema for executing a table.
func RollTableTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "roll_table",
		Description: "Executes a content-pack table, following nested and conditional rolls",
	}
}

// ListTablesTool defines the MCP tool schema for listing tables.
func ListTablesTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_tables",
		Description: "Lists the tables that roll_table can execute",
	}
}

// RollTableHandler executes a table on engine.
func RollTableHandler(engine *tables.Engine, seeds SeedSource) mcp.ToolHandlerFor[RollTableInput, RollTableResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input RollTableInput) (*mcp.CallToolResult, RollTableResult, error) {
		tableID := strings.TrimSpace(input.TableID)
		if tableID == "" {
			return nil, RollTableResult{}, apperrors.New(apperrors.CodeTableIDEmpty, "table id is required")
		}
		seed, err := resolveSeed(input.Seed, seeds)
		if err != nil {
			return nil, RollTableResult{}, err
		}

		result := engine.Execute(tableID, tables.Context{
			CampaignID:     input.CampaignID,
			SceneID:        input.SceneID,
			LocationID:     input.LocationID,
			NodeID:         input.NodeID,
			Tags:           input.Tags,
			DangerModifier: input.Danger,
		}, seed, input.Sequence)

		rolls := make([]TableRoll, 0, len(result.Rolls))
		for _, roll := range result.Rolls {
			rolls = append(rolls, TableRoll{
				TableID:     roll.TableID,
				EntryMin:    roll.Entry.Min,
				EntryMax:    roll.Entry.Max,
				Conditional: roll.Conditional,
				Roll:        rollDetail(roll.Roll),
				Sequence:    roll.Sequence,
			})
		}
		return nil, RollTableResult{
			Seed:     seed,
			Sequence: result.Sequence,
			Rolls:    rolls,
			Nodes:    result.Nodes,
			Edges:    result.Edges,
			Traps:    result.Traps,
			Logs:     result.Logs,
		}, nil
	}
}

// ListTablesHandler lists the tables loaded in engine.
func ListTablesHandler(engine *tables.Engine) mcp.ToolHandlerFor[ListTablesInput, ListTablesResult] {
	return func(context.Context, *mcp.CallToolRequest, ListTablesInput) (*mcp.CallToolResult, ListTablesResult, error) {
		return nil, ListTablesResult{Tables: summarizeTables(engine.Tables())}, nil
	}
}

func summarizeTables(defs []content.Table) []TableSummary {
	summaries := make([]TableSummary, 0, len(defs))
	for _, t := range defs {
		summaries = append(summaries, TableSummary{ID: t.ID, Name: t.Name, Scope: t.Scope, Dice: t.Dice})
	}
	return summaries
}
