package tables

import "github.com/louisbranch/solo.space/internal/core/dice"

// Context is the bookkeeping a resolution carries into nested tables and
// `when` guards. It never changes the arithmetic of a roll.
type Context struct {
	CampaignID     string   `json:"campaign_id"`
	SceneID        string   `json:"scene_id,omitempty"`
	LocationID     string   `json:"location_id,omitempty"`
	NodeID         string   `json:"node_id,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	DangerModifier int      `json:"danger_modifier,omitempty"`
	// Depth is the nesting level of the table being resolved; zero for the
	// top-level call.
	Depth int `json:"depth,omitempty"`
}

// EntryRange identifies the entry a roll selected.
type EntryRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// RollResult is the audit record of one dice roll.
type RollResult struct {
	TableID string     `json:"table_id"`
	Entry   EntryRange `json:"entry"`
	// Conditional marks the synthetic single-point entry recorded for a
	// conditional_roll.
	Conditional bool      `json:"conditional,omitempty"`
	Roll        dice.Roll `json:"roll"`
	// Sequence is the cursor after the roll.
	Sequence uint64 `json:"sequence"`
	Seed     uint64 `json:"seed"`
}

// Node is a location node the caller should materialize.
type Node struct {
	TableID string   `json:"table_id"`
	Type    string   `json:"type"`
	Summary string   `json:"summary"`
	Tags    []string `json:"tags,omitempty"`
}

// Edge is a connection between nodes the caller should materialize.
type Edge struct {
	TableID string   `json:"table_id"`
	Type    string   `json:"type"`
	Summary string   `json:"summary"`
	Tags    []string `json:"tags,omitempty"`
}

// Trap is a hazard the caller should materialize.
type Trap struct {
	TableID        string `json:"table_id"`
	Category       string `json:"category"`
	Trigger        string `json:"trigger"`
	DetectionSkill string `json:"detection_skill,omitempty"`
	DetectionDC    int    `json:"detection_dc,omitempty"`
	DisarmSkill    string `json:"disarm_skill,omitempty"`
	DisarmDC       int    `json:"disarm_dc,omitempty"`
	SaveSkill      string `json:"save_skill,omitempty"`
	SaveDC         int    `json:"save_dc,omitempty"`
	Effect         string `json:"effect,omitempty"`
}

// Result is everything one Execute call produced, in execution order.
type Result struct {
	Rolls []RollResult `json:"rolls"`
	Nodes []Node       `json:"nodes"`
	Edges []Edge       `json:"edges"`
	Traps []Trap       `json:"traps"`
	Logs  []string     `json:"logs"`
	// Sequence is the cursor after the last roll; callers persist it and pass
	// it back as the starting sequence of the next call.
	Sequence uint64 `json:"sequence"`
}

func newResult(sequence uint64) Result {
	return Result{
		Rolls:    []RollResult{},
		Nodes:    []Node{},
		Edges:    []Edge{},
		Traps:    []Trap{},
		Logs:     []string{},
		Sequence: sequence,
	}
}
