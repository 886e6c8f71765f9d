// Package content defines the declarative content-pack documents that the
// table engine interprets, and decodes them from YAML or JSON.
package content

import "github.com/louisbranch/solo.space/internal/oracle"

// Action types understood by the table engine. Unknown types are ignored.
const (
	ActionSpawnNode       = "spawn_node"
	ActionSpawnEdge       = "spawn_edge"
	ActionSpawnTrap       = "spawn_trap"
	ActionRollOnTable     = "roll_on_table"
	ActionConditionalRoll = "conditional_roll"
	ActionLog             = "log"
)

// KnownActionTypes lists the action types the engine executes.
var KnownActionTypes = []string{
	ActionSpawnNode,
	ActionSpawnEdge,
	ActionSpawnTrap,
	ActionRollOnTable,
	ActionConditionalRoll,
	ActionLog,
}

// Pack is a versioned collection of tables.
type Pack struct {
	ID      string        `json:"id" yaml:"id"`
	Version string        `json:"version" yaml:"version"`
	Name    string        `json:"name,omitempty" yaml:"name,omitempty"`
	Tables  []Table       `json:"tables" yaml:"tables"`
	Oracle  *oracle.Lists `json:"oracle,omitempty" yaml:"oracle,omitempty"`
}

// Table returns the table with id, if present.
func (p Pack) Table(id string) (Table, bool) {
	for _, t := range p.Tables {
		if t.ID == id {
			return t, true
		}
	}
	return Table{}, false
}

// OracleLists returns the pack's oracle lists, or the built-in defaults.
func (p Pack) OracleLists() oracle.Lists {
	if p.Oracle == nil {
		return oracle.Lists{}
	}
	return *p.Oracle
}

// Table is a rollable table definition.
type Table struct {
	ID      string  `json:"id" yaml:"id"`
	Name    string  `json:"name" yaml:"name"`
	Scope   string  `json:"scope" yaml:"scope"`
	Dice    string  `json:"dice" yaml:"dice"`
	Entries []Entry `json:"entries" yaml:"entries"`
}

// Entry is an inclusive range of totals and the actions it triggers.
type Entry struct {
	Min     int      `json:"min" yaml:"min"`
	Max     int      `json:"max" yaml:"max"`
	Actions []Action `json:"actions,omitempty" yaml:"actions,omitempty"`
}

// Contains reports whether total falls within [Min, Max].
func (e Entry) Contains(total int) bool {
	return total >= e.Min && total <= e.Max
}

// Action is one outcome effect, discriminated by Type. Only the fields that
// belong to Type are meaningful.
type Action struct {
	Type string `json:"type" yaml:"type"`
	When string `json:"when,omitempty" yaml:"when,omitempty"`

	// spawn_node / spawn_edge
	NodeType string   `json:"node_type,omitempty" yaml:"node_type,omitempty"`
	EdgeType string   `json:"edge_type,omitempty" yaml:"edge_type,omitempty"`
	Summary  string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Tags     []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// spawn_trap
	Category       string `json:"category,omitempty" yaml:"category,omitempty"`
	Trigger        string `json:"trigger,omitempty" yaml:"trigger,omitempty"`
	DetectionSkill string `json:"detection_skill,omitempty" yaml:"detection_skill,omitempty"`
	DetectionDC    int    `json:"detection_dc,omitempty" yaml:"detection_dc,omitempty"`
	DisarmSkill    string `json:"disarm_skill,omitempty" yaml:"disarm_skill,omitempty"`
	DisarmDC       int    `json:"disarm_dc,omitempty" yaml:"disarm_dc,omitempty"`
	SaveSkill      string `json:"save_skill,omitempty" yaml:"save_skill,omitempty"`
	SaveDC         int    `json:"save_dc,omitempty" yaml:"save_dc,omitempty"`
	Effect         string `json:"effect,omitempty" yaml:"effect,omitempty"`

	// roll_on_table
	Table string `json:"table,omitempty" yaml:"table,omitempty"`

	// conditional_roll
	Dice      string   `json:"dice,omitempty" yaml:"dice,omitempty"`
	Threshold int      `json:"threshold,omitempty" yaml:"threshold,omitempty"`
	Then      []Action `json:"then,omitempty" yaml:"then,omitempty"`
	Else      []Action `json:"else,omitempty" yaml:"else,omitempty"`

	// log
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}
