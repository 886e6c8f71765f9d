package tables

import (
	"fmt"
	"slices"

	"github.com/louisbranch/solo.space/internal/content"
	"github.com/louisbranch/solo.space/internal/content/guard"
	"github.com/louisbranch/solo.space/internal/core/dice"
)

// MaxDepth bounds how deeply tables may nest through roll_on_table.
const MaxDepth = 32

// Engine is an immutable set of tables.
type Engine struct {
	order  []string
	tables map[string]content.Table
	guards map[string]compiledGuard
}

type compiledGuard struct {
	program *guard.Program
	err     error
}

// New builds an engine from tables. When two tables share an id the first
// definition wins.
func New(defs []content.Table) *Engine {
	e := &Engine{
		tables: make(map[string]content.Table, len(defs)),
		guards: make(map[string]compiledGuard),
	}
	for _, t := range defs {
		if _, exists := e.tables[t.ID]; exists {
			continue
		}
		e.tables[t.ID] = t
		e.order = append(e.order, t.ID)
		for _, entry := range t.Entries {
			e.compileGuards(entry.Actions)
		}
	}
	return e
}

// FromPack builds an engine from a pack's tables.
func FromPack(pack content.Pack) *Engine {
	return New(pack.Tables)
}

func (e *Engine) compileGuards(actions []content.Action) {
	for _, a := range actions {
		if a.When != "" {
			if _, done := e.guards[a.When]; !done {
				program, err := guard.Compile(a.When)
				e.guards[a.When] = compiledGuard{program: program, err: err}
			}
		}
		e.compileGuards(a.Then)
		e.compileGuards(a.Else)
	}
}

// Table returns the table with id.
func (e *Engine) Table(id string) (content.Table, bool) {
	t, ok := e.tables[id]
	return t, ok
}

// Tables returns the tables in definition order.
func (e *Engine) Tables() []content.Table {
	out := make([]content.Table, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, e.tables[id])
	}
	return out
}

// Execute rolls tableID once and applies the matched entry's actions,
// following nested tables and conditional branches. It never fails: unknown
// tables, malformed dice and unmatched totals resolve through fallbacks and
// diagnostic log lines.
func (e *Engine) Execute(tableID string, ctx Context, seed, sequence uint64) Result {
	r := &resolution{
		engine: e,
		seed:   seed,
		roller: dice.NewRoller(seed, sequence),
		result: newResult(sequence),
	}
	r.result.Sequence = r.execute(tableID, ctx, sequence)
	return r.result
}

// resolution is the state of one top-level Execute call.
type resolution struct {
	engine *Engine
	seed   uint64
	roller *dice.Roller
	result Result
	// stack holds the tables currently being resolved, outermost first.
	stack []string
}

// rollerAt returns a roller positioned at cursor.
func (r *resolution) rollerAt(cursor uint64) *dice.Roller {
	if r.roller.Sequence() != cursor {
		r.roller = dice.NewRoller(r.seed, cursor)
	}
	return r.roller
}

func (r *resolution) logf(format string, args ...any) {
	r.result.Logs = append(r.result.Logs, fmt.Sprintf(format, args...))
}

// execute resolves one table starting at cursor and returns the cursor after
// its last roll.
func (r *resolution) execute(tableID string, ctx Context, cursor uint64) uint64 {
	table, ok := r.engine.tables[tableID]
	if !ok {
		r.logf("unknown table %q", tableID)
		return cursor
	}
	if slices.Contains(r.stack, tableID) {
		r.logf("skipped table %q: already being resolved", tableID)
		return cursor
	}
	if len(r.stack) >= MaxDepth {
		r.logf("skipped table %q: nesting deeper than %d", tableID, MaxDepth)
		return cursor
	}

	roll := r.rollerAt(cursor).Roll(table.Dice)
	cursor = r.roller.Sequence()

	var entry content.Entry
	if len(table.Entries) > 0 {
		entry = table.Entries[0]
		for _, candidate := range table.Entries {
			if candidate.Contains(roll.Total) {
				entry = candidate
				break
			}
		}
	}
	r.result.Rolls = append(r.result.Rolls, RollResult{
		TableID:  tableID,
		Entry:    EntryRange{Min: entry.Min, Max: entry.Max},
		Roll:     roll,
		Sequence: cursor,
		Seed:     r.seed,
	})

	r.stack = append(r.stack, tableID)
	cursor = r.apply(tableID, entry.Actions, ctx, cursor)
	r.stack = r.stack[:len(r.stack)-1]
	return cursor
}

// apply runs actions in order and returns the cursor after the last one.
func (r *resolution) apply(tableID string, actions []content.Action, ctx Context, cursor uint64) uint64 {
	for _, a := range actions {
		if !r.allowed(a, ctx) {
			continue
		}
		switch a.Type {
		case content.ActionSpawnNode:
			r.result.Nodes = append(r.result.Nodes, Node{
				TableID: tableID,
				Type:    a.NodeType,
				Summary: a.Summary,
				Tags:    slices.Clone(a.Tags),
			})
		case content.ActionSpawnEdge:
			r.result.Edges = append(r.result.Edges, Edge{
				TableID: tableID,
				Type:    a.EdgeType,
				Summary: a.Summary,
				Tags:    slices.Clone(a.Tags),
			})
		case content.ActionSpawnTrap:
			r.result.Traps = append(r.result.Traps, Trap{
				TableID:        tableID,
				Category:       a.Category,
				Trigger:        a.Trigger,
				DetectionSkill: a.DetectionSkill,
				DetectionDC:    a.DetectionDC,
				DisarmSkill:    a.DisarmSkill,
				DisarmDC:       a.DisarmDC,
				SaveSkill:      a.SaveSkill,
				SaveDC:         a.SaveDC,
				Effect:         a.Effect,
			})
		case content.ActionRollOnTable:
			nested := ctx
			nested.Depth++
			cursor = r.execute(a.Table, nested, cursor)
		case content.ActionConditionalRoll:
			cursor = r.conditional(tableID, a, ctx, cursor)
		case content.ActionLog:
			r.result.Logs = append(r.result.Logs, a.Message)
		}
	}
	return cursor
}

func (r *resolution) conditional(tableID string, a content.Action, ctx Context, cursor uint64) uint64 {
	roll := r.rollerAt(cursor).Roll(a.Dice)
	cursor = r.roller.Sequence()
	r.result.Rolls = append(r.result.Rolls, RollResult{
		TableID:     tableID,
		Entry:       EntryRange{Min: roll.Total, Max: roll.Total},
		Conditional: true,
		Roll:        roll,
		Sequence:    cursor,
		Seed:        r.seed,
	})
	branch := a.Else
	if roll.Total <= a.Threshold {
		branch = a.Then
	}
	return r.apply(tableID, branch, ctx, cursor)
}

// allowed evaluates the action's guard. Guards that fail to compile or run
// skip the action and leave a log line.
func (r *resolution) allowed(a content.Action, ctx Context) bool {
	if a.When == "" {
		return true
	}
	compiled, ok := r.engine.guards[a.When]
	if !ok {
		program, err := guard.Compile(a.When)
		compiled = compiledGuard{program: program, err: err}
	}
	if compiled.err != nil {
		r.logf("skipped %s action: %v", a.Type, compiled.err)
		return false
	}
	pass, err := compiled.program.Eval(guard.Env{
		CampaignID: ctx.CampaignID,
		SceneID:    ctx.SceneID,
		LocationID: ctx.LocationID,
		NodeID:     ctx.NodeID,
		Tags:       ctx.Tags,
		Danger:     ctx.DangerModifier,
		Depth:      ctx.Depth,
	})
	if err != nil {
		r.logf("skipped %s action: %v", a.Type, err)
		return false
	}
	return pass
}
