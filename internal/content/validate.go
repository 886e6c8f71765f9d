package content

import (
	"fmt"
	"slices"
	"strings"

	"github.com/louisbranch/solo.space/internal/content/guard"
	"github.com/louisbranch/solo.space/internal/core/dice"
)

// Severity grades a validation issue.
type Severity string

const (
	// SeverityError marks a problem that makes part of the pack unreachable.
	SeverityError Severity = "error"
	// SeverityWarning marks a problem the engine recovers from by fallback.
	SeverityWarning Severity = "warning"
)

// Issue is one advisory finding about a pack.
type Issue struct {
	Severity Severity `json:"severity"`
	TableID  string   `json:"table_id,omitempty"`
	Message  string   `json:"message"`
}

func (i Issue) String() string {
	if i.TableID == "" {
		return fmt.Sprintf("%s: %s", i.Severity, i.Message)
	}
	return fmt.Sprintf("%s: table %s: %s", i.Severity, i.TableID, i.Message)
}

// Validate reports problems the engine would paper over with fallbacks.
// None of them stop a pack from being executed.
func (p Pack) Validate() []Issue {
	var issues []Issue
	seen := make(map[string]bool, len(p.Tables))
	ids := make(map[string]bool, len(p.Tables))
	for _, t := range p.Tables {
		ids[t.ID] = true
	}

	for _, t := range p.Tables {
		add := func(severity Severity, format string, args ...any) {
			issues = append(issues, Issue{Severity: severity, TableID: t.ID, Message: fmt.Sprintf(format, args...)})
		}
		if seen[t.ID] {
			add(SeverityError, "duplicate table id; only the first definition is used")
			continue
		}
		seen[t.ID] = true

		notation, ok := dice.ParseNotationStrict(t.Dice)
		if !ok {
			add(SeverityWarning, "dice %q is malformed; rolls fall back to %s", t.Dice, dice.Fallback)
			notation = dice.Fallback
		}
		if len(t.Entries) == 0 {
			add(SeverityError, "table has no entries")
			continue
		}
		for i, e := range t.Entries {
			if e.Min > e.Max {
				add(SeverityWarning, "entry %d range [%d, %d] is inverted", i, e.Min, e.Max)
			}
		}
		if gaps := coverageGaps(notation, t.Entries); len(gaps) > 0 {
			add(SeverityWarning, "totals %s match no entry and fall back to the first entry", strings.Join(gaps, ", "))
		}
		for i, e := range t.Entries {
			for _, msg := range validateActions(e.Actions, ids) {
				add(SeverityWarning, "entry %d: %s", i, msg)
			}
		}
	}
	return issues
}

func validateActions(actions []Action, ids map[string]bool) []string {
	var out []string
	for _, a := range actions {
		if a.When != "" {
			if _, err := guard.Compile(a.When); err != nil {
				out = append(out, err.Error())
			}
		}
		switch a.Type {
		case ActionRollOnTable:
			if !ids[a.Table] {
				out = append(out, fmt.Sprintf("roll_on_table references unknown table %q", a.Table))
			}
		case ActionConditionalRoll:
			if _, ok := dice.ParseNotationStrict(a.Dice); !ok {
				out = append(out, fmt.Sprintf("conditional_roll dice %q is malformed", a.Dice))
			}
			out = append(out, validateActions(a.Then, ids)...)
			out = append(out, validateActions(a.Else, ids)...)
		default:
			if !slices.Contains(KnownActionTypes, a.Type) {
				out = append(out, fmt.Sprintf("action type %q is ignored", a.Type))
			}
		}
	}
	return out
}

// coverageGaps returns the uncovered totals of notation as compact ranges.
func coverageGaps(n dice.Notation, entries []Entry) []string {
	var gaps []string
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		if start == end {
			gaps = append(gaps, fmt.Sprint(start))
		} else {
			gaps = append(gaps, fmt.Sprintf("%d-%d", start, end))
		}
		start = -1
	}
	for total := n.Min(); total <= n.Max(); total++ {
		covered := slices.ContainsFunc(entries, func(e Entry) bool { return e.Contains(total) })
		if !covered && start < 0 {
			start = total
		}
		if covered {
			flush(total - 1)
		}
	}
	flush(n.Max())
	return gaps
}
