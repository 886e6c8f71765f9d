package content

import (
	"strings"
	"testing"
)

func TestStarterPackIsClean(t *testing.T) {
	pack := Starter()
	if pack.ID != "starter" {
		t.Fatalf("pack id = %q, want starter", pack.ID)
	}
	for _, id := range []string{"room_contents", "room_feature", "trap_kind", "corridor", "treasure"} {
		if _, ok := pack.Table(id); !ok {
			t.Fatalf("starter pack missing table %q", id)
		}
	}
	if issues := pack.Validate(); len(issues) != 0 {
		t.Fatalf("starter pack issues: %v", issues)
	}
}

func TestValidate(t *testing.T) {
	log := []Action{{Type: ActionLog, Message: "x"}}
	tests := []struct {
		name string
		pack Pack
		want []string
	}{
		{
			name: "duplicate id",
			pack: Pack{ID: "p", Tables: []Table{
				{ID: "a", Dice: "1d2", Entries: []Entry{{Min: 1, Max: 2, Actions: log}}},
				{ID: "a", Dice: "1d2"},
			}},
			want: []string{"error: table a: duplicate table id"},
		},
		{
			name: "coverage gap",
			pack: Pack{ID: "p", Tables: []Table{
				{ID: "a", Dice: "1d6", Entries: []Entry{{Min: 1, Max: 2}, {Min: 5, Max: 5}}},
			}},
			want: []string{"totals 3-4, 6 match no entry"},
		},
		{
			name: "malformed dice",
			pack: Pack{ID: "p", Tables: []Table{
				{ID: "a", Dice: "banana", Entries: []Entry{{Min: 1, Max: 100}}},
			}},
			want: []string{`dice "banana" is malformed`},
		},
		{
			name: "no entries",
			pack: Pack{ID: "p", Tables: []Table{{ID: "a", Dice: "1d6"}}},
			want: []string{"error: table a: table has no entries"},
		},
		{
			name: "inverted range",
			pack: Pack{ID: "p", Tables: []Table{
				{ID: "a", Dice: "1d2", Entries: []Entry{{Min: 1, Max: 2}, {Min: 2, Max: 1}}},
			}},
			want: []string{"entry 1 range [2, 1] is inverted"},
		},
		{
			name: "action problems",
			pack: Pack{ID: "p", Tables: []Table{
				{ID: "a", Dice: "1d1", Entries: []Entry{{Min: 1, Max: 1, Actions: []Action{
					{Type: ActionRollOnTable, Table: "missing"},
					{Type: "teleport"},
					{Type: ActionLog, When: "danger >"},
					{Type: ActionConditionalRoll, Dice: "xd", Then: []Action{{Type: ActionRollOnTable, Table: "gone"}}},
				}}}},
			}},
			want: []string{
				`unknown table "missing"`,
				`action type "teleport" is ignored`,
				`conditional_roll dice "xd" is malformed`,
				`unknown table "gone"`,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := tt.pack.Validate()
			var rendered []string
			for _, issue := range issues {
				rendered = append(rendered, issue.String())
			}
			joined := strings.Join(rendered, "\n")
			for _, want := range tt.want {
				if !strings.Contains(joined, want) {
					t.Fatalf("issues missing %q:\n%s", want, joined)
				}
			}
		})
	}
}

func TestValidateGuardCompileError(t *testing.T) {
	pack := Pack{ID: "p", Tables: []Table{
		{ID: "a", Dice: "1d1", Entries: []Entry{{Min: 1, Max: 1, Actions: []Action{
			{Type: ActionLog, When: "danger >"},
		}}}},
	}}
	issues := pack.Validate()
	if len(issues) != 1 {
		t.Fatalf("issues = %v, want exactly one", issues)
	}
	if issues[0].Severity != SeverityWarning {
		t.Fatalf("severity = %s, want warning", issues[0].Severity)
	}
}
