package oracle

import (
	"testing"

	"github.com/louisbranch/solo.space/internal/core/dice"
)

func TestMeaningUsesCustomLists(t *testing.T) {
	lists := Lists{Actions: []string{"Open"}, Subjects: []string{"Door"}}
	roller := dice.NewRoller(9, 0)
	pair := lists.Meaning(roller)
	if pair.Action != "Open" || pair.Subject != "Door" {
		t.Fatalf("Meaning() = %+v", pair)
	}
	if roller.Sequence() != 2 {
		t.Fatalf("Sequence() = %d, want 2", roller.Sequence())
	}
}

func TestFocusFallsBackToFirstRange(t *testing.T) {
	lists := Lists{Foci: []FocusRange{
		{Min: 101, Max: 200, Focus: "Unreachable"},
		{Min: 300, Max: 400, Focus: "Also unreachable"},
	}}
	focus := lists.Focus(dice.NewRoller(9, 0))
	if focus.Focus != "Unreachable" {
		t.Fatalf("Focus() = %+v, want first range", focus)
	}
}

func TestDefaultFociCoverPercentile(t *testing.T) {
	covered := make(map[int]bool)
	for _, r := range DefaultLists().Foci {
		for v := r.Min; v <= r.Max; v++ {
			if covered[v] {
				t.Fatalf("value %d covered twice", v)
			}
			covered[v] = true
		}
	}
	for v := 1; v <= 100; v++ {
		if !covered[v] {
			t.Fatalf("value %d not covered", v)
		}
	}
}

func TestDefaultListsAreCopies(t *testing.T) {
	lists := DefaultLists()
	lists.Actions[0] = "mutated"
	if DefaultLists().Actions[0] == "mutated" {
		t.Fatal("expected DefaultLists to return a copy")
	}
}
