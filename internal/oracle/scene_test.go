package oracle

import (
	"testing"

	"github.com/louisbranch/solo.space/internal/core/dice"
)

func TestClassifySceneBoundary(t *testing.T) {
	for _, tension := range []int{1, 5, 9} {
		for roll := 1; roll <= 10; roll++ {
			got := ClassifyScene(tension, roll)
			var want SceneType
			switch {
			case roll > tension:
				want = SceneExpected
			case roll%2 == 0:
				want = SceneInterrupt
			default:
				want = SceneAltered
			}
			if got != want {
				t.Errorf("ClassifyScene(%d, %d) = %v, want %v", tension, roll, got, want)
			}
		}
	}
}

func TestClassifySceneExamples(t *testing.T) {
	tests := []struct {
		tension int
		roll    int
		want    SceneType
	}{
		{5, 3, SceneAltered},
		{5, 4, SceneInterrupt},
		{5, 5, SceneAltered},
		{5, 6, SceneExpected},
		{4, 4, SceneInterrupt},
		{1, 1, SceneAltered},
		{9, 10, SceneExpected},
	}
	for _, tt := range tests {
		if got := ClassifyScene(tt.tension, tt.roll); got != tt.want {
			t.Errorf("ClassifyScene(%d, %d) = %v, want %v", tt.tension, tt.roll, got, tt.want)
		}
	}
}

func TestParseSceneType(t *testing.T) {
	for _, st := range []SceneType{SceneExpected, SceneAltered, SceneInterrupt} {
		got, ok := ParseSceneType(st.String())
		if !ok || got != st {
			t.Fatalf("ParseSceneType(%q) = %v, %v", st.String(), got, ok)
		}
	}
	if _, ok := ParseSceneType("chaos"); ok {
		t.Fatal("expected unknown label to be rejected")
	}
}

func TestRollSceneAltered(t *testing.T) {
	roller := dice.NewRoller(2, 0)
	check := RollScene(roller, 9, Lists{})
	if check.Roll.Total != 1 || check.Type != SceneAltered {
		t.Fatalf("RollScene = roll %d type %v, want 1 altered", check.Roll.Total, check.Type)
	}
	if check.Focus != nil {
		t.Fatalf("unexpected focus %+v", check.Focus)
	}
	if check.Meaning == nil || *check.Meaning != (MeaningPair{Action: "Possess", Subject: "Weapons"}) {
		t.Fatalf("Meaning = %+v", check.Meaning)
	}
	if roller.Sequence() != 3 {
		t.Fatalf("Sequence() = %d, want 3", roller.Sequence())
	}
}

func TestRollSceneInterrupt(t *testing.T) {
	roller := dice.NewRoller(3, 0)
	check := RollScene(roller, 9, Lists{})
	if check.Roll.Total != 4 || check.Type != SceneInterrupt {
		t.Fatalf("RollScene = roll %d type %v, want 4 interrupt", check.Roll.Total, check.Type)
	}
	if check.Focus == nil || *check.Focus != (EventFocus{Roll: 62, Focus: "PC negative"}) {
		t.Fatalf("Focus = %+v", check.Focus)
	}
	if check.Meaning == nil || check.Meaning.String() != "Imprison / Trust" {
		t.Fatalf("Meaning = %+v", check.Meaning)
	}
	if roller.Sequence() != 4 {
		t.Fatalf("Sequence() = %d, want 4", roller.Sequence())
	}
}

func TestRollSceneExpectedHasNoTwist(t *testing.T) {
	roller := dice.NewRoller(1, 0)
	check := RollScene(roller, 1, Lists{})
	if check.Type != SceneExpected {
		t.Fatalf("Type = %v, want expected (roll %d)", check.Type, check.Roll.Total)
	}
	if check.Focus != nil || check.Meaning != nil {
		t.Fatal("expected no twist for an expected scene")
	}
	if roller.Sequence() != 1 {
		t.Fatalf("Sequence() = %d, want 1", roller.Sequence())
	}
}

func TestRollSceneClampsTension(t *testing.T) {
	check := RollScene(dice.NewRoller(4, 0), 42, Lists{})
	if check.Tension != MaxTension {
		t.Fatalf("Tension = %d, want %d", check.Tension, MaxTension)
	}
}
