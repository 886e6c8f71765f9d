package dice

import (
	"errors"
	"testing"
)

func TestRollDice_Basic(t *testing.T) {
	tests := []struct {
		name    string
		request Request
		wantErr error
	}{
		{
			name:    "single d6",
			request: Request{Dice: []Notation{{Sides: 6, Count: 1}}, Seed: 42},
		},
		{
			name: "2d6 + 1d8",
			request: Request{
				Dice: []Notation{{Sides: 6, Count: 2}, {Sides: 8, Count: 1}},
				Seed: 42,
			},
		},
		{
			name:    "no dice",
			request: Request{Seed: 42},
			wantErr: ErrMissingDice,
		},
		{
			name:    "invalid sides",
			request: Request{Dice: []Notation{{Sides: 0, Count: 1}}, Seed: 42},
			wantErr: ErrInvalidDiceSpec,
		},
		{
			name:    "invalid count",
			request: Request{Dice: []Notation{{Sides: 6, Count: 0}}, Seed: 42},
			wantErr: ErrInvalidDiceSpec,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := RollDice(tt.request)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("RollDice() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				return
			}
			if len(result.Rolls) != len(tt.request.Dice) {
				t.Fatalf("RollDice() got %d rolls, want %d", len(result.Rolls), len(tt.request.Dice))
			}

			total := 0
			draws := 0
			for i, roll := range result.Rolls {
				if len(roll.Dice) != tt.request.Dice[i].Count {
					t.Errorf("Rolls[%d] got %d dice, want %d", i, len(roll.Dice), tt.request.Dice[i].Count)
				}
				total += roll.Total
				draws += len(roll.Dice)
			}
			if result.Total != total {
				t.Errorf("Total = %d, want %d", result.Total, total)
			}
			if result.Sequence != uint64(draws) {
				t.Errorf("Sequence = %d, want %d", result.Sequence, draws)
			}
		})
	}
}

func TestRollDice_MatchesRoller(t *testing.T) {
	result, err := RollDice(Request{
		Dice:     []Notation{{Count: 2, Sides: 12}, {Count: 4, Sides: 6}},
		Seed:     12345,
		Sequence: 5,
	})
	if err != nil {
		t.Fatalf("RollDice() error = %v", err)
	}

	roller := NewRoller(12345, 5)
	first := roller.Roll("2d12")
	second := roller.Roll("4d6")
	if result.Rolls[0].Total != first.Total || result.Rolls[1].Total != second.Total {
		t.Fatalf("pool totals = %d/%d, want %d/%d", result.Rolls[0].Total, result.Rolls[1].Total, first.Total, second.Total)
	}
	if result.Sequence != roller.Sequence() {
		t.Fatalf("Sequence = %d, want %d", result.Sequence, roller.Sequence())
	}
}
