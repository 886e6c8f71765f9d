package dice

import (
	"fmt"

	"github.com/louisbranch/solo.space/internal/core/random"
)

// Roll is the audit record of one notation roll.
type Roll struct {
	Notation string `json:"notation"`
	Dice     []int  `json:"dice"`
	Modifier int    `json:"modifier"`
	Total    int    `json:"total"`
}

// String renders the roll as "2d6+3 → [4 5] +3 = 12".
func (r Roll) String() string {
	return fmt.Sprintf("%s → %v %+d = %d", r.Notation, r.Dice, r.Modifier, r.Total)
}

// Roller rolls notations against a seeded stream and counts every die it
// draws. The count is the sequence cursor callers persist to resume later.
//
// A Roller is owned by one roll session and is not safe for concurrent use.
type Roller struct {
	seed     uint64
	sequence uint64
	src      *random.Source
}

// NewRoller returns a Roller for seed that has already consumed sequence
// draws, so rolling continues exactly where a previous session stopped.
func NewRoller(seed, sequence uint64) *Roller {
	src := random.New(seed)
	src.Skip(sequence)
	return &Roller{seed: seed, sequence: sequence, src: src}
}

// Seed returns the seed the roller was constructed with.
func (r *Roller) Seed() uint64 {
	return r.seed
}

// Sequence returns the number of draws consumed from the seed's stream.
func (r *Roller) Sequence() uint64 {
	return r.sequence
}

// Roll parses notation (falling back to 1d100) and rolls it.
func (r *Roller) Roll(notation string) Roll {
	return r.RollNotation(ParseNotation(notation))
}

// RollNotation rolls an already parsed notation. Invalid notations roll the
// fallback instead.
func (r *Roller) RollNotation(n Notation) Roll {
	if !n.Valid() {
		n = Fallback
	}
	dice := make([]int, n.Count)
	total := 0
	for i := range dice {
		dice[i] = r.Die(n.Sides)
		total += dice[i]
	}
	return Roll{
		Notation: n.String(),
		Dice:     dice,
		Modifier: n.Modifier,
		Total:    total + n.Modifier,
	}
}

// Die rolls a single die in [1, sides].
func (r *Roller) Die(sides int) int {
	return r.Intn(sides) + 1
}

// Intn draws one value in [0, n), advancing the sequence by one.
func (r *Roller) Intn(n int) int {
	r.sequence++
	return r.src.NextBounded(n)
}
