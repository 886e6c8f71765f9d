package dice

import "errors"

// ErrMissingDice indicates a roll request had no dice specified.
var ErrMissingDice = errors.New("at least one die must be provided")

// ErrInvalidDiceSpec indicates a die specification has invalid fields.
var ErrInvalidDiceSpec = errors.New("dice must have positive sides and count")

// Request describes a pool of dice rolled from one stream.
type Request struct {
	Dice     []Notation
	Seed     uint64
	Sequence uint64
}

// Result captures every group rolled for a Request.
type Result struct {
	Rolls    []Roll
	Total    int
	Sequence uint64
}

// RollDice rolls each notation in request order from a single stream.
//
// # Determinism
//
// Given the same Seed, Sequence and Dice (including order), RollDice always
// produces the same Result. Result.Sequence is the cursor after the last die.
//
// # Errors
//
// Unlike Roller.Roll, pool requests are strict:
//
//   - At least one notation must be provided, otherwise ErrMissingDice.
//   - Each notation must be Valid, otherwise ErrInvalidDiceSpec.
//
// Example:
//
//	result, err := RollDice(Request{
//	    Dice: []Notation{{Count: 2, Sides: 6}, {Count: 1, Sides: 8}},
//	    Seed: 1,
//	})
func RollDice(request Request) (Result, error) {
	if len(request.Dice) == 0 {
		return Result{}, ErrMissingDice
	}
	for _, n := range request.Dice {
		if !n.Valid() {
			return Result{}, ErrInvalidDiceSpec
		}
	}

	roller := NewRoller(request.Seed, request.Sequence)
	rolls := make([]Roll, 0, len(request.Dice))
	total := 0
	for _, n := range request.Dice {
		roll := roller.RollNotation(n)
		rolls = append(rolls, roll)
		total += roll.Total
	}

	return Result{
		Rolls:    rolls,
		Total:    total,
		Sequence: roller.Sequence(),
	}, nil
}
