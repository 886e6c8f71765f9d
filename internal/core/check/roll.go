package check

import "github.com/louisbranch/solo.space/internal/core/dice"

// RolledCheck pairs an evaluation with the dice that produced it.
type RolledCheck struct {
	Dice       []int      `json:"dice"`
	Evaluation Evaluation `json:"evaluation"`
}

// Roll rolls a d20 for the request and evaluates it. Advantage rolls two
// d20 and keeps the higher, disadvantage keeps the lower.
func Roll(roller *dice.Roller, request Request, modifier int) RolledCheck {
	first := roller.Die(20)
	rolled := []int{first}
	kept := first
	if request.Advantage != AdvantageNone {
		second := roller.Die(20)
		rolled = append(rolled, second)
		if request.Advantage == AdvantageAdvantage && second > kept {
			kept = second
		}
		if request.Advantage == AdvantageDisadvantage && second < kept {
			kept = second
		}
	}
	return RolledCheck{
		Dice:       rolled,
		Evaluation: Evaluate(request, kept, modifier),
	}
}
