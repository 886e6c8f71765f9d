package check

import "strings"

// Kind distinguishes checks against a fixed difficulty from opposed checks.
type Kind int

const (
	// KindSingle is a check against a fixed difficulty.
	KindSingle Kind = iota
	// KindOpposed is a check against an opponent's difficulty.
	KindOpposed
)

// String returns the wire label for the kind.
func (k Kind) String() string {
	switch k {
	case KindSingle:
		return "single"
	case KindOpposed:
		return "opposed"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind as its label.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParseKind maps a label to a Kind. Unknown labels are single-target checks.
func ParseKind(label string) Kind {
	if strings.EqualFold(strings.TrimSpace(label), "opposed") {
		return KindOpposed
	}
	return KindSingle
}

// Advantage is the advantage state of a check.
type Advantage int

const (
	AdvantageNone Advantage = iota
	AdvantageAdvantage
	AdvantageDisadvantage
)

// String returns the wire label for the advantage state.
func (a Advantage) String() string {
	switch a {
	case AdvantageAdvantage:
		return "advantage"
	case AdvantageDisadvantage:
		return "disadvantage"
	default:
		return "none"
	}
}

// MarshalText encodes the advantage state as its label.
func (a Advantage) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// ParseAdvantage maps a label to an Advantage; unknown labels are none.
func ParseAdvantage(label string) Advantage {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "advantage":
		return AdvantageAdvantage
	case "disadvantage":
		return AdvantageDisadvantage
	default:
		return AdvantageNone
	}
}

// Outcome classifies an evaluated check.
type Outcome int

const (
	OutcomeFailure Outcome = iota
	OutcomePartialSuccess
	OutcomeSuccess
)

// String returns the wire label for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomePartialSuccess:
		return "partial_success"
	default:
		return "failure"
	}
}

// MarshalText encodes the outcome as its label.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// SuccessText is the consequence reported for a success.
const SuccessText = "Success."

// PartialFallbackText is reported for a partial success without outcome text.
const PartialFallbackText = "Partial success: you get what you want, at a cost."

// Request is an immutable description of a check. Difficulty values are
// expected to be snapped to the band by the caller.
type Request struct {
	Skill              string
	Ability            string
	Kind               Kind
	Difficulty         int
	OpponentDifficulty int
	Advantage          Advantage
	Stakes             string
	PartialThreshold   *int
	PartialOutcome     string
	Reason             string
}

// Target returns the difficulty the total is compared against.
func (r Request) Target() int {
	if r.Kind == KindOpposed {
		return r.OpponentDifficulty
	}
	return r.Difficulty
}

// Evaluation is the derived result of a check.
type Evaluation struct {
	Roll        int     `json:"roll"`
	Modifier    int     `json:"modifier"`
	Total       int     `json:"total"`
	Margin      int     `json:"margin"`
	Outcome     Outcome `json:"outcome"`
	Consequence string  `json:"consequence"`
}

// Evaluate classifies roll+modifier against the request.
//
// Single-target checks succeed at total >= difficulty and partially succeed
// at total >= partial threshold when one is set. Opposed checks have no
// partial tier.
func Evaluate(request Request, roll, modifier int) Evaluation {
	total := roll + modifier
	target := request.Target()

	outcome := OutcomeFailure
	switch {
	case MeetsDifficulty(total, target):
		outcome = OutcomeSuccess
	case request.Kind == KindSingle && request.PartialThreshold != nil && total >= *request.PartialThreshold:
		outcome = OutcomePartialSuccess
	}

	return Evaluation{
		Roll:        roll,
		Modifier:    modifier,
		Total:       total,
		Margin:      Margin(total, target),
		Outcome:     outcome,
		Consequence: consequence(request, outcome),
	}
}

func consequence(request Request, outcome Outcome) string {
	switch outcome {
	case OutcomeSuccess:
		return SuccessText
	case OutcomePartialSuccess:
		if text := strings.TrimSpace(request.PartialOutcome); text != "" {
			return text
		}
		return PartialFallbackText
	default:
		return request.Stakes
	}
}
