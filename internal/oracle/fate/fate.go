// Package fate resolves yes/no fate questions by comparing a percentile roll
// to a target derived from a likelihood label and the current tension.
package fate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/solo.space/internal/core/dice"
	"github.com/louisbranch/solo.space/internal/oracle"
)

// Target bounds.
const (
	MinTarget = 5
	MaxTarget = 95
	// TensionStep is how many percentile points each step of tension away
	// from the midpoint shifts the target.
	TensionStep = 5
)

// ErrUnknownLikelihood indicates a likelihood label could not be parsed.
var ErrUnknownLikelihood = errors.New("unknown likelihood")

// Likelihood is a qualitative chance label.
type Likelihood int

const (
	Impossible Likelihood = iota
	VeryUnlikely
	Unlikely
	FiftyFifty
	Likely
	VeryLikely
	NearlyCertain
)

var likelihoods = []struct {
	value Likelihood
	label string
	base  int
}{
	{Impossible, "impossible", 5},
	{VeryUnlikely, "very_unlikely", 15},
	{Unlikely, "unlikely", 30},
	{FiftyFifty, "fifty_fifty", 50},
	{Likely, "likely", 70},
	{VeryLikely, "very_likely", 85},
	{NearlyCertain, "nearly_certain", 95},
}

// Likelihoods returns every likelihood in ascending order.
func Likelihoods() []Likelihood {
	out := make([]Likelihood, 0, len(likelihoods))
	for _, l := range likelihoods {
		out = append(out, l.value)
	}
	return out
}

// String returns the canonical label.
func (l Likelihood) String() string {
	for _, entry := range likelihoods {
		if entry.value == l {
			return entry.label
		}
	}
	return "unknown"
}

// MarshalText encodes the likelihood as its label.
func (l Likelihood) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// Base returns the percentile the likelihood maps to at mid tension.
func (l Likelihood) Base() int {
	for _, entry := range likelihoods {
		if entry.value == l {
			return entry.base
		}
	}
	return 50
}

// ParseLikelihood parses a label such as "Very Likely", "very-likely" or
// "50/50".
func ParseLikelihood(label string) (Likelihood, error) {
	normalized := strings.ToLower(strings.TrimSpace(label))
	normalized = strings.NewReplacer(" ", "_", "-", "_").Replace(normalized)
	if normalized == "50/50" {
		return FiftyFifty, nil
	}
	for _, entry := range likelihoods {
		if entry.label == normalized {
			return entry.value, nil
		}
	}
	return FiftyFifty, fmt.Errorf("%w: %q", ErrUnknownLikelihood, label)
}

// Target returns the percentile target for likelihood at tension, shifted
// TensionStep points per step away from the midpoint and clamped to
// [MinTarget, MaxTarget].
func Target(likelihood Likelihood, tension int) int {
	target := likelihood.Base() + (tension-oracle.MidTension)*TensionStep
	if target < MinTarget {
		return MinTarget
	}
	if target > MaxTarget {
		return MaxTarget
	}
	return target
}

// Answer is the result of a fate question.
type Answer int

const (
	No Answer = iota
	Yes
)

// String returns "yes" or "no".
func (a Answer) String() string {
	if a == Yes {
		return "yes"
	}
	return "no"
}

// MarshalText encodes the answer as "yes" or "no".
func (a Answer) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// Resolve answers yes when roll <= target.
func Resolve(roll, target int) Answer {
	if roll <= target {
		return Yes
	}
	return No
}

// Exceptional reports whether the answer is an exceptional yes (roll within
// the bottom fifth of target) or an exceptional no (roll within the top
// fifth of the failure band).
func Exceptional(roll, target int) bool {
	if roll <= target {
		return roll <= target/5
	}
	return roll > 100-(100-target)/5
}

// RandomEvent reports whether a percentile roll triggers a random event:
// doubles (11, 22, ... 99) whose digit does not exceed tension.
func RandomEvent(roll, tension int) bool {
	if roll < 11 || roll > 99 || roll%11 != 0 {
		return false
	}
	return roll/11 <= tension
}

// Question is a fully resolved fate question.
type Question struct {
	Likelihood  Likelihood `json:"likelihood"`
	Tension     int        `json:"tension"`
	Target      int        `json:"target"`
	Roll        dice.Roll  `json:"roll"`
	Answer      Answer     `json:"answer"`
	Exceptional bool       `json:"exceptional"`
	RandomEvent bool       `json:"random_event"`
}

// Ask rolls 1d100 and resolves the question.
func Ask(roller *dice.Roller, likelihood Likelihood, tension int) Question {
	tension = oracle.ClampTension(tension)
	target := Target(likelihood, tension)
	roll := roller.Roll("1d100")
	return Question{
		Likelihood:  likelihood,
		Tension:     tension,
		Target:      target,
		Roll:        roll,
		Answer:      Resolve(roll.Total, target),
		Exceptional: Exceptional(roll.Total, target),
		RandomEvent: RandomEvent(roll.Total, tension),
	}
}
