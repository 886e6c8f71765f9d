package oracle

import (
	"strings"

	"github.com/louisbranch/solo.space/internal/core/dice"
)

// SceneType is the classification of a new scene.
type SceneType int

const (
	SceneExpected SceneType = iota
	SceneAltered
	SceneInterrupt
)

// String returns the wire label of the scene type.
func (s SceneType) String() string {
	switch s {
	case SceneExpected:
		return "expected"
	case SceneAltered:
		return "altered"
	case SceneInterrupt:
		return "interrupt"
	default:
		return "unknown"
	}
}

// MarshalText encodes the scene type as its label.
func (s SceneType) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseSceneType maps a label back to a SceneType.
func ParseSceneType(label string) (SceneType, bool) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "expected":
		return SceneExpected, true
	case "altered":
		return SceneAltered, true
	case "interrupt":
		return SceneInterrupt, true
	default:
		return SceneExpected, false
	}
}

// ClassifyScene classifies a d10 roll against tension. A roll above tension
// is Expected; otherwise even rolls Interrupt and odd rolls Alter the scene.
func ClassifyScene(tension, roll int) SceneType {
	if roll > tension {
		return SceneExpected
	}
	if roll%2 == 0 {
		return SceneInterrupt
	}
	return SceneAltered
}

// SceneCheck is a rolled scene classification with its twist, if any.
type SceneCheck struct {
	Tension int          `json:"tension"`
	Roll    dice.Roll    `json:"roll"`
	Type    SceneType    `json:"type"`
	Focus   *EventFocus  `json:"focus,omitempty"`
	Meaning *MeaningPair `json:"meaning,omitempty"`
}

// RollScene rolls 1d10 against tension and attaches a twist: a meaning pair
// for an Altered scene, an event focus and meaning pair for an Interrupt.
func RollScene(roller *dice.Roller, tension int, lists Lists) SceneCheck {
	tension = ClampTension(tension)
	roll := roller.Roll("1d10")
	check := SceneCheck{
		Tension: tension,
		Roll:    roll,
		Type:    ClassifyScene(tension, roll.Total),
	}
	switch check.Type {
	case SceneAltered:
		pair := lists.Meaning(roller)
		check.Meaning = &pair
	case SceneInterrupt:
		focus := lists.Focus(roller)
		pair := lists.Meaning(roller)
		check.Focus = &focus
		check.Meaning = &pair
	}
	return check
}
