package oracle

import "github.com/louisbranch/solo.space/internal/core/dice"

// FocusRange maps an inclusive d100 range to a random-event focus.
type FocusRange struct {
	Min   int    `json:"min" yaml:"min"`
	Max   int    `json:"max" yaml:"max"`
	Focus string `json:"focus" yaml:"focus"`
}

// Lists holds the reference data the oracle draws from. Empty fields fall
// back to the built-in lists.
type Lists struct {
	Actions  []string     `json:"actions,omitempty" yaml:"actions,omitempty"`
	Subjects []string     `json:"subjects,omitempty" yaml:"subjects,omitempty"`
	Foci     []FocusRange `json:"event_focus,omitempty" yaml:"event_focus,omitempty"`
}

// DefaultLists returns the built-in reference lists.
func DefaultLists() Lists {
	return Lists{
		Actions:  append([]string(nil), defaultActions...),
		Subjects: append([]string(nil), defaultSubjects...),
		Foci:     append([]FocusRange(nil), defaultFoci...),
	}
}

func (l Lists) resolved() Lists {
	if len(l.Actions) == 0 {
		l.Actions = defaultActions
	}
	if len(l.Subjects) == 0 {
		l.Subjects = defaultSubjects
	}
	if len(l.Foci) == 0 {
		l.Foci = defaultFoci
	}
	return l
}

// MeaningPair is an action word paired with a subject word.
type MeaningPair struct {
	Action  string `json:"action"`
	Subject string `json:"subject"`
}

// String renders the pair as "Action / Subject".
func (m MeaningPair) String() string {
	return m.Action + " / " + m.Subject
}

// Meaning draws one action and one subject, consuming two sequence steps.
func (l Lists) Meaning(roller *dice.Roller) MeaningPair {
	l = l.resolved()
	action := l.Actions[roller.Intn(len(l.Actions))]
	subject := l.Subjects[roller.Intn(len(l.Subjects))]
	return MeaningPair{Action: action, Subject: subject}
}

// EventFocus is a rolled random-event focus.
type EventFocus struct {
	Roll  int    `json:"roll"`
	Focus string `json:"focus"`
}

// Focus rolls 1d100 on the focus table. A roll no range covers resolves to
// the first range.
func (l Lists) Focus(roller *dice.Roller) EventFocus {
	l = l.resolved()
	roll := roller.Roll("1d100").Total
	chosen := l.Foci[0]
	for _, r := range l.Foci {
		if roll >= r.Min && roll <= r.Max {
			chosen = r
			break
		}
	}
	return EventFocus{Roll: roll, Focus: chosen.Focus}
}
