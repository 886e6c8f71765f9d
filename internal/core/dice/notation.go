// Package dice parses compact dice notation and rolls it against a
// deterministic, resumable random stream.
package dice

import (
	"strconv"
	"strings"
)

const (
	// MaxCount is the largest number of dice a notation may roll at once.
	MaxCount = 100
	// MaxSides is the largest die size a notation may name.
	MaxSides = 1000
)

// Fallback is rolled whenever a notation cannot be parsed.
var Fallback = Notation{Count: 1, Sides: 100}

// Notation is a parsed <count>d<sides>[+/-<modifier>] expression.
type Notation struct {
	Count    int
	Sides    int
	Modifier int
}

// String renders the canonical form, e.g. "2d6+3" or "1d20".
func (n Notation) String() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(n.Count))
	b.WriteByte('d')
	b.WriteString(strconv.Itoa(n.Sides))
	switch {
	case n.Modifier > 0:
		b.WriteByte('+')
		b.WriteString(strconv.Itoa(n.Modifier))
	case n.Modifier < 0:
		b.WriteString(strconv.Itoa(n.Modifier))
	}
	return b.String()
}

// Min returns the lowest total the notation can produce.
func (n Notation) Min() int {
	return n.Count + n.Modifier
}

// Max returns the highest total the notation can produce.
func (n Notation) Max() int {
	return n.Count*n.Sides + n.Modifier
}

// Valid reports whether the notation can be rolled as-is.
func (n Notation) Valid() bool {
	return n.Count >= 1 && n.Count <= MaxCount && n.Sides >= 1 && n.Sides <= MaxSides
}

// ParseNotation parses text, falling back to 1d100 when it is malformed.
// Parsing never fails.
func ParseNotation(text string) Notation {
	n, ok := parseNotation(text)
	if !ok {
		return Fallback
	}
	return n
}

// ParseNotationStrict parses text and reports whether it was well formed.
func ParseNotationStrict(text string) (Notation, bool) {
	return parseNotation(text)
}

func parseNotation(text string) (Notation, bool) {
	cleaned := strings.ToLower(strings.Join(strings.Fields(text), ""))
	countPart, rest, found := strings.Cut(cleaned, "d")
	if !found {
		return Notation{}, false
	}

	count := 1
	if countPart != "" {
		value, err := strconv.Atoi(countPart)
		if err != nil {
			return Notation{}, false
		}
		count = value
	}

	sidesPart := rest
	modifier := 0
	if idx := strings.IndexAny(rest, "+-"); idx >= 0 {
		sidesPart = rest[:idx]
		modPart := rest[idx+1:]
		if modPart == "" {
			return Notation{}, false
		}
		value, err := strconv.Atoi(modPart)
		if err != nil || value < 0 {
			return Notation{}, false
		}
		if rest[idx] == '-' {
			value = -value
		}
		modifier = value
	}

	if sidesPart == "" {
		return Notation{}, false
	}
	sides, err := strconv.Atoi(sidesPart)
	if err != nil {
		return Notation{}, false
	}

	n := Notation{Count: count, Sides: sides, Modifier: modifier}
	if !n.Valid() {
		return Notation{}, false
	}
	return n, true
}
