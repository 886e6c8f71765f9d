package domain

import (
	"fmt"

	"github.com/louisbranch/solo.space/internal/core/random"
)

// SeedSource draws a seed when a tool call does not pin one.
type SeedSource func() (uint64, error)

func resolveSeed(seed *uint64, source SeedSource) (uint64, error) {
	if seed != nil {
		return *seed, nil
	}
	if source == nil {
		source = random.NewSeed
	}
	drawn, err := source()
	if err != nil {
		return 0, fmt.Errorf("generate seed: %w", err)
	}
	return drawn, nil
}

// RollDetail is one rolled notation.
type RollDetail struct {
	Notation string `json:"notation" jsonschema:"normalized dice notation"`
	Dice     []int  `json:"dice" jsonschema:"individual die results"`
	Modifier int    `json:"modifier" jsonschema:"flat modifier added to the dice"`
	Total    int    `json:"total" jsonschema:"sum of dice plus modifier"`
}

func nonNil[T any](values []T) []T {
	if values == nil {
		return []T{}
	}
	return values
}
