// Package weighted keeps small ordered lists of named story entities, each
// carrying a bounded weight that rises when the entity is featured.
package weighted

import (
	"strings"

	"github.com/louisbranch/solo.space/internal/core/dice"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Weight bounds.
const (
	MinWeight = 1
	MaxWeight = 3
)

var lower = cases.Lower(language.Und)

// Key normalizes a display name into the matching key: trimmed, lowercased.
func Key(name string) string {
	return lower.String(strings.TrimSpace(name))
}

// Factory builds the kind-specific value for a newly added entity.
type Factory[T any] func(name string) T

// Entity is one list member.
type Entity[T any] struct {
	Name   string `json:"name"`
	Key    string `json:"key"`
	Weight int    `json:"weight"`
	Value  T      `json:"value"`
}

// List is an insertion-ordered set of entities keyed case-insensitively.
// The zero value is not usable; create lists with New.
type List[T any] struct {
	factory  Factory[T]
	entities []Entity[T]
}

// New creates an empty list. A nil factory yields zero values.
func New[T any](factory Factory[T]) *List[T] {
	if factory == nil {
		factory = func(string) T {
			var zero T
			return zero
		}
	}
	return &List[T]{factory: factory}
}

// Len returns the number of entities.
func (l *List[T]) Len() int {
	return len(l.entities)
}

// Entities returns a copy of the entities in insertion order.
func (l *List[T]) Entities() []Entity[T] {
	return append([]Entity[T](nil), l.entities...)
}

// Get returns the entity matching name, if any.
func (l *List[T]) Get(name string) (Entity[T], bool) {
	key := Key(name)
	for _, e := range l.entities {
		if e.Key == key {
			return e, true
		}
	}
	return Entity[T]{}, false
}

// Restore replaces the contents with previously persisted entities. Entries
// with an empty key or a duplicate key are dropped; weights are clamped.
func (l *List[T]) Restore(entities []Entity[T]) {
	l.entities = l.entities[:0]
	seen := make(map[string]bool, len(entities))
	for _, e := range entities {
		e.Key = Key(e.Name)
		if e.Key == "" || seen[e.Key] {
			continue
		}
		seen[e.Key] = true
		e.Name = strings.TrimSpace(e.Name)
		e.Weight = clampWeight(e.Weight)
		l.entities = append(l.entities, e)
	}
}

// AddNew inserts each name not already present with weight 1, preserving
// its casing for display. Blank names are skipped. It returns the entities
// actually added.
func (l *List[T]) AddNew(names ...string) []Entity[T] {
	var added []Entity[T]
	for _, name := range names {
		display := strings.TrimSpace(name)
		if display == "" {
			continue
		}
		key := Key(display)
		if l.index(key) >= 0 {
			continue
		}
		entity := Entity[T]{
			Name:   display,
			Key:    key,
			Weight: MinWeight,
			Value:  l.factory(display),
		}
		l.entities = append(l.entities, entity)
		added = append(added, entity)
	}
	return added
}

// FeatureExisting raises the weight of every entity matching a name by one
// per mention, up to MaxWeight. Unknown names are ignored.
func (l *List[T]) FeatureExisting(names ...string) {
	for _, name := range names {
		key := Key(name)
		if key == "" {
			continue
		}
		for i := range l.entities {
			if l.entities[i].Key == key && l.entities[i].Weight < MaxWeight {
				l.entities[i].Weight++
			}
		}
	}
}

// Remove deletes every entity matching one of names.
func (l *List[T]) Remove(names ...string) {
	drop := make(map[string]bool, len(names))
	for _, name := range names {
		if key := Key(name); key != "" {
			drop[key] = true
		}
	}
	if len(drop) == 0 {
		return
	}
	kept := l.entities[:0]
	for _, e := range l.entities {
		if !drop[e.Key] {
			kept = append(kept, e)
		}
	}
	clear(l.entities[len(kept):])
	l.entities = kept
}

// Pick draws one entity with probability proportional to its weight,
// consuming one sequence step. It reports false on an empty list without
// drawing.
func (l *List[T]) Pick(roller *dice.Roller) (Entity[T], bool) {
	if len(l.entities) == 0 {
		return Entity[T]{}, false
	}
	total := 0
	for _, e := range l.entities {
		total += e.Weight
	}
	roll := roller.Intn(total)
	cumulative := 0
	for _, e := range l.entities {
		cumulative += e.Weight
		if roll < cumulative {
			return e, true
		}
	}
	return l.entities[len(l.entities)-1], true
}

func (l *List[T]) index(key string) int {
	for i, e := range l.entities {
		if e.Key == key {
			return i
		}
	}
	return -1
}

func clampWeight(weight int) int {
	if weight < MinWeight {
		return MinWeight
	}
	if weight > MaxWeight {
		return MaxWeight
	}
	return weight
}
