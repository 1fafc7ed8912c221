package foreman

import (
	"fmt"
	"sort"

	"github.com/TheBitDrifter/bark"
)

// EntityBag is a dense resizable sequence of entities with amortized O(1) append and O(n)
// swap-removal. Bags are not safe against structural changes to themselves mid-iteration;
// callers that mutate while iterating must snapshot first (families do).
type EntityBag struct {
	entities []Entity
}

// Push appends e to the bag.
func (b *EntityBag) Push(e Entity) {
	b.entities = append(b.entities, e)
}

// Remove scans for e and swap-removes it, reporting whether it was present. The relative
// order of the remaining entities is not preserved.
func (b *EntityBag) Remove(e Entity) bool {
	for i, held := range b.entities {
		if held == e {
			last := len(b.entities) - 1
			b.entities[i] = b.entities[last]
			b.entities = b.entities[:last]
			return true
		}
	}
	return false
}

// RemoveStable scans for e and removes it preserving order, reporting whether it was present.
func (b *EntityBag) RemoveStable(e Entity) bool {
	for i, held := range b.entities {
		if held == e {
			b.entities = append(b.entities[:i], b.entities[i+1:]...)
			return true
		}
	}
	return false
}

// Contains scans for e.
func (b *EntityBag) Contains(e Entity) bool {
	for _, held := range b.entities {
		if held == e {
			return true
		}
	}
	return false
}

// Clear empties the bag but keeps the backing storage.
func (b *EntityBag) Clear() {
	b.entities = b.entities[:0]
}

// Len returns the number of entities held.
func (b *EntityBag) Len() int {
	return len(b.entities)
}

// Get returns the entity at index i.
func (b *EntityBag) Get(i int) Entity {
	if i < 0 || i >= len(b.entities) {
		panic(bark.AddTrace(fmt.Errorf("bag index out of range: %d (len %d)", i, len(b.entities))))
	}
	return b.entities[i]
}

// Sort stably reorders the bag by less.
func (b *EntityBag) Sort(less func(a, b Entity) bool) {
	sort.SliceStable(b.entities, func(i, j int) bool {
		return less(b.entities[i], b.entities[j])
	})
}

// slice borrows the backing storage. Callers must not hold it across structural changes.
func (b *EntityBag) slice() []Entity {
	return b.entities
}
