package foreman

import (
	"fmt"
	"math"
)

// Entity is an immutable generational handle identifying a logical object. The id indexes
// internal arrays; the generation is bumped every time the id is recycled so stale handles
// can be detected in O(1). Two entities are equal iff both fields match.
type Entity struct {
	ID         uint32
	Generation uint32
}

// None is the reserved sentinel handle. It never identifies a live entity.
var None = Entity{ID: math.MaxUint32}

// IsNone reports whether e is the reserved sentinel.
func (e Entity) IsNone() bool {
	return e == None
}

func (e Entity) String() string {
	if e.IsNone() {
		return "Entity(none)"
	}
	return fmt.Sprintf("Entity(%d:%d)", e.ID, e.Generation)
}

// entityAllocator issues entity handles and recycles freed ids. A recycled id is reissued
// with a generation one greater than the last handle issued for it; fresh ids start at
// generation 0.
type entityAllocator struct {
	gens     []uint32 // generation of the most recently issued handle per id
	alive    []bool
	recycled []uint32
	active   EntityBag // live entities in allocation order
}

func newEntityAllocator() *entityAllocator {
	return &entityAllocator{}
}

// allocate returns a handle with an unused id, preferring recycled ids.
func (a *entityAllocator) allocate() Entity {
	var e Entity
	if n := len(a.recycled); n > 0 {
		id := a.recycled[n-1]
		a.recycled = a.recycled[:n-1]
		a.gens[id]++
		a.alive[id] = true
		e = Entity{ID: id, Generation: a.gens[id]}
	} else {
		id := uint32(len(a.gens))
		a.gens = append(a.gens, 0)
		a.alive = append(a.alive, true)
		e = Entity{ID: id}
	}
	a.active.Push(e)
	return e
}

// allocateWithID issues the specific id, used by snapshot restore. An unissued id causes all
// intermediate ids to be issued as recycled first; an id already on the recycle list is
// reused directly. A live id reports failure.
func (a *entityAllocator) allocateWithID(id uint32) (Entity, bool) {
	if int(id) < len(a.gens) {
		if a.alive[id] {
			return None, false
		}
		for i, rec := range a.recycled {
			if rec == id {
				a.recycled = append(a.recycled[:i], a.recycled[i+1:]...)
				break
			}
		}
		a.gens[id]++
		a.alive[id] = true
		e := Entity{ID: id, Generation: a.gens[id]}
		a.active.Push(e)
		return e, true
	}
	for next := uint32(len(a.gens)); next < id; next++ {
		a.gens = append(a.gens, 0)
		a.alive = append(a.alive, false)
		a.recycled = append(a.recycled, next)
	}
	a.gens = append(a.gens, 0)
	a.alive = append(a.alive, true)
	e := Entity{ID: id}
	a.active.Push(e)
	return e, true
}

// free recycles e's id and invalidates the current handle. Stale or unknown handles are
// ignored.
func (a *entityAllocator) free(e Entity) {
	if !a.contains(e) {
		return
	}
	a.alive[e.ID] = false
	a.recycled = append(a.recycled, e.ID)
	a.active.RemoveStable(e)
}

// contains reports whether e is live, checking the stored generation.
func (a *entityAllocator) contains(e Entity) bool {
	return int(e.ID) < len(a.gens) && a.alive[e.ID] && a.gens[e.ID] == e.Generation
}

// forEach visits live entities in allocation order. The visit tolerates frees of entities
// other than the one currently visited.
func (a *entityAllocator) forEach(f func(Entity)) {
	snapshot := make([]Entity, a.active.Len())
	copy(snapshot, a.active.slice())
	for _, e := range snapshot {
		if a.contains(e) {
			f(e)
		}
	}
}

// count returns the number of live entities.
func (a *entityAllocator) count() int {
	return a.active.Len()
}

// capacity returns the number of ids ever issued.
func (a *entityAllocator) capacity() int {
	return len(a.gens)
}

// reset drops all state so fresh ids start at 0 again.
func (a *entityAllocator) reset() {
	a.gens = a.gens[:0]
	a.alive = a.alive[:0]
	a.recycled = a.recycled[:0]
	a.active.Clear()
}
