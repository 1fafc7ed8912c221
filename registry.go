package foreman

import (
	"github.com/TheBitDrifter/mask"
	"go.uber.org/zap"
)

// entityRegistry owns the allocator, the per-entity component masks, and the deferred-removal
// protocol. All structural mutation flows through it so families stay notified.
type entityRegistry struct {
	world   *World
	alloc   *entityAllocator
	masks   []*Bitset
	locks   mask.Mask256
	queue   entityOperationsQueue
	marked  Bitset // entity ids queued for deferred removal
	editing Entity // entity inside an enclosing create/configure; None otherwise
	log     *zap.Logger
}

func newEntityRegistry(w *World, log *zap.Logger) *entityRegistry {
	return &entityRegistry{
		world:   w,
		alloc:   newEntityAllocator(),
		editing: None,
		log:     log,
	}
}

// delayed reports whether at least one family iteration is in progress. While true, entity
// removals are queued instead of executed.
func (r *entityRegistry) delayed() bool {
	return !r.locks.IsEmpty()
}

// addLock marks a family's iteration lock bit.
func (r *entityRegistry) addLock(bit uint32) {
	r.locks.Mark(bit)
}

// removeLock releases a family's iteration lock bit and flushes deferred operations once no
// locks remain.
func (r *entityRegistry) removeLock(bit uint32) {
	r.locks.Unmark(bit)
	if r.locks.IsEmpty() {
		r.queue.processAll(r)
	}
}

// flushDeferred drains the removal queue unless iteration locks are still held. The scheduler
// calls it defensively at the end of every tick.
func (r *entityRegistry) flushDeferred() {
	if r.delayed() {
		return
	}
	r.queue.processAll(r)
}

// maskFor returns the component mask for entity id, growing storage as needed.
func (r *entityRegistry) maskFor(id uint32) *Bitset {
	if int(id) >= len(r.masks) {
		grown := make([]*Bitset, growSlotLen(len(r.masks), int(id)+1))
		copy(grown, r.masks)
		r.masks = grown
	}
	if r.masks[id] == nil {
		r.masks[id] = &Bitset{}
	}
	return r.masks[id]
}

// create allocates an entity, runs the configure closure, then notifies families and the
// world-level add hook. Mutations inside the closure take effect in textual order.
func (r *entityRegistry) create(cfg func(*EntityEdit)) Entity {
	e := r.alloc.allocate()
	m := r.maskFor(e.ID)
	m.Reset()
	r.runEdit(e, cfg)
	for _, f := range r.world.families {
		f.onEntityAdded(e, m)
	}
	if h := r.world.entityAdded; h != nil {
		h(r.world, e)
	}
	return e
}

// createWithID is the snapshot-restore path: it issues the requested id through the
// allocator, then proceeds like create.
func (r *entityRegistry) createWithID(id uint32, cfg func(*EntityEdit)) (Entity, error) {
	e, ok := r.alloc.allocateWithID(id)
	if !ok {
		return None, InvalidSnapshotError{Reason: "entity id already live"}
	}
	m := r.maskFor(e.ID)
	m.Reset()
	r.runEdit(e, cfg)
	for _, f := range r.world.families {
		f.onEntityAdded(e, m)
	}
	if h := r.world.entityAdded; h != nil {
		h(r.world, e)
	}
	return e, nil
}

// configure runs the closure against a live entity, then notifies families of the changed
// mask. Reentrant configuration of the entity inside its own enclosing create/configure is
// suppressed: the enclosing call notifies once at the end.
func (r *entityRegistry) configure(e Entity, cfg func(*EntityEdit)) {
	if !r.alloc.contains(e) {
		return
	}
	if r.editing == e {
		r.runEdit(e, cfg)
		return
	}
	r.runEdit(e, cfg)
	m := r.maskFor(e.ID)
	for _, f := range r.world.families {
		f.onEntityConfigChanged(e, m)
	}
}

// runEdit executes the closure with the edit sentinel set, restoring the previous sentinel on
// return so sibling edits still notify.
func (r *entityRegistry) runEdit(e Entity, cfg func(*EntityEdit)) {
	prev := r.editing
	r.editing = e
	if cfg != nil {
		cfg(&EntityEdit{world: r.world, entity: e})
	}
	r.editing = prev
}

// remove removes a live entity, or queues the removal while iteration locks are held.
// Repeated removes of the same handle are no-ops.
func (r *entityRegistry) remove(e Entity) {
	if !r.alloc.contains(e) {
		return
	}
	if r.delayed() {
		if !r.marked.Test(int(e.ID)) {
			r.marked.Set(int(e.ID))
			r.queue.enqueue(removeEntityOperation{entity: e})
		}
		return
	}
	r.doRemove(e)
}

// doRemove executes removal: world hook, family remove hooks in family creation order, then
// component stores walked in descending id order, then mask reset and id recycling.
func (r *entityRegistry) doRemove(e Entity) {
	r.marked.Clear(int(e.ID))
	if h := r.world.entityRemoved; h != nil {
		h(r.world, e)
	}
	for _, f := range r.world.families {
		f.onEntityRemoved(e)
	}
	m := r.maskFor(e.ID)
	walk := m.Clone()
	walk.ForEachSet(func(bit int) {
		if sto := r.world.storeIfPresent(ComponentID(bit)); sto != nil {
			sto.removeRaw(e)
		}
	})
	m.Reset()
	r.alloc.free(e)
}

// removeAll removes every live entity. With clearRecycled the allocator is reset so fresh ids
// start at 0 again; while iteration locks are held the removals are queued and the allocator
// is not reset.
func (r *entityRegistry) removeAll(clearRecycled bool) {
	r.alloc.forEach(func(e Entity) {
		r.remove(e)
	})
	if clearRecycled && !r.delayed() {
		r.alloc.reset()
	}
	r.log.Debug("removed all entities", zap.Bool("clear_recycled", clearRecycled))
}

// has reports whether a live entity's mask holds the bit for id. Unknown or stale entities
// report false.
func (r *entityRegistry) has(e Entity, id ComponentID) bool {
	if !r.alloc.contains(e) || int(e.ID) >= len(r.masks) || r.masks[e.ID] == nil {
		return false
	}
	return r.masks[e.ID].Test(int(id))
}

// isMarkedForRemoval reports whether e sits in the deferred removal queue.
func (r *entityRegistry) isMarkedForRemoval(e Entity) bool {
	return r.alloc.contains(e) && r.marked.Test(int(e.ID))
}

// EntityEdit is the mutation surface handed to create and configure closures. It is valid
// only for the duration of the closure.
type EntityEdit struct {
	world  *World
	entity Entity
}

// Entity returns the entity being configured.
func (ed *EntityEdit) Entity() Entity {
	return ed.entity
}

// World returns the owning world.
func (ed *EntityEdit) World() *World {
	return ed.world
}

// AddTag marks the tag's bit on the entity.
func (ed *EntityEdit) AddTag(t Tag) {
	ed.world.registry.maskFor(ed.entity.ID).Set(int(t.id))
}

// RemoveTag clears the tag's bit on the entity.
func (ed *EntityEdit) RemoveTag(t Tag) {
	ed.world.registry.maskFor(ed.entity.ID).Clear(int(t.id))
}

// Has reports whether the entity currently holds the component or tag id.
func (ed *EntityEdit) Has(id ComponentID) bool {
	return ed.world.registry.maskFor(ed.entity.ID).Test(int(id))
}

// Add sets component v on the entity being configured. Replacing an existing component fires
// the old value's remove hook, then the add hook.
func Add[T any](ed *EntityEdit, v T) {
	s := StoreFor[T](ed.world)
	s.insert(ed.entity, v)
	ed.world.registry.maskFor(ed.entity.ID).Set(int(s.id))
}

// Remove clears component T from the entity being configured. Absent components are no-ops.
func Remove[T any](ed *EntityEdit) {
	s := StoreFor[T](ed.world)
	if s.remove(ed.entity) {
		ed.world.registry.maskFor(ed.entity.ID).Clear(int(s.id))
	}
}

// setByID is the wildcard insertion path used by snapshot restore. Tags take a nil value;
// components take a value whose dynamic type matches the registered kind.
func (ed *EntityEdit) setByID(id ComponentID, v any) error {
	if int(id) >= registeredComponentCount() {
		return InvalidSnapshotError{Reason: "unknown component id"}
	}
	if isTag(id) {
		if v != nil {
			return InvalidSnapshotError{Reason: "tag " + componentName(id) + " carries no value"}
		}
		ed.world.registry.maskFor(ed.entity.ID).Set(int(id))
		return nil
	}
	if v == nil {
		return InvalidSnapshotError{Reason: "component " + componentName(id) + " requires a value"}
	}
	sto := ed.world.storeByID(id)
	if err := sto.insertRaw(ed.entity, v); err != nil {
		return err
	}
	ed.world.registry.maskFor(ed.entity.ID).Set(int(id))
	return nil
}
