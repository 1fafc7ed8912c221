package foreman

// ComponentHook observes a single component transition. Hooks receive the world, the entity,
// and the component explicitly; they must not capture hidden world state.
type ComponentHook[T any] func(w *World, e Entity, c *T)

// storeAPI is the untyped view of a component store used by the registry for mask-driven
// removal and by the snapshot primitives for wildcard access.
type storeAPI interface {
	componentID() ComponentID
	componentName() string
	removeRaw(e Entity)
	containsRaw(e Entity) bool
	valueRaw(e Entity) (any, bool)
	insertRaw(e Entity, v any) error
	reset()
}

var _ storeAPI = &Store[int]{}

// Store holds every component of type T, as a sparse slice indexed by entity id. A slot is
// non-nil exactly between matching insert and remove; the entity mask bit for the store's id
// agrees with the slot at all times.
type Store[T any] struct {
	world    *World
	id       ComponentID
	slots    []*T
	onAdd    ComponentHook[T]
	onRemove ComponentHook[T]
}

func newStore[T any](w *World, id ComponentID) *Store[T] {
	return &Store[T]{world: w, id: id}
}

// StoreFor returns the world's store for component type T, creating it on first use.
func StoreFor[T any](w *World) *Store[T] {
	id := ComponentIDOf[T]()
	return w.storeByID(id).(*Store[T])
}

// Get returns the component for e, or NoSuchComponentError if absent.
func (s *Store[T]) Get(e Entity) (T, error) {
	if p := s.GetOrNil(e); p != nil {
		return *p, nil
	}
	var zero T
	return zero, NoSuchComponentError{Entity: e, Component: s.componentName()}
}

// GetOrNil returns a pointer to the component for e, or nil if absent. The pointer stays
// valid until the component is removed or replaced.
func (s *Store[T]) GetOrNil(e Entity) *T {
	if int(e.ID) >= len(s.slots) {
		return nil
	}
	return s.slots[e.ID]
}

// Contains reports in O(1) whether e holds a component of this store's type.
func (s *Store[T]) Contains(e Entity) bool {
	return int(e.ID) < len(s.slots) && s.slots[e.ID] != nil
}

// OnAdd registers the add hook. The slot may be assigned at most once.
func (s *Store[T]) OnAdd(h ComponentHook[T]) error {
	if s.onAdd != nil {
		return s.world.configError(HookAlreadyRegisteredError{Target: "store " + s.componentName(), Kind: "add"})
	}
	if err := s.world.hookRegistered("store " + s.componentName()); err != nil {
		return err
	}
	s.onAdd = h
	return nil
}

// OnRemove registers the remove hook. The slot may be assigned at most once.
func (s *Store[T]) OnRemove(h ComponentHook[T]) error {
	if s.onRemove != nil {
		return s.world.configError(HookAlreadyRegisteredError{Target: "store " + s.componentName(), Kind: "remove"})
	}
	if err := s.world.hookRegistered("store " + s.componentName()); err != nil {
		return err
	}
	s.onRemove = h
	return nil
}

// ComponentID returns the dense id of the stored component type.
func (s *Store[T]) ComponentID() ComponentID {
	return s.id
}

// insert sets the component for e. Replacing an existing value is remove-then-insert: the old
// value's remove hook fires, the slot is replaced, then the add hook fires.
func (s *Store[T]) insert(e Entity, v T) {
	if int(e.ID) >= len(s.slots) {
		grown := make([]*T, growSlotLen(len(s.slots), int(e.ID)+1))
		copy(grown, s.slots)
		s.slots = grown
	}
	if old := s.slots[e.ID]; old != nil && s.onRemove != nil {
		s.onRemove(s.world, e, old)
	}
	s.slots[e.ID] = &v
	if s.onAdd != nil {
		s.onAdd(s.world, e, &v)
	}
}

// remove clears the slot for e, reporting whether a component was present. The slot is nulled
// before the remove hook fires, so Contains inside the hook reports false.
func (s *Store[T]) remove(e Entity) bool {
	if !s.Contains(e) {
		return false
	}
	old := s.slots[e.ID]
	s.slots[e.ID] = nil
	if s.onRemove != nil {
		s.onRemove(s.world, e, old)
	}
	return true
}

func (s *Store[T]) componentID() ComponentID {
	return s.id
}

func (s *Store[T]) componentName() string {
	return componentName(s.id)
}

func (s *Store[T]) removeRaw(e Entity) {
	s.remove(e)
}

func (s *Store[T]) containsRaw(e Entity) bool {
	return s.Contains(e)
}

func (s *Store[T]) valueRaw(e Entity) (any, bool) {
	if p := s.GetOrNil(e); p != nil {
		return *p, true
	}
	return nil, false
}

// insertRaw is the wildcard insertion path used by snapshot restore. The dynamic type of v
// must be exactly T.
func (s *Store[T]) insertRaw(e Entity, v any) error {
	tv, ok := v.(T)
	if !ok {
		return InvalidSnapshotError{
			Reason: "value type " + typeNameOf(v) + " does not match component " + s.componentName(),
		}
	}
	s.insert(e, tv)
	return nil
}

func (s *Store[T]) reset() {
	for i := range s.slots {
		s.slots[i] = nil
	}
}

// growSlotLen doubles capacity-style so repeated inserts stay amortized O(1).
func growSlotLen(current, needed int) int {
	grown := max(current*2, 8)
	return max(grown, needed)
}
