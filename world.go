package foreman

import (
	"errors"
	"reflect"

	"go.uber.org/zap"
)

// EntityHook observes an entity lifecycle or family membership transition.
type EntityHook func(w *World, e Entity)

// ComponentValue pairs a component id with its value for snapshot enumeration. Tags carry a
// nil Value.
type ComponentValue struct {
	ID    ComponentID
	Value any
}

// activeWorld is the scoped current-world handle, valid only while a world is being
// configured and initialized. It lets systems constructed inside the configuration closure
// bind to their world without being passed it explicitly. Configuration is not concurrent.
var activeWorld *World

// ActiveWorld returns the world currently under construction, or nil outside configuration.
func ActiveWorld() *World {
	return activeWorld
}

// World aggregates the ECS runtime: the entity registry, per-type component stores, families,
// and the system scheduler. All state is owned by the world; ticking is single-threaded
// cooperative.
type World struct {
	log    *zap.Logger
	famLog *zap.Logger

	registry  *entityRegistry
	scheduler *systemScheduler

	families    []*Family // creation order
	familyCache Cache[*Family]

	stores    []storeAPI
	resources map[reflect.Type]any

	entityAdded   EntityHook
	entityRemoved EntityHook

	delta float32

	configuring bool
	cfgPhase    int
	cfgErrs     []error

	disposed bool
}

// Configuration phases: injectables, then hooks, then systems. Regressing is a
// ConfigurationOrderError.
const (
	phaseInjectables = iota
	phaseHooks
	phaseSystems
)

// NewWorld constructs a world from a configuration closure. The closure runs in three ordered
// phases: (a) injectables (logger, resources), (b) hooks (world, family, store), (c) systems.
// Configuration errors are fatal: NewWorld fails rather than return a half-built world. After
// the closure, systems are initialized in registration order; hooks observe every entity they
// emit.
func NewWorld(cfg func(*WorldConfig)) (*World, error) {
	w := &World{
		log:         zap.NewNop(),
		familyCache: FactoryNewCache[*Family](maxFamilies),
		resources:   make(map[reflect.Type]any),
	}
	w.famLog = w.log
	w.registry = newEntityRegistry(w, w.log)
	w.scheduler = newSystemScheduler(w, w.log)

	activeWorld = w
	defer func() { activeWorld = nil }()

	w.configuring = true
	if cfg != nil {
		cfg(&WorldConfig{world: w})
	}
	w.configuring = false
	if len(w.cfgErrs) > 0 {
		return nil, errors.Join(w.cfgErrs...)
	}
	w.scheduler.init()
	return w, nil
}

// CreateEntity allocates an entity and runs the configure closure against it, then notifies
// families and the world-level add hook. Entity creation inside the configuration closure is
// a ConfigurationOrderError; create from system Init or later instead.
func (w *World) CreateEntity(cfg func(*EntityEdit)) (Entity, error) {
	if w.configuring {
		return None, w.configError(ConfigurationOrderError{Op: "entity creation during configuration"})
	}
	return w.registry.create(cfg), nil
}

// CreateEntityWithID is the snapshot-restore creation path: it issues the given id, bridging
// any gap with recycled ids.
func (w *World) CreateEntityWithID(id uint32, cfg func(*EntityEdit)) (Entity, error) {
	if w.configuring {
		return None, w.configError(ConfigurationOrderError{Op: "entity creation during configuration"})
	}
	return w.registry.createWithID(id, cfg)
}

// ConfigureEntity runs the closure against a live entity, then notifies families of the
// changed mask. Stale handles are no-ops.
func (w *World) ConfigureEntity(e Entity, cfg func(*EntityEdit)) {
	w.registry.configure(e, cfg)
}

// RemoveEntity removes e, or queues the removal while a family iteration is in progress.
// Stale handles and repeated removes are no-ops.
func (w *World) RemoveEntity(e Entity) {
	w.registry.remove(e)
}

// RemoveAll removes every live entity. With clearRecycled the allocator is reset so fresh ids
// start at 0 again. Called during a family iteration, the removals are deferred and the
// allocator is not reset.
func (w *World) RemoveAll(clearRecycled bool) {
	w.registry.removeAll(clearRecycled)
}

// ForEachEntity visits live entities in allocation order.
func (w *World) ForEachEntity(f func(Entity)) {
	w.registry.alloc.forEach(f)
}

// Contains reports whether e is a live handle.
func (w *World) Contains(e Entity) bool {
	return w.registry.alloc.contains(e)
}

// HasComponent reports whether live entity e holds the component or tag id.
func (w *World) HasComponent(e Entity, id ComponentID) bool {
	return w.registry.has(e, id)
}

// LacksComponent reports whether live entity e does not hold the component or tag id. Stale
// handles lack everything.
func (w *World) LacksComponent(e Entity, id ComponentID) bool {
	return !w.registry.has(e, id)
}

// IsMarkedForRemoval reports whether e is queued for deferred removal.
func (w *World) IsMarkedForRemoval(e Entity) bool {
	return w.registry.isMarkedForRemoval(e)
}

// NumEntities returns the live entity count.
func (w *World) NumEntities() int {
	return w.registry.alloc.count()
}

// Capacity returns the number of entity ids ever issued.
func (w *World) Capacity() int {
	return w.registry.alloc.capacity()
}

// Delta returns the dt passed to the current (or most recent) Tick.
func (w *World) Delta() float32 {
	return w.delta
}

// Family returns the world's family for def, creating and backfilling it on first request.
// Families are deduplicated by structural equality of the definition.
func (w *World) Family(def FamilyDefinition) (*Family, error) {
	if err := def.validate(); err != nil {
		return nil, w.configError(err)
	}
	key := def.key()
	if idx, ok := w.familyCache.GetIndex(key); ok {
		return *w.familyCache.GetItem(idx), nil
	}
	if len(w.families) >= maxFamilies {
		return nil, w.configError(TooManyFamiliesError{Limit: maxFamilies})
	}
	fam := newFamily(w, def, len(w.families))
	if _, err := w.familyCache.Register(key, fam); err != nil {
		return nil, w.configError(TooManyFamiliesError{Limit: maxFamilies})
	}
	w.families = append(w.families, fam)
	w.registry.alloc.forEach(func(e Entity) {
		fam.onEntityAdded(e, w.registry.maskFor(e.ID))
	})
	w.famLog.Debug("family created",
		zap.String("definition", def.String()),
		zap.Int("backfilled", fam.Len()),
	)
	return fam, nil
}

// Tick advances the world by dt: enabled systems run in registration order, then removals
// deferred outside family iteration are flushed.
func (w *World) Tick(dt float32) {
	if w.disposed {
		return
	}
	w.delta = dt
	w.scheduler.tick(dt)
}

// Dispose removes all entities, then disposes systems in reverse registration order. A
// disposed world ignores further ticks.
func (w *World) Dispose() {
	if w.disposed {
		return
	}
	w.registry.removeAll(false)
	w.scheduler.dispose()
	w.disposed = true
	w.log.Debug("world disposed")
}

// OnEntityAdded registers the world-level entity add hook. The slot may be assigned at most
// once.
func (w *World) OnEntityAdded(h EntityHook) error {
	if w.entityAdded != nil {
		return w.configError(HookAlreadyRegisteredError{Target: "world", Kind: "add"})
	}
	if err := w.hookRegistered("world"); err != nil {
		return err
	}
	w.entityAdded = h
	return nil
}

// OnEntityRemoved registers the world-level entity remove hook. The slot may be assigned at
// most once.
func (w *World) OnEntityRemoved(h EntityHook) error {
	if w.entityRemoved != nil {
		return w.configError(HookAlreadyRegisteredError{Target: "world", Kind: "remove"})
	}
	if err := w.hookRegistered("world"); err != nil {
		return err
	}
	w.entityRemoved = h
	return nil
}

// SetSystemEnabled toggles the system with target's concrete type, firing OnEnable and
// OnDisable on transitions. A system disabling itself takes effect on the next tick.
func (w *World) SetSystemEnabled(target any, enabled bool) error {
	return w.scheduler.setEnabled(target, enabled)
}

// FlagSystemSort requests a manual sort for the entity system with target's concrete type.
func (w *World) FlagSystemSort(target any) error {
	return w.scheduler.flagSort(target)
}

// ComponentsOf enumerates the components and tags held by e in ascending id order. Tags carry
// a nil Value. This is a snapshot-collaborator primitive.
func (w *World) ComponentsOf(e Entity) []ComponentValue {
	if !w.registry.alloc.contains(e) {
		return nil
	}
	m := w.registry.maskFor(e.ID)
	var values []ComponentValue
	for i := 0; i < m.Length(); i++ {
		if !m.Test(i) {
			continue
		}
		id := ComponentID(i)
		if isTag(id) {
			values = append(values, ComponentValue{ID: id})
			continue
		}
		if sto := w.storeIfPresent(id); sto != nil {
			if v, ok := sto.valueRaw(e); ok {
				values = append(values, ComponentValue{ID: id, Value: v})
			}
		}
	}
	return values
}

// SetComponentByID is the wildcard insertion path for snapshot restore: it sets the component
// or tag id on e by dynamic value, with full family notification.
func (w *World) SetComponentByID(e Entity, id ComponentID, v any) error {
	if !w.registry.alloc.contains(e) {
		return InvalidSnapshotError{Reason: "entity is not live"}
	}
	var err error
	w.registry.configure(e, func(ed *EntityEdit) {
		err = ed.setByID(id, v)
	})
	return err
}

// RegisteredComponents returns the number of component and tag kinds registered process-wide.
func (w *World) RegisteredComponents() int {
	return registeredComponentCount()
}

// storeByID returns the store for a component id, creating it on first use. Tag ids have no
// store and return nil.
func (w *World) storeByID(id ComponentID) storeAPI {
	if int(id) >= len(w.stores) {
		grown := make([]storeAPI, growSlotLen(len(w.stores), int(id)+1))
		copy(grown, w.stores)
		w.stores = grown
	}
	if w.stores[id] == nil {
		info := componentRegistry.infos[id]
		if info.newStore == nil {
			return nil
		}
		w.stores[id] = info.newStore(w)
	}
	return w.stores[id]
}

// storeIfPresent returns the store for a component id only if this world materialized it.
func (w *World) storeIfPresent(id ComponentID) storeAPI {
	if int(id) >= len(w.stores) {
		return nil
	}
	return w.stores[id]
}

// configError records err as fatal when raised during configuration, and returns it either
// way.
func (w *World) configError(err error) error {
	if w.configuring {
		w.cfgErrs = append(w.cfgErrs, err)
	}
	return err
}

// hookRegistered enforces the configuration phase order for hook registration.
func (w *World) hookRegistered(target string) error {
	if !w.configuring {
		return nil
	}
	if w.cfgPhase > phaseHooks {
		return w.configError(ConfigurationOrderError{Op: "hook registration on " + target + " after systems"})
	}
	w.cfgPhase = phaseHooks
	return nil
}
