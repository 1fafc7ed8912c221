package foreman

// maxFamilies bounds families per world; each family holds one bit in the registry's
// iteration lock mask.
const maxFamilies = 256

// SortMode controls when an iterating system's comparator runs.
type SortMode int

const (
	// SortAutomatic re-sorts the family before every iteration pass.
	SortAutomatic SortMode = iota
	// SortManual sorts only when the sort flag is set, clearing it after the sort.
	SortManual
)

// Family is the incrementally maintained set of entities matching a FamilyDefinition. A world
// holds at most one family per structurally distinct definition; families persist for the
// world's lifetime.
type Family struct {
	world *World
	def   FamilyDefinition
	id    int

	all  *Bitset
	none *Bitset
	any  *Bitset

	members Bitset    // entity id -> membership
	active  EntityBag // dense membership

	depth   int
	iterBuf []Entity

	sortFlagged bool

	onAdd    EntityHook
	onRemove EntityHook
}

func newFamily(w *World, def FamilyDefinition, id int) *Family {
	all, none, any := def.bitsets()
	return &Family{
		world: w,
		def:   def,
		id:    id,
		all:   all,
		none:  none,
		any:   any,
	}
}

// match evaluates the predicate against an entity mask.
func (f *Family) match(m *Bitset) bool {
	if !m.Contains(f.all) {
		return false
	}
	if m.Intersects(f.none) {
		return false
	}
	return f.any.IsEmpty() || m.Intersects(f.any)
}

// onEntityAdded admits a freshly created entity whose mask matches.
func (f *Family) onEntityAdded(e Entity, m *Bitset) {
	if f.match(m) {
		f.insertMember(e)
	}
}

// onEntityConfigChanged reconciles membership after a configure call changed the mask.
func (f *Family) onEntityConfigChanged(e Entity, m *Bitset) {
	member := f.members.Test(int(e.ID))
	matches := f.match(m)
	switch {
	case matches && !member:
		f.insertMember(e)
	case !matches && member:
		f.removeMember(e)
	}
}

// onEntityRemoved evicts a removed entity.
func (f *Family) onEntityRemoved(e Entity) {
	if f.members.Test(int(e.ID)) {
		f.removeMember(e)
	}
}

func (f *Family) insertMember(e Entity) {
	f.members.Set(int(e.ID))
	f.active.Push(e)
	if f.onAdd != nil {
		f.onAdd(f.world, e)
	}
}

func (f *Family) removeMember(e Entity) {
	f.members.Clear(int(e.ID))
	f.active.Remove(e)
	if f.onRemove != nil {
		f.onRemove(f.world, e)
	}
}

// ForEach visits a snapshot of the membership. Entity removals requested inside the callback
// are deferred until the outermost iteration over any family ends; entities added during the
// pass are not visible to it, while entities removed during the pass remain visible (their
// storage stays valid until the deferred flush).
func (f *Family) ForEach(action func(Entity)) {
	var snapshot []Entity
	if f.depth == 0 {
		f.iterBuf = append(f.iterBuf[:0], f.active.slice()...)
		snapshot = f.iterBuf
	} else {
		snapshot = append([]Entity(nil), f.active.slice()...)
	}
	f.depth++
	if f.depth == 1 {
		f.world.registry.addLock(uint32(f.id))
	}
	for _, e := range snapshot {
		action(e)
	}
	f.depth--
	if f.depth == 0 {
		f.world.registry.removeLock(uint32(f.id))
	}
}

// First returns the first entity in membership order, or NoSuchEntityError when empty.
func (f *Family) First() (Entity, error) {
	if f.active.Len() == 0 {
		return None, NoSuchEntityError{Family: f.def.String()}
	}
	return f.active.Get(0), nil
}

// FirstOrNone returns the first entity in membership order, or None when empty.
func (f *Family) FirstOrNone() Entity {
	if f.active.Len() == 0 {
		return None
	}
	return f.active.Get(0)
}

// Sort stably reorders the dense membership by less.
func (f *Family) Sort(less func(a, b Entity) bool) {
	f.active.Sort(less)
}

// FlagSort requests a sort before the next iteration of a SortManual iterating system.
func (f *Family) FlagSort() {
	f.sortFlagged = true
}

// Len returns the membership size.
func (f *Family) Len() int {
	return f.active.Len()
}

// Contains reports whether the live entity e is currently a member.
func (f *Family) Contains(e Entity) bool {
	return f.world.registry.alloc.contains(e) && f.members.Test(int(e.ID))
}

// Definition returns a copy of the family's predicate definition.
func (f *Family) Definition() FamilyDefinition {
	return FamilyDefinition{
		All:  append([]ComponentID(nil), f.def.All...),
		None: append([]ComponentID(nil), f.def.None...),
		Any:  append([]ComponentID(nil), f.def.Any...),
	}
}

// OnAdd registers the membership add hook. The slot may be assigned at most once.
func (f *Family) OnAdd(h EntityHook) error {
	if f.onAdd != nil {
		return f.world.configError(HookAlreadyRegisteredError{Target: f.def.String(), Kind: "add"})
	}
	if err := f.world.hookRegistered(f.def.String()); err != nil {
		return err
	}
	f.onAdd = h
	return nil
}

// OnRemove registers the membership remove hook. The slot may be assigned at most once.
func (f *Family) OnRemove(h EntityHook) error {
	if f.onRemove != nil {
		return f.world.configError(HookAlreadyRegisteredError{Target: f.def.String(), Kind: "remove"})
	}
	if err := f.world.hookRegistered(f.def.String()); err != nil {
		return err
	}
	f.onRemove = h
	return nil
}
