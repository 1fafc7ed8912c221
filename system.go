package foreman

// Interval selects how often the scheduler runs a system.
type Interval interface {
	isInterval()
}

// EachFrame runs the system once per world tick.
type EachFrame struct{}

func (EachFrame) isInterval() {}

// Fixed runs the system on a constant step, accumulating real elapsed time. A world tick runs
// the system once per whole Step held in the accumulator (possibly zero times); the fractional
// remainder is reported through Alpha.
type Fixed struct {
	Step float32
}

func (Fixed) isInterval() {}

// System is the basic unit of periodic work.
type System interface {
	Tick()
}

// EntitySystem is a system bound to a single family: the scheduler derives its per-tick work
// as family.ForEach(TickEntity). A value implementing both System and EntitySystem is driven
// as an EntitySystem.
type EntitySystem interface {
	FamilyDefinition() FamilyDefinition
	TickEntity(e Entity)
}

// The scheduler probes systems for the optional capabilities below.

// Initializer runs once during world construction, after configuration completes. Hooks are
// guaranteed registered before the first Init call, so entities emitted here are observed.
type Initializer interface {
	Init()
}

// Enableable is notified on the disabled-to-enabled transition (including startup).
type Enableable interface {
	OnEnable()
}

// Disableable is notified on the enabled-to-disabled transition.
type Disableable interface {
	OnDisable()
}

// Disposer runs during world disposal, in reverse registration order.
type Disposer interface {
	Dispose()
}

// AlphaReceiver receives the residual accumulator ratio of a Fixed-interval system after each
// tick, in [0, 1).
type AlphaReceiver interface {
	Alpha(alpha float32)
}

// EntityAlphaReceiver is the per-entity variant for entity systems; it takes precedence over
// AlphaReceiver when both are implemented.
type EntityAlphaReceiver interface {
	AlphaEntity(e Entity, alpha float32)
}

// IntervalSystem overrides the default EachFrame interval.
type IntervalSystem interface {
	Interval() Interval
}

// EntitySorter attaches a membership comparator to an entity system. With SortAutomatic the
// family is sorted before every iteration pass; with SortManual only when the family's sort
// flag is set, clearing the flag after the sort.
type EntitySorter interface {
	Less(a, b Entity) bool
	Sorting() SortMode
}
