package foreman

import (
	"reflect"

	"go.uber.org/zap"
)

// systemEntry tracks per-system scheduler state.
type systemEntry struct {
	value    any
	typ      reflect.Type
	enabled  bool
	interval Interval
	acc      float32
	family   *Family // nil for plain systems
}

// systemScheduler drives registered systems in registration order.
type systemScheduler struct {
	world   *World
	entries []*systemEntry
	log     *zap.Logger
}

func newSystemScheduler(w *World, log *zap.Logger) *systemScheduler {
	return &systemScheduler{world: w, log: log}
}

// add registers a system. Exactly one system per concrete type may be registered; values
// implementing neither System nor EntitySystem are rejected.
func (s *systemScheduler) add(v any) error {
	_, plain := v.(System)
	es, entityBound := v.(EntitySystem)
	if !plain && !entityBound {
		return InvalidSystemError{Value: v}
	}
	typ := reflect.TypeOf(v)
	for _, en := range s.entries {
		if en.typ == typ {
			return SystemAlreadyAddedError{System: typ.String()}
		}
	}
	entry := &systemEntry{
		value:    v,
		typ:      typ,
		enabled:  true,
		interval: EachFrame{},
	}
	if iv, ok := v.(IntervalSystem); ok {
		entry.interval = iv.Interval()
	}
	if entityBound {
		fam, err := s.world.Family(es.FamilyDefinition())
		if err != nil {
			return err
		}
		entry.family = fam
	}
	s.entries = append(s.entries, entry)
	s.log.Debug("system registered",
		zap.String("system", typ.String()),
		zap.Bool("entity_bound", entityBound),
	)
	return nil
}

// init runs Init on every system in registration order, firing OnEnable right after each
// system's Init when that system starts enabled.
func (s *systemScheduler) init() {
	for _, en := range s.entries {
		if in, ok := en.value.(Initializer); ok {
			in.Init()
		}
		if en.enabled {
			if e, ok := en.value.(Enableable); ok {
				e.OnEnable()
			}
		}
	}
}

// tick advances every enabled system, then defensively flushes removals that accumulated
// outside family iteration.
func (s *systemScheduler) tick(dt float32) {
	for _, en := range s.entries {
		if !en.enabled {
			continue
		}
		switch iv := en.interval.(type) {
		case Fixed:
			en.acc += dt
			for en.acc >= iv.Step {
				s.run(en)
				en.acc -= iv.Step
			}
			s.alpha(en, en.acc/iv.Step)
		default:
			s.run(en)
		}
	}
	s.world.registry.flushDeferred()
}

// run executes one tick of a system: plain systems tick directly, entity systems iterate
// their family (sorting first per their sort mode).
func (s *systemScheduler) run(en *systemEntry) {
	if en.family == nil {
		en.value.(System).Tick()
		return
	}
	s.sortIfNeeded(en)
	es := en.value.(EntitySystem)
	en.family.ForEach(es.TickEntity)
}

func (s *systemScheduler) alpha(en *systemEntry, alpha float32) {
	if en.family != nil {
		if ar, ok := en.value.(EntityAlphaReceiver); ok {
			en.family.ForEach(func(e Entity) {
				ar.AlphaEntity(e, alpha)
			})
			return
		}
	}
	if ar, ok := en.value.(AlphaReceiver); ok {
		ar.Alpha(alpha)
	}
}

func (s *systemScheduler) sortIfNeeded(en *systemEntry) {
	sorter, ok := en.value.(EntitySorter)
	if !ok {
		return
	}
	switch sorter.Sorting() {
	case SortAutomatic:
		en.family.Sort(sorter.Less)
	case SortManual:
		if en.family.sortFlagged {
			en.family.Sort(sorter.Less)
			en.family.sortFlagged = false
		}
	}
}

// setEnabled toggles a system by concrete type, firing OnEnable and OnDisable on transitions.
// A system that disables itself mid-tick finishes its current run; the flag is checked at
// invocation.
func (s *systemScheduler) setEnabled(target any, enabled bool) error {
	en := s.entryFor(target)
	if en == nil {
		return NoSuchSystemError{System: reflect.TypeOf(target).String()}
	}
	if en.enabled == enabled {
		return nil
	}
	en.enabled = enabled
	if enabled {
		if e, ok := en.value.(Enableable); ok {
			e.OnEnable()
		}
	} else {
		if d, ok := en.value.(Disableable); ok {
			d.OnDisable()
		}
	}
	return nil
}

// flagSort marks the sort flag of a SortManual entity system's family.
func (s *systemScheduler) flagSort(target any) error {
	en := s.entryFor(target)
	if en == nil || en.family == nil {
		return NoSuchSystemError{System: reflect.TypeOf(target).String()}
	}
	en.family.FlagSort()
	return nil
}

// dispose runs Dispose on every system in reverse registration order.
func (s *systemScheduler) dispose() {
	for i := len(s.entries) - 1; i >= 0; i-- {
		if d, ok := s.entries[i].value.(Disposer); ok {
			d.Dispose()
		}
	}
}

func (s *systemScheduler) entryFor(target any) *systemEntry {
	typ := reflect.TypeOf(target)
	for _, en := range s.entries {
		if en.typ == typ {
			return en
		}
	}
	return nil
}

// SystemOf returns the registered system of concrete type T.
func SystemOf[T any](w *World) (*T, error) {
	for _, en := range w.scheduler.entries {
		if v, ok := en.value.(*T); ok {
			return v, nil
		}
	}
	var zero *T
	return zero, NoSuchSystemError{System: reflect.TypeOf(zero).Elem().String()}
}
