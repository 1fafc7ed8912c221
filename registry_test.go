package foreman

import (
	"testing"
)

// TestMaskStoreAgreement tests that entity masks and store slots always agree
func TestMaskStoreAgreement(t *testing.T) {
	w := newTestWorld(t)
	posID := ComponentIDOf[Position]()
	velID := ComponentIDOf[Velocity]()
	dead := NewTag("dead")

	e, _ := w.CreateEntity(func(ed *EntityEdit) {
		Add(ed, Position{X: 1})
		Add(ed, Velocity{X: 2})
		ed.AddTag(dead)
	})

	check := func(stage string) {
		t.Helper()
		if w.HasComponent(e, posID) != StoreFor[Position](w).Contains(e) {
			t.Errorf("%s: position mask and store disagree", stage)
		}
		if w.HasComponent(e, velID) != StoreFor[Velocity](w).Contains(e) {
			t.Errorf("%s: velocity mask and store disagree", stage)
		}
	}

	check("after create")
	if !w.HasComponent(e, dead.ID()) {
		t.Errorf("Tag bit not set")
	}

	w.ConfigureEntity(e, func(ed *EntityEdit) {
		Remove[Velocity](ed)
		ed.RemoveTag(dead)
	})
	check("after configure")
	if w.HasComponent(e, velID) {
		t.Errorf("Velocity bit still set after removal")
	}
	if w.HasComponent(e, dead.ID()) {
		t.Errorf("Tag bit still set after removal")
	}

	w.RemoveEntity(e)
	if w.HasComponent(e, posID) || StoreFor[Position](w).Contains(e) {
		t.Errorf("State survives entity removal")
	}
}

// TestEntityRemovalHookOrder tests world hook, then family hooks, then component hooks in
// descending id order
func TestEntityRemovalHookOrder(t *testing.T) {
	var trace []string

	posID := ComponentIDOf[Position]()
	healthID := ComponentIDOf[Health]()

	w, err := NewWorld(func(cfg *WorldConfig) {
		world := cfg.World()
		world.OnEntityRemoved(func(*World, Entity) {
			trace = append(trace, "world")
		})
		fam, err := world.Family(FamilyDefinition{All: []ComponentID{posID}})
		if err != nil {
			t.Fatalf("Family failed: %v", err)
		}
		fam.OnRemove(func(*World, Entity) {
			trace = append(trace, "family")
		})
		StoreFor[Position](world).OnRemove(func(*World, Entity, *Position) {
			trace = append(trace, "component:position")
		})
		StoreFor[Health](world).OnRemove(func(*World, Entity, *Health) {
			trace = append(trace, "component:health")
		})
	})
	if err != nil {
		t.Fatalf("NewWorld failed: %v", err)
	}

	e, _ := w.CreateEntity(func(ed *EntityEdit) {
		Add(ed, Position{})
		Add(ed, Health{})
	})
	trace = trace[:0]
	w.RemoveEntity(e)

	// Component hooks fire in descending type-id order, as emitted by the mask walk.
	want := []string{"world", "family", "component:position", "component:health"}
	if healthID > posID {
		want = []string{"world", "family", "component:health", "component:position"}
	}
	if len(trace) != len(want) {
		t.Fatalf("Hook trace %v, want %v", trace, want)
	}
	for i := range want {
		if trace[i] != want[i] {
			t.Errorf("Trace[%d] = %s, want %s", i, trace[i], want[i])
		}
	}
}

// TestRemoveIdempotence tests that repeated and stale removes are no-ops
func TestRemoveIdempotence(t *testing.T) {
	w := newTestWorld(t)

	removals := 0
	w.OnEntityRemoved(func(*World, Entity) {
		removals++
	})

	e, _ := w.CreateEntity(func(ed *EntityEdit) {
		Add(ed, Position{})
	})
	w.RemoveEntity(e)
	w.RemoveEntity(e)

	if removals != 1 {
		t.Errorf("Remove hook fired %d times, want 1", removals)
	}
	if w.NumEntities() != 0 {
		t.Errorf("NumEntities() = %d, want 0", w.NumEntities())
	}

	// The recycled id must not be affected by the stale handle.
	fresh, _ := w.CreateEntity(nil)
	w.RemoveEntity(e)
	if !w.Contains(fresh) {
		t.Errorf("Stale remove affected recycled entity")
	}
}

// TestReentrantConfigureSuppression tests that nested configure inside create notifies
// families exactly once
func TestReentrantConfigureSuppression(t *testing.T) {
	w := newTestWorld(t)
	fam, err := w.Family(FamilyDefinition{All: []ComponentID{ComponentIDOf[Position]()}})
	if err != nil {
		t.Fatalf("Family failed: %v", err)
	}

	added := 0
	fam.OnAdd(func(*World, Entity) {
		added++
	})

	w.CreateEntity(func(ed *EntityEdit) {
		Add(ed, Position{})
		// Reentrant configure on the entity being created: the enclosing create
		// notifies once at the end.
		ed.World().ConfigureEntity(ed.Entity(), func(inner *EntityEdit) {
			Add(inner, Velocity{})
		})
	})

	if added != 1 {
		t.Errorf("Family add hook fired %d times, want 1", added)
	}
	if fam.Len() != 1 {
		t.Errorf("Family size %d, want 1", fam.Len())
	}
}

// TestConfigureSiblingNotifies tests that configuring a different entity mid-closure
// notifies normally
func TestConfigureSiblingNotifies(t *testing.T) {
	w := newTestWorld(t)
	fam, _ := w.Family(FamilyDefinition{All: []ComponentID{ComponentIDOf[Health]()}})

	sibling, _ := w.CreateEntity(nil)
	w.CreateEntity(func(ed *EntityEdit) {
		ed.World().ConfigureEntity(sibling, func(inner *EntityEdit) {
			Add(inner, Health{Current: 1})
		})
	})

	if !fam.Contains(sibling) {
		t.Errorf("Sibling configure did not notify families")
	}
}

// TestRemoveAll tests bulk removal with and without allocator reset
func TestRemoveAll(t *testing.T) {
	tests := []struct {
		name          string
		clearRecycled bool
		wantCapacity  int
		wantFirstID   uint32
	}{
		{name: "Keep recycled ids", clearRecycled: false, wantCapacity: 5, wantFirstID: 4},
		{name: "Clear recycled ids", clearRecycled: true, wantCapacity: 0, wantFirstID: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t)
			for i := 0; i < 5; i++ {
				w.CreateEntity(func(ed *EntityEdit) {
					Add(ed, Position{})
				})
			}
			w.RemoveAll(tt.clearRecycled)

			if w.NumEntities() != 0 {
				t.Errorf("NumEntities() = %d, want 0", w.NumEntities())
			}
			if got := w.Capacity(); got != tt.wantCapacity {
				t.Errorf("Capacity() = %d, want %d", got, tt.wantCapacity)
			}
			e, _ := w.CreateEntity(nil)
			if e.ID != tt.wantFirstID {
				t.Errorf("First id after RemoveAll: %d, want %d", e.ID, tt.wantFirstID)
			}
		})
	}
}

// TestHasForUnknownEntities tests that membership checks are safe for untouched handles
func TestHasForUnknownEntities(t *testing.T) {
	w := newTestWorld(t)
	posID := ComponentIDOf[Position]()

	ghost := Entity{ID: 4096, Generation: 3}
	if w.HasComponent(ghost, posID) {
		t.Errorf("Unknown entity has component")
	}
	if !w.LacksComponent(ghost, posID) {
		t.Errorf("Unknown entity does not lack component")
	}
	if w.IsMarkedForRemoval(ghost) {
		t.Errorf("Unknown entity marked for removal")
	}
}
