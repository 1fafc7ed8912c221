package foreman

import "testing"

// TestBagPushRemove tests append, swap-removal, and stable removal
func TestBagPushRemove(t *testing.T) {
	var bag EntityBag
	a := Entity{ID: 0}
	b := Entity{ID: 1}
	c := Entity{ID: 2}
	bag.Push(a)
	bag.Push(b)
	bag.Push(c)

	if bag.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", bag.Len())
	}
	if !bag.Remove(b) {
		t.Errorf("Remove(b) reported miss")
	}
	if bag.Remove(b) {
		t.Errorf("Second Remove(b) reported hit")
	}
	if bag.Len() != 2 || bag.Contains(b) {
		t.Errorf("Bag still holds removed entity")
	}
	// Swap-removal moves the last entity into the hole.
	if bag.Get(1) != c {
		t.Errorf("Get(1) = %v, want %v", bag.Get(1), c)
	}

	bag.Clear()
	bag.Push(a)
	bag.Push(b)
	bag.Push(c)
	if !bag.RemoveStable(b) {
		t.Errorf("RemoveStable(b) reported miss")
	}
	if bag.Get(0) != a || bag.Get(1) != c {
		t.Errorf("RemoveStable did not preserve order: %v, %v", bag.Get(0), bag.Get(1))
	}
}

// TestBagSort tests stable comparator sorting
func TestBagSort(t *testing.T) {
	var bag EntityBag
	for _, id := range []uint32{4, 1, 3, 0, 2} {
		bag.Push(Entity{ID: id})
	}
	bag.Sort(func(a, b Entity) bool {
		return a.ID < b.ID
	})
	for i := 0; i < bag.Len(); i++ {
		if bag.Get(i).ID != uint32(i) {
			t.Errorf("Index %d has id %d after sort", i, bag.Get(i).ID)
		}
	}
}

// TestBagClear tests that Clear empties the bag
func TestBagClear(t *testing.T) {
	var bag EntityBag
	bag.Push(Entity{ID: 9})
	bag.Clear()
	if bag.Len() != 0 {
		t.Errorf("Len() = %d after clear, want 0", bag.Len())
	}
	if bag.Contains(Entity{ID: 9}) {
		t.Errorf("Cleared bag still contains entity")
	}
}
