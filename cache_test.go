package foreman

import (
	"testing"
)

// TestCacheBasicOperations tests the basic operations of the SimpleCache
func TestCacheBasicOperations(t *testing.T) {
	const capacity = 10
	cache := FactoryNewCache[string](capacity)

	items := []string{"item1", "item2", "item3", "item4", "item5"}
	indices := make([]int, len(items))

	for i, item := range items {
		index, err := cache.Register(item, item)
		if err != nil {
			t.Errorf("Failed to register item %s: %v", item, err)
		}
		indices[i] = index

		// Indexes are dense and start at 0.
		if index != i {
			t.Errorf("Index for item %s is %d, expected %d", item, index, i)
		}
	}

	for i, item := range items {
		index, found := cache.GetIndex(item)
		if !found {
			t.Errorf("Item %s not found in cache", item)
		}
		if index != indices[i] {
			t.Errorf("Index for item %s is %d, expected %d", item, index, indices[i])
		}
	}

	for i, item := range items {
		if got := *cache.GetItem(indices[i]); got != item {
			t.Errorf("Item at index %d is %s, expected %s", indices[i], got, item)
		}
		if got := *cache.GetItem32(uint32(indices[i])); got != item {
			t.Errorf("Item at index %d is %s, expected %s", indices[i], got, item)
		}
	}

	if _, found := cache.GetIndex("nonexistent"); found {
		t.Errorf("Found non-existent item in cache")
	}
}

// TestCacheCapacity tests that registration fails once the cache is full
func TestCacheCapacity(t *testing.T) {
	cache := FactoryNewCache[int](2)
	if _, err := cache.Register("a", 1); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := cache.Register("b", 2); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if _, err := cache.Register("c", 3); err == nil {
		t.Errorf("Register succeeded past capacity")
	}

	cache.Clear()
	if _, err := cache.Register("d", 4); err != nil {
		t.Errorf("Register after clear failed: %v", err)
	}
	if _, found := cache.GetIndex("a"); found {
		t.Errorf("Cleared cache still indexes old keys")
	}
}
