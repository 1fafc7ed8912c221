package foreman

import (
	"fmt"
	"sort"
	"strings"
)

// FamilyDefinition is the declarative predicate a family matches entities against:
// an entity is a member iff it holds every id in All, no id in None, and (when Any is
// non-empty) at least one id in Any. At least one of the three parts must be non-empty.
//
// Definitions are compared structurally: order and duplicates inside each part are irrelevant.
type FamilyDefinition struct {
	All  []ComponentID
	None []ComponentID
	Any  []ComponentID
}

// validate rejects the empty predicate.
func (d FamilyDefinition) validate() error {
	if len(d.All) == 0 && len(d.None) == 0 && len(d.Any) == 0 {
		return InvalidFamilyError{}
	}
	return nil
}

// key returns the canonical structural identity used for family deduplication.
func (d FamilyDefinition) key() string {
	return "all=" + idListKey(d.All) + ";none=" + idListKey(d.None) + ";any=" + idListKey(d.Any)
}

// bitsets compiles the three parts into predicate bitsets.
func (d FamilyDefinition) bitsets() (all, none, any *Bitset) {
	all, none, any = &Bitset{}, &Bitset{}, &Bitset{}
	for _, id := range d.All {
		all.Set(int(id))
	}
	for _, id := range d.None {
		none.Set(int(id))
	}
	for _, id := range d.Any {
		any.Set(int(id))
	}
	return all, none, any
}

func (d FamilyDefinition) String() string {
	return fmt.Sprintf("Family(all=%s none=%s any=%s)", idListNames(d.All), idListNames(d.None), idListNames(d.Any))
}

func idListKey(ids []ComponentID) string {
	sorted := append([]ComponentID(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	var parts []string
	for i, id := range sorted {
		if i > 0 && sorted[i-1] == id {
			continue
		}
		parts = append(parts, fmt.Sprintf("%d", id))
	}
	return strings.Join(parts, ",")
}

func idListNames(ids []ComponentID) string {
	var parts []string
	for _, id := range ids {
		parts = append(parts, componentName(id))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
