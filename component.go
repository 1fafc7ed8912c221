package foreman

import (
	"reflect"
	"strings"
)

// ComponentID is the dense identifier of a component or tag kind. IDs are assigned
// monotonically from 0 at first registration and are stable for the lifetime of the process.
// Component and tag ids share one namespace: id k is bit k in every entity mask.
type ComponentID uint32

// componentInfo records a registered component or tag kind. Names are kept only for
// diagnostics.
type componentInfo struct {
	id       ComponentID
	name     string
	tag      bool
	newStore func(w *World) storeAPI
}

// componentRegistry is process-global, matching the id stability contract. Access is not
// synchronized: registration and worlds share the single-threaded cooperative model.
var componentRegistry = struct {
	byType     map[reflect.Type]ComponentID
	tagsByName map[string]ComponentID
	infos      []componentInfo
}{
	byType:     make(map[reflect.Type]ComponentID),
	tagsByName: make(map[string]ComponentID),
}

// ComponentIDOf returns the dense id for component type T, registering T on first use.
func ComponentIDOf[T any]() ComponentID {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if id, ok := componentRegistry.byType[t]; ok {
		return id
	}
	id := ComponentID(len(componentRegistry.infos))
	componentRegistry.byType[t] = id
	componentRegistry.infos = append(componentRegistry.infos, componentInfo{
		id:   id,
		name: shortTypeName(t),
		newStore: func(w *World) storeAPI {
			return newStore[T](w, id)
		},
	})
	return id
}

// Tag is a degenerate component kind carrying no payload. It exists only as a bit in entity
// masks and is matched by families like any component.
type Tag struct {
	id   ComponentID
	name string
}

// NewTag returns the tag named name, registering it on first use. Tags share the component id
// namespace.
func NewTag(name string) Tag {
	if id, ok := componentRegistry.tagsByName[name]; ok {
		return Tag{id: id, name: name}
	}
	id := ComponentID(len(componentRegistry.infos))
	componentRegistry.tagsByName[name] = id
	componentRegistry.infos = append(componentRegistry.infos, componentInfo{
		id:   id,
		name: name,
		tag:  true,
	})
	return Tag{id: id, name: name}
}

// ID returns the tag's dense id.
func (t Tag) ID() ComponentID {
	return t.id
}

// Name returns the tag's registration name.
func (t Tag) Name() string {
	return t.name
}

// registeredComponentCount returns the number of component and tag kinds registered so far.
func registeredComponentCount() int {
	return len(componentRegistry.infos)
}

// componentName returns the diagnostic name for id, or "?" for an unknown id.
func componentName(id ComponentID) string {
	if int(id) >= len(componentRegistry.infos) {
		return "?"
	}
	return componentRegistry.infos[id].name
}

// isTag reports whether id names a payloadless tag kind.
func isTag(id ComponentID) bool {
	return int(id) < len(componentRegistry.infos) && componentRegistry.infos[id].tag
}

// shortTypeName trims the package path off a reflected type name.
func shortTypeName(t reflect.Type) string {
	name := t.String()
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}
