package foreman

import "fmt"

// NoSuchComponentError is returned by Store.Get when the entity holds no component of the
// store's type. Callers that expect absence should use GetOrNil instead.
type NoSuchComponentError struct {
	Entity    Entity
	Component string
}

func (e NoSuchComponentError) Error() string {
	return fmt.Sprintf("entity %v has no %s component", e.Entity, e.Component)
}

// NoSuchEntityError is returned by Family.First on an empty family.
type NoSuchEntityError struct {
	Family string
}

func (e NoSuchEntityError) Error() string {
	return fmt.Sprintf("family %s holds no entities", e.Family)
}

// NoSuchSystemError is returned by SystemOf when no system of the requested type is registered.
type NoSuchSystemError struct {
	System string
}

func (e NoSuchSystemError) Error() string {
	return fmt.Sprintf("no system of type %s is registered", e.System)
}

// SystemAlreadyAddedError is returned when a second system of the same concrete type is added.
type SystemAlreadyAddedError struct {
	System string
}

func (e SystemAlreadyAddedError) Error() string {
	return fmt.Sprintf("system of type %s is already registered", e.System)
}

// InvalidSystemError is returned when a value that is neither a System nor an EntitySystem is
// passed to AddSystem.
type InvalidSystemError struct {
	Value any
}

func (e InvalidSystemError) Error() string {
	return fmt.Sprintf("invalid system type: %T. Only System or EntitySystem values are allowed", e.Value)
}

// HookAlreadyRegisteredError is returned when a hook slot is assigned a second time.
type HookAlreadyRegisteredError struct {
	Target string
	Kind   string
}

func (e HookAlreadyRegisteredError) Error() string {
	return fmt.Sprintf("%s hook already registered on %s", e.Kind, e.Target)
}

// InvalidFamilyError is returned when a family definition has no all, none, or any parts.
type InvalidFamilyError struct{}

func (e InvalidFamilyError) Error() string {
	return "family definition requires at least one of all, none, any"
}

// TooManyFamiliesError is returned when the per-world family limit is exhausted. The limit is
// fixed by the width of the iteration lock mask.
type TooManyFamiliesError struct {
	Limit int
}

func (e TooManyFamiliesError) Error() string {
	return fmt.Sprintf("family limit reached (%d)", e.Limit)
}

// ConfigurationOrderError is returned when world configuration happens out of phase order:
// injectables, then hooks, then systems, with entity creation only after construction.
type ConfigurationOrderError struct {
	Op string
}

func (e ConfigurationOrderError) Error() string {
	return fmt.Sprintf("%s violates world configuration order (injectables, hooks, systems)", e.Op)
}

// NoSuchResourceError is returned by ResourceOf when no resource of the requested type was
// injected during configuration.
type NoSuchResourceError struct {
	Resource string
}

func (e NoSuchResourceError) Error() string {
	return fmt.Sprintf("no resource of type %s is registered", e.Resource)
}

// InvalidSnapshotError is returned by the wildcard insertion path when a snapshot collaborator
// feeds malformed input.
type InvalidSnapshotError struct {
	Reason string
}

func (e InvalidSnapshotError) Error() string {
	return fmt.Sprintf("invalid snapshot: %s", e.Reason)
}
