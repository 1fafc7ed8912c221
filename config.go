package foreman

import (
	"reflect"

	"go.uber.org/zap"
)

// WorldConfig is the configuration surface handed to the NewWorld closure. Its methods must
// run in phase order: SetLogger and AddResource first, hook registration second (directly on
// the world, families, and stores via World()), AddSystem last. Violations surface as
// ConfigurationOrderError and make NewWorld fail.
type WorldConfig struct {
	world *World
}

// World returns the world under construction, for registering hooks and creating families.
func (c *WorldConfig) World() *World {
	return c.world
}

// SetLogger installs the world's logger. Defaults to a nop logger. Injectable phase only.
func (c *WorldConfig) SetLogger(log *zap.Logger) {
	w := c.world
	if w.cfgPhase > phaseInjectables {
		w.configError(ConfigurationOrderError{Op: "SetLogger after hooks or systems"})
		return
	}
	w.log = log
	w.famLog = log.Named("families")
	w.registry.log = log.Named("registry")
	w.scheduler.log = log.Named("systems")
}

// AddResource injects a shared value looked up by its concrete type via ResourceOf.
// Injectable phase only.
func (c *WorldConfig) AddResource(v any) {
	w := c.world
	if w.cfgPhase > phaseInjectables {
		w.configError(ConfigurationOrderError{Op: "AddResource after hooks or systems"})
		return
	}
	w.resources[reflect.TypeOf(v)] = v
}

// AddSystem registers a system; registration order is execution order. Systems come last in
// the configuration: once one is added, further hook registration fails, because hooks must
// observe the very first entity any system's Init emits.
func (c *WorldConfig) AddSystem(sys any) {
	w := c.world
	w.cfgPhase = phaseSystems
	if err := w.scheduler.add(sys); err != nil {
		w.configError(err)
	}
}

// ResourceOf returns the injected resource of concrete type T.
func ResourceOf[T any](w *World) (T, error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if v, ok := w.resources[t]; ok {
		return v.(T), nil
	}
	var zero T
	return zero, NoSuchResourceError{Resource: t.String()}
}
