/*
Package foreman provides a lightweight Entity-Component-System (ECS) runtime for games and
simulations.

Foreman groups logically related objects ("entities") as bags of plain-data components and
drives them through ordered systems that iterate over entities matching declarative component
predicates ("families"). Storage is per component type: each component kind lives in its own
sparse store indexed by entity id, and every entity carries a bitmask recording which
component kinds it holds.

Core Concepts:

  - Entity: A generational handle (id + generation) identifying a logical object.
  - Component: A typed value attached to an entity; one store per component type.
  - Tag: A payloadless component; exists only as a bit in the entity mask.
  - Family: A cached set of entities matching an (all, none, any) predicate over masks.
  - System: A unit of periodic work, optionally bound to a family.

Basic Usage:

	type Position struct{ X, Y float64 }
	type Velocity struct{ X, Y float64 }

	type MoveSystem struct {
		world *foreman.World
	}

	func (s *MoveSystem) FamilyDefinition() foreman.FamilyDefinition {
		return foreman.FamilyDefinition{
			All: []foreman.ComponentID{
				foreman.ComponentIDOf[Position](),
				foreman.ComponentIDOf[Velocity](),
			},
		}
	}

	func (s *MoveSystem) TickEntity(e foreman.Entity) {
		pos := foreman.StoreFor[Position](s.world).GetOrNil(e)
		vel := foreman.StoreFor[Velocity](s.world).GetOrNil(e)
		pos.X += vel.X * float64(s.world.Delta())
		pos.Y += vel.Y * float64(s.world.Delta())
	}

	world, err := foreman.NewWorld(func(cfg *foreman.WorldConfig) {
		cfg.AddSystem(&MoveSystem{world: cfg.World()})
	})
	if err != nil {
		// configuration errors are fatal
	}

	world.CreateEntity(func(ed *foreman.EntityEdit) {
		foreman.Add(ed, Position{X: 5})
		foreman.Add(ed, Velocity{X: 1})
	})

	world.Tick(1.0 / 60.0)

Entity removals requested during family iteration are deferred and flushed when the outermost
iteration ends, so systems can freely remove the entities they visit. Other changes (creating
entities, adding or removing components) apply immediately.

Foreman is the scheduling and lifecycle counterpart to the Bappa storage libraries but works
as a standalone library.
*/
package foreman
