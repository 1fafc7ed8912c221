package foreman_test

import (
	"fmt"

	"github.com/TheBitDrifter/foreman"
)

// Position is a simple component for 2D coordinates
type Position struct {
	X float64
	Y float64
}

// Velocity is a simple component for 2D movement
type Velocity struct {
	X float64
	Y float64
}

// Name is a simple component for entity identification
type Name struct {
	Value string
}

// MoveSystem advances every positioned, moving entity once per tick
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
	pos.X += vel.X
	pos.Y += vel.Y
}

// Example shows basic foreman usage with entities, families, and a system
func Example_basic() {
	world, _ := foreman.NewWorld(func(cfg *foreman.WorldConfig) {
		cfg.AddSystem(&MoveSystem{world: cfg.World()})
	})

	// Create stationary entities
	for i := 0; i < 5; i++ {
		world.CreateEntity(func(ed *foreman.EntityEdit) {
			foreman.Add(ed, Position{})
		})
	}

	// Create moving entities
	for i := 0; i < 3; i++ {
		world.CreateEntity(func(ed *foreman.EntityEdit) {
			foreman.Add(ed, Position{})
			foreman.Add(ed, Velocity{X: 1, Y: 2})
		})
	}

	// Create one named moving entity
	player, _ := world.CreateEntity(func(ed *foreman.EntityEdit) {
		foreman.Add(ed, Position{X: 10, Y: 20})
		foreman.Add(ed, Velocity{X: 1, Y: 2})
		foreman.Add(ed, Name{Value: "Player"})
	})

	// Families match entities by component predicate
	moving, _ := world.Family(foreman.FamilyDefinition{
		All: []foreman.ComponentID{
			foreman.ComponentIDOf[Position](),
			foreman.ComponentIDOf[Velocity](),
		},
	})
	fmt.Printf("Found %d entities with position and velocity\n", moving.Len())

	// Tick the world; the move system advances every member
	world.Tick(1.0 / 60.0)

	pos, _ := foreman.StoreFor[Position](world).Get(player)
	name, _ := foreman.StoreFor[Name](world).Get(player)
	fmt.Printf("Updated %s to position (%.1f, %.1f)\n", name.Value, pos.X, pos.Y)

	// Output:
	// Found 4 entities with position and velocity
	// Updated Player to position (11.0, 22.0)
}

// Example_families shows the three predicate parts of a family definition
func Example_families() {
	world, _ := foreman.NewWorld(nil)

	posID := foreman.ComponentIDOf[Position]()
	velID := foreman.ComponentIDOf[Velocity]()
	nameID := foreman.ComponentIDOf[Name]()

	world.CreateEntity(func(ed *foreman.EntityEdit) {
		foreman.Add(ed, Position{})
	})
	world.CreateEntity(func(ed *foreman.EntityEdit) {
		foreman.Add(ed, Position{})
		foreman.Add(ed, Velocity{})
	})
	world.CreateEntity(func(ed *foreman.EntityEdit) {
		foreman.Add(ed, Position{})
		foreman.Add(ed, Name{Value: "still"})
	})

	all, _ := world.Family(foreman.FamilyDefinition{All: []foreman.ComponentID{posID, velID}})
	fmt.Printf("all{position, velocity} matched %d entities\n", all.Len())

	anyOf, _ := world.Family(foreman.FamilyDefinition{Any: []foreman.ComponentID{velID, nameID}})
	fmt.Printf("any{velocity, name} matched %d entities\n", anyOf.Len())

	none, _ := world.Family(foreman.FamilyDefinition{
		All:  []foreman.ComponentID{posID},
		None: []foreman.ComponentID{velID},
	})
	fmt.Printf("all{position} none{velocity} matched %d entities\n", none.Len())

	// Output:
	// all{position, velocity} matched 1 entities
	// any{velocity, name} matched 2 entities
	// all{position} none{velocity} matched 2 entities
}
