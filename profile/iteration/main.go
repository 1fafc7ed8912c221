// Profiling:
// go build ./profile/iteration
// go tool pprof -http=":8000" -nodefraction=0.001 ./iteration cpu.pprof

package main

import (
	"log"

	"github.com/TheBitDrifter/foreman"
	"github.com/pkg/profile"
)

type position struct {
	X, Y float64
}

type velocity struct {
	X, Y float64
}

type moveSystem struct {
	world *foreman.World
}

func (s *moveSystem) FamilyDefinition() foreman.FamilyDefinition {
	return foreman.FamilyDefinition{
		All: []foreman.ComponentID{
			foreman.ComponentIDOf[position](),
			foreman.ComponentIDOf[velocity](),
		},
	}
}

func (s *moveSystem) TickEntity(e foreman.Entity) {
	pos := foreman.StoreFor[position](s.world).GetOrNil(e)
	vel := foreman.StoreFor[velocity](s.world).GetOrNil(e)
	pos.X += vel.X
	pos.Y += vel.Y
}

func main() {
	ticks := 10000
	entities := 10000

	p := profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	defer p.Stop()

	world, err := foreman.NewWorld(func(cfg *foreman.WorldConfig) {
		cfg.AddSystem(&moveSystem{world: cfg.World()})
	})
	if err != nil {
		log.Fatal(err)
	}
	for range entities {
		world.CreateEntity(func(ed *foreman.EntityEdit) {
			foreman.Add(ed, position{})
			foreman.Add(ed, velocity{X: 1, Y: 1})
		})
	}
	for range ticks {
		world.Tick(1.0 / 60.0)
	}
	world.Dispose()
}
