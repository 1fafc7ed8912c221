// Profiling:
// go build ./profile/entities
// go tool pprof -http=":8000" -nodefraction=0.001 ./entities mem.pprof

package main

import (
	"log"

	"github.com/TheBitDrifter/foreman"
	"github.com/pkg/profile"
)

type comp1 struct {
	V int64
	W int64
}

type comp2 struct {
	V int64
	W int64
}

func main() {
	rounds := 50
	iters := 1000
	entities := 1000
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(rounds, iters, entities)
	p.Stop()
}

func run(rounds, iters, numEntities int) {
	for range rounds {
		world, err := foreman.NewWorld(nil)
		if err != nil {
			log.Fatal(err)
		}
		for range iters {
			entities := make([]foreman.Entity, 0, numEntities)
			for range numEntities {
				e, _ := world.CreateEntity(func(ed *foreman.EntityEdit) {
					foreman.Add(ed, comp1{V: 1, W: 1})
					foreman.Add(ed, comp2{V: 2, W: 2})
				})
				entities = append(entities, e)
			}
			for _, e := range entities {
				world.RemoveEntity(e)
			}
		}
		world.Dispose()
	}
}
