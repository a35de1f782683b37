package ecs_test

import (
	"fmt"

	"github.com/plus3/meteors/ecs"
)

type Transform struct {
	X, Y float32
}

type Speed struct {
	DX, DY float32
}

type Fuel struct {
	Units int
}

type OutOfFuel struct {
	Entity ecs.EntityId
}

type FlightSystem struct {
	Craft ecs.Query[struct {
		ecs.EntityId
		*Transform
		*Speed
		*Fuel
	}]
	Empty ecs.Events[OutOfFuel]
}

func (s *FlightSystem) Execute(frame *ecs.UpdateFrame) {
	for craft := range s.Craft.Values() {
		if craft.Fuel.Units == 0 {
			continue
		}
		craft.Transform.X += craft.Speed.DX * float32(frame.DeltaTime)
		craft.Transform.Y += craft.Speed.DY * float32(frame.DeltaTime)
		craft.Fuel.Units--
		if craft.Fuel.Units == 0 {
			s.Empty.Send(OutOfFuel{Entity: craft.EntityId})
		}
	}
}

type SalvageSystem struct {
	Empty ecs.Events[OutOfFuel]
}

func (s *SalvageSystem) Execute(frame *ecs.UpdateFrame) {
	for event := range s.Empty.Iter() {
		frame.Commands.Delete(event.Entity)
	}
}

// ExampleScheduler builds a small loop out of two systems. The first moves
// craft and reports the ones that ran dry; the second removes them at the end
// of the frame.
func ExampleScheduler() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Speed](registry)
	ecs.RegisterComponent[Fuel](registry)
	storage := ecs.NewStorage(registry)

	long := storage.Spawn(Transform{}, Speed{DX: 10, DY: 5}, Fuel{Units: 3})
	short := storage.Spawn(Transform{X: 100}, Speed{DX: -5}, Fuel{Units: 1})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&FlightSystem{})
	scheduler.Register(&SalvageSystem{})

	scheduler.Once(1.0)
	scheduler.Once(1.0)

	pos := ecs.ReadComponent[Transform](storage, long)
	fmt.Printf("long range craft at (%.0f, %.0f)\n", pos.X, pos.Y)
	fmt.Println("short range craft alive:", storage.Alive(short))

	// Output:
	// long range craft at (20, 10)
	// short range craft alive: false
}

// ExampleQuery shows that a query is a snapshot taken by Execute.
func ExampleQuery() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Transform](registry)
	storage := ecs.NewStorage(registry)
	storage.Spawn(Transform{X: 1})

	query := ecs.NewQuery[struct{ *Transform }](storage)
	query.Execute()

	storage.Spawn(Transform{X: 2})
	fmt.Println("before execute:", query.Len())

	query.Execute()
	fmt.Println("after execute:", query.Len())

	// Output:
	// before execute: 1
	// after execute: 2
}

// ExampleCommands queues structural changes and applies them on Flush.
func ExampleCommands() {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Fuel](registry)
	storage := ecs.NewStorage(registry)

	commands := &ecs.Commands{}
	commands.Spawn(Fuel{Units: 5})
	commands.Defer(func() {
		fmt.Println("deferred, entities:", storage.GetArchetype(Fuel{}).Len())
	})

	fmt.Println("queued, archetype exists:", storage.GetArchetype(Fuel{}) != nil)
	commands.Flush(storage)

	// Output:
	// queued, archetype exists: false
	// deferred, entities: 1
}
