package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/meteors/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MovementSystem struct {
	Entities ecs.Query[struct {
		*Position
		*Velocity
	}]
	ExecuteCount int
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	for item := range s.Entities.Values() {
		item.Position.X += item.Velocity.DX * float32(frame.DeltaTime)
		item.Position.Y += item.Velocity.DY * float32(frame.DeltaTime)
	}
}

type DamageSystem struct {
	Targets ecs.Query[struct {
		ecs.EntityId
		*Health
	}]
	Damage ecs.Events[Damage]
}

func (s *DamageSystem) Execute(frame *ecs.UpdateFrame) {
	for event := range s.Damage.Iter() {
		for item := range s.Targets.Values() {
			item.Health.Current -= event.Amount
			if item.Health.Current <= 0 {
				frame.Commands.Delete(item.EntityId)
			}
		}
	}
}

type SpawnerSystem struct {
	Counter ecs.Singleton[Score]
	Respawn ecs.Events[Respawn]
}

func (s *SpawnerSystem) Execute(frame *ecs.UpdateFrame) {
	for range s.Respawn.Iter() {
		*s.Counter.Get()++
		frame.Commands.Spawn(Health{Current: 1, Max: 1})
	}
}

type recorderSystem struct {
	name  string
	order *[]string
	query ecs.Query[struct{ *Position }]
}

func (s *recorderSystem) Execute(frame *ecs.UpdateFrame) {
	*s.order = append(*s.order, s.name)
}

func TestSchedulerRunsSystemsInOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	var order []string
	scheduler.Register(&recorderSystem{name: "a", order: &order})
	scheduler.Register(&recorderSystem{name: "b", order: &order})
	scheduler.Register(&recorderSystem{name: "c", order: &order})

	scheduler.Once(0.016)
	scheduler.Once(0.016)

	assert.Equal(t, []string{"a", "b", "c", "a", "b", "c"}, order)
	assert.Same(t, storage, scheduler.Storage())
}

func TestSchedulerExecutesQueries(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)
	movement := &MovementSystem{}
	scheduler.Register(movement)

	id := storage.Spawn(Position{X: 0, Y: 0}, Velocity{DX: 1, DY: 2})
	scheduler.Once(1.0)

	assert.Equal(t, 1, movement.ExecuteCount)
	assert.Equal(t, Position{X: 1, Y: 2}, *ecs.ReadComponent[Position](storage, id))

	storage.Spawn(Position{X: 10}, Velocity{DX: 1})
	scheduler.Once(1.0)
	assert.Equal(t, 2, movement.Entities.Len(), "queries see entities spawned between frames")
}

func TestSchedulerEventsAndCommands(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)
	damage := &DamageSystem{}
	spawner := &SpawnerSystem{}
	scheduler.Register(damage)
	scheduler.Register(spawner)
	ecs.NewSingleton[Score](storage)

	id := storage.Spawn(Health{Current: 3, Max: 3})

	damage.Damage.Send(Damage{Amount: 2})
	spawner.Respawn.Send(Respawn{})
	scheduler.Once(0.1)

	assert.Equal(t, 1, ecs.ReadComponent[Health](storage, id).Current)
	assert.Equal(t, Score(1), *spawner.Counter.Get())
	assert.Equal(t, 2, storage.GetArchetype(Health{}).Len())
	assert.Equal(t, 0, damage.Damage.Len(), "events are cleared at the end of the frame")

	damage.Damage.Send(Damage{Amount: 1})
	scheduler.Once(0.1)

	assert.False(t, storage.Alive(id))
	assert.Equal(t, 0, storage.GetArchetype(Health{}).Len())
}

func TestSchedulerSkipsUnexportedFields(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	var order []string
	system := &recorderSystem{name: "a", order: &order}
	scheduler.Register(system)
	scheduler.Once(0.1)

	assert.Panics(t, func() { system.query.Len() }, "unexported queries are not initialised")
}

func TestSchedulerStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&MovementSystem{})
	scheduler.Register(&DamageSystem{})

	for range 5 {
		scheduler.Once(0.016)
	}

	stats := scheduler.GetStats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, int64(10), stats.TotalExecutions)
	assert.Equal(t, int64(5), stats.Frames)
	require.Len(t, stats.Systems, 2)

	assert.Equal(t, "MovementSystem", stats.Systems[0].Name)
	assert.Equal(t, "DamageSystem", stats.Systems[1].Name)
	for _, system := range stats.Systems {
		assert.Equal(t, int64(5), system.ExecutionCount)
		assert.LessOrEqual(t, system.MinDuration, system.AvgDuration)
		assert.LessOrEqual(t, system.AvgDuration, system.MaxDuration)
	}
}

func TestSchedulerRun(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)
	movement := &MovementSystem{}
	scheduler.Register(movement)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		scheduler.Run(ctx, 5*time.Millisecond)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after the context was cancelled")
	}
	assert.Greater(t, movement.ExecuteCount, 0)
}
