package ecs_test

import (
	"sort"
	"testing"

	"github.com/plus3/meteors/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewIter(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	storage.Spawn(Position{X: 1}, Velocity{DX: 1})
	storage.Spawn(Position{X: 2}, Velocity{DX: 2}, Health{Current: 10})
	storage.Spawn(Position{X: 3})

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](storage)

	var xs []float32
	for item := range view.Values() {
		item.Position.X += item.Velocity.DX
		xs = append(xs, item.Position.X)
	}
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	assert.Equal(t, []float32{2, 4}, xs)
}

func TestViewWritesThrough(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 1, Y: 1}, Velocity{DX: 2, DY: 3})

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](storage)

	for _, item := range view.Iter() {
		item.Position.X += item.Velocity.DX
		item.Position.Y += item.Velocity.DY
	}

	assert.Equal(t, Position{X: 3, Y: 4}, *ecs.ReadComponent[Position](storage, id))
}

func TestViewEntityIdField(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	a := storage.Spawn(Name{Value: "a"})
	b := storage.Spawn(Name{Value: "b"}, Marker{})

	view := ecs.NewView[struct {
		ecs.EntityId
		*Name
	}](storage)

	got := map[ecs.EntityId]string{}
	for id, item := range view.Iter() {
		assert.Equal(t, id, item.EntityId)
		got[item.EntityId] = item.Name.Value
	}
	assert.Equal(t, map[ecs.EntityId]string{a: "a", b: "b"}, got)
}

func TestViewOptionalFields(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Position{X: 1}, Health{Current: 50})
	storage.Spawn(Position{X: 2})

	view := ecs.NewView[struct {
		Position *Position
		Health   *Health `ecs:"optional"`
	}](storage)

	withHealth, withoutHealth := 0, 0
	for item := range view.Values() {
		require.NotNil(t, item.Position)
		if item.Health != nil {
			withHealth++
			assert.Equal(t, 50, item.Health.Current)
		} else {
			withoutHealth++
		}
	}
	assert.Equal(t, 1, withHealth)
	assert.Equal(t, 1, withoutHealth)
}

func TestViewGet(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	full := storage.Spawn(Position{X: 5}, Velocity{DX: 1})
	partial := storage.Spawn(Position{X: 6})

	view := ecs.NewView[struct {
		ecs.EntityId
		*Position
		*Velocity
	}](storage)

	item := view.Get(full)
	require.NotNil(t, item)
	assert.Equal(t, full, item.EntityId)
	assert.Equal(t, float32(5), item.Position.X)

	assert.Nil(t, view.Get(partial), "missing required component")

	storage.Delete(full)
	assert.Nil(t, view.Get(full), "dead entity")
	assert.Nil(t, view.Get(ecs.NewEntityId(1, 1)), "unknown archetype")
}

func TestViewBreakEarly(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	for i := range 10 {
		storage.Spawn(Score(i))
	}

	view := ecs.NewView[struct{ *Score }](storage)
	count := 0
	for range view.Iter() {
		count++
		if count == 3 {
			break
		}
	}
	assert.Equal(t, 3, count)
}

func TestViewInvalidTypes(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { ecs.NewView[int](storage) })
	assert.Panics(t, func() {
		ecs.NewView[struct{ Position Position }](storage)
	})
	assert.Panics(t, func() {
		ecs.NewView[struct {
			Position *Position `ecs:"sometimes"`
		}](storage)
	})
}
