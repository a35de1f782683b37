package game

import (
	"math"
	"testing"

	"github.com/plus3/meteors/ecs"
	"github.com/stretchr/testify/assert"
)

var testViewport = Viewport{Width: 1280, Height: 720}

func TestWrapPositionPastEdge(t *testing.T) {
	p := WrapPosition(Position{X: 641, Y: 10}, Movement{Heading: 0, Speed: 1}, 0, testViewport)
	assert.Equal(t, Position{X: -641, Y: 10}, p)

	p = WrapPosition(Position{X: 641, Y: 10}, Movement{}, 0, testViewport)
	assert.Equal(t, -641.0, p.X, "a stationary entity wraps too")

	p = WrapPosition(Position{X: 0, Y: -361}, Movement{Heading: 3 * math.Pi / 2, Speed: 1}, 0, testViewport)
	assert.Equal(t, Position{X: 0, Y: 361}, p)
}

func TestWrapPositionInside(t *testing.T) {
	p := Position{X: 639, Y: -359}
	assert.Equal(t, p, WrapPosition(p, Movement{Heading: 0, Speed: 1}, 0, testViewport))
}

func TestWrapPositionUsesExtent(t *testing.T) {
	p := WrapPosition(Position{X: 630}, Movement{Heading: 0, Speed: 1}, 24, testViewport)
	assert.Equal(t, -630.0, p.X)

	p = WrapPosition(Position{X: 610}, Movement{Heading: 0, Speed: 1}, 24, testViewport)
	assert.Equal(t, 610.0, p.X)
}

func TestWrapPositionIsInvolutive(t *testing.T) {
	start := Position{X: 650, Y: 0}
	outRight := Movement{Heading: 0, Speed: 3}
	outLeft := Movement{Heading: math.Pi, Speed: 3}

	once := WrapPosition(start, outRight, 0, testViewport)
	assert.Equal(t, -650.0, once.X)

	// Still past the left edge but moving inward: no ping-pong.
	assert.Equal(t, once, WrapPosition(once, outRight, 0, testViewport))

	// Crossing the same edge back restores the original sign.
	twice := WrapPosition(once, outLeft, 0, testViewport)
	assert.Equal(t, start, twice)
}

func TestOutOfBounds(t *testing.T) {
	assert.False(t, OutOfBounds(Position{X: 640, Y: 360}, testViewport))
	assert.True(t, OutOfBounds(Position{X: 640.5}, testViewport))
	assert.True(t, OutOfBounds(Position{Y: -361}, testViewport))
}

func TestCapabilities(t *testing.T) {
	c := Wrappable | Collidable
	assert.True(t, c.Has(Wrappable))
	assert.False(t, c.Has(Despawnable))
	assert.True(t, c.Valid())
	assert.False(t, (Wrappable | Despawnable).Valid())
	assert.Equal(t, "wrap|collide", c.String())
	assert.Equal(t, "none", Capabilities(0).String())
}

func TestBoundsSystem(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	ecs.NewSingleton(storage, testViewport)
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&BoundsSystem{})

	bullet := storage.Spawn(Position{X: 700}, Movement{Speed: 2}, Bullet{}, Despawnable|Collidable)
	keptBullet := storage.Spawn(Position{X: 100}, Movement{Speed: 2}, Bullet{}, Despawnable|Collidable)
	meteor := storage.Spawn(Position{X: 641}, Movement{Speed: 1}, Meteor{Size: 2}, Wrappable|Collidable)
	ship := storage.Spawn(Position{Y: 350}, Movement{Heading: math.Pi / 2, Speed: 1}, Ship{},
		Collider{Radius: 20}, Wrappable|Collidable)

	scheduler.Once(1.0 / 60)

	assert.False(t, storage.Alive(bullet))
	assert.True(t, storage.Alive(keptBullet))
	assert.Equal(t, -641.0, ecs.ReadComponent[Position](storage, meteor).X)
	assert.Equal(t, -350.0, ecs.ReadComponent[Position](storage, ship).Y)
}
