// Package game holds the meteors simulation: components, events and the
// systems that run once per frame in a fixed order.
package game

import (
	"fmt"

	"github.com/plus3/meteors/ecs"
	"github.com/plus3/meteors/physics"
)

// World coordinates have their origin at the centre of the viewport with y
// pointing up.
type Position struct {
	X, Y float64
}

// Movement is kept in polar form. Heading is the direction of travel and
// Orientation is where the entity faces; both are radians in [0, 2π).
type Movement struct {
	Heading     float64
	Speed       float64
	Orientation float64
}

// Booster is the control intent written from input each frame.
type Booster struct {
	Turn   float64
	Thrust float64
}

type Ship struct{}

type Meteor struct {
	Size int
}

type Bullet struct{}

// Capabilities selects the per-entity bounds and collision behaviour.
type Capabilities uint8

const (
	Wrappable Capabilities = 1 << iota
	Despawnable
	Collidable
)

func (c Capabilities) Has(flag Capabilities) bool {
	return c&flag == flag
}

// Valid reports whether wrap and despawn are not both set.
func (c Capabilities) Valid() bool {
	return !(c.Has(Wrappable) && c.Has(Despawnable))
}

func (c Capabilities) String() string {
	s := ""
	for _, f := range []struct {
		flag Capabilities
		name string
	}{{Wrappable, "wrap"}, {Despawnable, "despawn"}, {Collidable, "collide"}} {
		if c.Has(f.flag) {
			if s != "" {
				s += "|"
			}
			s += f.name
		}
	}
	if s == "" {
		return "none"
	}
	return s
}

type Collider struct {
	Handle physics.Handle
	Kind   physics.Kind
	Radius float64
}

// Sprite names the image asset an entity is drawn with.
type Sprite struct {
	Asset string
}

const (
	ShipAsset   = "spaceship.png"
	BulletAsset = "bullet.png"
)

func MeteorAsset(size int) string {
	return fmt.Sprintf("meteor_%d.png", size)
}

// Viewport is the visible area in world units.
type Viewport struct {
	Width, Height float64
}

func (v Viewport) Valid() bool {
	return v.Width > 0 && v.Height > 0
}

// RegisterComponents registers every component type spawned by the game.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Movement](registry)
	ecs.RegisterComponent[Booster](registry)
	ecs.RegisterComponent[Ship](registry)
	ecs.RegisterComponent[Meteor](registry)
	ecs.RegisterComponent[Bullet](registry)
	ecs.RegisterComponent[Capabilities](registry)
	ecs.RegisterComponent[Collider](registry)
	ecs.RegisterComponent[Sprite](registry)
}
