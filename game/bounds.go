package game

import (
	"math"

	"github.com/plus3/meteors/ecs"
)

// WrapPosition teleports p to the opposite edge on every axis where it is
// past the viewport edge (less extent) and not already moving back inward.
func WrapPosition(p Position, m Movement, extent float64, vp Viewport) Position {
	vx, vy := Velocity(m)
	if math.Abs(p.X) > vp.Width/2-extent && p.X*vx >= 0 {
		p.X = -p.X
	}
	if math.Abs(p.Y) > vp.Height/2-extent && p.Y*vy >= 0 {
		p.Y = -p.Y
	}
	return p
}

// OutOfBounds reports whether p lies outside the viewport.
func OutOfBounds(p Position, vp Viewport) bool {
	return math.Abs(p.X) > vp.Width/2 || math.Abs(p.Y) > vp.Height/2
}

type BoundsSystem struct {
	Entities ecs.Query[struct {
		ecs.EntityId
		*Position
		*Capabilities
		Movement *Movement `ecs:"optional"`
		Collider *Collider `ecs:"optional"`
	}]
	Viewport ecs.Singleton[Viewport]
}

func (s *BoundsSystem) Execute(frame *ecs.UpdateFrame) {
	vp := *s.Viewport.Must()

	for entity := range s.Entities.Values() {
		caps := *entity.Capabilities

		switch {
		case caps.Has(Wrappable):
			var movement Movement
			if entity.Movement != nil {
				movement = *entity.Movement
			}
			extent := 0.0
			if entity.Collider != nil {
				extent = entity.Collider.Radius
			}
			*entity.Position = WrapPosition(*entity.Position, movement, extent, vp)

		case caps.Has(Despawnable):
			if OutOfBounds(*entity.Position, vp) {
				frame.Commands.Delete(entity.EntityId)
			}
		}
	}
}
