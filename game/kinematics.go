package game

import (
	"math"

	"github.com/plus3/meteors/ecs"
)

const twoPi = 2 * math.Pi

// HeadingEpsilon replaces an exactly zero x component when the heading is
// recomputed after thrust.
const HeadingEpsilon = 1e-10

// WrapAngle maps any finite angle into [0, 2π).
func WrapAngle(theta float64) float64 {
	w := math.Mod(theta, twoPi)
	if w < 0 {
		w += twoPi
	}
	if w >= twoPi {
		w = 0
	}
	return w
}

// Steer applies one frame of booster input. Orientation turns by b.Turn; thrust
// is added along the new orientation to the current velocity. Without thrust
// heading and speed are left as they are.
func Steer(m Movement, b Booster) Movement {
	m.Orientation = WrapAngle(m.Orientation + b.Turn)
	if b.Thrust == 0 {
		return m
	}

	x := math.Cos(m.Heading)*m.Speed + math.Cos(m.Orientation)*b.Thrust
	y := math.Sin(m.Heading)*m.Speed + math.Sin(m.Orientation)*b.Thrust

	m.Speed = math.Hypot(x, y)
	if x == 0 {
		x = HeadingEpsilon
	}
	m.Heading = WrapAngle(math.Atan2(y, x))
	return m
}

// Velocity returns the per-frame displacement.
func Velocity(m Movement) (vx, vy float64) {
	return math.Cos(m.Heading) * m.Speed, math.Sin(m.Heading) * m.Speed
}

// Integrate advances p by one frame of m.
func Integrate(p Position, m Movement) Position {
	vx, vy := Velocity(m)
	return Position{X: p.X + vx, Y: p.Y + vy}
}

// Rotate turns the direction of travel by delta, keeping speed.
func Rotate(m Movement, delta float64) Movement {
	m.Heading = WrapAngle(m.Heading + delta)
	return m
}

type KinematicsSystem struct {
	Steered ecs.Query[struct {
		*Movement
		*Booster
	}]
	Moving ecs.Query[struct {
		*Position
		*Movement
	}]
}

func (s *KinematicsSystem) Execute(frame *ecs.UpdateFrame) {
	for entity := range s.Steered.Values() {
		*entity.Movement = Steer(*entity.Movement, *entity.Booster)
	}

	for entity := range s.Moving.Values() {
		*entity.Position = Integrate(*entity.Position, *entity.Movement)
	}
}
