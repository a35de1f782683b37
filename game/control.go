package game

import "github.com/plus3/meteors/ecs"

// Key is a logical control key.
type Key uint8

const (
	KeyThrust Key = iota
	KeyTurnLeft
	KeyTurnRight
	KeyFire
	KeyStart
)

// InputSource reports key state for the current frame.
type InputSource interface {
	Pressed(Key) bool
	JustPressed(Key) bool
}

// NoInput is an InputSource with nothing pressed.
type NoInput struct{}

func (NoInput) Pressed(Key) bool     { return false }
func (NoInput) JustPressed(Key) bool { return false }

type ControlSystem struct {
	Ships ecs.Query[struct {
		*Position
		*Movement
		*Booster
		*Ship
	}]
	Game    ecs.Singleton[Game]
	Starts  ecs.Events[StartRequested]
	Bullets ecs.Events[SpawnBullet]
	Cues    ecs.Events[Cue]

	input InputSource
	rules Rules
}

func (s *ControlSystem) Execute(frame *ecs.UpdateFrame) {
	game := s.Game.Must()

	if game.State != InProgress {
		if s.input.JustPressed(KeyStart) {
			s.Starts.Send(StartRequested{})
		}
		for ship := range s.Ships.Values() {
			ship.Booster.Thrust = 0
		}
		return
	}

	fire := s.input.JustPressed(KeyFire)

	for ship := range s.Ships.Values() {
		booster := ship.Booster

		// Left turns counter-clockwise, which is a positive angle with y up.
		booster.Turn *= s.rules.TurnDamping
		if s.input.Pressed(KeyTurnLeft) {
			booster.Turn += s.rules.TurnStep
		}
		if s.input.Pressed(KeyTurnRight) {
			booster.Turn -= s.rules.TurnStep
		}

		if s.input.Pressed(KeyThrust) {
			booster.Thrust = s.rules.Thrust
		} else {
			booster.Thrust = 0
		}

		if fire {
			s.Bullets.Send(SpawnBullet{
				Position: *ship.Position,
				Movement: Movement{
					Heading:     ship.Movement.Orientation,
					Speed:       ship.Movement.Speed + s.rules.BulletSpeedBonus,
					Orientation: ship.Movement.Orientation,
				},
			})
			s.Cues.Send(CueFire)
		}
	}
}
