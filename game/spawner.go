package game

import (
	"github.com/charmbracelet/log"
	"github.com/plus3/meteors/ecs"
	"github.com/plus3/meteors/physics"
)

type SpawnerSystem struct {
	Ships   ecs.Events[SpawnShip]
	Meteors ecs.Events[SpawnMeteor]
	Bullets ecs.Events[SpawnBullet]

	rules      Rules
	logger     *log.Logger
	nextHandle physics.Handle
}

func (s *SpawnerSystem) handle() physics.Handle {
	s.nextHandle++
	return s.nextHandle
}

func (s *SpawnerSystem) Execute(frame *ecs.UpdateFrame) {
	for event := range s.Ships.Iter() {
		frame.Commands.Spawn(
			Sprite{Asset: ShipAsset},
			event.Position,
			Movement{Orientation: WrapAngle(event.Orientation)},
			Booster{},
			Ship{},
			Collider{Handle: s.handle(), Kind: physics.KindShip, Radius: s.rules.ShipRadius},
			Wrappable|Collidable,
		)
		s.logger.Debug("spawn ship", "x", event.Position.X, "y", event.Position.Y)
	}

	bounds := Despawnable
	if s.rules.MeteorsWrap {
		bounds = Wrappable
	}
	for event := range s.Meteors.Iter() {
		if event.Size <= 1 {
			continue
		}
		frame.Commands.Spawn(
			Sprite{Asset: MeteorAsset(event.Size)},
			event.Position,
			event.Movement,
			Meteor{Size: event.Size},
			Collider{Handle: s.handle(), Kind: physics.KindMeteor, Radius: float64(event.Size) * s.rules.RadiusPerSize},
			bounds|Collidable,
		)
	}

	for event := range s.Bullets.Iter() {
		frame.Commands.Spawn(
			Sprite{Asset: BulletAsset},
			event.Position,
			event.Movement,
			Bullet{},
			Collider{Handle: s.handle(), Kind: physics.KindBullet, Radius: s.rules.BulletRadius},
			Despawnable|Collidable,
		)
	}
}
