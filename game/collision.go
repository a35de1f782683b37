package game

import (
	"github.com/charmbracelet/log"
	"github.com/kamstrup/intmap"
	"github.com/plus3/meteors/ecs"
	"github.com/plus3/meteors/physics"
)

type meteorHit struct {
	id       ecs.EntityId
	position Position
	movement Movement
	collider Collider
	size     int
}

type CollisionSystem struct {
	Collidables ecs.Query[struct {
		*Position
		*Collider
		*Capabilities
	}]
	Ships ecs.Query[struct {
		ecs.EntityId
		*Collider
		*Ship
	}]
	Bullets ecs.Query[struct {
		ecs.EntityId
		*Collider
		*Bullet
	}]
	Meteors ecs.Query[struct {
		ecs.EntityId
		*Position
		*Movement
		*Collider
		*Meteor
	}]
	Game         ecs.Singleton[Game]
	ShipSpawns   ecs.Events[SpawnShip]
	MeteorSpawns ecs.Events[SpawnMeteor]
	Cues         ecs.Events[Cue]
	Over         ecs.Events[GameOver]

	detector physics.Detector
	rules    Rules
	logger   *log.Logger

	meteors  []meteorHit
	consumed *intmap.Map[ecs.EntityId, bool]
}

func (s *CollisionSystem) Execute(frame *ecs.UpdateFrame) {
	for entity := range s.Collidables.Values() {
		if !entity.Capabilities.Has(Collidable) {
			continue
		}
		s.detector.Track(physics.Body{
			Handle: entity.Collider.Handle,
			Kind:   entity.Collider.Kind,
			X:      entity.Position.X,
			Y:      entity.Position.Y,
			Radius: entity.Collider.Radius,
		})
	}
	s.detector.Step(frame.DeltaTime)

	game := s.Game.Must()
	if game.State != InProgress {
		return
	}

	if s.consumed == nil {
		s.consumed = intmap.New[ecs.EntityId, bool](64)
	}
	s.consumed.Clear()

	s.meteors = s.meteors[:0]
	for meteor := range s.Meteors.Values() {
		s.meteors = append(s.meteors, meteorHit{
			id:       meteor.EntityId,
			position: *meteor.Position,
			movement: *meteor.Movement,
			collider: *meteor.Collider,
			size:     meteor.Meteor.Size,
		})
	}

	for bullet := range s.Bullets.Values() {
		for i := range s.meteors {
			meteor := &s.meteors[i]
			if _, done := s.consumed.Get(meteor.id); done {
				continue
			}
			if s.detector.Overlap(bullet.Collider.Handle, meteor.collider.Handle) != physics.True {
				continue
			}
			s.consumed.Put(meteor.id, true)
			s.destroyMeteor(frame, game, bullet.EntityId, meteor)
			break
		}
	}

	for ship := range s.Ships.Values() {
		for i := range s.meteors {
			meteor := &s.meteors[i]
			if _, done := s.consumed.Get(meteor.id); done {
				continue
			}
			if s.detector.Overlap(ship.Collider.Handle, meteor.collider.Handle) != physics.True {
				continue
			}

			if s.rules.AbsorbImpact {
				s.consumed.Put(meteor.id, true)
				frame.Commands.Delete(meteor.id)
				s.Cues.Send(CueExplosion)
				continue
			}

			s.loseShip(frame, game, ship.EntityId)
			break
		}
		if game.State != InProgress {
			break
		}
	}
}

func (s *CollisionSystem) destroyMeteor(frame *ecs.UpdateFrame, game *Game, bullet ecs.EntityId, meteor *meteorHit) {
	game.Score++

	if meteor.size > s.rules.SplitThreshold {
		for _, delta := range []float64{s.rules.SplitAngle, -s.rules.SplitAngle} {
			s.MeteorSpawns.Send(SpawnMeteor{
				Position: meteor.position,
				Movement: Rotate(meteor.movement, delta),
				Size:     meteor.size / 2,
			})
		}
	}

	frame.Commands.Delete(bullet)
	frame.Commands.Delete(meteor.id)
	s.Cues.Send(CueExplosion)
}

func (s *CollisionSystem) loseShip(frame *ecs.UpdateFrame, game *Game, ship ecs.EntityId) {
	frame.Commands.Delete(ship)

	if game.LoseLife() {
		s.ShipSpawns.Send(SpawnShip{Position: s.rules.ShipSpawn, Orientation: s.rules.ShipOrientation})
		s.Cues.Send(CueShipLost)
		s.logger.Info("ship lost", "lives", game.Lives)
		return
	}

	s.Over.Send(GameOver{Score: game.Score, Wave: game.Wave})
	s.Cues.Send(CueGameOver)
	s.logger.Info("game over", "score", game.Score, "wave", game.Wave)
}
