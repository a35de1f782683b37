package game

import (
	"math"
	"math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/plus3/meteors/ecs"
)

type GameState uint8

const (
	Waiting GameState = iota
	Loading
	InProgress
	Ended
)

func (s GameState) String() string {
	switch s {
	case Waiting:
		return "waiting"
	case Loading:
		return "loading"
	case InProgress:
		return "in progress"
	case Ended:
		return "ended"
	default:
		return "unknown"
	}
}

// Game is the singleton holding the score, lives and state of the current game.
type Game struct {
	Score uint
	Lives uint
	State GameState
	Wave  int
}

// Start resets the game and moves it to Loading. It only succeeds from
// Waiting or Ended.
func (g *Game) Start(lives uint) bool {
	if g.State != Waiting && g.State != Ended {
		return false
	}
	*g = Game{Lives: lives, State: Loading, Wave: 1}
	return true
}

// LoseLife takes one life and reports whether the ship should respawn. The
// game ends when no lives remain.
func (g *Game) LoseLife() (respawn bool) {
	if g.Lives > 0 {
		g.Lives--
	}
	if g.Lives == 0 {
		g.State = Ended
		return false
	}
	return true
}

// UIVisibility says which overlay elements are shown.
type UIVisibility struct {
	StartButton bool
	GameOver    bool
}

func Visibility(state GameState) UIVisibility {
	shown := state != InProgress
	return UIVisibility{StartButton: shown, GameOver: shown}
}

type StateSystem struct {
	Ships ecs.Query[struct {
		ecs.EntityId
		*Ship
	}]
	Meteors ecs.Query[struct {
		ecs.EntityId
		*Meteor
	}]
	Bullets ecs.Query[struct {
		ecs.EntityId
		*Bullet
	}]
	Game         ecs.Singleton[Game]
	Starts       ecs.Events[StartRequested]
	ShipSpawns   ecs.Events[SpawnShip]
	MeteorSpawns ecs.Events[SpawnMeteor]
	Cues         ecs.Events[Cue]

	rules    Rules
	viewport Viewport
	rng      *rand.Rand
	logger   *log.Logger
}

func (s *StateSystem) Execute(frame *ecs.UpdateFrame) {
	game := s.Game.Must()

	switch game.State {
	case Loading:
		if s.Ships.Len() > 0 {
			game.State = InProgress
			s.logger.Info("game started", "lives", game.Lives, "meteors", s.Meteors.Len())
		}

	case InProgress:
		if s.Meteors.Len() == 0 && s.MeteorSpawns.Len() == 0 {
			game.Wave++
			s.spawnMeteors(s.rules.InitialMeteors+game.Wave-1, s.shipPosition(frame))
			s.Cues.Send(CueWave)
			s.logger.Info("next wave", "wave", game.Wave, "score", game.Score)
		}
	}

	for range s.Starts.Iter() {
		if !game.Start(s.rules.Lives) {
			continue
		}

		for ship := range s.Ships.Values() {
			frame.Commands.Delete(ship.EntityId)
		}
		for meteor := range s.Meteors.Values() {
			frame.Commands.Delete(meteor.EntityId)
		}
		for bullet := range s.Bullets.Values() {
			frame.Commands.Delete(bullet.EntityId)
		}

		s.ShipSpawns.Send(SpawnShip{Position: s.rules.ShipSpawn, Orientation: s.rules.ShipOrientation})
		s.spawnMeteors(s.rules.InitialMeteors, s.rules.ShipSpawn)
		s.logger.Info("loading", "lives", game.Lives)
	}
}

func (s *StateSystem) shipPosition(frame *ecs.UpdateFrame) Position {
	for ship := range s.Ships.Values() {
		if pos := ecs.ReadComponent[Position](frame.Storage, ship.EntityId); pos != nil {
			return *pos
		}
	}
	return s.rules.ShipSpawn
}

func (s *StateSystem) spawnMeteors(count int, avoid Position) {
	for range count {
		s.MeteorSpawns.Send(SpawnMeteor{
			Position: s.randomPosition(avoid),
			Movement: Movement{
				Heading: s.rng.Float64() * twoPi,
				Speed:   s.rng.Float64() * s.rules.MeteorMaxSpeed,
			},
			Size: s.rules.InitialSize,
		})
	}
}

// randomPosition picks a point in the viewport at least SafeRadius away from
// avoid, giving up after a few attempts.
func (s *StateSystem) randomPosition(avoid Position) Position {
	var p Position
	for range 32 {
		p = Position{
			X: (s.rng.Float64() - 0.5) * s.viewport.Width,
			Y: (s.rng.Float64() - 0.5) * s.viewport.Height,
		}
		if math.Hypot(p.X-avoid.X, p.Y-avoid.Y) >= s.rules.SafeRadius {
			break
		}
	}
	return p
}
