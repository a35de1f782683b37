package game

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/plus3/meteors/config"
	"github.com/plus3/meteors/ecs"
	"github.com/plus3/meteors/physics"
)

// ErrInvalidViewport is returned by NewWorld for a non-positive window size.
var ErrInvalidViewport = errors.New("viewport must have a positive size")

// World owns the storage and scheduler of one game.
type World struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	game      *ecs.Singleton[Game]
	viewport  *ecs.Singleton[Viewport]
	starts    *ecs.Events[StartRequested]
	logger    *log.Logger
}

// HUD is the read-only state shown to the player.
type HUD struct {
	Score      uint
	Lives      uint
	Wave       int
	State      GameState
	Visibility UIVisibility
}

// NewDetector builds the collision detector selected by cfg.
func NewDetector(cfg config.Config) physics.Detector {
	if cfg.Collision.Strategy == config.StrategyProximity {
		return physics.NewProximity(cfg.Collision.Threshold)
	}
	return physics.NewSpace()
}

// NewWorld validates cfg, creates the singletons and registers the systems in
// frame order: control, kinematics, bounds, collision, state, spawner, then
// extra. A nil detector selects one from cfg.
func NewWorld(cfg config.Config, input InputSource, detector physics.Detector, logger *log.Logger, extra ...ecs.System) (*World, error) {
	viewport := Viewport{Width: float64(cfg.Window.Width), Height: float64(cfg.Window.Height)}
	if !viewport.Valid() {
		return nil, fmt.Errorf("%w: %vx%v", ErrInvalidViewport, viewport.Width, viewport.Height)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if input == nil {
		input = NoInput{}
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if detector == nil {
		detector = NewDetector(cfg)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	rules := RulesFromConfig(cfg)

	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	w := &World{
		storage:  storage,
		game:     ecs.NewSingleton(storage, Game{State: Waiting}),
		viewport: ecs.NewSingleton(storage, viewport),
		starts:   ecs.NewEvents[StartRequested](storage),
		logger:   logger,
	}

	w.scheduler = ecs.NewScheduler(storage)
	w.scheduler.Register(&ControlSystem{input: input, rules: rules})
	w.scheduler.Register(&KinematicsSystem{})
	w.scheduler.Register(&BoundsSystem{})
	w.scheduler.Register(&CollisionSystem{detector: detector, rules: rules, logger: logger})
	w.scheduler.Register(&StateSystem{rules: rules, viewport: viewport, rng: rng, logger: logger})
	w.scheduler.Register(&SpawnerSystem{rules: rules, logger: logger})
	for _, system := range extra {
		w.scheduler.Register(system)
	}

	logger.Debug("world ready",
		"viewport", fmt.Sprintf("%vx%v", viewport.Width, viewport.Height),
		"collision", cfg.Collision.Strategy,
		"seed", seed)
	return w, nil
}

// Step runs one frame.
func (w *World) Step(dt float64) {
	w.scheduler.Once(dt)
}

// Start requests a new game. It takes effect during the next Step and is
// ignored while a game is running.
func (w *World) Start() {
	w.starts.Send(StartRequested{})
}

func (w *World) HUD() HUD {
	g := w.game.Must()
	return HUD{
		Score:      g.Score,
		Lives:      g.Lives,
		Wave:       g.Wave,
		State:      g.State,
		Visibility: Visibility(g.State),
	}
}

func (w *World) Viewport() Viewport {
	return *w.viewport.Must()
}

func (w *World) Storage() *ecs.Storage {
	return w.storage
}

func (w *World) Scheduler() *ecs.Scheduler {
	return w.scheduler
}

func (w *World) Logger() *log.Logger {
	return w.logger
}
