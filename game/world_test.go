package game

import (
	"testing"

	"github.com/plus3/meteors/config"
	"github.com/plus3/meteors/ecs"
	"github.com/plus3/meteors/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type frameCounter struct {
	Game   ecs.Singleton[Game]
	frames int
	states []GameState
}

func (c *frameCounter) Execute(frame *ecs.UpdateFrame) {
	c.frames++
	c.states = append(c.states, c.Game.Must().State)
}

func TestNewWorldRejectsBadViewport(t *testing.T) {
	cfg := testConfig()
	cfg.Window.Width = 0

	_, err := NewWorld(cfg, nil, nil, testLogger())
	assert.ErrorIs(t, err, ErrInvalidViewport)
}

func TestNewWorldRejectsBadConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Collision.Strategy = "sweep"

	_, err := NewWorld(cfg, nil, nil, testLogger())
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestNewWorldInitialState(t *testing.T) {
	counter := &frameCounter{}
	w := newTestWorld(t, testConfig(), nil, counter)

	hud := w.HUD()
	assert.Equal(t, Waiting, hud.State)
	assert.True(t, hud.Visibility.StartButton)
	assert.True(t, hud.Visibility.GameOver)
	assert.Equal(t, Viewport{Width: 1280, Height: 720}, w.Viewport())
	assert.NotNil(t, w.Logger())

	w.Step(1.0 / 60)
	w.Step(1.0 / 60)
	assert.Equal(t, 2, counter.frames)

	stats := w.Scheduler().GetStats()
	require.Equal(t, 7, stats.SystemCount)
	names := make([]string, len(stats.Systems))
	for i, s := range stats.Systems {
		names[i] = s.Name
	}
	assert.Equal(t, []string{
		"ControlSystem", "KinematicsSystem", "BoundsSystem", "CollisionSystem",
		"StateSystem", "SpawnerSystem", "frameCounter",
	}, names)
}

func TestNewDetector(t *testing.T) {
	cfg := testConfig()
	assert.IsType(t, &physics.Proximity{}, NewDetector(cfg))

	cfg.Collision.Strategy = config.StrategyChipmunk
	assert.IsType(t, &physics.Space{}, NewDetector(cfg))
}

func TestExtraSystemsSeeStateChange(t *testing.T) {
	counter := &frameCounter{}
	w := newTestWorld(t, testConfig(), nil, counter)
	startGame(t, w)

	assert.Equal(t, []GameState{Loading, InProgress}, counter.states)
}

func TestSeededWorldsAreDeterministic(t *testing.T) {
	positions := func() []Position {
		w := newTestWorld(t, testConfig(), nil)
		startGame(t, w)
		var out []Position
		for item := range ecs.NewView[struct {
			*Position
			*Meteor
		}](w.Storage()).Values() {
			out = append(out, *item.Position)
		}
		return out
	}

	assert.Equal(t, positions(), positions())
}

func TestChipmunkWorldPlays(t *testing.T) {
	cfg := testConfig()
	cfg.Collision.Strategy = config.StrategyChipmunk
	input := newScriptedInput()
	w := newTestWorld(t, cfg, input)
	startGame(t, w)

	input.pressed[KeyThrust] = true
	input.pressed[KeyTurnLeft] = true
	for i := range 600 {
		if i%10 == 0 {
			input.tap(KeyFire)
		}
		w.Step(1.0 / 60)
		input.release()
	}

	hud := w.HUD()
	assert.Contains(t, []GameState{InProgress, Ended}, hud.State)
	assert.LessOrEqual(t, hud.Lives, cfg.Ship.Lives)
}
