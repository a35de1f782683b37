package game

import (
	"testing"

	"github.com/plus3/meteors/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartKey(t *testing.T) {
	input := newScriptedInput()
	w := newTestWorld(t, testConfig(), input)

	w.Step(1.0 / 60)
	assert.Equal(t, Waiting, w.HUD().State)

	input.tap(KeyStart)
	w.Step(1.0 / 60)
	input.release()
	assert.Equal(t, Loading, w.HUD().State)
}

func TestThrustAndTurn(t *testing.T) {
	cfg := testConfig()
	input := newScriptedInput()
	w := newTestWorld(t, cfg, input)
	startGame(t, w)

	shipId, _ := first[Ship](t, w.Storage())

	input.pressed[KeyThrust] = true
	w.Step(1.0 / 60)

	booster := ecs.ReadComponent[Booster](w.Storage(), shipId)
	movement := ecs.ReadComponent[Movement](w.Storage(), shipId)
	require.NotNil(t, booster)
	assert.Equal(t, cfg.Ship.Thrust, booster.Thrust)
	assert.InDelta(t, cfg.Ship.Thrust, movement.Speed, 1e-12)
	assert.InDelta(t, cfg.Ship.Orientation, movement.Heading, 1e-9)

	input.pressed[KeyThrust] = false
	w.Step(1.0 / 60)
	assert.Zero(t, booster.Thrust)
	assert.InDelta(t, cfg.Ship.Thrust, movement.Speed, 1e-12, "speed is kept without thrust")

	before := movement.Orientation
	input.pressed[KeyTurnLeft] = true
	w.Step(1.0 / 60)
	assert.InDelta(t, cfg.Ship.TurnStep, booster.Turn, 1e-12)
	w.Step(1.0 / 60)
	assert.InDelta(t, cfg.Ship.TurnStep*(1+cfg.Ship.TurnDamping), booster.Turn, 1e-12)
	assert.Greater(t, movement.Orientation, before)

	input.pressed[KeyTurnLeft] = false
	w.Step(1.0 / 60)
	assert.Less(t, booster.Turn, cfg.Ship.TurnStep*(1+cfg.Ship.TurnDamping), "turn decays once released")
}

func TestTurnAccumulatesWithoutDamping(t *testing.T) {
	cfg := testConfig()
	cfg.Ship.TurnDamping = 1
	input := newScriptedInput()
	w := newTestWorld(t, cfg, input)
	startGame(t, w)
	shipId, _ := first[Ship](t, w.Storage())

	input.pressed[KeyTurnRight] = true
	for range 3 {
		w.Step(1.0 / 60)
	}
	input.pressed[KeyTurnRight] = false
	w.Step(1.0 / 60)

	assert.InDelta(t, -3*cfg.Ship.TurnStep, ecs.ReadComponent[Booster](w.Storage(), shipId).Turn, 1e-12)
}

func TestFireSpawnsBullet(t *testing.T) {
	cfg := testConfig()
	input := newScriptedInput()
	events := &recorder{}
	w := newTestWorld(t, cfg, input, events)
	startGame(t, w)
	events.reset()

	shipId, _ := first[Ship](t, w.Storage())
	shipPos := *ecs.ReadComponent[Position](w.Storage(), shipId)

	input.tap(KeyFire)
	w.Step(1.0 / 60)
	input.release()

	require.Len(t, events.bullets, 1)
	bullet := events.bullets[0]
	assert.Equal(t, shipPos, bullet.Position)
	assert.InDelta(t, cfg.Ship.Orientation, bullet.Movement.Heading, 1e-9)
	assert.InDelta(t, cfg.Bullet.SpeedBonus, bullet.Movement.Speed, 1e-12)
	assert.Contains(t, events.cues, CueFire)
	assert.Equal(t, 1, countOf[Bullet](w.Storage()))

	w.Step(1.0 / 60)
	assert.Len(t, events.bullets, 1, "fire triggers on the key press only")
}

func TestNoControlOutsideGame(t *testing.T) {
	input := newScriptedInput()
	events := &recorder{}
	w := newTestWorld(t, testConfig(), input, events)

	input.tap(KeyFire)
	w.Step(1.0 / 60)
	assert.Empty(t, events.bullets)
}
