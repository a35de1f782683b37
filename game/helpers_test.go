package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/plus3/meteors/config"
	"github.com/plus3/meteors/ecs"
	"github.com/stretchr/testify/require"
)

type scriptedInput struct {
	pressed map[Key]bool
	just    map[Key]bool
}

func newScriptedInput() *scriptedInput {
	return &scriptedInput{pressed: map[Key]bool{}, just: map[Key]bool{}}
}

func (i *scriptedInput) Pressed(k Key) bool     { return i.pressed[k] }
func (i *scriptedInput) JustPressed(k Key) bool { return i.just[k] }

// tap marks k as just pressed for exactly the next frame.
func (i *scriptedInput) tap(k Key) {
	i.just[k] = true
}

func (i *scriptedInput) release() {
	clear(i.just)
}

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Seed = 7
	cfg.Collision.Strategy = config.StrategyProximity
	cfg.Audio.Enabled = false
	return cfg
}

func newTestWorld(t *testing.T, cfg config.Config, input InputSource, extra ...ecs.System) *World {
	t.Helper()
	w, err := NewWorld(cfg, input, nil, testLogger(), extra...)
	require.NoError(t, err)
	return w
}

// startGame drives a fresh world into InProgress.
func startGame(t *testing.T, w *World) {
	t.Helper()
	w.Start()
	w.Step(1.0 / 60)
	require.Equal(t, Loading, w.HUD().State)
	w.Step(1.0 / 60)
	require.Equal(t, InProgress, w.HUD().State)
}

type recorder struct {
	ShipSpawns   ecs.Events[SpawnShip]
	MeteorSpawns ecs.Events[SpawnMeteor]
	Bullets      ecs.Events[SpawnBullet]
	Cues         ecs.Events[Cue]
	Over         ecs.Events[GameOver]

	ships   []SpawnShip
	meteors []SpawnMeteor
	bullets []SpawnBullet
	cues    []Cue
	over    []GameOver
}

func (r *recorder) Execute(frame *ecs.UpdateFrame) {
	for e := range r.ShipSpawns.Iter() {
		r.ships = append(r.ships, e)
	}
	for e := range r.MeteorSpawns.Iter() {
		r.meteors = append(r.meteors, e)
	}
	for e := range r.Bullets.Iter() {
		r.bullets = append(r.bullets, e)
	}
	for e := range r.Cues.Iter() {
		r.cues = append(r.cues, e)
	}
	for e := range r.Over.Iter() {
		r.over = append(r.over, e)
	}
}

func (r *recorder) reset() {
	r.ships, r.meteors, r.bullets, r.cues, r.over = nil, nil, nil, nil, nil
}

func countOf[T any](storage *ecs.Storage) int {
	n := 0
	for range ecs.NewView[struct{ Item *T }](storage).Values() {
		n++
	}
	return n
}

func first[T any](t *testing.T, storage *ecs.Storage) (ecs.EntityId, *T) {
	t.Helper()
	for id, item := range ecs.NewView[struct{ Item *T }](storage).Iter() {
		return id, item.Item
	}
	t.Fatalf("no entity with %T", *new(T))
	return 0, nil
}
