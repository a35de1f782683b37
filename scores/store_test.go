package scores

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/plus3/meteors/ecs"
	"github.com/plus3/meteors/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "scores.db")
	store, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, path
}

func TestOpenCreatesFile(t *testing.T) {
	_, path := openTemp(t)
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestSaveAndTop(t *testing.T) {
	store, _ := openTemp(t)

	for _, g := range []struct {
		score uint
		wave  int
	}{{10, 1}, {40, 3}, {25, 2}, {40, 4}} {
		_, err := store.Save(g.score, g.wave)
		require.NoError(t, err)
	}

	top, err := store.Top(3)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, uint(40), top[0].Score)
	assert.Equal(t, 3, top[0].Wave, "ties keep the earlier game first")
	assert.Equal(t, uint(40), top[1].Score)
	assert.Equal(t, uint(25), top[2].Score)
	assert.False(t, top[0].CreatedAt.IsZero())

	best, err := store.Best()
	require.NoError(t, err)
	assert.Equal(t, uint(40), best)
}

func TestEmptyTable(t *testing.T) {
	store, _ := openTemp(t)

	top, err := store.Top(0)
	require.NoError(t, err)
	assert.Empty(t, top)

	best, err := store.Best()
	require.NoError(t, err)
	assert.Zero(t, best)
}

func TestClear(t *testing.T) {
	store, _ := openTemp(t)
	_, err := store.Save(5, 1)
	require.NoError(t, err)

	require.NoError(t, store.Clear())
	top, err := store.Top(10)
	require.NoError(t, err)
	assert.Empty(t, top)
}

func TestReopenKeepsScores(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.db")
	store, err := Open(path)
	require.NoError(t, err)
	_, err = store.Save(99, 7)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()
	best, err := store.Best()
	require.NoError(t, err)
	assert.Equal(t, uint(99), best)
}

func TestInMemory(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Save(3, 1)
	require.NoError(t, err)
	top, err := store.Top(10)
	require.NoError(t, err)
	assert.Len(t, top, 1)
}

type overSender struct {
	Over ecs.Events[game.GameOver]
	next []game.GameOver
}

func (s *overSender) Execute(frame *ecs.UpdateFrame) {
	for _, o := range s.next {
		s.Over.Send(o)
	}
	s.next = nil
}

type failingSaver struct{ calls int }

func (f *failingSaver) Save(uint, int) (int64, error) {
	f.calls++
	return 0, errors.New("disk full")
}

func TestRecorderSystemSavesGameOver(t *testing.T) {
	store, _ := openTemp(t)
	scheduler := ecs.NewScheduler(ecs.NewStorage(ecs.NewComponentRegistry()))
	sender := &overSender{}
	scheduler.Register(sender)
	scheduler.Register(NewRecorderSystem(store, log.New(io.Discard)))

	sender.next = []game.GameOver{{Score: 17, Wave: 2}}
	scheduler.Once(1.0 / 60)
	scheduler.Once(1.0 / 60)

	top, err := store.Top(10)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, uint(17), top[0].Score)
	assert.Equal(t, 2, top[0].Wave)
}

func TestRecorderSystemSurvivesSaveError(t *testing.T) {
	saver := &failingSaver{}
	scheduler := ecs.NewScheduler(ecs.NewStorage(ecs.NewComponentRegistry()))
	sender := &overSender{next: []game.GameOver{{Score: 1, Wave: 1}}}
	scheduler.Register(sender)
	scheduler.Register(NewRecorderSystem(saver, log.New(io.Discard)))

	assert.NotPanics(t, func() { scheduler.Once(1.0 / 60) })
	assert.Equal(t, 1, saver.calls)
}
