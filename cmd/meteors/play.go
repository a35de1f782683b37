package main

import (
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/meteors/audio"
	"github.com/plus3/meteors/config"
	"github.com/plus3/meteors/debugui"
	"github.com/plus3/meteors/ecs"
	"github.com/plus3/meteors/game"
	"github.com/plus3/meteors/render"
	"github.com/plus3/meteors/scores"
	"github.com/spf13/cobra"
)

var flagDebug bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the game window",
	RunE:  runPlay,
}

func init() {
	// play is also the root command's default action
	for _, c := range []*cobra.Command{rootCmd, playCmd} {
		c.Flags().BoolVar(&flagDebug, "debug", false, "Show the debug panels")
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	backend := debugui.NewBackend(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)

	sound := openAudio(cfg.Audio, logger)
	defer sound.Cleanup()
	extra := []ecs.System{audio.NewCueSystem(sound)}

	if store, err := scores.Open(cfg.ScoresPath()); err != nil {
		logger.Warn("high scores disabled", "err", err)
	} else {
		defer store.Close()
		extra = append(extra, scores.NewRecorderSystem(store, logger))
	}

	input := render.NewKeyboardInput()
	world, err := game.NewWorld(cfg, input, nil, logger, extra...)
	if err != nil {
		return err
	}
	capture := debugui.Install(world, debugui.Options{Debug: cfg.Debug.UI || flagDebug})
	input.Blocked = func() bool { return capture.Get().Keyboard }

	renderer := render.NewRenderer(world, cfg.Assets.Dir, logger)
	logger.Info("starting", "window", cfg.Window.Title, "tps", cfg.Window.TPS, "collision", cfg.Collision.Strategy)
	return ebiten.RunGame(render.NewGame(world, renderer, backend, cfg.Window.TPS))
}

// openAudio returns a sound manager that is silent when audio is disabled or
// no device is available.
func openAudio(cfg config.AudioConfig, logger *log.Logger) *audio.SoundManager {
	sound := audio.NewSoundManager(cfg, logger)
	if !cfg.Enabled {
		return sound
	}
	if err := sound.Initialize(); err != nil {
		logger.Warn("audio unavailable", "err", err)
	}
	return sound
}
