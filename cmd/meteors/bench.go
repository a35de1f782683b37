package main

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/plus3/meteors/config"
	"github.com/plus3/meteors/ecs"
	"github.com/plus3/meteors/game"
	"github.com/spf13/cobra"
)

var (
	flagFrames    int
	flagDuration  time.Duration
	flagCollision string
	flagGCPause   bool
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run the simulation headless and print a report",
	Long: `Plays the game without a window using a scripted pilot that turns,
thrusts and fires on a fixed rhythm and restarts after every game over.
The run stops after --frames frames or --duration, whichever comes first.`,
	Args: cobra.NoArgs,
	RunE: runBenchCmd,
}

func init() {
	benchCmd.Flags().IntVar(&flagFrames, "frames", 36_000, "Frames to simulate")
	benchCmd.Flags().DurationVar(&flagDuration, "duration", 0, "Wall clock limit (0 = none)")
	benchCmd.Flags().StringVar(&flagCollision, "collision", "", "Override collision.strategy (proximity, chipmunk)")
	benchCmd.Flags().BoolVar(&flagGCPause, "gc-pause-metrics", false, "Include GC pause metrics in the report")
}

func runBenchCmd(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	if flagCollision != "" {
		cfg.Collision.Strategy = flagCollision
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	report, err := runBench(ctx, cfg, benchOptions{
		Frames:         flagFrames,
		Duration:       flagDuration,
		GCPauseMetrics: flagGCPause,
	}, logger)
	if err != nil {
		return err
	}
	return report.Generate(cmd.OutOrStdout())
}

type benchOptions struct {
	Frames         int
	Duration       time.Duration
	GCPauseMetrics bool
}

// autopilot turns left continuously, thrusts in bursts, fires every few
// frames and presses start whenever it is offered.
type autopilot struct {
	frame int
}

func (a *autopilot) Pressed(k game.Key) bool {
	switch k {
	case game.KeyTurnLeft:
		return true
	case game.KeyThrust:
		return a.frame%120 < 20
	}
	return false
}

func (a *autopilot) JustPressed(k game.Key) bool {
	switch k {
	case game.KeyFire:
		return a.frame%8 == 0
	case game.KeyStart:
		return true
	}
	return false
}

// tally counts finished games and fired cues.
type tally struct {
	Over ecs.Events[game.GameOver]
	Cues ecs.Events[game.Cue]

	games []game.GameOver
	cues  map[game.Cue]int
}

func (t *tally) Execute(frame *ecs.UpdateFrame) {
	for over := range t.Over.Iter() {
		t.games = append(t.games, over)
	}
	for cue := range t.Cues.Iter() {
		t.cues[cue]++
	}
}

func runBench(ctx context.Context, cfg config.Config, opts benchOptions, logger *log.Logger) (*Report, error) {
	if opts.Frames <= 0 {
		return nil, fmt.Errorf("bench: frames must be positive, got %d", opts.Frames)
	}
	if opts.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Duration)
		defer cancel()
	}

	pilot := &autopilot{}
	counts := &tally{cues: make(map[game.Cue]int)}
	world, err := game.NewWorld(cfg, pilot, nil, logger, counts)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Frames:         opts.Frames,
		Collision:      cfg.Collision.Strategy,
		Seed:           cfg.Seed,
		GCPauseMetrics: opts.GCPauseMetrics,
		UpdateTime:     Stats{Samples: make([]time.Duration, 0, opts.Frames)},
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Info("bench running", "frames", opts.Frames, "collision", cfg.Collision.Strategy)
	dt := 1 / float64(cfg.Window.TPS)
	start := time.Now()

Loop:
	for ; pilot.frame < opts.Frames; pilot.frame++ {
		select {
		case <-ctx.Done():
			break Loop
		default:
		}

		updateStart := time.Now()
		world.Step(dt)
		report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))

		if pilot.frame%60 == 0 {
			report.PeakEntities = max(report.PeakEntities, world.Storage().CollectStats().TotalEntityCount)
		}
	}

	report.TotalTime = time.Since(start)
	report.TotalUpdates = int64(pilot.frame)
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	report.Games = counts.games
	for _, g := range counts.games {
		report.BestScore = max(report.BestScore, g.Score)
		report.BestWave = max(report.BestWave, g.Wave)
	}
	hud := world.HUD()
	report.FinalState = hud.State
	report.FinalScore = hud.Score
	report.Shots = counts.cues[game.CueFire]
	report.Explosions = counts.cues[game.CueExplosion]
	report.ShipsLost = counts.cues[game.CueShipLost] + counts.cues[game.CueGameOver]
	report.Systems = world.Scheduler().GetStats().Systems

	logger.Info("bench finished", "updates", report.TotalUpdates, "games", len(report.Games), "elapsed", report.TotalTime)
	return report, nil
}
