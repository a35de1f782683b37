// meteors is an Asteroids-style arcade game.
//
// Usage:
//
//	meteors [play]        - Open the game window (default)
//	meteors scores        - Show the high score table
//	meteors bench         - Run the simulation headless and print a report
//
// Global flags:
//
//	--config <path>       - Config file (default: ~/.meteors/config.yaml, then ./configs/meteors.yaml)
//	--log-level <level>   - debug, info, warn or error (overrides log.level)
//	--seed <value>        - RNG seed (overrides seed; 0 keeps the config value)
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/plus3/meteors/config"
	"github.com/spf13/cobra"
)

var (
	flagConfig   string
	flagLogLevel string
	flagSeed     uint64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "meteors",
	Short: "Meteors - fly a ship, shoot the rocks",
	Long: `Meteors is an Asteroids-style arcade game.

Controls:
  Up / W          thrust
  Left / A        turn left
  Right / D       turn right
  Space           fire
  Enter           start
  Esc             quit

Examples:
  meteors
  meteors play --debug
  meteors scores
  meteors bench --frames 100000`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = use config)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(benchCmd)
}

// setup loads the config and builds the logger every command shares.
func setup() (config.Config, *log.Logger, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, nil, fmt.Errorf("loading config: %w", err)
	}
	if flagSeed != 0 {
		cfg.Seed = flagSeed
	}
	if flagLogLevel != "" {
		cfg.Log.Level = strings.ToLower(flagLogLevel)
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return cfg, nil, fmt.Errorf("log level: %w", err)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		Prefix:          "meteors",
		ReportTimestamp: true,
	})
	logger.Debug("config loaded", "source", cfg.Source)
	return cfg, logger, nil
}
