// Package config provides YAML-based configuration loading for meteors.
package config

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

//go:embed defaults/meteors.yaml
var defaultYAML []byte

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Collision strategies.
const (
	StrategyProximity = "proximity"
	StrategyChipmunk  = "chipmunk"
)

// Ship impact policies.
const (
	ImpactLoseLife = "lose_life"
	ImpactAbsorb   = "absorb"
)

// Meteor bounds behaviours.
const (
	BoundsWrap    = "wrap"
	BoundsDespawn = "despawn"
)

// Config contains all configuration for a meteors session.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Ship      ShipConfig      `yaml:"ship"`
	Meteor    MeteorConfig    `yaml:"meteor"`
	Bullet    BulletConfig    `yaml:"bullet"`
	Collision CollisionConfig `yaml:"collision"`
	Audio     AudioConfig     `yaml:"audio"`
	Scores    ScoresConfig    `yaml:"scores"`
	Assets    AssetsConfig    `yaml:"assets"`
	Debug     DebugConfig     `yaml:"debug"`
	Seed      uint64          `yaml:"seed"` // 0 = seed from the clock
	Log       LogConfig       `yaml:"log"`

	// Source names where the config was read from.
	Source string `yaml:"-"`
}

// WindowConfig defines the viewport. The simulation uses the same units as
// window pixels.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	TPS    int    `yaml:"tps"`
}

// ShipConfig defines the player ship.
type ShipConfig struct {
	Lives       uint    `yaml:"lives"`
	SpawnX      float64 `yaml:"spawn_x"`
	SpawnY      float64 `yaml:"spawn_y"`
	Orientation float64 `yaml:"orientation"`
	TurnStep    float64 `yaml:"turn_step"`    // radians added per frame while turning
	TurnDamping float64 `yaml:"turn_damping"` // 1 = turn accumulates forever
	Thrust      float64 `yaml:"thrust"`
	Radius      float64 `yaml:"radius"`
	SafeRadius  float64 `yaml:"safe_radius"`
}

// MeteorConfig defines meteor spawning and splitting.
type MeteorConfig struct {
	InitialCount   int     `yaml:"initial_count"`
	InitialSize    int     `yaml:"initial_size"`
	MaxSpeed       float64 `yaml:"max_speed"`
	SplitThreshold int     `yaml:"split_threshold"`
	SplitAngle     float64 `yaml:"split_angle"`
	RadiusPerSize  float64 `yaml:"radius_per_size"`
	Bounds         string  `yaml:"bounds"`
}

// BulletConfig defines bullets.
type BulletConfig struct {
	SpeedBonus float64 `yaml:"speed_bonus"`
	Radius     float64 `yaml:"radius"`
}

// CollisionConfig selects the collision detector.
type CollisionConfig struct {
	Strategy   string  `yaml:"strategy"`
	Threshold  float64 `yaml:"threshold"`
	ShipImpact string  `yaml:"ship_impact"`
}

// AudioConfig defines sound cue playback.
type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	Volume     float64 `yaml:"volume"`
}

// ScoresConfig defines the high score database.
type ScoresConfig struct {
	Path  string `yaml:"path"` // empty = ~/.meteors/scores.db
	Limit int    `yaml:"limit"`
}

// AssetsConfig points at the sprite directory.
type AssetsConfig struct {
	Dir string `yaml:"dir"`
}

// DebugConfig toggles the debug overlay.
type DebugConfig struct {
	UI bool `yaml:"ui"`
}

// LogConfig defines logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the embedded default configuration.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		panic(fmt.Sprintf("embedded default config: %v", err))
	}
	cfg.Source = "embedded"
	return cfg
}

// Validate checks value ranges. Every error wraps ErrInvalid.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	check(c.Window.TPS > 0, "window.tps %d must be positive", c.Window.TPS)
	check(c.Ship.Lives > 0, "ship.lives must be at least 1")
	check(c.Ship.TurnDamping >= 0 && c.Ship.TurnDamping <= 1, "ship.turn_damping %v must be within [0, 1]", c.Ship.TurnDamping)
	check(c.Ship.Radius > 0, "ship.radius %v must be positive", c.Ship.Radius)
	check(c.Ship.SafeRadius >= 0, "ship.safe_radius %v must not be negative", c.Ship.SafeRadius)
	check(c.Meteor.InitialCount >= 0, "meteor.initial_count %d must not be negative", c.Meteor.InitialCount)
	check(c.Meteor.InitialSize > 0, "meteor.initial_size %d must be positive", c.Meteor.InitialSize)
	check(c.Meteor.MaxSpeed >= 0, "meteor.max_speed %v must not be negative", c.Meteor.MaxSpeed)
	check(c.Meteor.SplitThreshold >= 1, "meteor.split_threshold %d must be at least 1", c.Meteor.SplitThreshold)
	check(c.Meteor.RadiusPerSize > 0, "meteor.radius_per_size %v must be positive", c.Meteor.RadiusPerSize)
	check(c.Meteor.Bounds == BoundsWrap || c.Meteor.Bounds == BoundsDespawn, "meteor.bounds %q must be %q or %q", c.Meteor.Bounds, BoundsWrap, BoundsDespawn)
	check(c.Bullet.Radius > 0, "bullet.radius %v must be positive", c.Bullet.Radius)
	check(c.Collision.Strategy == StrategyProximity || c.Collision.Strategy == StrategyChipmunk,
		"collision.strategy %q must be %q or %q", c.Collision.Strategy, StrategyProximity, StrategyChipmunk)
	check(c.Collision.Threshold > 0, "collision.threshold %v must be positive", c.Collision.Threshold)
	check(c.Collision.ShipImpact == ImpactLoseLife || c.Collision.ShipImpact == ImpactAbsorb,
		"collision.ship_impact %q must be %q or %q", c.Collision.ShipImpact, ImpactLoseLife, ImpactAbsorb)
	check(!c.Audio.Enabled || c.Audio.SampleRate > 0, "audio.sample_rate %d must be positive", c.Audio.SampleRate)
	check(c.Scores.Limit > 0, "scores.limit %d must be positive", c.Scores.Limit)

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("%w: log.level: %v", ErrInvalid, err))
	}

	return errors.Join(errs...)
}
