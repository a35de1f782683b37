package game

import "github.com/plus3/meteors/config"

// Rules are the tuning values the systems read.
type Rules struct {
	Lives           uint
	ShipSpawn       Position
	ShipOrientation float64
	TurnStep        float64
	TurnDamping     float64
	Thrust          float64
	ShipRadius      float64
	SafeRadius      float64

	InitialMeteors int
	InitialSize    int
	MeteorMaxSpeed float64
	SplitThreshold int
	SplitAngle     float64
	RadiusPerSize  float64
	MeteorsWrap    bool

	BulletSpeedBonus float64
	BulletRadius     float64

	AbsorbImpact bool
}

func RulesFromConfig(cfg config.Config) Rules {
	return Rules{
		Lives:           cfg.Ship.Lives,
		ShipSpawn:       Position{X: cfg.Ship.SpawnX, Y: cfg.Ship.SpawnY},
		ShipOrientation: WrapAngle(cfg.Ship.Orientation),
		TurnStep:        cfg.Ship.TurnStep,
		TurnDamping:     cfg.Ship.TurnDamping,
		Thrust:          cfg.Ship.Thrust,
		ShipRadius:      cfg.Ship.Radius,
		SafeRadius:      cfg.Ship.SafeRadius,

		InitialMeteors: cfg.Meteor.InitialCount,
		InitialSize:    cfg.Meteor.InitialSize,
		MeteorMaxSpeed: cfg.Meteor.MaxSpeed,
		SplitThreshold: cfg.Meteor.SplitThreshold,
		SplitAngle:     cfg.Meteor.SplitAngle,
		RadiusPerSize:  cfg.Meteor.RadiusPerSize,
		MeteorsWrap:    cfg.Meteor.Bounds == config.BoundsWrap,

		BulletSpeedBonus: cfg.Bullet.SpeedBonus,
		BulletRadius:     cfg.Bullet.Radius,

		AbsorbImpact: cfg.Collision.ShipImpact == config.ImpactAbsorb,
	}
}
