// Package config provides YAML-based configuration loading and
// difficulty management for the asteroid field.
package config

import (
	"errors"
	"fmt"
)

// FieldConfig contains all tunables of the asteroid field simulation.
type FieldConfig struct {
	Spawn      SpawnConfig      `yaml:"spawn"`
	Asteroids  AsteroidConfig   `yaml:"asteroids"`
	Collision  CollisionConfig  `yaml:"collision"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Explosions ExplosionConfig  `yaml:"explosions"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// SpawnConfig defines when and where new asteroids appear.
type SpawnConfig struct {
	InitialCount  int     `yaml:"initial_count"`  // Population at game start
	MaxAsteroids  int     `yaml:"max_asteroids"`  // Hard population cap
	BatchMin      int     `yaml:"batch_min"`      // Asteroids per spawn event (min)
	BatchMax      int     `yaml:"batch_max"`      // Asteroids per spawn event (max)
	IntervalStart float64 `yaml:"interval_start"` // Seconds between spawns at score 0
	IntervalMin   float64 `yaml:"interval_min"`   // Floor for the spawn interval
	RateScale     float64 `yaml:"rate_scale"`     // Score per second of interval reduction
	DistanceMin   float64 `yaml:"distance_min"`   // Closest spawn distance ahead of the observer
	DistanceMax   float64 `yaml:"distance_max"`   // Farthest spawn distance ahead of the observer
	LateralSpread float64 `yaml:"lateral_spread"` // Width of the spawn window across the view
	SafetyMargin  float64 `yaml:"safety_margin"`  // Minimum clearance from the observer
	MaxRetries    int     `yaml:"max_retries"`    // Placement attempts before taking the best candidate
}

// AsteroidConfig defines asteroid physical parameters.
type AsteroidConfig struct {
	RadiusMin        float64 `yaml:"radius_min"`
	RadiusMax        float64 `yaml:"radius_max"`
	VelocityMin      float64 `yaml:"velocity_min"`
	VelocityBase     float64 `yaml:"velocity_base"`  // Velocity cap at score 0
	VelocityScale    float64 `yaml:"velocity_scale"` // Score per unit of extra velocity cap
	RotationSpeedMax float64 `yaml:"rotation_speed_max"`
	RemoveDistance   float64 `yaml:"remove_distance"` // Cull distance from the observer
}

// CollisionConfig defines the observer hitbox.
type CollisionConfig struct {
	PlayerRadius float64 `yaml:"player_radius"`
	HitboxScale  float64 `yaml:"hitbox_scale"` // Asteroid radius multiplier covering surface displacement
}

// ScoringConfig defines forward speed and hit rewards.
type ScoringConfig struct {
	BaseSpeed  float64 `yaml:"base_speed"`
	MaxSpeed   float64 `yaml:"max_speed"`
	TierSize   float64 `yaml:"tier_size"`   // Score per speed tier
	TierGrowth float64 `yaml:"tier_growth"` // Speed factor per tier
	HitPoints  float64 `yaml:"hit_points"`  // Reward at speed multiplier 1.0
}

// ExplosionConfig defines explosion lifetime.
type ExplosionConfig struct {
	DurationMS int `yaml:"duration_ms"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Progression bool `yaml:"progression"` // Score shortens spawn interval and raises velocity cap
}

// Validate reports settings that would make the simulation ill-defined.
func (c FieldConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	s := c.Spawn
	check(s.MaxAsteroids >= 1, "spawn.max_asteroids must be at least 1, got %d", s.MaxAsteroids)
	check(s.InitialCount >= 0, "spawn.initial_count must not be negative, got %d", s.InitialCount)
	check(s.BatchMin >= 1 && s.BatchMin <= s.BatchMax, "spawn.batch_min/batch_max invalid: %d..%d", s.BatchMin, s.BatchMax)
	check(s.IntervalMin > 0, "spawn.interval_min must be positive, got %v", s.IntervalMin)
	check(s.IntervalStart >= s.IntervalMin, "spawn.interval_start %v below interval_min %v", s.IntervalStart, s.IntervalMin)
	check(s.RateScale > 0, "spawn.rate_scale must be positive, got %v", s.RateScale)
	check(s.DistanceMin > 0 && s.DistanceMin <= s.DistanceMax, "spawn.distance_min/distance_max invalid: %v..%v", s.DistanceMin, s.DistanceMax)
	check(s.MaxRetries >= 1, "spawn.max_retries must be at least 1, got %d", s.MaxRetries)

	a := c.Asteroids
	check(a.RadiusMin > 0 && a.RadiusMin <= a.RadiusMax, "asteroids.radius_min/radius_max invalid: %v..%v", a.RadiusMin, a.RadiusMax)
	check(a.VelocityMin >= 0 && a.VelocityMin <= a.VelocityBase, "asteroids.velocity_min %v above velocity_base %v", a.VelocityMin, a.VelocityBase)
	check(a.VelocityScale > 0, "asteroids.velocity_scale must be positive, got %v", a.VelocityScale)
	check(a.RemoveDistance > s.DistanceMax, "asteroids.remove_distance %v must exceed spawn.distance_max %v", a.RemoveDistance, s.DistanceMax)

	sc := c.Scoring
	check(sc.BaseSpeed > 0 && sc.BaseSpeed <= sc.MaxSpeed, "scoring.base_speed/max_speed invalid: %v..%v", sc.BaseSpeed, sc.MaxSpeed)
	check(sc.TierSize > 0, "scoring.tier_size must be positive, got %v", sc.TierSize)
	check(sc.TierGrowth >= 1, "scoring.tier_growth must be at least 1, got %v", sc.TierGrowth)

	check(c.Collision.HitboxScale > 0, "collision.hitbox_scale must be positive, got %v", c.Collision.HitboxScale)
	check(c.Explosions.DurationMS > 0, "explosions.duration_ms must be positive, got %d", c.Explosions.DurationMS)

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid field config: %w", errors.Join(errs...))
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value to a preset. Unknown values return "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// ApplyFieldPreset modifies the config based on a difficulty preset.
// An empty preset leaves the config unchanged.
func ApplyFieldPreset(cfg *FieldConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Difficulty.Progression = true
		cfg.Spawn.IntervalStart = 1.6
		cfg.Asteroids.VelocityBase = 7
		cfg.Spawn.MaxAsteroids = 20
	case DifficultyNormal:
		cfg.Difficulty.Progression = true
	case DifficultyHard:
		cfg.Difficulty.Progression = true
		cfg.Spawn.IntervalStart = 0.9
		cfg.Asteroids.VelocityBase = 14
	case DifficultyFixed:
		cfg.Difficulty.Progression = false
	}
	cfg.Spawn.InitialCount = min(cfg.Spawn.InitialCount, cfg.Spawn.MaxAsteroids)
}
