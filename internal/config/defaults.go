package config

import (
	_ "embed"
)

//go:embed defaults/field.yaml
var defaultFieldYAML []byte

// DefaultFieldConfig returns the default asteroid field configuration.
func DefaultFieldConfig() FieldConfig {
	return FieldConfig{
		Spawn: SpawnConfig{
			InitialCount:  10,
			MaxAsteroids:  30,
			BatchMin:      1,
			BatchMax:      2,
			IntervalStart: 1.2,
			IntervalMin:   0.3,
			RateScale:     2000,
			DistanceMin:   60,
			DistanceMax:   150,
			LateralSpread: 120,
			SafetyMargin:  15,
			MaxRetries:    10,
		},
		Asteroids: AsteroidConfig{
			RadiusMin:        2,
			RadiusMax:        8,
			VelocityMin:      0.5,
			VelocityBase:     10,
			VelocityScale:    500,
			RotationSpeedMax: 1.0,
			RemoveDistance:   200,
		},
		Collision: CollisionConfig{
			PlayerRadius: 0.5,
			HitboxScale:  1.25,
		},
		Scoring: ScoringConfig{
			BaseSpeed:  30,
			MaxSpeed:   150,
			TierSize:   500,
			TierGrowth: 1.2,
			HitPoints:  100,
		},
		Explosions: ExplosionConfig{
			DurationMS: 600,
		},
		Difficulty: DifficultyConfig{
			Progression: true,
		},
	}
}

// DefaultFieldYAML returns the embedded default YAML.
func DefaultFieldYAML() []byte {
	return defaultFieldYAML
}
