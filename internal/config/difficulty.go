package config

import "math"

// DifficultyManager derives score-dependent spawn parameters.
// With progression disabled every value stays at its score-0 level.
type DifficultyManager struct {
	spawn     SpawnConfig
	asteroids AsteroidConfig
	enabled   bool
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg FieldConfig) *DifficultyManager {
	return &DifficultyManager{
		spawn:     cfg.Spawn,
		asteroids: cfg.Asteroids,
		enabled:   cfg.Difficulty.Progression,
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.enabled
}

// effectiveScore is the score used for progression. Negative scores count as zero.
func (d *DifficultyManager) effectiveScore(score int) float64 {
	if !d.enabled || score < 0 {
		return 0
	}
	return float64(score)
}

// SpawnInterval returns seconds between spawn events:
// max(interval_min, interval_start - score/rate_scale).
func (d *DifficultyManager) SpawnInterval(score int) float64 {
	interval := d.spawn.IntervalStart - d.effectiveScore(score)/d.spawn.RateScale
	return math.Max(d.spawn.IntervalMin, interval)
}

// MaxVelocity returns the upper bound for new asteroid speed:
// velocity_base + score/velocity_scale.
func (d *DifficultyManager) MaxVelocity(score int) float64 {
	return d.asteroids.VelocityBase + d.effectiveScore(score)/d.asteroids.VelocityScale
}
