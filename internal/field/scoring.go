package field

import (
	"math"

	"github.com/vovakirdan/rockfield/internal/config"
)

// rewardEpsilon absorbs float rounding so whole-number rewards at tier
// boundaries are not floored one point short.
const rewardEpsilon = 1e-9

// Scoring converts score into forward speed and hit rewards.
type Scoring struct {
	cfg config.ScoringConfig
}

// NewScoring creates a scoring engine.
func NewScoring(cfg config.ScoringConfig) Scoring {
	return Scoring{cfg: cfg}
}

// SpeedTier returns max(0, score) / tier_size. It is continuous, not floored.
func (s Scoring) SpeedTier(score int) float64 {
	return float64(max(0, score)) / s.cfg.TierSize
}

// CurrentSpeed returns min(max_speed, base_speed * tier_growth^tier).
func (s Scoring) CurrentSpeed(score int) float64 {
	speed := s.cfg.BaseSpeed * math.Pow(s.cfg.TierGrowth, s.SpeedTier(score))
	return math.Min(s.cfg.MaxSpeed, speed)
}

// SpeedMultiplier returns the current speed relative to the base speed.
func (s Scoring) SpeedMultiplier(score int) float64 {
	return s.CurrentSpeed(score) / s.cfg.BaseSpeed
}

// HitReward returns floor(hit_points * speed multiplier).
func (s Scoring) HitReward(score int) int {
	return int(math.Floor(s.cfg.HitPoints*s.SpeedMultiplier(score) + rewardEpsilon))
}

// Apply adds delta to score, clamping the result at zero.
func (s Scoring) Apply(score, delta int) int {
	return max(0, score+delta)
}
