package field

import (
	"github.com/vovakirdan/rockfield/internal/config"
	"github.com/vovakirdan/rockfield/internal/core"
)

// HitDistance returns the distance below which an asteroid of the given
// radius touches the observer. The hitbox scale covers surface displacement
// that pushes the visible silhouette past the nominal radius.
func HitDistance(radius float64, cfg config.CollisionConfig) float64 {
	return radius*cfg.HitboxScale + cfg.PlayerRadius
}

// DetectCollision returns the index of the first asteroid, in population
// order, that touches the observer, or -1. Scanning stops at the first
// match; it is not necessarily the nearest one.
func DetectCollision(asteroids []Asteroid, observer core.Vec3, cfg config.CollisionConfig) int {
	for i, a := range asteroids {
		if a.Position.Distance(observer) < HitDistance(a.Radius, cfg) {
			return i
		}
	}
	return -1
}
