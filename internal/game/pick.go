package game

import (
	"math"

	"github.com/vovakirdan/rockfield/internal/core"
	"github.com/vovakirdan/rockfield/internal/field"
)

// RaySphere returns the distance along a unit ray to the first intersection
// with a sphere. A ray starting inside the sphere hits at distance 0.
func RaySphere(origin, dir, center core.Vec3, radius float64) (float64, bool) {
	oc := origin.Sub(center)
	b := oc.Dot(dir)
	c := oc.LengthSq() - radius*radius
	if c <= 0 {
		return 0, true
	}
	disc := b*b - c
	if b > 0 || disc < 0 {
		return 0, false
	}
	return -b - math.Sqrt(disc), true
}

// Pick casts a ray and returns the nearest asteroid it hits along with the
// world-space hit point.
func Pick(asteroids []field.Asteroid, origin, dir core.Vec3) (id uint64, point core.Vec3, ok bool) {
	dir = dir.Normalize()
	best := math.Inf(1)
	for _, a := range asteroids {
		t, hit := RaySphere(origin, dir, a.Position, a.Radius)
		if hit && t < best {
			best, id, ok = t, a.ID, true
		}
	}
	if ok {
		point = origin.Add(dir.Scale(best))
	}
	return id, point, ok
}
