package game

import (
	"math"

	"github.com/vovakirdan/rockfield/internal/core"
)

// Camera look limits and step per key press.
const (
	LookStep = 0.04 // Radians per look action
	MaxPitch = 1.3  // Radians above or below the horizon
	FOV      = 70.0 // Horizontal field of view in degrees
	NearClip = 0.5  // Closest renderable depth
)

// Camera is the first-person view of the observer. Yaw 0 and pitch 0 look
// down -Z with +Y up.
type Camera struct {
	Yaw   float64
	Pitch float64
}

// Look applies one tick of look input.
func (c *Camera) Look(in core.InputFrame) {
	if in.Has(core.ActionLeft) {
		c.Yaw -= LookStep
	}
	if in.Has(core.ActionRight) {
		c.Yaw += LookStep
	}
	if in.Has(core.ActionUp) {
		c.Pitch += LookStep
	}
	if in.Has(core.ActionDown) {
		c.Pitch -= LookStep
	}
	c.Pitch = core.ClampF(c.Pitch, -MaxPitch, MaxPitch)
	c.Yaw = math.Remainder(c.Yaw, 2*math.Pi)
}

// Forward returns the unit view direction.
func (c Camera) Forward() core.Vec3 {
	cp := math.Cos(c.Pitch)
	return core.V3(math.Sin(c.Yaw)*cp, math.Sin(c.Pitch), -math.Cos(c.Yaw)*cp)
}

// Right returns the unit vector to the right of the view, parallel to the
// horizon.
func (c Camera) Right() core.Vec3 {
	return core.V3(math.Cos(c.Yaw), 0, math.Sin(c.Yaw))
}

// Up returns the unit vector completing the view basis.
func (c Camera) Up() core.Vec3 {
	return c.Right().Cross(c.Forward())
}

// View is a camera placed in the world and bound to a screen size.
type View struct {
	Eye     core.Vec3
	Forward core.Vec3
	Right   core.Vec3
	Up      core.Vec3
	Width   int
	Height  int
	focal   float64
}

// NewView builds the projection for a camera at eye.
func NewView(c Camera, eye core.Vec3, width, height int) View {
	half := FOV * math.Pi / 360
	return View{
		Eye:     eye,
		Forward: c.Forward(),
		Right:   c.Right(),
		Up:      c.Up(),
		Width:   width,
		Height:  height,
		focal:   float64(width) / 2 / math.Tan(half),
	}
}

// ToCamera converts a world point into camera space (x right, y up, z depth).
func (v View) ToCamera(p core.Vec3) core.Vec3 {
	d := p.Sub(v.Eye)
	return core.V3(d.Dot(v.Right), d.Dot(v.Up), d.Dot(v.Forward))
}

// Project maps a camera-space point to fractional screen coordinates.
// Terminal cells are about twice as tall as wide, so y is halved.
// ok is false for points behind the near plane.
func (v View) Project(c core.Vec3) (sx, sy float64, ok bool) {
	if c.Z < NearClip {
		return 0, 0, false
	}
	sx = float64(v.Width)/2 + c.X/c.Z*v.focal
	sy = float64(v.Height)/2 - c.Y/c.Z*v.focal*0.5
	return sx, sy, true
}

// ScreenRadius returns the horizontal screen size of a world length at depth z.
func (v View) ScreenRadius(length, z float64) float64 {
	if z < NearClip {
		return 0
	}
	return length / z * v.focal
}
