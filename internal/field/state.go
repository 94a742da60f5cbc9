// Package field implements the asteroid field simulation: a bounded
// population of asteroids drifting around a moving observer, spawned on a
// score-driven schedule, culled by distance, destroyed by hits, and checked
// for collision every tick.
//
// All mutation goes through a Controller. Collections inside a State are
// never modified after publication: every change builds a new slice, so a
// State obtained earlier stays valid while the simulation moves on.
package field

import (
	"time"

	"github.com/vovakirdan/rockfield/internal/core"
)

// Phase is the play state of a run.
type Phase int

const (
	PhaseReady    Phase = iota // Before the first Start
	PhasePlaying               // Simulation advancing
	PhaseGameOver              // Collision happened; simulation frozen
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Asteroid is a live asteroid. Its mesh is reproduced from (Radius, ShapeSeed).
type Asteroid struct {
	ID            uint64
	Position      core.Vec3
	Velocity      core.Vec3 // Units per second
	Rotation      core.Vec3 // Euler angles in radians
	RotationSpeed core.Vec3 // Radians per second per axis
	Radius        float64
	ShapeSeed     int64

	// Presentation only; passed through untouched.
	Color     string // Hex RGB, e.g. "#6b5a4e"
	Roughness float64
}

// Explosion marks where an asteroid was destroyed by a hit.
type Explosion struct {
	ID        uint64
	Position  core.Vec3
	CreatedAt time.Duration // Simulation clock at creation
}

// Age returns how long the explosion has existed at simulation time now.
func (e Explosion) Age(now time.Duration) time.Duration {
	return now - e.CreatedAt
}

// Observer is the moving viewpoint the field is simulated around.
type Observer struct {
	Position core.Vec3
	Forward  core.Vec3 // View direction; zero means -Z
}

// DefaultObserver is the observer at the run origin looking down -Z.
func DefaultObserver() Observer {
	return Observer{Forward: core.V3(0, 0, -1)}
}

// normalized returns the observer with a unit forward vector.
func (o Observer) normalized() Observer {
	o.Forward = o.Forward.Normalize()
	if o.Forward.IsZero() {
		o.Forward = core.V3(0, 0, -1)
	}
	return o
}

// basis returns unit right and up vectors perpendicular to the forward vector.
func (o Observer) basis() (right, up core.Vec3) {
	worldUp := core.V3(0, 1, 0)
	right = o.Forward.Cross(worldUp).Normalize()
	if right.IsZero() {
		// Looking straight up or down
		right = core.V3(1, 0, 0)
	}
	up = right.Cross(o.Forward).Normalize()
	return right, up
}

// State is the authoritative record of a run. Values returned by the
// Controller are snapshots: treat their slices as read-only.
type State struct {
	Phase      Phase
	Score      int     // Never negative
	Kills      int     // Confirmed hits this run
	Distance   float64 // Distance travelled since Start
	Speed      float64 // Current forward speed
	Clock      time.Duration
	Asteroids  []Asteroid // Population order; at most MaxAsteroids
	Explosions []Explosion
	LastShot   time.Duration
	LastHit    time.Duration

	// CollidedWith is the asteroid that ended the run, 0 if none.
	CollidedWith uint64
}

// IsPlaying reports whether the simulation is advancing.
func (s State) IsPlaying() bool {
	return s.Phase == PhasePlaying
}

// IsGameOver reports whether the run has ended.
func (s State) IsGameOver() bool {
	return s.Phase == PhaseGameOver
}

// Asteroid returns the live asteroid with the given id.
func (s State) Asteroid(id uint64) (Asteroid, bool) {
	for _, a := range s.Asteroids {
		if a.ID == id {
			return a, true
		}
	}
	return Asteroid{}, false
}
