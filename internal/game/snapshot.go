package game

import "math"

// Snapshot contains the game state for determinism checks and replays.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Tick     uint64
	State    string
	Phase    string
	Score    int
	Kills    int
	Shots    int
	Distance float64
	ClockNS  int64
	Yaw      float64
	Pitch    float64

	// Observer position (X, Y, Z)
	Observer [3]float64

	// Asteroid state (each asteroid is 5 values: ID, X, Y, Z, Radius)
	AsteroidCount int
	AsteroidData  []float64

	// Explosion ids in creation order
	ExplosionIDs []uint64
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	data := make([]float64, 0, len(g.snap.Asteroids)*5)
	for _, a := range g.snap.Asteroids {
		data = append(data, float64(a.ID), a.Position.X, a.Position.Y, a.Position.Z, a.Radius)
	}

	explosions := make([]uint64, len(g.snap.Explosions))
	for i, e := range g.snap.Explosions {
		explosions[i] = e.ID
	}

	p := g.observer.Position
	return Snapshot{
		Tick:          uint64(g.tickCount), //#nosec G115 -- tick count is always positive
		State:         g.state,
		Phase:         g.snap.Phase.String(),
		Score:         g.snap.Score,
		Kills:         g.snap.Kills,
		Shots:         g.shots,
		Distance:      g.snap.Distance,
		ClockNS:       int64(g.snap.Clock),
		Yaw:           g.camera.Yaw,
		Pitch:         g.camera.Pitch,
		Observer:      [3]float64{p.X, p.Y, p.Z},
		AsteroidCount: len(g.snap.Asteroids),
		AsteroidData:  data,
		ExplosionIDs:  explosions,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Score)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Kills)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Shots)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.ClockNS)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.AsteroidCount) //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.Distance)
	h = h*31 + math.Float64bits(snap.Yaw)
	h = h*31 + math.Float64bits(snap.Pitch)

	for _, v := range snap.Observer {
		h = h*31 + math.Float64bits(v)
	}

	for _, v := range snap.AsteroidData {
		h = h*31 + math.Float64bits(v)
	}

	for _, id := range snap.ExplosionIDs {
		h = h*31 + id
	}

	for _, r := range snap.State + snap.Phase {
		h = h*31 + uint64(r) //#nosec G115 -- hash computation
	}

	return h
}
