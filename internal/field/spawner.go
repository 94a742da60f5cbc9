package field

import (
	"math"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/rockfield/internal/config"
	"github.com/vovakirdan/rockfield/internal/core"
)

// spawner places new asteroids ahead of the observer on a score-driven
// schedule. Its accumulator, RNG and id counter belong to one Controller.
type spawner struct {
	spawn      config.SpawnConfig
	asteroids  config.AsteroidConfig
	difficulty *config.DifficultyManager
	logger     *log.Logger

	rng         *rand.Rand
	accumulator float64 // Seconds since the last spawn event
	nextID      uint64
	fallbacks   int // Placements that exhausted their retries
}

func newSpawner(cfg config.FieldConfig, diff *config.DifficultyManager, logger *log.Logger) *spawner {
	return &spawner{
		spawn:      cfg.Spawn,
		asteroids:  cfg.Asteroids,
		difficulty: diff,
		logger:     logger,
		rng:        rand.New(rand.NewSource(0)),
	}
}

// reset starts a new epoch: fresh RNG stream, empty accumulator, ids from 1.
func (s *spawner) reset(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
	s.accumulator = 0
	s.nextID = 0
	s.fallbacks = 0
}

// update advances the accumulator by dt and returns the asteroids spawned
// this tick. Nothing spawns while the population is at the cap; the
// accumulator keeps running so a spawn follows as soon as room frees up.
func (s *spawner) update(dt float64, score int, obs Observer, live []Asteroid) []Asteroid {
	s.accumulator += dt
	if s.accumulator < s.difficulty.SpawnInterval(score) {
		return nil
	}
	room := s.spawn.MaxAsteroids - len(live)
	if room <= 0 {
		return nil
	}
	s.accumulator = 0
	return s.batch(min(s.batchSize(), room), score, obs, live)
}

// batchSize returns a uniform count in [BatchMin, BatchMax].
func (s *spawner) batchSize() int {
	return s.spawn.BatchMin + s.rng.Intn(s.spawn.BatchMax-s.spawn.BatchMin+1)
}

// batch creates n asteroids. Each placement also keeps clear of the ones
// created before it in the same batch.
func (s *spawner) batch(n int, score int, obs Observer, live []Asteroid) []Asteroid {
	if n <= 0 {
		return nil
	}
	others := live
	out := make([]Asteroid, 0, n)
	for range n {
		a := s.create(score, obs, others)
		out = append(out, a)
		others = append(others[:len(others):len(others)], a)
	}
	return out
}

// create draws one asteroid.
func (s *spawner) create(score int, obs Observer, others []Asteroid) Asteroid {
	s.nextID++
	radius := s.uniform(s.asteroids.RadiusMin, s.asteroids.RadiusMax)
	speed := s.uniform(s.asteroids.VelocityMin, s.difficulty.MaxVelocity(score))
	spin := s.asteroids.RotationSpeedMax

	return Asteroid{
		ID:       s.nextID,
		Position: s.place(radius, obs, others),
		Velocity: s.direction().Scale(speed),
		Rotation: core.V3(
			s.rng.Float64()*2*math.Pi,
			s.rng.Float64()*2*math.Pi,
			s.rng.Float64()*2*math.Pi,
		),
		RotationSpeed: core.V3(
			s.uniform(-spin, spin),
			s.uniform(-spin, spin),
			s.uniform(-spin, spin),
		),
		Radius:    radius,
		ShapeSeed: s.rng.Int63(),
		Color:     s.color(),
		Roughness: s.uniform(0.7, 1.0),
	}
}

// place picks a position ahead of the observer. A candidate is accepted once
// it clears both the observer safety margin and every other asteroid. After
// MaxRetries attempts the candidate with the largest clearance is used.
func (s *spawner) place(radius float64, obs Observer, others []Asteroid) core.Vec3 {
	right, up := obs.basis()

	var best core.Vec3
	bestClearance := math.Inf(-1)
	for range s.spawn.MaxRetries {
		candidate := s.candidate(obs, right, up)
		clearance := s.clearance(candidate, radius, obs.Position, others)
		if clearance >= 0 {
			return candidate
		}
		if clearance > bestClearance {
			best, bestClearance = candidate, clearance
		}
	}

	s.fallbacks++
	s.logger.Warn("spawn retries exhausted, using best candidate",
		"retries", s.spawn.MaxRetries, "clearance", bestClearance, "radius", radius)
	return best
}

// candidate returns observer + forward*d + right*lx + up*ly.
func (s *spawner) candidate(obs Observer, right, up core.Vec3) core.Vec3 {
	half := s.spawn.LateralSpread / 2
	d := s.uniform(s.spawn.DistanceMin, s.spawn.DistanceMax)
	lx := s.uniform(-half, half)
	ly := s.uniform(-half, half)
	return obs.Position.
		Add(obs.Forward.Scale(d)).
		Add(right.Scale(lx)).
		Add(up.Scale(ly))
}

// clearance is the smallest slack over all safety constraints for an
// asteroid of the given radius at p. Negative means a constraint is violated.
func (s *spawner) clearance(p core.Vec3, radius float64, observer core.Vec3, others []Asteroid) float64 {
	slack := p.Distance(observer) - (s.spawn.SafetyMargin + radius)
	for _, o := range others {
		slack = math.Min(slack, p.Distance(o.Position)-(o.Radius+radius))
	}
	return slack
}

// direction returns a uniformly distributed unit vector, rejection-sampled
// from the unit ball.
func (s *spawner) direction() core.Vec3 {
	for {
		v := core.V3(
			s.rng.Float64()*2-1,
			s.rng.Float64()*2-1,
			s.rng.Float64()*2-1,
		)
		if l := v.LengthSq(); l > 1e-9 && l <= 1 {
			return v.Normalize()
		}
	}
}

// color returns a muted rock tone as hex RGB.
func (s *spawner) color() string {
	h := s.uniform(15, 45)
	sat := s.uniform(0.10, 0.35)
	val := s.uniform(0.35, 0.65)
	return colorful.Hsv(h, sat, val).Clamped().Hex()
}

func (s *spawner) uniform(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Float64()*(hi-lo)
}
