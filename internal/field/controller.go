package field

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/rockfield/internal/config"
	"github.com/vovakirdan/rockfield/internal/core"
)

// epochMix spreads consecutive epochs of one run seed across the RNG seed space.
const epochMix = 0x9E3779B97F4A7C15

// HitResult describes a confirmed hit.
type HitResult struct {
	AsteroidID uint64
	Points     int
	Explosion  Explosion
}

// Controller owns the simulation state of one run. It is driven by a single
// caller and is not safe for concurrent use.
type Controller struct {
	cfg        config.FieldConfig
	seed       int64
	epoch      uint64
	scoring    Scoring
	difficulty *config.DifficultyManager
	spawner    *spawner
	logger     *log.Logger

	state           State
	observer        Observer
	nextExplosionID uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger for lifecycle and spawn diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a controller in the ready phase. Call Start to begin a run.
func New(cfg config.FieldConfig, seed int64, opts ...Option) *Controller {
	c := &Controller{
		cfg:        cfg,
		seed:       seed,
		scoring:    NewScoring(cfg.Scoring),
		difficulty: config.NewDifficultyManager(cfg),
		logger:     log.New(io.Discard),
		observer:   DefaultObserver(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.spawner = newSpawner(cfg, c.difficulty, c.logger)
	c.state = State{Phase: PhaseReady, Speed: c.scoring.CurrentSpeed(0)}
	return c
}

// Config returns the field configuration.
func (c *Controller) Config() config.FieldConfig { return c.cfg }

// Scoring returns the scoring engine.
func (c *Controller) Scoring() Scoring { return c.scoring }

// Difficulty returns the difficulty manager.
func (c *Controller) Difficulty() *config.DifficultyManager { return c.difficulty }

// Observer returns the observer passed to the latest Tick.
func (c *Controller) Observer() Observer { return c.observer }

// Epoch returns the number of Start calls so far.
func (c *Controller) Epoch() uint64 { return c.epoch }

// Snapshot returns the current state. Its slices are never modified later.
func (c *Controller) Snapshot() State { return c.state }

// SpawnFallbacks returns how many placements this epoch used the best
// candidate after exhausting their retries.
func (c *Controller) SpawnFallbacks() int { return c.spawner.fallbacks }

// Start begins a fresh run from any phase. Score, kills, distance, clock,
// the spawn accumulator and all ids are reset, and the initial population
// is placed ahead of an observer at the origin looking down -Z.
func (c *Controller) Start() State {
	c.epoch++
	c.spawner.reset(int64(uint64(c.seed) + c.epoch*epochMix))
	c.nextExplosionID = 0
	c.observer = DefaultObserver()

	initial := min(c.cfg.Spawn.InitialCount, c.cfg.Spawn.MaxAsteroids)
	c.state = State{
		Phase:      PhasePlaying,
		Speed:      c.scoring.CurrentSpeed(0),
		Asteroids:  c.spawner.batch(initial, 0, c.observer, nil),
		Explosions: nil,
	}

	c.logger.Debug("run started", "seed", c.seed, "epoch", c.epoch, "asteroids", len(c.state.Asteroids))
	return c.state
}

// Tick advances the simulation by dt seconds around the given observer and
// returns the new state. It is a no-op unless playing.
//
// Order within a tick: clock, distance, motion, distance cull, explosion
// expiry, spawn, collision.
func (c *Controller) Tick(dt float64, obs Observer) State {
	if c.state.Phase != PhasePlaying || !(dt > 0) {
		return c.state
	}
	c.observer = obs.normalized()
	s := c.state

	s.Clock += time.Duration(dt * float64(time.Second))
	s.Speed = c.scoring.CurrentSpeed(s.Score)
	s.Distance += s.Speed * dt

	s.Asteroids = c.advance(s.Asteroids, dt)
	s.Explosions = c.expire(s.Explosions, s.Clock)

	if spawned := c.spawner.update(dt, s.Score, c.observer, s.Asteroids); len(spawned) > 0 {
		s.Asteroids = append(s.Asteroids, spawned...)
	}

	c.state = s
	c.CheckCollision(c.observer.Position)
	return c.state
}

// advance integrates motion and rotation into a new slice, dropping
// asteroids farther than RemoveDistance from the observer. Culled asteroids
// leave no explosion.
func (c *Controller) advance(asteroids []Asteroid, dt float64) []Asteroid {
	out := make([]Asteroid, 0, len(asteroids)+c.cfg.Spawn.BatchMax)
	for _, a := range asteroids {
		a.Position = a.Position.Add(a.Velocity.Scale(dt))
		a.Rotation = a.Rotation.Add(a.RotationSpeed.Scale(dt))
		if a.Position.Distance(c.observer.Position) > c.cfg.Asteroids.RemoveDistance {
			continue
		}
		out = append(out, a)
	}
	return out
}

// expire returns the explosions younger than the configured duration.
func (c *Controller) expire(explosions []Explosion, now time.Duration) []Explosion {
	if len(explosions) == 0 {
		return explosions
	}
	ttl := time.Duration(c.cfg.Explosions.DurationMS) * time.Millisecond
	out := make([]Explosion, 0, len(explosions))
	for _, e := range explosions {
		if e.Age(now) < ttl {
			out = append(out, e)
		}
	}
	return out
}

// CheckCollision ends the run if an asteroid touches pos. It reports
// whether a collision was found.
func (c *Controller) CheckCollision(pos core.Vec3) bool {
	if c.state.Phase != PhasePlaying {
		return false
	}
	idx := DetectCollision(c.state.Asteroids, pos, c.cfg.Collision)
	if idx < 0 {
		return false
	}
	c.state.CollidedWith = c.state.Asteroids[idx].ID
	c.Collide()
	return true
}

// Collide moves a playing run to game over. Other phases are unchanged.
func (c *Controller) Collide() {
	if c.state.Phase != PhasePlaying {
		return
	}
	c.state.Phase = PhaseGameOver
	c.logger.Debug("game over",
		"score", c.state.Score, "kills", c.state.Kills,
		"distance", c.state.Distance, "asteroid", c.state.CollidedWith)
}

// NotifyHit destroys the asteroid with the given id in one update: the
// asteroid is removed, an explosion appears at hitPoint, kills grows by one
// and the hit reward is added. An unknown id or a run that is not playing
// is ignored and reports false.
func (c *Controller) NotifyHit(id uint64, hitPoint core.Vec3, at time.Duration) (HitResult, bool) {
	if c.state.Phase != PhasePlaying {
		return HitResult{}, false
	}
	idx := -1
	for i, a := range c.state.Asteroids {
		if a.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return HitResult{}, false
	}

	s := c.state
	points := c.scoring.HitReward(s.Score)
	c.nextExplosionID++
	explosion := Explosion{ID: c.nextExplosionID, Position: hitPoint, CreatedAt: at}

	asteroids := make([]Asteroid, 0, len(s.Asteroids)-1)
	asteroids = append(asteroids, s.Asteroids[:idx]...)
	s.Asteroids = append(asteroids, s.Asteroids[idx+1:]...)

	explosions := make([]Explosion, 0, len(s.Explosions)+1)
	explosions = append(explosions, s.Explosions...)
	s.Explosions = append(explosions, explosion)

	s.Kills++
	s.Score = c.scoring.Apply(s.Score, points)
	s.LastHit = at
	s.LastShot = at
	c.state = s

	return HitResult{AsteroidID: id, Points: points, Explosion: explosion}, true
}

// NotifyShot records a shot that hit nothing.
func (c *Controller) NotifyShot(at time.Duration) {
	if c.state.Phase != PhasePlaying {
		return
	}
	c.state.LastShot = at
}

// AddScore adds delta to the score while playing. The score never drops
// below zero.
func (c *Controller) AddScore(delta int) {
	if c.state.Phase != PhasePlaying {
		return
	}
	c.state.Score = c.scoring.Apply(c.state.Score, delta)
}
