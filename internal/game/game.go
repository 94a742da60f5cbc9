// Package game drives the asteroid field as a first-person terminal game:
// look around, shoot asteroids along the crosshair and avoid collisions.
package game

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/rockfield/internal/config"
	"github.com/vovakirdan/rockfield/internal/core"
	"github.com/vovakirdan/rockfield/internal/field"
	"github.com/vovakirdan/rockfield/internal/mesh"
	"github.com/vovakirdan/rockfield/internal/registry"
)

// Game states
const (
	StatePlaying  = "playing"  // Flying through the field
	StatePaused   = "paused"   // Simulation halted by the player
	StateGameOver = "gameover" // Collided with an asteroid
	StateTimeUp   = "timeup"   // Time attack clock ran out
)

// Mode selects the run rules.
type Mode int

const (
	ModeSurvival   Mode = iota // Fly until a collision
	ModeTimeAttack             // Score as much as possible before the clock runs out
)

// Tunables that are not part of the field simulation.
const (
	ShotCooldown    = 200 * time.Millisecond
	TimeAttackLimit = 120 * time.Second
	flashTicks      = 4  // Crosshair highlight after a shot
	rewardTicks     = 45 // How long the last reward stays on the HUD
	starCount       = 80
	minScreenW      = 40
	minScreenH      = 16
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// logger receives field diagnostics; silent unless set.
var logger = log.New(io.Discard)

// sharedMeshes is reused by every game in the process. Meshes depend only
// on (radius, shapeSeed), so sessions can share them.
var sharedMeshes = mesh.NewCache(mesh.DefaultCacheSize)

// sharedPalette memoizes color matching across games.
var sharedPalette = NewPalette()

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetLogger sets the logger passed to new field controllers.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// MeshCache returns the process-wide asteroid mesh cache.
func MeshCache() *mesh.Cache {
	return sharedMeshes
}

// Game implements the terminal asteroid field game.
type Game struct {
	mode   Mode
	preset config.DifficultyPreset // Overrides the package preset when set

	// Simulation
	ctrl     *field.Controller
	snap     field.State
	camera   Camera
	observer field.Observer
	stars    []core.Vec3 // Unit directions of background stars

	// Game state
	state      string
	tickCount  int
	shots      int
	hits       int
	hasShot    bool
	lastShot   time.Duration
	flash      int
	lastReward int
	rewardShow int

	// Configuration
	runtime core.RuntimeConfig
	cfg     config.FieldConfig

	// Rendering
	meshes         *mesh.Cache
	palette        *Palette
	screenTooSmall bool
}

// New creates a survival game.
func New() *Game {
	return &Game{mode: ModeSurvival, meshes: sharedMeshes, palette: sharedPalette}
}

// NewTimeAttack creates a time attack game.
func NewTimeAttack() *Game {
	return &Game{mode: ModeTimeAttack, meshes: sharedMeshes, palette: sharedPalette}
}

// NewWithConfig creates a game with an explicit field config instead of
// loading one on Reset.
func NewWithConfig(mode Mode, cfg config.FieldConfig) *Game {
	return &Game{mode: mode, cfg: cfg, meshes: sharedMeshes, palette: sharedPalette}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeTimeAttack {
		return "rockfield_timed"
	}
	return "rockfield"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeTimeAttack {
		return "Rockfield (Time Attack)"
	}
	return "Rockfield"
}

// Description summarizes the mode for listings.
func (g *Game) Description() string {
	if g.mode == ModeTimeAttack {
		return "Score as much as you can in two minutes"
	}
	return "Fly until a rock hits you"
}

// Reset initializes or restarts the game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	if g.cfg.Spawn.MaxAsteroids == 0 {
		cfg, err := config.LoadField(configPath)
		if err != nil {
			cfg = config.DefaultFieldConfig()
		}
		if p := g.activePreset(); p != "" {
			config.ApplyFieldPreset(&cfg, p)
		}
		g.cfg = cfg
	}

	g.screenTooSmall = runtime.ScreenW < minScreenW || runtime.ScreenH < minScreenH

	g.ctrl = field.New(g.cfg, runtime.Seed, field.WithLogger(logger))
	g.snap = g.ctrl.Start()
	g.camera = Camera{}
	g.observer = field.DefaultObserver()
	g.stars = makeStars(runtime.Seed, starCount)

	g.state = StatePlaying
	g.tickCount = 0
	g.shots = 0
	g.hits = 0
	g.hasShot = false
	g.lastShot = 0
	g.flash = 0
	g.lastReward = 0
	g.rewardShow = 0
}

// Resize updates the screen size without restarting the run.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.screenTooSmall = w < minScreenW || h < minScreenH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	// Handle restart
	if in.Has(core.ActionRestart) && g.isOver() {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) {
		if g.state == StatePaused {
			g.state = StatePlaying
		} else if g.state == StatePlaying {
			g.state = StatePaused
		}
	}

	if g.state != StatePlaying {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++
	dt := g.runtime.TickSeconds()

	g.camera.Look(in)
	g.observer.Forward = g.camera.Forward()

	if in.Has(core.ActionFire) {
		g.fire()
	}

	// Fly forward at the field's current speed
	g.observer.Position = g.observer.Position.Add(g.observer.Forward.Scale(g.snap.Speed * dt))
	g.snap = g.ctrl.Tick(dt, g.observer)

	if g.flash > 0 {
		g.flash--
	}
	if g.rewardShow > 0 {
		g.rewardShow--
	}

	switch {
	case g.snap.IsGameOver():
		g.state = StateGameOver
	case g.mode == ModeTimeAttack && g.snap.Clock >= TimeAttackLimit:
		g.state = StateTimeUp
	}

	return core.StepResult{State: g.State()}
}

// fire shoots along the crosshair, limited to one shot per ShotCooldown of
// simulation time.
func (g *Game) fire() {
	now := g.snap.Clock
	if g.hasShot && now-g.lastShot < ShotCooldown {
		return
	}
	g.hasShot = true
	g.lastShot = now
	g.shots++
	g.flash = flashTicks

	id, point, ok := Pick(g.snap.Asteroids, g.observer.Position, g.observer.Forward)
	if !ok {
		g.ctrl.NotifyShot(now)
		g.snap = g.ctrl.Snapshot()
		return
	}
	if res, hit := g.ctrl.NotifyHit(id, point, now); hit {
		g.hits++
		g.lastReward = res.Points
		g.rewardShow = rewardTicks
	}
	g.snap = g.ctrl.Snapshot()
}

func (g *Game) isOver() bool {
	return g.state == StateGameOver || g.state == StateTimeUp
}

// Accuracy returns the share of shots that hit, in [0,1].
func (g *Game) Accuracy() float64 {
	if g.shots == 0 {
		return 0
	}
	return float64(g.hits) / float64(g.shots)
}

// Shots returns the number of shots fired this run.
func (g *Game) Shots() int {
	return g.shots
}

// Elapsed returns the simulated run time.
func (g *Game) Elapsed() time.Duration {
	return g.snap.Clock
}

// Seed returns the seed the current run was started with.
func (g *Game) Seed() int64 {
	return g.runtime.Seed
}

// Difficulty returns the active difficulty preset name, or "custom" when
// none was selected.
func (g *Game) Difficulty() string {
	if p := g.activePreset(); p != "" {
		return string(p)
	}
	return "custom"
}

// SetDifficulty selects a preset for this game only. It takes effect on
// the next Reset that loads config.
func (g *Game) SetDifficulty(p config.DifficultyPreset) {
	g.preset = p
}

func (g *Game) activePreset() config.DifficultyPreset {
	if g.preset != "" {
		return g.preset
	}
	return difficultyPreset
}

// Field returns the latest field state.
func (g *Game) Field() field.State {
	return g.snap
}

// Camera returns the current camera orientation.
func (g *Game) Camera() Camera {
	return g.camera
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.snap.Score,
		Kills:    g.snap.Kills,
		Distance: g.snap.Distance,
		GameOver: g.isOver(),
		Paused:   g.state == StatePaused,
	}
}

// Register the games with the registry
func init() {
	registry.Register("rockfield", func() registry.Game {
		return New()
	})
	registry.Register("rockfield_timed", func() registry.Game {
		return NewTimeAttack()
	})
}
