package game

import (
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/rockfield/internal/config"
	"github.com/vovakirdan/rockfield/internal/core"
	"github.com/vovakirdan/rockfield/internal/field"
	"github.com/vovakirdan/rockfield/internal/registry"
)

func testRuntime(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

func newTestGame(t *testing.T, mode Mode, seed int64) *Game {
	t.Helper()
	g := NewWithConfig(mode, config.DefaultFieldConfig())
	g.Reset(testRuntime(seed))
	return g
}

func TestGameDeterminism(t *testing.T) {
	// Same seed and inputs must produce identical runs
	inputSequence := make([]core.InputFrame, 600)
	for i := range inputSequence {
		inputSequence[i] = core.NewInputFrame()
		if i%15 == 0 {
			inputSequence[i].Set(core.ActionFire)
		}
		if i%7 == 0 {
			inputSequence[i].Set(core.ActionLeft)
		}
		if i%23 == 0 {
			inputSequence[i].Set(core.ActionUp)
		}
	}

	run := func() Snapshot {
		g := newTestGame(t, ModeSurvival, 12345)
		for _, in := range inputSequence {
			if g.Step(in).State.GameOver {
				break
			}
		}
		return g.Snapshot()
	}

	s1, s2 := run(), run()
	if s1.Hash() != s2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", s1.Hash(), s2.Hash())
	}
	if !reflect.DeepEqual(s1, s2) {
		t.Error("Determinism failed: snapshots differ")
	}
}

func TestGameReset(t *testing.T) {
	g := newTestGame(t, ModeSurvival, 42)

	for i := 0; i < 50; i++ {
		in := core.NewInputFrame()
		in.Set(core.ActionRight)
		g.Step(in)
	}
	if g.Snapshot().Tick != 50 {
		t.Fatalf("tick = %d, want 50", g.Snapshot().Tick)
	}

	g.Reset(testRuntime(42))
	snap := g.Snapshot()
	if snap.Tick != 0 || snap.Score != 0 || snap.Distance != 0 {
		t.Errorf("Reset left state behind: %+v", snap)
	}
	if snap.AsteroidCount != 10 {
		t.Errorf("asteroids after reset = %d, want 10", snap.AsteroidCount)
	}
	if g.Camera() != (Camera{}) {
		t.Errorf("camera not reset: %+v", g.Camera())
	}
}

func TestGameFliesForward(t *testing.T) {
	g := newTestGame(t, ModeSurvival, 7)

	for i := 0; i < 60; i++ {
		g.Step(core.NewInputFrame())
	}
	snap := g.Snapshot()
	if snap.Observer[2] >= -29 || snap.Observer[2] < -31 {
		t.Errorf("observer z = %v, want about -30 after 1s at speed 30", snap.Observer[2])
	}
	if math.Abs(snap.Distance-30) > 1e-6 {
		t.Errorf("distance = %v, want 30", snap.Distance)
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(t, ModeSurvival, 5)

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)

	if !g.Step(pause).State.Paused {
		t.Fatal("expected paused after pause action")
	}
	before := g.Snapshot()
	for i := 0; i < 10; i++ {
		g.Step(core.NewInputFrame())
	}
	if !reflect.DeepEqual(before, g.Snapshot()) {
		t.Error("game advanced while paused")
	}

	if g.Step(pause).State.Paused {
		t.Error("expected resumed after second pause action")
	}
}

func TestGameFireRateLimit(t *testing.T) {
	g := newTestGame(t, ModeSurvival, 3)

	fire := core.NewInputFrame()
	fire.Set(core.ActionFire)
	for i := 0; i < 60; i++ {
		g.Step(fire)
	}

	// A tick is 16666666ns, so shots are 13 ticks apart: ticks 0, 13, 26, 39, 52.
	if got := g.Snapshot().Shots; got != 5 {
		t.Errorf("shots = %d, want 5", got)
	}
}

func TestGameShootAsteroid(t *testing.T) {
	g := newTestGame(t, ModeSurvival, 11)

	target := g.Field().Asteroids[0].Position.Normalize()
	g.camera = Camera{
		Yaw:   math.Atan2(target.X, -target.Z),
		Pitch: math.Asin(target.Y),
	}

	fire := core.NewInputFrame()
	fire.Set(core.ActionFire)
	state := g.Step(fire).State

	if state.Kills != 1 {
		t.Fatalf("kills = %d, want 1", state.Kills)
	}
	if state.Score != 100 {
		t.Errorf("score = %d, want 100", state.Score)
	}
	if len(g.Field().Explosions) != 1 {
		t.Errorf("explosions = %d, want 1", len(g.Field().Explosions))
	}
	if g.Accuracy() != 1 {
		t.Errorf("accuracy = %v, want 1", g.Accuracy())
	}
}

func TestGameCollisionEndsRun(t *testing.T) {
	cfg := config.DefaultFieldConfig()
	cfg.Collision.HitboxScale = 100 // Every asteroid touches the observer

	g := NewWithConfig(ModeSurvival, cfg)
	g.Reset(testRuntime(9))

	state := g.Step(core.NewInputFrame()).State
	if !state.GameOver {
		t.Fatal("expected game over")
	}
	if g.Field().Phase != field.PhaseGameOver {
		t.Errorf("field phase = %v, want game over", g.Field().Phase)
	}

	// Restart
	restart := core.NewInputFrame()
	restart.Set(core.ActionRestart)
	state = g.Step(restart).State
	if state.GameOver || state.Score != 0 {
		t.Errorf("restart failed: %+v", state)
	}
}

func TestGameTimeAttackEnds(t *testing.T) {
	cfg := config.DefaultFieldConfig()
	cfg.Collision = config.CollisionConfig{} // No collisions

	g := NewWithConfig(ModeTimeAttack, cfg)
	rt := testRuntime(13)
	rt.TickRate = 10
	g.Reset(rt)

	ticks := 0
	for !g.State().GameOver && ticks < 2000 {
		g.Step(core.NewInputFrame())
		ticks++
	}
	if ticks != 1200 {
		t.Errorf("time attack ended after %d ticks, want 1200", ticks)
	}
	if g.Snapshot().State != StateTimeUp {
		t.Errorf("state = %q, want %q", g.Snapshot().State, StateTimeUp)
	}
	if g.Field().Clock != TimeAttackLimit {
		t.Errorf("clock = %v, want %v", g.Field().Clock, TimeAttackLimit)
	}
}

func TestGameIDs(t *testing.T) {
	if New().ID() != "rockfield" || NewTimeAttack().ID() != "rockfield_timed" {
		t.Error("unexpected game ids")
	}
	for _, id := range []string{"rockfield", "rockfield_timed"} {
		if !registry.Exists(id) {
			t.Errorf("game %q not registered", id)
		}
	}
	g, err := registry.Create("rockfield_timed")
	if err != nil {
		t.Fatal(err)
	}
	if g.Title() != "Rockfield (Time Attack)" {
		t.Errorf("title = %q", g.Title())
	}
}

func TestCameraLook(t *testing.T) {
	var c Camera

	if f := c.Forward(); f.Distance(core.V3(0, 0, -1)) > 1e-12 {
		t.Errorf("default forward = %+v, want -Z", f)
	}

	left := core.NewInputFrame()
	left.Set(core.ActionLeft)
	c.Look(left)
	if c.Yaw != -LookStep {
		t.Errorf("yaw = %v, want %v", c.Yaw, -LookStep)
	}

	up := core.NewInputFrame()
	up.Set(core.ActionUp)
	for i := 0; i < 100; i++ {
		c.Look(up)
	}
	if c.Pitch != MaxPitch {
		t.Errorf("pitch = %v, want clamp at %v", c.Pitch, MaxPitch)
	}

	f, r, u := c.Forward(), c.Right(), c.Up()
	for _, pair := range [][2]core.Vec3{{f, r}, {f, u}, {r, u}} {
		if d := pair[0].Dot(pair[1]); math.Abs(d) > 1e-9 {
			t.Errorf("basis not orthogonal: dot = %v", d)
		}
	}
	for _, v := range []core.Vec3{f, r, u} {
		if math.Abs(v.Length()-1) > 1e-9 {
			t.Errorf("basis vector %+v not unit", v)
		}
	}
}

func TestRaySphere(t *testing.T) {
	dir := core.V3(0, 0, -1)
	tests := []struct {
		name   string
		center core.Vec3
		radius float64
		want   float64
		hit    bool
	}{
		{"straight ahead", core.V3(0, 0, -10), 2, 8, true},
		{"off axis miss", core.V3(5, 0, -10), 2, 0, false},
		{"grazing hit", core.V3(1.5, 0, -10), 2, 10 - math.Sqrt(4-2.25), true},
		{"behind", core.V3(0, 0, 10), 2, 0, false},
		{"inside", core.V3(0, 0, -1), 2, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := RaySphere(core.Vec3{}, dir, tt.center, tt.radius)
			if hit != tt.hit {
				t.Fatalf("hit = %v, want %v", hit, tt.hit)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("distance = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPickNearest(t *testing.T) {
	asteroids := []field.Asteroid{
		{ID: 1, Position: core.V3(0, 0, -30), Radius: 3},
		{ID: 2, Position: core.V3(0, 0, -10), Radius: 2},
		{ID: 3, Position: core.V3(20, 0, -5), Radius: 2},
	}

	id, point, ok := Pick(asteroids, core.Vec3{}, core.V3(0, 0, -1))
	if !ok || id != 2 {
		t.Fatalf("Pick = %d, %v; want asteroid 2", id, ok)
	}
	if point.Distance(core.V3(0, 0, -8)) > 1e-9 {
		t.Errorf("hit point = %+v, want (0,0,-8)", point)
	}

	if _, _, ok := Pick(asteroids, core.Vec3{}, core.V3(0, 1, 0)); ok {
		t.Error("Pick hit with nothing above")
	}
}

func TestRenderHUD(t *testing.T) {
	g := newTestGame(t, ModeSurvival, 21)
	dst := core.NewScreen(80, 24)
	g.Render(dst)

	if !strings.Contains(dst.Row(0), "Score: 0") {
		t.Errorf("HUD row missing score: %q", dst.Row(0))
	}
	if !strings.Contains(dst.Row(0), "Speed: 30.0") {
		t.Errorf("HUD row missing speed: %q", dst.Row(0))
	}
	if !strings.Contains(dst.Row(23), "SPACE fire") {
		t.Errorf("help row missing: %q", dst.Row(23))
	}
}

func TestRenderAsteroidMesh(t *testing.T) {
	g := newTestGame(t, ModeSurvival, 1)
	dst := core.NewScreen(80, 24)
	view := NewView(Camera{}, core.Vec3{}, 80, 24)

	a := field.Asteroid{ID: 1, Position: core.V3(0, 0, -20), Radius: 5, ShapeSeed: 77, Color: "#8a7a6a"}
	g.renderAsteroid(dst, view, a)

	center := dst.GetCell(40, 12)
	if !strings.ContainsRune(string(ShadeRamp), center.Rune) {
		t.Errorf("center cell = %q, want a shading glyph", center.Rune)
	}
	if center.Color == core.ColorDefault {
		t.Error("asteroid cell has no color")
	}
	if dst.Get(0, 12) != ' ' || dst.Get(79, 12) != ' ' {
		t.Error("asteroid covers the screen edges")
	}
}

func TestRenderDistantAndHidden(t *testing.T) {
	g := newTestGame(t, ModeSurvival, 1)
	view := NewView(Camera{}, core.Vec3{}, 80, 24)

	dst := core.NewScreen(80, 24)
	far := field.Asteroid{ID: 1, Position: core.V3(0, 0, -2000), Radius: 2, ShapeSeed: 5, Color: "#8a8a8a"}
	g.renderAsteroid(dst, view, far)
	if dst.Get(40, 12) != DistantChar {
		t.Errorf("distant asteroid glyph = %q, want %q", dst.Get(40, 12), DistantChar)
	}

	dst = core.NewScreen(80, 24)
	behind := field.Asteroid{ID: 2, Position: core.V3(0, 0, 30), Radius: 5, ShapeSeed: 5, Color: "#8a8a8a"}
	g.renderAsteroid(dst, view, behind)
	if strings.TrimSpace(dst.String()) != "" {
		t.Error("asteroid behind the camera was drawn")
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := NewWithConfig(ModeSurvival, config.DefaultFieldConfig())
	rt := testRuntime(1)
	rt.ScreenW, rt.ScreenH = 20, 10
	g.Reset(rt)

	dst := core.NewScreen(20, 10)
	g.Render(dst)
	if !strings.Contains(dst.String(), "Window too small") {
		t.Error("expected too-small message")
	}
	if g.Step(core.NewInputFrame()).State.Distance != 0 {
		t.Error("game advanced on a too-small screen")
	}
}

func TestDepthBuffer(t *testing.T) {
	d := newDepthBuffer(4, 2)
	if !d.test(1, 1, 10) {
		t.Error("first write rejected")
	}
	if d.test(1, 1, 12) {
		t.Error("farther write accepted")
	}
	if !d.test(1, 1, 5) {
		t.Error("nearer write rejected")
	}
	if !d.test(2, 1, 50) {
		t.Error("other cell affected")
	}
}

func TestPaletteNearest(t *testing.T) {
	p := NewPalette()

	tests := []struct {
		hex   string
		level int
		want  core.Color
	}{
		{"#8a8a8a", ShadeLevels - 1, core.ColorGray},
		{"#d7af87", ShadeLevels - 1, core.ColorSand},
		{"#875f00", ShadeLevels - 1, core.ColorBrown},
		{"not-a-color", 3, core.ColorGray},
	}
	for _, tt := range tests {
		if got := p.Nearest(tt.hex, tt.level); got != tt.want {
			t.Errorf("Nearest(%q, %d) = %v, want %v", tt.hex, tt.level, got, tt.want)
		}
	}

	// Out-of-range levels are clamped
	if p.Nearest("#8a8a8a", 99) != p.Nearest("#8a8a8a", ShadeLevels-1) {
		t.Error("high level not clamped")
	}
	if p.Nearest("#8a8a8a", -4) != p.Nearest("#8a8a8a", 0) {
		t.Error("low level not clamped")
	}
}

func TestSnapshotHashChanges(t *testing.T) {
	g := newTestGame(t, ModeSurvival, 17)
	before := g.Snapshot()
	g.Step(core.NewInputFrame())
	after := g.Snapshot()

	if before.Hash() == after.Hash() {
		t.Error("hash unchanged after a tick")
	}
	if after.ClockNS != int64(time.Second/60) {
		t.Errorf("clock = %d, want one tick", after.ClockNS)
	}
}
