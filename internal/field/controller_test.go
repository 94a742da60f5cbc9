package field

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/rockfield/internal/config"
	"github.com/vovakirdan/rockfield/internal/core"
)

const frame = 1.0 / 60

func newStarted(t *testing.T, seed int64) *Controller {
	t.Helper()
	c := New(config.DefaultFieldConfig(), seed)
	c.Start()
	return c
}

func TestControllerReadyUntilStart(t *testing.T) {
	c := New(config.DefaultFieldConfig(), 1)

	s := c.Tick(frame, DefaultObserver())
	if s.Phase != PhaseReady {
		t.Fatalf("phase = %v, want ready", s.Phase)
	}
	if s.Clock != 0 || len(s.Asteroids) != 0 {
		t.Errorf("Tick before Start changed state: clock=%v asteroids=%d", s.Clock, len(s.Asteroids))
	}
	if _, ok := c.NotifyHit(1, core.Vec3{}, 0); ok {
		t.Error("NotifyHit before Start should be ignored")
	}
}

func TestControllerStart(t *testing.T) {
	c := newStarted(t, 42)
	s := c.Snapshot()

	if !s.IsPlaying() || s.IsGameOver() {
		t.Fatalf("phase = %v, want playing", s.Phase)
	}
	if len(s.Asteroids) != 10 {
		t.Fatalf("initial population = %d, want 10", len(s.Asteroids))
	}
	if s.Score != 0 || s.Kills != 0 || s.Distance != 0 || s.Clock != 0 {
		t.Errorf("counters not zeroed: %+v", s)
	}
	if len(s.Explosions) != 0 {
		t.Errorf("explosions = %d, want 0", len(s.Explosions))
	}

	for i, a := range s.Asteroids {
		if a.ID != uint64(i+1) {
			t.Errorf("asteroid %d id = %d, want %d", i, a.ID, i+1)
		}
		// Spawned ahead of an observer looking down -Z.
		if a.Position.Z > -60+1e-9 {
			t.Errorf("asteroid %d not ahead of observer: %+v", a.ID, a.Position)
		}
	}
}

func TestControllerStartResets(t *testing.T) {
	c := newStarted(t, 42)
	first := c.Snapshot().Asteroids[0]

	c.NotifyHit(first.ID, first.Position, 0)
	c.Tick(0.5, DefaultObserver())
	if c.Snapshot().Kills != 1 || c.Snapshot().Score == 0 {
		t.Fatalf("hit not applied: %+v", c.Snapshot())
	}

	s := c.Start()
	if s.Score != 0 || s.Kills != 0 || s.Distance != 0 || s.Clock != 0 {
		t.Errorf("Start did not reset counters: score=%d kills=%d distance=%v clock=%v",
			s.Score, s.Kills, s.Distance, s.Clock)
	}
	if len(s.Explosions) != 0 {
		t.Errorf("Start kept %d explosions", len(s.Explosions))
	}
	if s.Asteroids[0].ID != 1 {
		t.Errorf("ids not reset: first id = %d", s.Asteroids[0].ID)
	}
	if c.Epoch() != 2 {
		t.Errorf("epoch = %d, want 2", c.Epoch())
	}
}

func TestControllerDeterminism(t *testing.T) {
	run := func() []State {
		c := New(config.DefaultFieldConfig(), 12345)
		c.Start()
		obs := DefaultObserver()
		var states []State
		for i := 0; i < 600; i++ {
			s := c.Tick(frame, obs)
			obs.Position = obs.Position.Add(obs.Forward.Scale(s.Speed * frame))
			if i%100 == 0 {
				states = append(states, s)
			}
		}
		return append(states, c.Snapshot())
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Fatal("two runs with the same seed diverged")
	}
}

func TestControllerSeedsDiffer(t *testing.T) {
	a := newStarted(t, 1).Snapshot().Asteroids
	b := newStarted(t, 2).Snapshot().Asteroids
	if reflect.DeepEqual(a, b) {
		t.Error("different seeds produced identical initial fields")
	}
}

func TestControllerEpochsReproducible(t *testing.T) {
	c1 := newStarted(t, 9)
	c2 := newStarted(t, 9)
	firstEpoch := c1.Snapshot().Asteroids

	c1.Start()
	c2.Start()
	if !reflect.DeepEqual(c1.Snapshot(), c2.Snapshot()) {
		t.Error("second epochs of equal seeds differ")
	}
	if reflect.DeepEqual(firstEpoch, c1.Snapshot().Asteroids) {
		t.Error("restart reproduced the previous epoch")
	}
}

func TestControllerDistanceAndClock(t *testing.T) {
	c := newStarted(t, 3)

	s := c.Tick(1.0, DefaultObserver())
	if s.Clock != time.Second {
		t.Errorf("clock = %v, want 1s", s.Clock)
	}
	if s.Distance != 30 {
		t.Errorf("distance = %v, want 30", s.Distance)
	}

	// Non-positive dt is ignored.
	c.Tick(0, DefaultObserver())
	s = c.Tick(-1, DefaultObserver())
	if s.Clock != time.Second || s.Distance != 30 {
		t.Errorf("non-positive dt advanced state: clock=%v distance=%v", s.Clock, s.Distance)
	}
}

func TestControllerMotion(t *testing.T) {
	c := newStarted(t, 3)
	c.state.Asteroids = []Asteroid{{
		ID:            1,
		Position:      core.V3(0, 0, -100),
		Velocity:      core.V3(2, 0, 0),
		RotationSpeed: core.V3(0, 1, 0),
		Radius:        3,
	}}

	s := c.Tick(0.5, DefaultObserver())
	a := s.Asteroids[0]
	if a.Position != core.V3(1, 0, -100) {
		t.Errorf("position = %+v, want (1,0,-100)", a.Position)
	}
	if a.Rotation != core.V3(0, 0.5, 0) {
		t.Errorf("rotation = %+v, want (0,0.5,0)", a.Rotation)
	}
}

func TestControllerCullWithoutExplosion(t *testing.T) {
	c := newStarted(t, 5)
	c.state.Asteroids = []Asteroid{
		{ID: 1, Position: core.V3(0, 0, -199), Velocity: core.V3(0, 0, -100), Radius: 3},
		{ID: 2, Position: core.V3(0, 0, -100), Radius: 3},
	}

	s := c.Tick(0.1, DefaultObserver())
	if _, ok := s.Asteroid(1); ok {
		t.Error("asteroid beyond remove distance was not culled")
	}
	if _, ok := s.Asteroid(2); !ok {
		t.Error("asteroid within remove distance was culled")
	}
	if len(s.Explosions) != 0 {
		t.Errorf("cull produced %d explosions, want 0", len(s.Explosions))
	}
	if s.Kills != 0 || s.Score != 0 {
		t.Errorf("cull changed kills/score: %d/%d", s.Kills, s.Score)
	}
}

func TestControllerCullFollowsObserver(t *testing.T) {
	c := newStarted(t, 5)
	c.state.Asteroids = []Asteroid{{ID: 1, Position: core.V3(0, 0, -100), Radius: 3}}

	obs := DefaultObserver()
	obs.Position = core.V3(0, 0, 150)
	s := c.Tick(frame, obs)
	if len(s.Asteroids) != 0 {
		t.Errorf("asteroid 250 units behind the observer was kept")
	}
}

func TestControllerNotifyHit(t *testing.T) {
	c := newStarted(t, 7)
	before := c.Snapshot()
	target := before.Asteroids[3]
	hitPoint := target.Position.Add(core.V3(0, 0, target.Radius))

	res, ok := c.NotifyHit(target.ID, hitPoint, 250*time.Millisecond)
	if !ok {
		t.Fatal("NotifyHit on a live asteroid returned false")
	}
	after := c.Snapshot()

	if len(after.Asteroids) != len(before.Asteroids)-1 {
		t.Errorf("asteroids = %d, want %d", len(after.Asteroids), len(before.Asteroids)-1)
	}
	if _, ok := after.Asteroid(target.ID); ok {
		t.Error("hit asteroid still present")
	}
	if len(after.Explosions) != 1 {
		t.Fatalf("explosions = %d, want exactly 1", len(after.Explosions))
	}
	if e := after.Explosions[0]; e.Position != hitPoint || e.CreatedAt != 250*time.Millisecond {
		t.Errorf("explosion = %+v, want at hit point and hit time", e)
	}
	if after.Kills != 1 || after.Score != 100 || res.Points != 100 {
		t.Errorf("kills=%d score=%d points=%d, want 1/100/100", after.Kills, after.Score, res.Points)
	}
	if after.LastHit != 250*time.Millisecond {
		t.Errorf("last hit = %v", after.LastHit)
	}

	// Order of the remaining asteroids is preserved.
	want := append(append([]Asteroid{}, before.Asteroids[:3]...), before.Asteroids[4:]...)
	if !reflect.DeepEqual(after.Asteroids, want) {
		t.Error("remaining asteroids reordered")
	}
}

func TestControllerHitRewardScalesWithScore(t *testing.T) {
	c := newStarted(t, 7)
	c.AddScore(1000)

	id := c.Snapshot().Asteroids[0].ID
	res, ok := c.NotifyHit(id, core.Vec3{}, 0)
	if !ok {
		t.Fatal("hit ignored")
	}
	if res.Points != 144 || c.Snapshot().Score != 1144 {
		t.Errorf("points=%d score=%d, want 144/1144", res.Points, c.Snapshot().Score)
	}
}

func TestControllerUnknownHitIsNoop(t *testing.T) {
	c := newStarted(t, 7)
	before := c.Snapshot()

	if _, ok := c.NotifyHit(9999, core.Vec3{}, time.Second); ok {
		t.Error("NotifyHit on an unknown id returned true")
	}
	if !reflect.DeepEqual(before, c.Snapshot()) {
		t.Error("NotifyHit on an unknown id changed state")
	}

	// A second hit on the same asteroid is a no-op as well.
	id := before.Asteroids[0].ID
	c.NotifyHit(id, core.Vec3{}, 0)
	if _, ok := c.NotifyHit(id, core.Vec3{}, 0); ok {
		t.Error("repeated NotifyHit returned true")
	}
	if c.Snapshot().Kills != 1 {
		t.Errorf("kills = %d, want 1", c.Snapshot().Kills)
	}
}

func TestControllerExplosionExpiry(t *testing.T) {
	c := newStarted(t, 11)
	id := c.Snapshot().Asteroids[0].ID
	c.NotifyHit(id, core.V3(0, 0, -80), c.Snapshot().Clock)

	s := c.Tick(0.5, DefaultObserver())
	if len(s.Explosions) != 1 {
		t.Fatalf("explosion expired early at %v", s.Clock)
	}
	if age := s.Explosions[0].Age(s.Clock); age != 500*time.Millisecond {
		t.Errorf("age = %v, want 500ms", age)
	}

	s = c.Tick(0.2, DefaultObserver())
	if len(s.Explosions) != 0 {
		t.Errorf("explosion still alive at %v", s.Clock)
	}
}

func TestControllerSnapshotImmutable(t *testing.T) {
	c := newStarted(t, 13)
	snap := c.Snapshot()
	asteroids := append([]Asteroid(nil), snap.Asteroids...)

	c.NotifyHit(snap.Asteroids[0].ID, core.Vec3{}, 0)
	for i := 0; i < 120; i++ {
		c.Tick(frame, DefaultObserver())
	}
	c.Start()

	if !reflect.DeepEqual(snap.Asteroids, asteroids) {
		t.Error("earlier snapshot changed after later updates")
	}
	if snap.Score != 0 || len(snap.Explosions) != 0 {
		t.Error("earlier snapshot counters changed")
	}
}

func TestControllerCollisionEndsRun(t *testing.T) {
	c := newStarted(t, 17)
	c.state.Asteroids = append(c.state.Asteroids[:0:0], c.state.Asteroids...)
	c.state.Asteroids = append(c.state.Asteroids, Asteroid{ID: 99, Position: core.V3(0, 0, -3), Radius: 4})

	s := c.Tick(frame, DefaultObserver())
	if !s.IsGameOver() {
		t.Fatalf("phase = %v, want game over", s.Phase)
	}
	if s.CollidedWith != 99 {
		t.Errorf("collided with %d, want 99", s.CollidedWith)
	}

	// Frozen after game over.
	frozen := c.Snapshot()
	c.Tick(1, DefaultObserver())
	c.AddScore(500)
	c.NotifyShot(time.Minute)
	if _, ok := c.NotifyHit(s.Asteroids[0].ID, core.Vec3{}, 0); ok {
		t.Error("NotifyHit accepted after game over")
	}
	if !reflect.DeepEqual(frozen, c.Snapshot()) {
		t.Error("state changed after game over")
	}

	c.Collide()
	if c.Snapshot().Phase != PhaseGameOver {
		t.Error("Collide changed a finished run")
	}

	if s := c.Start(); !s.IsPlaying() {
		t.Errorf("Start after game over: phase = %v", s.Phase)
	}
}

func TestControllerCollideOnlyWhilePlaying(t *testing.T) {
	c := New(config.DefaultFieldConfig(), 1)
	c.Collide()
	if c.Snapshot().Phase != PhaseReady {
		t.Errorf("Collide from ready: phase = %v", c.Snapshot().Phase)
	}

	c.Start()
	c.Collide()
	if c.Snapshot().Phase != PhaseGameOver {
		t.Errorf("Collide while playing: phase = %v", c.Snapshot().Phase)
	}
}

func TestControllerCheckCollision(t *testing.T) {
	c := newStarted(t, 19)
	if c.CheckCollision(core.Vec3{}) {
		t.Fatal("collision reported at the origin of a fresh field")
	}
	target := c.Snapshot().Asteroids[0]
	if !c.CheckCollision(target.Position) {
		t.Fatal("no collision inside an asteroid")
	}
	if c.Snapshot().CollidedWith == 0 || !c.Snapshot().IsGameOver() {
		t.Errorf("collision not recorded: %+v", c.Snapshot().Phase)
	}
}

func TestControllerScoreNeverNegative(t *testing.T) {
	c := newStarted(t, 23)

	c.AddScore(-50)
	if got := c.Snapshot().Score; got != 0 {
		t.Errorf("score = %d, want 0", got)
	}
	c.AddScore(30)
	c.AddScore(-100)
	if got := c.Snapshot().Score; got != 0 {
		t.Errorf("score = %d, want 0", got)
	}
	c.AddScore(75)
	if got := c.Snapshot().Score; got != 75 {
		t.Errorf("score = %d, want 75", got)
	}
}

func TestControllerNotifyShot(t *testing.T) {
	c := newStarted(t, 29)
	c.NotifyShot(400 * time.Millisecond)
	if got := c.Snapshot().LastShot; got != 400*time.Millisecond {
		t.Errorf("last shot = %v, want 400ms", got)
	}
	if c.Snapshot().Kills != 0 {
		t.Error("a miss counted as a kill")
	}
}

func TestControllerLogsLifecycle(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)

	c := New(config.DefaultFieldConfig(), 1, WithLogger(logger))
	c.Start()
	c.Collide()

	out := buf.String()
	for _, want := range []string{"run started", "game over"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseReady, "ready"},
		{PhasePlaying, "playing"},
		{PhaseGameOver, "game_over"},
		{Phase(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.want)
		}
	}
}
