package game

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/rockfield/internal/config"
	"github.com/vovakirdan/rockfield/internal/core"
	"github.com/vovakirdan/rockfield/internal/field"
)

// AutopilotOptions controls a headless run.
type AutopilotOptions struct {
	Ticks      int     // Maximum ticks to simulate
	DT         float64 // Seconds per tick
	ShootEvery int     // Fire every N ticks; 0 never fires
	LogEvery   int     // Progress log interval in ticks; 0 disables
}

// AutopilotSummary reports the outcome of a headless run.
type AutopilotSummary struct {
	Ticks     int
	Score     int
	Kills     int
	Shots     int
	Distance  float64
	Elapsed   time.Duration
	GameOver  bool
	Fallbacks int
}

// Accuracy returns the share of shots that hit.
func (s AutopilotSummary) Accuracy() float64 {
	if s.Shots == 0 {
		return 0
	}
	return float64(s.Kills) / float64(s.Shots)
}

// Autopilot flies straight down -Z and, every ShootEvery ticks, fires at
// the closest asteroid ahead. The run is fully determined by cfg and seed.
func Autopilot(cfg config.FieldConfig, seed int64, opts AutopilotOptions, l *log.Logger) AutopilotSummary {
	if opts.DT <= 0 {
		opts.DT = 1.0 / 60
	}
	if l == nil {
		l = logger
	}

	ctrl := field.New(cfg, seed, field.WithLogger(l))
	st := ctrl.Start()
	obs := field.DefaultObserver()

	var sum AutopilotSummary
	for tick := 1; tick <= opts.Ticks; tick++ {
		obs.Position = obs.Position.Add(obs.Forward.Scale(st.Speed * opts.DT))
		st = ctrl.Tick(opts.DT, obs)
		sum.Ticks = tick
		if st.IsGameOver() {
			break
		}

		if opts.ShootEvery > 0 && tick%opts.ShootEvery == 0 {
			sum.Shots++
			shoot(ctrl, st, obs)
			st = ctrl.Snapshot()
		}

		if opts.LogEvery > 0 && tick%opts.LogEvery == 0 {
			l.Info("progress",
				"tick", tick,
				"score", st.Score,
				"kills", st.Kills,
				"asteroids", len(st.Asteroids),
				"speed", st.Speed,
			)
		}
	}

	sum.Score = st.Score
	sum.Kills = st.Kills
	sum.Distance = st.Distance
	sum.Elapsed = st.Clock
	sum.GameOver = st.IsGameOver()
	sum.Fallbacks = ctrl.SpawnFallbacks()
	return sum
}

// shoot aims at the nearest asteroid in front of the observer.
func shoot(ctrl *field.Controller, st field.State, obs field.Observer) {
	var aim core.Vec3
	best := -1.0
	for _, a := range st.Asteroids {
		to := a.Position.Sub(obs.Position)
		if to.Dot(obs.Forward) <= 0 {
			continue
		}
		if d := to.Length(); best < 0 || d < best {
			best = d
			aim = to
		}
	}
	if best < 0 {
		ctrl.NotifyShot(st.Clock)
		return
	}

	id, point, ok := Pick(st.Asteroids, obs.Position, aim.Normalize())
	if !ok {
		ctrl.NotifyShot(st.Clock)
		return
	}
	ctrl.NotifyHit(id, point, st.Clock)
}
