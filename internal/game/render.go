package game

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/rockfield/internal/core"
	"github.com/vovakirdan/rockfield/internal/field"
	"github.com/vovakirdan/rockfield/internal/mesh"
	"github.com/vovakirdan/rockfield/internal/rng"
)

// Visual characters for rendering
const (
	StarChar      = '.'
	CrosshairChar = '+'
	DistantChar   = 'o' // Asteroid too small on screen for its mesh
)

// lightDir is the world-space direction towards the light.
var lightDir = core.V3(0.4, 0.7, 0.5).Normalize()

// makeStars scatters background stars uniformly over the sky.
func makeStars(seed int64, n int) []core.Vec3 {
	r := rng.New(seed)
	stars := make([]core.Vec3, n)
	for i := range stars {
		stars[i] = mesh.SpherePoint(1, r.Next(), r.Next())
	}
	return stars
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Check for screen too small
	if g.screenTooSmall {
		msg := "Window too small"
		hint := fmt.Sprintf("Need %dx%d", minScreenW, minScreenH)
		dst.DrawTextCentered(dst.Height()/2-1, msg)
		dst.DrawTextCentered(dst.Height()/2+1, hint)
		return
	}
	if g.ctrl == nil {
		return
	}

	view := NewView(g.camera, g.observer.Position, dst.Width(), dst.Height())

	g.renderStars(dst, view)
	for _, a := range g.snap.Asteroids {
		g.renderAsteroid(dst, view, a)
	}
	g.renderExplosions(dst, view)
	g.renderCrosshair(dst)
	g.renderHUD(dst)
	g.renderOverlay(dst)
}

// renderStars draws stars at infinity; they rotate with the view but never
// move with the observer.
func (g *Game) renderStars(dst *core.Screen, view View) {
	for _, s := range g.stars {
		c := core.V3(s.Dot(view.Right), s.Dot(view.Up), s.Dot(view.Forward))
		sx, sy, ok := view.Project(c.Scale(1000))
		if !ok {
			continue
		}
		dst.SetWithColor(int(sx), int(sy), StarChar, core.ColorGray)
	}
}

// renderAsteroid rasterizes one asteroid's mesh with flat shading.
func (g *Game) renderAsteroid(dst *core.Screen, view View, a field.Asteroid) {
	center := view.ToCamera(a.Position)
	if center.Z < NearClip-a.Radius*1.3 {
		return // Entirely behind the camera
	}

	// Sub-cell asteroids get a single glyph instead of a mesh
	if r := view.ScreenRadius(a.Radius, center.Z); r < 1.0 {
		if sx, sy, ok := view.Project(center); ok {
			dst.Plot(int(sx), int(sy), center.Z, DistantChar, g.palette.Nearest(a.Color, ShadeLevels/2))
		}
		return
	}

	m := g.meshes.Get(a.Radius, a.ShapeSeed)
	world := make([]core.Vec3, len(m.Positions))
	for i, p := range m.Positions {
		world[i] = a.Position.Add(p.RotateEuler(a.Rotation))
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		w0, w1, w2 := world[m.Indices[i]], world[m.Indices[i+1]], world[m.Indices[i+2]]

		n := w1.Sub(w0).Cross(w2.Sub(w0)).Normalize()
		if n.Dot(view.Eye.Sub(w0)) <= 0 {
			continue // Back face
		}

		lambert := math.Max(0, n.Dot(lightDir))
		level := int((0.15+0.85*lambert)*float64(ShadeLevels-1) + 0.5)
		glyph := ShadeRamp[level]
		color := g.palette.Nearest(a.Color, level)

		fillTriangle(dst, view,
			view.ToCamera(w0), view.ToCamera(w1), view.ToCamera(w2),
			glyph, color)
	}
}

// fillTriangle rasterizes a camera-space triangle, plotting each covered
// cell center at its interpolated depth.
func fillTriangle(dst *core.Screen, view View, c0, c1, c2 core.Vec3, glyph rune, color core.Color) {
	x0, y0, ok0 := view.Project(c0)
	x1, y1, ok1 := view.Project(c1)
	x2, y2, ok2 := view.Project(c2)
	if !ok0 || !ok1 || !ok2 {
		return
	}

	area := (x1-x0)*(y2-y0) - (x2-x0)*(y1-y0)
	if math.Abs(area) < 1e-12 {
		return
	}

	minX := max(0, int(math.Floor(math.Min(x0, math.Min(x1, x2)))))
	maxX := min(dst.Width()-1, int(math.Ceil(math.Max(x0, math.Max(x1, x2)))))
	minY := max(0, int(math.Floor(math.Min(y0, math.Min(y1, y2)))))
	maxY := min(dst.Height()-1, int(math.Ceil(math.Max(y0, math.Max(y1, y2)))))

	for y := minY; y <= maxY; y++ {
		py := float64(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float64(x) + 0.5
			b0 := ((x1-px)*(y2-py) - (x2-px)*(y1-py)) / area
			b1 := ((x2-px)*(y0-py) - (x0-px)*(y2-py)) / area
			b2 := 1 - b0 - b1
			if b0 < 0 || b1 < 0 || b2 < 0 {
				continue
			}
			dst.Plot(x, y, b0*c0.Z+b1*c1.Z+b2*c2.Z, glyph, color)
		}
	}
}

// renderExplosions draws each explosion as a ring that expands and fades
// over its lifetime.
func (g *Game) renderExplosions(dst *core.Screen, view View) {
	ttl := time.Duration(g.cfg.Explosions.DurationMS) * time.Millisecond
	if ttl <= 0 {
		return
	}
	for _, e := range g.snap.Explosions {
		frac := core.ClampF(float64(e.Age(g.snap.Clock))/float64(ttl), 0, 1)
		c := view.ToCamera(e.Position)
		sx, sy, ok := view.Project(c)
		if !ok {
			continue
		}

		glyph, color := '*', core.ColorBrightYellow
		switch {
		case frac > 0.66:
			glyph, color = '.', core.ColorRed
		case frac > 0.33:
			glyph, color = '+', core.ColorOrange
		}

		r := math.Max(0.5, view.ScreenRadius(1+6*frac, c.Z))
		steps := max(8, min(32, int(r*6)))
		for i := range steps {
			angle := 2 * math.Pi * float64(i) / float64(steps)
			x := int(sx + math.Cos(angle)*r)
			y := int(sy + math.Sin(angle)*r*0.5)
			dst.Plot(x, y, c.Z, glyph, color)
		}
	}
}

// renderCrosshair marks the view center; it lights up briefly after a shot.
func (g *Game) renderCrosshair(dst *core.Screen) {
	cx, cy := dst.Width()/2, dst.Height()/2
	color := core.ColorBrightGreen
	if g.flash > 0 {
		color = core.ColorBrightYellow
	}
	dst.SetWithColor(cx, cy, CrosshairChar, color)
	dst.SetWithColor(cx-2, cy, '-', color)
	dst.SetWithColor(cx+2, cy, '-', color)

	if g.rewardShow > 0 && g.lastReward > 0 {
		dst.DrawTextColor(cx+4, cy-1, fmt.Sprintf("+%d", g.lastReward), core.ColorBrightYellow)
	}
}

// renderHUD draws score, kills, distance and speed.
func (g *Game) renderHUD(dst *core.Screen) {
	scoreText := fmt.Sprintf("Score: %d", g.snap.Score)
	dst.DrawTextColor(1, 0, scoreText, core.ColorBrightWhite)

	centerText := fmt.Sprintf("Kills: %d  Dist: %.0f", g.snap.Kills, g.snap.Distance)
	dst.DrawTextCentered(0, centerText)

	rightText := fmt.Sprintf("Speed: %.1f", g.snap.Speed)
	if g.mode == ModeTimeAttack {
		left := max(0, TimeAttackLimit-g.snap.Clock)
		rightText = fmt.Sprintf("Time: %ds  %s", int(left.Seconds()+0.999), rightText)
	}
	dst.DrawText(dst.Width()-len(rightText)-1, 0, rightText)

	dst.DrawTextColor(1, dst.Height()-1, "Arrows/WASD look  SPACE fire  P pause  Q quit", core.ColorGray)
}

// renderOverlay draws game state messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch g.state {
	case StatePaused:
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")

	case StateGameOver:
		subtitle := fmt.Sprintf("Score: %d  Kills: %d  |  Press R to restart", g.snap.Score, g.snap.Kills)
		g.drawCenteredBox(dst, "GAME OVER", subtitle)

	case StateTimeUp:
		subtitle := fmt.Sprintf("Final Score: %d  |  Press R to restart", g.snap.Score)
		g.drawCenteredBox(dst, "TIME UP", subtitle)
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box background
	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	// Draw text
	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
