package game

import (
	"sync"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/rockfield/internal/core"
)

// ShadeLevels is the number of brightness steps an asteroid is drawn with.
const ShadeLevels = 10

// ShadeRamp maps brightness steps to glyphs, darkest first.
var ShadeRamp = []rune{'.', ',', ':', ';', '=', '+', '*', '#', '%', '@'}

// paletteEntry is a terminal color with its approximate RGB value.
type paletteEntry struct {
	color core.Color
	rgb   colorful.Color
}

// rockPalette holds the terminal colors asteroids may be drawn in.
// Values match the ANSI 256 codes used by the renderer.
var rockPalette = []paletteEntry{
	{core.ColorGray, mustHex("#8a8a8a")},
	{core.ColorWhite, mustHex("#c0c0c0")},
	{core.ColorBrightWhite, mustHex("#ffffff")},
	{core.ColorBrown, mustHex("#875f00")},
	{core.ColorSlate, mustHex("#5f5f87")},
	{core.ColorSand, mustHex("#d7af87")},
	{core.ColorOrange, mustHex("#ff8700")},
	{core.ColorYellow, mustHex("#808000")},
	{core.ColorRed, mustHex("#800000")},
}

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Palette maps asteroid display colors to terminal colors. Results are
// memoized per (color, shade) pair; it is safe for concurrent use.
type Palette struct {
	mu    sync.Mutex
	cache map[paletteKey]core.Color
}

type paletteKey struct {
	hex   string
	level int
}

// NewPalette creates an empty palette cache.
func NewPalette() *Palette {
	return &Palette{cache: make(map[paletteKey]core.Color)}
}

// Nearest returns the terminal color closest in Lab space to hex darkened
// to the given shade level. Unparseable colors fall back to gray.
func (p *Palette) Nearest(hex string, level int) core.Color {
	level = max(0, min(ShadeLevels-1, level))
	key := paletteKey{hex, level}

	p.mu.Lock()
	defer p.mu.Unlock()
	if c, ok := p.cache[key]; ok {
		return c
	}

	base, err := colorful.Hex(hex)
	if err != nil {
		p.cache[key] = core.ColorGray
		return core.ColorGray
	}
	brightness := 0.45 + 0.55*float64(level)/float64(ShadeLevels-1)
	shaded := colorful.Color{}.BlendLab(base, brightness).Clamped()

	best := rockPalette[0].color
	bestDist := shaded.DistanceLab(rockPalette[0].rgb)
	for _, e := range rockPalette[1:] {
		if d := shaded.DistanceLab(e.rgb); d < bestDist {
			best, bestDist = e.color, d
		}
	}
	p.cache[key] = best
	return best
}
