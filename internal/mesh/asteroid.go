package mesh

import (
	"math"

	"github.com/vovakirdan/rockfield/internal/core"
	"github.com/vovakirdan/rockfield/internal/noise"
	"github.com/vovakirdan/rockfield/internal/rng"
)

// Shape parameters, as fractions of the asteroid radius unless noted.
const (
	noiseAmplitude = 0.22 // Peak surface displacement
	lowFreqWeight  = 0.75
	highFreqWeight = 0.25
	lowFreq        = 1.5 // Noise frequency over the unit sphere
	highFreq       = 6.0
	lowOctaves     = 5
)

// Crater counts: min plus a draw in [0, extra).
const (
	largeCraterMin   = 4
	largeCraterExtra = 6
	smallCraterMin   = 8
	smallCraterExtra = 12
)

type craterClass struct {
	radiusMin, radiusSpan float64
	depthMin, depthSpan   float64
}

var (
	largeCraters = craterClass{radiusMin: 0.20, radiusSpan: 0.25, depthMin: 0.12, depthSpan: 0.15}
	smallCraters = craterClass{radiusMin: 0.05, radiusSpan: 0.12, depthMin: 0.04, depthSpan: 0.08}
)

// Crater is a bowl-shaped depression applied during shape generation.
// Craters are not kept on the resulting mesh.
type Crater struct {
	Center core.Vec3 // Point on the sphere of the asteroid radius
	Radius float64   // Absolute crater radius
	Depth  float64   // Absolute depth at the center
}

// Falloff returns the crater's depth contribution at surface distance d:
// full depth at the center tapering with a raised cosine to zero at the rim.
func (c Crater) Falloff(d float64) float64 {
	if d >= c.Radius || c.Radius <= 0 {
		return 0
	}
	return c.Depth * (math.Cos(math.Pi*d/c.Radius) + 1) / 2
}

// Generate builds the asteroid mesh for (radius, shapeSeed). No other input
// affects the result. A non-positive radius yields an empty mesh.
func Generate(radius float64, shapeSeed int64) *Mesh {
	if radius <= 0 || math.IsNaN(radius) {
		return &Mesh{}
	}

	r := rng.New(shapeSeed)
	field := noise.New(shapeSeed)

	base := pickSolid(r.Next())
	detail := 2 + r.Intn(2)

	m := fromSoup(subdivide(base, detail, radius))
	m.Base = base
	m.Detail = detail

	craters := sampleCraters(r, radius, largeCraterMin+r.Intn(largeCraterExtra), largeCraters)
	craters = append(craters, sampleCraters(r, radius, smallCraterMin+r.Intn(smallCraterExtra), smallCraters)...)

	displaced := make([]core.Vec3, len(m.Positions))
	for i, p := range m.Positions {
		disp := surfaceNoise(field, p, radius)
		for _, c := range craters {
			disp -= c.Falloff(p.Distance(c.Center))
		}
		displaced[i] = p.Add(m.Normals[i].Scale(disp))
	}
	m.Positions = displaced
	m.computeNormals()

	return m
}

// pickSolid maps a uniform draw to a base polyhedron: 60% icosahedron,
// 25% dodecahedron, 15% octahedron.
func pickSolid(u float64) Solid {
	switch {
	case u < 0.60:
		return Icosahedron
	case u < 0.85:
		return Dodecahedron
	default:
		return Octahedron
	}
}

// sampleCraters draws n craters uniformly distributed over the sphere.
func sampleCraters(r *rng.Random, radius float64, n int, class craterClass) []Crater {
	craters := make([]Crater, 0, n)
	for i := 0; i < n; i++ {
		center := SpherePoint(radius, r.Next(), r.Next())
		craters = append(craters, Crater{
			Center: center,
			Radius: radius * (class.radiusMin + r.Next()*class.radiusSpan),
			Depth:  radius * (class.depthMin + r.Next()*class.depthSpan),
		})
	}
	return craters
}

// SpherePoint maps two uniform draws to a uniformly distributed point on the
// sphere. The polar angle is acos(2v-1).
func SpherePoint(radius, u, v float64) core.Vec3 {
	theta := 2 * math.Pi * u
	polar := math.Acos(2*v - 1)
	return core.FromSpherical(radius, polar, theta)
}

// surfaceNoise returns the fractal displacement for a vertex in
// [-noiseAmplitude, +noiseAmplitude] * radius.
func surfaceNoise(f noise.Field, p core.Vec3, radius float64) float64 {
	dir := p.Scale(1 / radius)
	low := f.OctaveNoise(dir.X*lowFreq, dir.Y*lowFreq, dir.Z*lowFreq, lowOctaves)
	high := f.Noise(dir.X*highFreq, dir.Y*highFreq, dir.Z*highFreq)
	n := lowFreqWeight*low + highFreqWeight*high
	return (n*2 - 1) * noiseAmplitude * radius
}
