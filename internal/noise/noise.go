// Package noise implements a deterministic 3D value-noise field with
// fractal (fBm) summation. Every function is pure: identical inputs
// always produce identical outputs.
package noise

import (
	"math"

	"github.com/vovakirdan/rockfield/internal/rng"
)

// Lattice hashing primes.
const (
	primeX    = 374761393
	primeY    = 668265263
	primeZ    = 1274126177
	primeSeed = 144665
	primeMix  = 1274126177
)

// Field is a seeded 3D noise function. The zero value is a valid field with seed 0.
type Field struct {
	Seed uint32
}

// New creates a field with the seed folded into 32 bits the same way rng does.
func New(seed int64) Field {
	return Field{Seed: rng.Normalize(seed)}
}

// Hash returns a value in [0, 1) for the integer lattice point (x, y, z).
// Arithmetic is done in uint32 so results are exact and platform independent.
func (f Field) Hash(x, y, z int64) float64 {
	h := uint32(x)*primeX + uint32(y)*primeY + uint32(z)*primeZ + f.Seed*primeSeed
	h = (h ^ (h >> 13)) * primeMix
	h ^= h >> 16
	return float64(h) / (1 << 32)
}

// Noise returns smoothly interpolated value noise in [0, 1) at (x, y, z).
func (f Field) Noise(x, y, z float64) float64 {
	fx, fy, fz := math.Floor(x), math.Floor(y), math.Floor(z)
	ix, iy, iz := int64(fx), int64(fy), int64(fz)

	u := smoothstep(x - fx)
	v := smoothstep(y - fy)
	w := smoothstep(z - fz)

	c000 := f.Hash(ix, iy, iz)
	c100 := f.Hash(ix+1, iy, iz)
	c010 := f.Hash(ix, iy+1, iz)
	c110 := f.Hash(ix+1, iy+1, iz)
	c001 := f.Hash(ix, iy, iz+1)
	c101 := f.Hash(ix+1, iy, iz+1)
	c011 := f.Hash(ix, iy+1, iz+1)
	c111 := f.Hash(ix+1, iy+1, iz+1)

	x00 := lerp(c000, c100, u)
	x10 := lerp(c010, c110, u)
	x01 := lerp(c001, c101, u)
	x11 := lerp(c011, c111, u)

	y0 := lerp(x00, x10, v)
	y1 := lerp(x01, x11, v)

	return lerp(y0, y1, w)
}

// OctaveNoise sums octaves of Noise at doubling frequency and halving
// amplitude, normalized by the total amplitude. The result is in [0, 1].
// Fewer than one octave is treated as one.
func (f Field) OctaveNoise(x, y, z float64, octaves int) float64 {
	if octaves < 1 {
		octaves = 1
	}

	var total, ampSum float64
	amp, freq := 1.0, 1.0
	for i := 0; i < octaves; i++ {
		total += f.Noise(x*freq, y*freq, z*freq) * amp
		ampSum += amp
		freq *= 2
		amp *= 0.5
	}
	return total / ampSum
}

// smoothstep is the cubic 3t²-2t³ profile.
func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

// lerp uses the a*(1-t)+b*t form, which never leaves [min(a,b), max(a,b)].
func lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}
