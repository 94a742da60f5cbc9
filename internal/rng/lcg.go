// Package rng provides the deterministic random sequence used for asteroid
// shape generation. The same seed always yields the same sequence.
package rng

// LCG parameters (Numerical Recipes). The modulus 2^32 comes from uint32 wraparound.
const (
	multiplier = 1664525
	increment  = 1013904223
	modulus    = 1 << 32
)

// Random is a linear congruential generator with explicit, instance-owned state.
// It is not safe for concurrent use; each caller owns its own instance.
type Random struct {
	state uint32
}

// New creates a generator from seed. The seed is folded into [0, 2^32) by
// absolute value modulo 2^32, so any int64 is accepted.
func New(seed int64) *Random {
	return &Random{state: Normalize(seed)}
}

// Normalize folds a seed into the 32-bit domain by absolute value modulo 2^32.
func Normalize(seed int64) uint32 {
	mag := uint64(seed)
	if seed < 0 {
		// Two's complement negation also handles math.MinInt64.
		mag = -mag
	}
	return uint32(mag % modulus)
}

// Next advances the state and returns a value in [0, 1).
func (r *Random) Next() float64 {
	r.state = r.state*multiplier + increment
	return float64(r.state) / modulus
}

// Range returns a value in [min, max).
func (r *Random) Range(min, max float64) float64 {
	return min + r.Next()*(max-min)
}

// Intn returns an integer in [0, n). Returns 0 when n <= 0.
func (r *Random) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() * float64(n))
}

// State returns the current internal state.
func (r *Random) State() uint32 {
	return r.state
}
