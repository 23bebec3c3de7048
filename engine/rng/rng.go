// Package rng provides the seeded random source shared by every part of the
// engine. All randomness flows through it so a fixed seed reproduces a full
// playthrough.
package rng

import "math/rand"

// RNG wraps math/rand.Rand behind the handful of draws the game needs.
type RNG struct {
	seed int64
	src  *rand.Rand
}

// New creates a deterministic RNG from a seed.
func New(seed int64) *RNG {
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed this RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a random integer in [0, n).
func (r *RNG) Intn(n int) int {
	return r.src.Intn(n)
}

// Between returns a random integer in [lo, hi] inclusive.
func (r *RNG) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.src.Intn(hi-lo+1)
}

// Chance draws a uniform value in [0, 1) and reports whether it fell under p.
// p <= 0 never succeeds; p >= 1 always does.
func (r *RNG) Chance(p float64) bool {
	return r.src.Float64() < p
}

// Vary returns base adjusted by a uniform variance of ±spread (a fraction,
// e.g. 0.2 for ±20%), rounded to the nearest integer.
func (r *RNG) Vary(base int, spread float64) int {
	f := float64(base) * (1 - spread + 2*spread*r.src.Float64())
	return int(f + 0.5)
}
