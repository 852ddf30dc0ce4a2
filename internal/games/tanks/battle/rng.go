package battle

import "math/rand"

//go:generate mockgen -destination=./mocks/rng_mock.go -package=mocks . RNG

// RNG is the source of randomness for grid generation, random steps,
// projectile deflection and the match's strategy and power-up draws.
// A *rand.Rand satisfies it.
type RNG interface {
	// Intn returns a uniform value in [0, n).
	Intn(n int) int
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// Perm returns a uniform permutation of [0, n).
	Perm(n int) []int
}

// NewRNG returns a deterministic RNG for the given seed.
func NewRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
