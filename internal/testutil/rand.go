package testutil

import "math/rand"

// Rand returns a rand.Rand with a fixed seed so tests that inject
// randomness into the simulators get reproducible picks.
func Rand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
