package carousel

import "math/rand/v2"

// NewRand returns a PCG-backed generator. A zero seed draws a random one.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Shuffle returns a uniformly random permutation of order (Fisher–Yates).
// The input slice is left untouched.
func Shuffle(order []int, r *rand.Rand) []int {
	next := make([]int, len(order))
	copy(next, order)
	for i := len(next) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		next[i], next[j] = next[j], next[i]
	}
	return next
}
