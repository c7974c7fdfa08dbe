package specstego

import "math/rand/v2"

// seedStream separates the PCG stream of channel c from the stream of
// channel c+1 under the same seed.
const seedStream = 0x9e3779b97f4a7c15

// NewRand returns the generator used for channel c of a run seeded with seed.
func NewRand(seed uint64, c int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seedStream*uint64(c+1)))
}

// uniform returns a float drawn uniformly from [lo, hi).
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*rng.Float64()
}

// intRange returns an integer drawn uniformly from the closed range [lo, hi].
func intRange(rng *rand.Rand, lo, hi int) int {
	return lo + rng.IntN(hi-lo+1)
}
