// Package shuffle provides the deterministic ordering primitives behind
// shuffled collection views: a seeded 32-bit generator and a seeded
// Fisher-Yates permutation. A persisted seed must reproduce the exact
// same ordering forever, so both the generator and the draw order of the
// permutation are compatibility contracts, not implementation details.
package shuffle

const increment = 0x6D2B79F5

// Source is a mulberry32 generator. Outputs are a pure function of
// (seed, call count) and rely only on wrapping uint32 arithmetic and
// IEEE-754 doubles, so they match across platforms.
type Source struct {
	state uint32
}

// New returns a Source seeded with seed. Every uint32 is a valid seed.
func New(seed uint32) *Source {
	return &Source{state: seed}
}

// Float64 advances the generator and returns the next value in [0, 1).
func (s *Source) Float64() float64 {
	s.state += increment
	t := s.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / (1 << 32)
}

// Uint32 advances the generator and returns the raw mixed state.
func (s *Source) Uint32() uint32 {
	s.state += increment
	t := s.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return t ^ (t >> 14)
}

// Permute returns the seeded Fisher-Yates permutation of 0..n-1,
// drawing one value per position from n-1 down to 1. Permute(0, s) is
// empty and Permute(1, s) is [0] for any seed. Negative n panics; that
// is a caller bug, not a runtime condition.
func Permute(n int, seed uint32) []int {
	if n < 0 {
		panic("shuffle: negative permutation length")
	}
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	rng := New(seed)
	for i := n - 1; i > 0; i-- {
		j := int(rng.Float64() * float64(i+1))
		indices[i], indices[j] = indices[j], indices[i]
	}
	return indices
}
