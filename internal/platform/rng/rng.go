package rng

import "math/rand/v2"

// Source supplies bounded random integers. The rating distributor takes one
// so its jitter step can be replaced with a deterministic source in tests.
type Source interface {
	IntBetween(min, max int) int
}

type RandomSource struct{}

func NewRandomSource() *RandomSource {
	return &RandomSource{}
}

// IntBetween returns a uniform value in [min, max].
func (s *RandomSource) IntBetween(min, max int) int {
	if max <= min {
		return min
	}
	return min + rand.IntN(max-min+1)
}

// FixedSource always returns the same value; test helper.
type FixedSource struct {
	Value int
}

func (s FixedSource) IntBetween(min, max int) int {
	if s.Value < min {
		return min
	}
	if s.Value > max {
		return max
	}
	return s.Value
}
