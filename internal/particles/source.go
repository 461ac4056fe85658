package particles

import (
	"math/rand/v2"
	"time"
)

// Source yields uniform samples in [0, 1).
type Source interface {
	Float64() float64
}

// NewSource returns a seeded PCG generator. A zero seed picks one from the
// wall clock.
func NewSource(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// SequenceSource replays a fixed list of samples, cycling when exhausted.
type SequenceSource struct {
	values []float64
	next   int
}

func NewSequenceSource(values ...float64) *SequenceSource {
	return &SequenceSource{values: values}
}

func (s *SequenceSource) Float64() float64 {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}
