// Package metrics accumulates statistics over the ticks of a particle field.
// Metrics are fed from an animator observer and are not safe for concurrent
// use; read them after the animator has stopped.
package metrics

import "github.com/savibeshop/savibe/internal/particles"

type Metric interface {
	Name() string
	Observe(f particles.Field)
	Value() float64
	Reset()
}

// Set fans each field out to a group of metrics.
type Set []Metric

// Default is the group recorded with every snapshot.
func Default() Set {
	return Set{NewWraps(), NewTravel(), NewBounds()}
}

// Observe has the animator.Observer signature.
func (s Set) Observe(f particles.Field) {
	for _, m := range s {
		m.Observe(f)
	}
}

func (s Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s))
	for _, m := range s {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s Set) Reset() {
	for _, m := range s {
		m.Reset()
	}
}

// step pairs each particle with its previous position. Fields from a new
// generation or of a different size restart the pairing.
type step struct {
	prev particles.Field
	have bool
}

func (s *step) next(f particles.Field, fn func(prev, cur particles.Particle)) {
	if s.have && s.prev.Generation == f.Generation && s.prev.Len() == f.Len() {
		for i, p := range f.Particles {
			fn(s.prev.Particles[i], p)
		}
	}
	s.prev = f
	s.have = true
}

func (s *step) reset() {
	s.prev = particles.Field{}
	s.have = false
}
