package metrics

import (
	"math"

	"github.com/savibeshop/savibe/internal/particles"
)

// Wraps counts edge crossings: moves longer than half the space on either
// axis can only come from wrapping around.
type Wraps struct {
	name  string
	step  step
	count int
}

func NewWraps() *Wraps {
	return &Wraps{
		name: "wraps",
	}
}

func (w *Wraps) Name() string {
	return w.name
}

func (w *Wraps) Observe(f particles.Field) {
	w.step.next(f, func(prev, cur particles.Particle) {
		if math.Abs(cur.Position.X-prev.Position.X) > particles.Extent/2 {
			w.count++
		}
		if math.Abs(cur.Position.Y-prev.Position.Y) > particles.Extent/2 {
			w.count++
		}
	})
}

func (w *Wraps) Value() float64 {
	return float64(w.count)
}

func (w *Wraps) Reset() {
	w.count = 0
	w.step.reset()
}
