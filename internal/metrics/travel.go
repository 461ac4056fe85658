package metrics

import (
	"math"

	"github.com/savibeshop/savibe/internal/particles"
)

// Travel is the mean distance a particle moves per tick, measured the short
// way around the torus.
type Travel struct {
	name    string
	step    step
	sum     float64
	samples int
}

func NewTravel() *Travel {
	return &Travel{
		name: "travel_per_tick",
	}
}

func (t *Travel) Name() string {
	return t.name
}

func (t *Travel) Observe(f particles.Field) {
	t.step.next(f, func(prev, cur particles.Particle) {
		dx := torusDelta(cur.Position.X - prev.Position.X)
		dy := torusDelta(cur.Position.Y - prev.Position.Y)
		t.sum += math.Hypot(dx, dy)
		t.samples++
	})
}

func torusDelta(d float64) float64 {
	d = math.Abs(d)
	return math.Min(d, particles.Extent-d)
}

func (t *Travel) Value() float64 {
	if t.samples == 0 {
		return 0
	}
	return t.sum / float64(t.samples)
}

func (t *Travel) Reset() {
	t.sum = 0
	t.samples = 0
	t.step.reset()
}
