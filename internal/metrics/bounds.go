package metrics

import "github.com/savibeshop/savibe/internal/particles"

// Bounds is the fraction of observed fields whose particles all lie inside
// the space.
type Bounds struct {
	name       string
	violations int
	samples    int
}

func NewBounds() *Bounds {
	return &Bounds{
		name: "in_bounds",
	}
}

func (b *Bounds) Name() string {
	return b.name
}

func (b *Bounds) Observe(f particles.Field) {
	b.samples++
	for _, p := range f.Particles {
		if !p.Position.InBounds() {
			b.violations++
			break
		}
	}
}

func (b *Bounds) Value() float64 {
	if b.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(b.violations)/float64(b.samples)
}

func (b *Bounds) Reset() {
	b.violations = 0
	b.samples = 0
}
