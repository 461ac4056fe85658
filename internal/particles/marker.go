package particles

import "time"

// Marker is the render-ready projection of a particle. Left and Top are
// percentages of the container.
type Marker struct {
	Key         Ref
	Left        float64
	Top         float64
	Scale       float64
	Color       Color
	Opacity     float64
	FloatPeriod time.Duration
}

// Markers projects the field for a renderer.
func (f Field) Markers() []Marker {
	ms := make([]Marker, len(f.Particles))
	for i, p := range f.Particles {
		ms[i] = Marker{
			Key:         p.Ref(),
			Left:        p.Position.X,
			Top:         p.Position.Y,
			Scale:       p.Size,
			Color:       p.Color,
			Opacity:     p.Opacity,
			FloatPeriod: p.FloatPeriod,
		}
	}
	return ms
}

// Cell maps a marker onto a w x h grid. The result is always inside the grid.
func (m Marker) Cell(w, h int) (x, y int) {
	x = int(m.Left / Extent * float64(w))
	y = int(m.Top / Extent * float64(h))
	if x >= w {
		x = w - 1
	}
	if y >= h {
		y = h - 1
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return x, y
}
