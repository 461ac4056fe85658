package particles

import (
	"math"
	"time"
)

const (
	// Extent is the size of the normalized space on each axis.
	Extent = 100.0

	DefaultCount = 100
	PageCount    = 150

	// MaxCount bounds the counts accepted from config, the preview server
	// and Animator.Reinitialize.
	MaxCount = 10000

	// TickInterval is the cadence at which Advance is applied while mounted.
	TickInterval = 50 * time.Millisecond

	MinSize    = 1.0
	MaxSize    = 4.0
	MinOpacity = 0.2
	MaxOpacity = 0.7
	MaxSpeed   = 0.25

	MinFloatPeriod = 3 * time.Second
	MaxFloatPeriod = 5 * time.Second
)

// Vec2 is a pair of per-axis values.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

// InBounds reports whether both axes lie in [0, Extent).
func (v Vec2) InBounds() bool {
	return v.X >= 0 && v.X < Extent && v.Y >= 0 && v.Y < Extent
}

// Particle is one decorative marker. Everything except Position is fixed at
// creation.
type Particle struct {
	ID         int
	Generation uint64
	Position   Vec2
	Size       float64
	Color      Color
	Opacity    float64
	Velocity   Vec2

	// FloatPeriod drives the cosmetic float/rotate loop of the marker. It is
	// unrelated to the tick cadence.
	FloatPeriod time.Duration
}

// Ref identifies a particle across generations.
type Ref struct {
	Generation uint64
	ID         int
}

func (p Particle) Ref() Ref { return Ref{Generation: p.Generation, ID: p.ID} }

// Field is the full ordered collection of particles at a point in time.
type Field struct {
	Generation uint64
	Particles  []Particle
}

func (f Field) Len() int { return len(f.Particles) }

// Clone returns a field that shares no backing storage with f.
func (f Field) Clone() Field {
	ps := make([]Particle, len(f.Particles))
	copy(ps, f.Particles)
	return Field{Generation: f.Generation, Particles: ps}
}

// Refs lists the identities of all particles in order.
func (f Field) Refs() []Ref {
	refs := make([]Ref, len(f.Particles))
	for i, p := range f.Particles {
		refs[i] = p.Ref()
	}
	return refs
}

// Centroid is the mean position of the field, or the center of the space when
// the field is empty.
func (f Field) Centroid() Vec2 {
	if len(f.Particles) == 0 {
		return Vec2{Extent / 2, Extent / 2}
	}
	var sum Vec2
	for _, p := range f.Particles {
		sum = sum.Add(p.Position)
	}
	return sum.Scale(1 / float64(len(f.Particles)))
}

// Wrap folds a coordinate into [0, Extent).
func Wrap(v float64) float64 {
	w := math.Mod(v+Extent, Extent)
	if w < 0 {
		w += Extent
	}
	if w >= Extent {
		w = 0
	}
	return w
}
