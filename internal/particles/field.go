package particles

import (
	"math"
	"time"
)

// Initialize samples a generation-1 field of count particles.
func Initialize(count int, palette Palette, src Source) Field {
	return sample(1, count, palette, src)
}

// Reinitialize discards prev entirely and samples a field of the next
// generation. Nothing carries over except the generation counter.
func Reinitialize(prev Field, count int, palette Palette, src Source) Field {
	return sample(prev.Generation+1, count, palette, src)
}

func sample(gen uint64, count int, palette Palette, src Source) Field {
	if count < 0 {
		count = 0
	}
	f := Field{Generation: gen, Particles: make([]Particle, count)}
	for i := range f.Particles {
		p := Particle{
			ID:         i,
			Generation: gen,
			Position:   Vec2{X: scale(src.Float64(), 0, Extent), Y: scale(src.Float64(), 0, Extent)},
			Size:       scale(src.Float64(), MinSize, MaxSize),
		}
		if len(palette) > 0 {
			idx := int(math.Floor(src.Float64() * float64(len(palette))))
			if idx >= len(palette) {
				idx = len(palette) - 1
			}
			p.Color = palette[idx]
		}
		p.Opacity = scale(src.Float64(), MinOpacity, MaxOpacity)
		p.Velocity = Vec2{X: speed(src.Float64()), Y: speed(src.Float64())}
		span := float64(MaxFloatPeriod - MinFloatPeriod)
		p.FloatPeriod = MinFloatPeriod + time.Duration(src.Float64()*span)
		f.Particles[i] = p
	}
	return f
}

// scale maps u in [0,1) onto [lo, hi). Rounding can land exactly on hi for u
// just below 1, so the result is pulled back inside.
func scale(u, lo, hi float64) float64 {
	v := u*(hi-lo) + lo
	if v >= hi {
		v = math.Nextafter(hi, lo)
	}
	return v
}

// speed maps u in [0,1) onto the open interval (-MaxSpeed, MaxSpeed).
func speed(u float64) float64 {
	v := (u - 0.5) * 2 * MaxSpeed
	if v <= -MaxSpeed {
		v = math.Nextafter(-MaxSpeed, 0)
	}
	return v
}

// Advance moves every particle by its velocity, wrapping at the edges. The
// input field is left untouched.
func Advance(f Field) Field {
	next := Field{Generation: f.Generation, Particles: make([]Particle, len(f.Particles))}
	for i, p := range f.Particles {
		p.Position = Vec2{
			X: Wrap(p.Position.X + p.Velocity.X),
			Y: Wrap(p.Position.Y + p.Velocity.Y),
		}
		next.Particles[i] = p
	}
	return next
}

// AdvanceN applies Advance k times.
func AdvanceN(f Field, k int) Field {
	if k <= 0 {
		return f.Clone()
	}
	for range k {
		f = Advance(f)
	}
	return f
}
