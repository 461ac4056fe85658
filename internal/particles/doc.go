// Package particles implements the decorative particle field drawn behind the
// landing page.
//
// A [Field] is an ordered set of [Particle] values living in a normalized
// 100x100 space (percent of the container on each axis). Every visual
// attribute is sampled once by [Initialize]; only the position changes
// afterwards, through [Advance], which wraps both axes toroidally so points
// leaving one edge re-enter on the opposite side.
//
//   - [Initialize]: sample a fresh field from a [Source]
//   - [Reinitialize]: replace a field with a new generation
//   - [Advance]: one tick of motion, returning a new field
//   - [Field.Markers]: projection consumed by the renderers
//
// # Randomness
//
// Sampling goes through the [Source] interface so callers can supply a
// seeded or scripted generator. *rand.Rand from math/rand/v2 satisfies it.
//
//	src := particles.NewSource(42)
//	f := particles.Initialize(particles.PageCount, particles.DefaultPalette, src)
//	f = particles.Advance(f)
package particles
