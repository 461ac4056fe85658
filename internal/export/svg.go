package export

import (
	"fmt"
	"strings"

	"github.com/savibeshop/savibe/internal/particles"
)

// FieldToSVG draws a field snapshot as circles on a width x height canvas.
func FieldToSVG(f particles.Field, width, height int, background string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<g>
`, width, height, width, height, background))

	for _, m := range f.Markers() {
		cx := m.Left / particles.Extent * float64(width)
		cy := m.Top / particles.Extent * float64(height)
		// a 4px dot scaled by size, like the page markers
		r := 2 * m.Scale
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" fill-opacity="%.2f"/>
`, cx, cy, r, m.Color, m.Opacity))
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// TrailsToSVG draws the path of every particle across a sequence of frames.
// Paths are broken where a particle wraps around an edge.
func TrailsToSVG(frames []particles.Field, width, height int, background string) string {
	if len(frames) < 2 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))

	sx := float64(width) / particles.Extent
	sy := float64(height) / particles.Extent
	n := frames[0].Len()

	for i := 0; i < n; i++ {
		first := frames[0].Particles[i]
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-opacity="%.2f" stroke-width="1" d="`,
			first.Color, first.Opacity))

		var prev particles.Vec2
		for k, f := range frames {
			if i >= f.Len() {
				break
			}
			p := f.Particles[i].Position
			cmd := "L"
			if k == 0 || wrapped(prev, p) {
				cmd = "M"
			}
			if k > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(fmt.Sprintf("%s%.1f,%.1f", cmd, p.X*sx, p.Y*sy))
			prev = p
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// wrapped reports a jump larger than any single tick can produce.
func wrapped(a, b particles.Vec2) bool {
	const half = particles.Extent / 2
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx > half || dx < -half || dy > half || dy < -half
}
