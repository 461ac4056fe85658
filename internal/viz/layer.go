package viz

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type cell struct {
	r    rune
	st   cellStyle
	set  bool
	cont bool // right half of a wide rune
}

// Layer is a grid of styled text cells drawn over the particle canvas.
// Cells that were never written stay transparent. A Layer grows downward
// when written past its height, so it also holds the full scrolling page.
type Layer struct {
	Width, Height int
	cells         [][]cell
}

func NewLayer(w, h int) *Layer {
	if w < 0 {
		w = 0
	}
	l := &Layer{Width: w}
	l.grow(h)
	return l
}

func (l *Layer) grow(h int) {
	for l.Height < h {
		l.cells = append(l.cells, make([]cell, l.Width))
		l.Height++
	}
}

// Put writes text starting at column x of row y and returns the number of
// columns used. Text running off either edge is clipped.
func (l *Layer) Put(x, y int, text string, st cellStyle) int {
	if y < 0 {
		return 0
	}
	l.grow(y + 1)
	row := l.cells[y]
	start := max(x, 0)
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > l.Width {
			break
		}
		if x >= 0 {
			row[x] = cell{r: r, st: st, set: true}
			if w == 2 {
				row[x+1] = cell{st: st, set: true, cont: true}
			}
		}
		x += w
	}
	return max(x-start, 0)
}

// PutSpans writes consecutive spans and returns their total width.
func (l *Layer) PutSpans(x, y int, spans []span) int {
	n := 0
	for _, s := range spans {
		l.Put(x+n, y, s.text, s.st)
		n += runewidth.StringWidth(s.text)
	}
	return n
}

// Fill paints w blank cells in style st.
func (l *Layer) Fill(x, y, w int, st cellStyle) {
	l.Put(x, y, strings.Repeat(" ", max(w, 0)), st)
}

// Blit copies n rows of src starting at srcY onto l starting at dstY.
func (l *Layer) Blit(src *Layer, srcY, dstY, n int) {
	for i := 0; i < n; i++ {
		sy, dy := srcY+i, dstY+i
		if sy < 0 || sy >= src.Height || dy < 0 || dy >= l.Height {
			continue
		}
		copy(l.cells[dy], src.cells[sy])
	}
}

// Text returns the plain characters of row y, with blanks for unset cells.
func (l *Layer) Text(y int) string {
	if y < 0 || y >= l.Height {
		return ""
	}
	var b strings.Builder
	for _, c := range l.cells[y] {
		switch {
		case c.cont:
		case c.set:
			b.WriteRune(c.r)
		default:
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// Compose renders the canvas with the layer on top. Transparent layer cells
// show the particle canvas on the page background.
func Compose(c *Canvas, l *Layer, bg string) string {
	var out strings.Builder
	for y := 0; y < l.Height; y++ {
		var run strings.Builder
		var cur cellStyle
		flush := func() {
			if run.Len() > 0 {
				out.WriteString(cur.lipgloss().Render(run.String()))
				run.Reset()
			}
		}
		for x := 0; x < l.Width; x++ {
			lc := l.cells[y][x]
			if lc.cont {
				continue
			}
			r, st := ' ', cellStyle{bg: bg}
			switch {
			case lc.set:
				r, st = lc.r, lc.st
				if st.bg == "" {
					st.bg = bg
				}
			case c != nil && y < c.Height && x < c.Width && c.Lit(x, y):
				r, st = c.Grid[y][x], cellStyle{fg: c.Colors[y][x], bg: bg}
			}
			if st != cur {
				flush()
				cur = st
			}
			run.WriteRune(r)
		}
		flush()
		if y < l.Height-1 {
			out.WriteByte('\n')
		}
	}
	return out.String()
}
