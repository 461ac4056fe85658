package viz

import (
	"math"
	"strings"

	"github.com/savibeshop/savibe/internal/particles"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blankBraille = 0x2800

// Canvas is a Braille pixel grid with one color per cell.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]string
}

func NewCanvas(w, h int) *Canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
		Colors: make([][]string, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]string, w)
	}
	c.Clear()
	return c
}

// Set sets a pixel at (x, y) in sub-pixel coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// SetColor sets a pixel and paints its cell.
func (c *Canvas) SetColor(x, y int, color string) {
	if x < 0 || y < 0 || x/2 >= c.Width || y/4 >= c.Height {
		return
	}
	c.Set(x, y)
	c.Colors[y/4][x/2] = color
}

// Lit reports whether any dot in the cell is set.
func (c *Canvas) Lit(col, row int) bool {
	return c.Grid[row][col] != blankBraille
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blankBraille
			c.Colors[i][j] = ""
		}
	}
}

// DrawMarkers plots every marker, blending its color toward bg by its
// opacity. Larger particles light more dots. phase is the cosmetic float
// animation time; zero disables the bob.
func (c *Canvas) DrawMarkers(ms []particles.Marker, bg string, phase float64) {
	subW, subH := float64(c.Width*2), float64(c.Height*4)
	for _, m := range ms {
		x := int(m.Left / particles.Extent * subW)
		y := int(m.Top / particles.Extent * subH)
		if phase != 0 && m.FloatPeriod > 0 {
			y += int(math.Round(math.Sin(2 * math.Pi * phase / m.FloatPeriod.Seconds())))
		}
		color := Blend(string(m.Color), bg, m.Opacity)
		for _, d := range dotsFor(m.Scale) {
			c.SetColor(x+d[0], y+d[1], color)
		}
	}
}

func dotsFor(scale float64) [][2]int {
	switch {
	case scale < 2:
		return [][2]int{{0, 0}}
	case scale < 3:
		return [][2]int{{0, 0}, {1, 0}}
	default:
		return [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	}
}

// Count returns the number of lit cells.
func (c *Canvas) Count() int {
	n := 0
	for _, row := range c.Grid {
		for _, r := range row {
			if r != blankBraille {
				n++
			}
		}
	}
	return n
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}
