package export

import (
	"image"
	"image/color"
	"image/gif"
	"io"
	"os"
	"time"

	"github.com/savibeshop/savibe/internal/particles"
)

// opacity levels the GIF palette is quantized to
var gifLevels = []float64{0.2, 0.35, 0.5, 0.65}

// GIFRecorder collects field frames into an animated GIF.
type GIFRecorder struct {
	width, height int
	delay         int
	palette       color.Palette
	index         map[particles.Color]uint8
	frames        []*image.Paletted
}

// NewGIFRecorder sizes frames in pixels, at least 1x1. Colors outside colors
// are skipped.
func NewGIFRecorder(width, height int, background string, colors particles.Palette, interval time.Duration) *GIFRecorder {
	width, height = max(width, 1), max(height, 1)
	bg := rgba(particles.Color(background), color.RGBA{0x3b, 0x07, 0x64, 0xff})
	pal := color.Palette{bg}
	index := make(map[particles.Color]uint8)
	for _, c := range colors {
		if len(pal)+len(gifLevels) > 256 {
			break
		}
		if _, ok := index[c]; ok {
			continue
		}
		fg := rgba(c, color.RGBA{0xff, 0xff, 0xff, 0xff})
		index[c] = uint8(len(pal))
		for _, lvl := range gifLevels {
			pal = append(pal, mix(fg, bg, lvl))
		}
	}

	delay := int(interval / (10 * time.Millisecond))
	if delay < 2 {
		delay = 2
	}

	return &GIFRecorder{
		width:   width,
		height:  height,
		delay:   delay,
		palette: pal,
		index:   index,
	}
}

func (r *GIFRecorder) Len() int { return len(r.frames) }

// Add renders one frame.
func (r *GIFRecorder) Add(f particles.Field) {
	img := image.NewPaletted(image.Rect(0, 0, r.width, r.height), r.palette)
	for _, m := range f.Markers() {
		base, ok := r.index[m.Color]
		if !ok {
			continue
		}
		ci := base + uint8(level(m.Opacity))
		cx := int(m.Left / particles.Extent * float64(r.width))
		cy := int(m.Top / particles.Extent * float64(r.height))
		rad := int(m.Scale + 0.5)
		for y := cy - rad; y <= cy+rad; y++ {
			for x := cx - rad; x <= cx+rad; x++ {
				if (x-cx)*(x-cx)+(y-cy)*(y-cy) > rad*rad {
					continue
				}
				// wrap like the field does
				px := (x%r.width + r.width) % r.width
				py := (y%r.height + r.height) % r.height
				img.SetColorIndex(px, py, ci)
			}
		}
	}
	r.frames = append(r.frames, img)
}

func (r *GIFRecorder) Encode(w io.Writer) error {
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, r.delay)
	}
	return gif.EncodeAll(w, &anim)
}

func (r *GIFRecorder) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func level(opacity float64) int {
	best := 0
	for i, l := range gifLevels {
		if abs(opacity-l) < abs(opacity-gifLevels[best]) {
			best = i
		}
	}
	return best
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func rgba(c particles.Color, fallback color.RGBA) color.RGBA {
	r, g, b, err := c.RGB()
	if err != nil {
		return fallback
	}
	return color.RGBA{r, g, b, 0xff}
}

func mix(fg, bg color.RGBA, a float64) color.RGBA {
	m := func(f, b uint8) uint8 { return uint8(float64(b) + a*(float64(f)-float64(b)) + 0.5) }
	return color.RGBA{m(fg.R, bg.R), m(fg.G, bg.G), m(fg.B, bg.B), 0xff}
}
