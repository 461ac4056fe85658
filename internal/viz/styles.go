package viz

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/savibeshop/savibe/internal/particles"
)

var (
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E9D5FF")).
			Background(lipgloss.Color("#2E1065")).
			Padding(0, 1)

	statusKey = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F472B6")).
			Background(lipgloss.Color("#2E1065")).
			Bold(true)

	StatusRunning = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ff88"))

	StatusPaused = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffaa00"))

	StatusRecording = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff4444")).
			Blink(true)
)

// cellStyle is the comparable description of one terminal cell's look.
type cellStyle struct {
	fg, bg string
	bold   bool
	italic bool
	under  bool
}

func (s cellStyle) lipgloss() lipgloss.Style {
	st := lipgloss.NewStyle()
	if s.fg != "" {
		st = st.Foreground(lipgloss.Color(s.fg))
	}
	if s.bg != "" {
		st = st.Background(lipgloss.Color(s.bg))
	}
	return st.Bold(s.bold).Italic(s.italic).Underline(s.under)
}

// span is a run of text in one style.
type span struct {
	text string
	st   cellStyle
}

// gradientSpans spreads a color gradient across text, one span per rune. An
// end that does not decode takes the other end's color; with neither, the
// text keeps the default foreground.
func gradientSpans(text string, start, end string, bold bool) []span {
	runes := []rune(text)
	n := len(runes)
	if n == 0 {
		return nil
	}

	sr, sg, sb, serr := particles.Color(start).RGB()
	er, eg, eb, eerr := particles.Color(end).RGB()
	switch {
	case serr != nil && eerr != nil:
		out := make([]span, n)
		for i, c := range runes {
			out[i] = span{text: string(c), st: cellStyle{bold: bold}}
		}
		return out
	case serr != nil:
		sr, sg, sb = er, eg, eb
	case eerr != nil:
		er, eg, eb = sr, sg, sb
	}
	lerp := func(a, b uint8, t float64) int { return int(float64(a) + t*(float64(b)-float64(a))) }

	out := make([]span, n)
	for i, c := range runes {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		fg := hexColor(lerp(sr, er, t), lerp(sg, eg, t), lerp(sb, eb, t))
		out[i] = span{text: string(c), st: cellStyle{fg: fg, bold: bold}}
	}
	return out
}

// Blend mixes fg over bg with the given opacity. If fg does not decode the
// result is bg; if bg does not decode it is fg.
func Blend(fg, bg string, opacity float64) string {
	if opacity >= 1 {
		return fg
	}
	if opacity < 0 {
		opacity = 0
	}
	fr, fgc, fb, err := particles.Color(fg).RGB()
	if err != nil {
		return bg
	}
	br, bgc, bb, err := particles.Color(bg).RGB()
	if err != nil {
		return fg
	}
	mix := func(a, b uint8) int { return int(float64(b) + opacity*(float64(a)-float64(b)) + 0.5) }
	return hexColor(mix(fr, br), mix(fgc, bgc), mix(fb, bb))
}

func hexColor(r, g, b int) string {
	return "#" + hexByte(r) + hexByte(g) + hexByte(b)
}

func hexByte(v int) string {
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	const hex = "0123456789abcdef"
	return string(hex[v/16]) + string(hex[v%16])
}
