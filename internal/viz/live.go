package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/guptarohit/asciigraph"
	"go.uber.org/zap"

	"github.com/savibeshop/savibe/internal/animator"
	"github.com/savibeshop/savibe/internal/export"
	"github.com/savibeshop/savibe/internal/particles"
)

const (
	historyCapacity = 300
	gifWidth        = 320
	gifHeight       = 180
)

var (
	graphStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A78BFA"))
)

type LiveOptions struct {
	Animator *animator.Animator
	Theme    Theme
	Palettes []particles.Palette
	GIFPath  string
	Logger   *zap.Logger
}

// Live shows the particle field alone, filling the terminal.
type Live struct {
	anim     *animator.Animator
	theme    Theme
	palettes []particles.Palette
	gifPath  string
	log      *zap.Logger

	width, height int
	canvas        *Canvas
	running       bool
	showStats     bool
	start         time.Time
	since         time.Duration
	chain         uint64

	recorder *export.GIFRecorder
	message  string

	centroidX []float64
	centroidY []float64
}

func NewLive(opts LiveOptions) Live {
	if opts.Animator == nil {
		opts.Animator = animator.New(animator.DefaultConfig())
	}
	if opts.Theme.Name == "" {
		opts.Theme = ThemeSavibe
	}
	if opts.Palettes == nil {
		opts.Palettes = DefaultPalettes
	}
	if opts.GIFPath == "" {
		opts.GIFPath = "savibe.gif"
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return Live{
		anim:     opts.Animator,
		theme:    opts.Theme,
		palettes: opts.Palettes,
		gifPath:  opts.GIFPath,
		log:      opts.Logger,
		width:    defaultWidth,
		height:   defaultHeight,
		canvas:   NewCanvas(defaultWidth, defaultHeight-1),
		running:  true,
	}
}

func (m Live) Init() tea.Cmd {
	return m.next()
}

func (m Live) next() tea.Cmd {
	return tickCmd(m.anim.Config().Interval, m.anim.Field().Generation, m.chain)
}

func (m Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = max(msg.Width, 1), max(msg.Height, 2)
		m.canvas = NewCanvas(m.width, m.height-1)

	case TickMsg:
		if !m.running || !msg.current(m.anim.Field(), m.chain) {
			return m, nil
		}
		if m.start.IsZero() {
			m.start = msg.Time
		}
		m.since = msg.Time.Sub(m.start)
		f := m.anim.Step(1)
		m.record(f)
		return m, m.next()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
			if m.running {
				m.chain++
				return m, m.next()
			}
		case "g":
			m.toggleRecording()
		case "t":
			m.theme = NextTheme(m.theme)
		case "?":
			m.showStats = !m.showStats
		case "+", "=":
			return m.reinit(min(m.anim.Config().Count+countStep, particles.MaxCount), m.anim.Config().Palette)
		case "-", "_":
			return m.reinit(max(m.anim.Config().Count-countStep, 0), m.anim.Config().Palette)
		case "p":
			p, _ := nextPalette(m.palettes, m.anim.Config().Palette)
			return m.reinit(m.anim.Config().Count, p)
		case "r":
			return m.reinit(m.anim.Config().Count, m.anim.Config().Palette)
		}
	}
	return m, nil
}

func (m Live) reinit(count int, palette particles.Palette) (tea.Model, tea.Cmd) {
	if err := m.anim.Reinitialize(count, palette); err != nil {
		m.log.Error("reinitialize particles", zap.Error(err))
		return m, nil
	}
	m.centroidX, m.centroidY = nil, nil
	if m.recorder != nil {
		m.recorder = m.newRecorder()
		m.message = "recording restarted for the new field"
	}
	m.chain++
	if !m.running {
		return m, nil
	}
	return m, m.next()
}

func (m *Live) record(f particles.Field) {
	c := f.Centroid()
	m.centroidX = appendCapped(m.centroidX, c.X)
	m.centroidY = appendCapped(m.centroidY, c.Y)
	if m.recorder != nil {
		m.recorder.Add(f)
	}
}

func appendCapped(s []float64, v float64) []float64 {
	s = append(s, v)
	if len(s) > historyCapacity {
		s = s[1:]
	}
	return s
}

func (m Live) newRecorder() *export.GIFRecorder {
	return export.NewGIFRecorder(gifWidth, gifHeight, string(m.theme.Background), m.anim.Config().Palette, m.anim.Config().Interval)
}

func (m *Live) toggleRecording() {
	if m.recorder == nil {
		m.recorder = m.newRecorder()
		m.message = "recording"
		return
	}
	rec := m.recorder
	m.recorder = nil
	if rec.Len() == 0 {
		m.message = "nothing recorded"
		return
	}
	if err := rec.Save(m.gifPath); err != nil {
		m.log.Error("save gif", zap.String("path", m.gifPath), zap.Error(err))
		m.message = "gif failed: " + err.Error()
		return
	}
	m.log.Info("saved gif", zap.String("path", m.gifPath), zap.Int("frames", rec.Len()))
	m.message = fmt.Sprintf("saved %d frames to %s", rec.Len(), m.gifPath)
}

func (m Live) View() string {
	m.canvas.Clear()
	f := m.anim.Field()
	m.canvas.DrawMarkers(f.Markers(), string(m.theme.Background), m.since.Seconds())

	overlay := NewLayer(m.width, m.height-1)
	if m.showStats && len(m.centroidX) > 1 {
		chart := asciigraph.PlotMany([][]float64{m.centroidX, m.centroidY},
			asciigraph.Height(6),
			asciigraph.Width(min(40, max(m.width-16, 10))),
			asciigraph.Caption("centroid x/y"))
		for i, line := range strings.Split(ansi.Strip(graphStyle.Render(chart)), "\n") {
			overlay.Put(1, 1+i, line, cellStyle{fg: string(m.theme.Muted), bg: string(m.theme.Background)})
		}
	}

	return Compose(m.canvas, overlay, string(m.theme.Background)) + "\n" + m.statusBar(f)
}

func (m Live) statusBar(f particles.Field) string {
	var status string
	switch {
	case m.recorder != nil:
		status = StatusRecording.Render("● REC")
	case m.running:
		status = StatusRunning.Render("▶ RUNNING")
	default:
		status = StatusPaused.Render("❚❚ PAUSED")
	}

	var swatch strings.Builder
	for _, c := range m.anim.Config().Palette {
		swatch.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(string(c))).Render("■"))
	}

	info := fmt.Sprintf(" gen %d · %d particles · tick %d · %s ", f.Generation, f.Len(), m.anim.Ticks(), m.theme.Name)
	help := statusKey.Render("space") + helpStyle.Render(" pause ") +
		statusKey.Render("g") + helpStyle.Render(" gif ") +
		statusKey.Render("+/-") + helpStyle.Render(" count ") +
		statusKey.Render("?") + helpStyle.Render(" stats ") +
		statusKey.Render("q") + helpStyle.Render(" quit")
	line := status + info + swatch.String()
	if m.message != "" {
		line += "  " + m.message
	}
	return statusStyle.MaxWidth(m.width).Render(line + "  " + help)
}
