package viz

import (
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/savibeshop/savibe/internal/animator"
	"github.com/savibeshop/savibe/internal/content"
	"github.com/savibeshop/savibe/internal/particles"
	"github.com/savibeshop/savibe/internal/ui"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// rowPixels converts scrolled rows into the pixel offset the navbar
	// threshold is expressed in.
	rowPixels = 16
	// linksMinWidth is the narrowest terminal that shows nav links inline.
	linksMinWidth = 64
)

type PageOptions struct {
	Content         *content.Page
	Animator        *animator.Animator
	Theme           Theme
	RevealStep      time.Duration
	ScrollThreshold int
	Palettes        []particles.Palette
	Logger          *zap.Logger
	Year            int
}

// Page is the interactive landing page.
type Page struct {
	page     *content.Page
	anim     *animator.Animator
	theme    Theme
	palettes []particles.Palette
	log      *zap.Logger
	year     int

	width, height int
	canvas        *Canvas

	nav    ui.Navbar
	cursor int
	scroll int

	rv      reveals
	loaded  bool
	settled bool
	start   time.Time
	since   time.Duration

	chain uint64
}

func NewPage(opts PageOptions) Page {
	if opts.Content == nil {
		opts.Content = content.Default()
	}
	if opts.Animator == nil {
		cfg := animator.DefaultConfig()
		cfg.Count = particles.PageCount
		opts.Animator = animator.New(cfg)
	}
	if opts.Theme.Name == "" {
		opts.Theme = ThemeSavibe
	}
	if opts.Palettes == nil {
		opts.Palettes = DefaultPalettes
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Year == 0 {
		opts.Year = time.Now().Year()
	}
	nav := ui.NewNavbar()
	if opts.ScrollThreshold > 0 {
		nav.Threshold = opts.ScrollThreshold
	}
	return Page{
		page:     opts.Content,
		anim:     opts.Animator,
		theme:    opts.Theme,
		palettes: opts.Palettes,
		log:      opts.Logger,
		year:     opts.Year,
		width:    defaultWidth,
		height:   defaultHeight,
		canvas:   NewCanvas(defaultWidth, defaultHeight),
		nav:      nav,
		rv:       newReveals(opts.Content, opts.RevealStep),
	}
}

func (m Page) Init() tea.Cmd {
	return tickCmd(m.anim.Config().Interval, m.anim.Field().Generation, m.chain)
}

func (m Page) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = max(msg.Width, 1), max(msg.Height, 1)
		m.canvas = NewCanvas(m.width, m.height)
		m.scrollTo(m.scroll)

	case TickMsg:
		if !msg.current(m.anim.Field(), m.chain) {
			return m, nil
		}
		if !m.loaded {
			m.loaded = true
			m.start = msg.Time
		}
		m.since = msg.Time.Sub(m.start)
		if !m.settled {
			m.settled = m.rv.elapse(m.since)
		}
		f := m.anim.Step(1)
		return m, tickCmd(m.anim.Config().Interval, f.Generation, m.chain)

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scrollTo(m.scroll - 3)
		case tea.MouseButtonWheelDown:
			m.scrollTo(m.scroll + 3)
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Page) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "m", "tab":
		m.nav = m.nav.Toggle()
		_, anchors := m.body()
		m.cursor = m.section(anchors)
	case "esc":
		m.nav = m.nav.Close()
	case "enter":
		if m.nav.Open && m.cursor < len(m.page.Nav) {
			m.follow(m.cursor)
		}
	case "down", "j":
		if m.nav.Open {
			m.cursor = min(m.cursor+1, len(m.page.Nav)-1)
		} else {
			m.scrollTo(m.scroll + 1)
		}
	case "up", "k":
		if m.nav.Open {
			m.cursor = max(m.cursor-1, 0)
		} else {
			m.scrollTo(m.scroll - 1)
		}
	case "pgdown", " ":
		m.scrollTo(m.scroll + m.height - 2)
	case "pgup":
		m.scrollTo(m.scroll - m.height + 2)
	case "home", "g":
		m.scrollTo(0)
	case "end", "G":
		m.scrollTo(m.maxScroll())
	case "t":
		m.theme = NextTheme(m.theme)
	case "+", "=":
		return m.reinit(min(m.anim.Config().Count+countStep, particles.MaxCount), m.anim.Config().Palette)
	case "-", "_":
		return m.reinit(max(m.anim.Config().Count-countStep, 0), m.anim.Config().Palette)
	case "p":
		p, _ := nextPalette(m.palettes, m.anim.Config().Palette)
		return m.reinit(m.anim.Config().Count, p)
	case "r":
		return m.reinit(m.anim.Config().Count, m.anim.Config().Palette)
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.page.Nav) {
			m.follow(n - 1)
		}
	}
	return m, nil
}

// reinit replaces the particle field and starts a fresh tick chain for it.
func (m Page) reinit(count int, palette particles.Palette) (tea.Model, tea.Cmd) {
	if err := m.anim.Reinitialize(count, palette); err != nil {
		m.log.Error("reinitialize particles", zap.Error(err))
		return m, nil
	}
	m.chain++
	f := m.anim.Field()
	return m, tickCmd(m.anim.Config().Interval, f.Generation, m.chain)
}

// follow scrolls to the section of nav link i and closes the menu.
func (m *Page) follow(i int) {
	_, anchors := m.body()
	if y, ok := anchors[m.page.Nav[i].Anchor()]; ok {
		m.scrollTo(y)
	}
	m.cursor = i
	m.nav = m.nav.Close()
}

func (m *Page) scrollTo(y int) {
	m.scroll = min(max(y, 0), m.maxScroll())
	m.nav = m.nav.Scroll(m.scroll * rowPixels)
}

func (m Page) maxScroll() int {
	doc, _ := m.body()
	return max(doc.Height-m.height, 0)
}

func (m Page) body() (*Layer, map[string]int) {
	return buildPage(m.page, m.theme, m.rv, m.since, m.year, m.width, m.height)
}

// section is the index of the nav link whose section is on screen.
func (m Page) section(anchors map[string]int) int {
	cur := 0
	for i, link := range m.page.Nav {
		if y, ok := anchors[link.Anchor()]; ok && y <= m.scroll+1 {
			cur = i
		}
	}
	return cur
}

func (m Page) View() string {
	doc, anchors := m.body()
	screen := NewLayer(m.width, m.height)
	screen.Blit(doc, m.scroll, 0, m.height)
	m.drawNav(screen, m.section(anchors))

	m.canvas.Clear()
	m.canvas.DrawMarkers(m.anim.Field().Markers(), string(m.theme.Background), m.since.Seconds())
	return Compose(m.canvas, screen, string(m.theme.Background))
}

func (m Page) drawNav(l *Layer, active int) {
	th := m.theme
	bar := cellStyle{fg: string(th.Text)}
	link := cellStyle{fg: string(th.Muted)}
	if m.nav.Scrolled {
		bar = cellStyle{fg: string(th.NavText), bg: string(th.NavSolid)}
		link = bar
		l.Fill(0, 0, m.width, bar)
	}

	brand := gradientSpans(m.page.Brand, string(th.Primary), string(th.Secondary), true)
	for i := range brand {
		brand[i].st.bg = bar.bg
	}
	l.PutSpans(2, 0, brand)

	glyph := content.Glyph("menu")
	if m.nav.Open {
		glyph = content.Glyph("close")
	}
	right := m.width - 3
	l.Put(right, 0, glyph, cellStyle{fg: bar.fg, bg: bar.bg, bold: true})

	if m.width >= linksMinWidth {
		x := right - 2
		for i := len(m.page.Nav) - 1; i >= 0; i-- {
			text := m.page.Nav[i].Text
			x -= len([]rune(text)) + 3
			st := link
			if i == active {
				st.fg = string(th.Secondary)
				st.under = true
			}
			l.Put(x, 0, text, st)
		}
	}

	if !m.nav.Open {
		return
	}
	menu := cellStyle{fg: string(th.NavText), bg: string(th.NavSolid)}
	w := 18
	for _, n := range m.page.Nav {
		w = max(w, len([]rune(n.Text))+8)
	}
	x := max(m.width-w-1, 0)
	for i, n := range m.page.Nav {
		st := menu
		prefix := "   "
		if i == m.cursor {
			st = cellStyle{fg: "#FFFFFF", bg: string(th.Primary), bold: true}
			prefix = " › "
		}
		l.Fill(x, 1+i, w, st)
		l.Put(x, 1+i, prefix+strconv.Itoa(i+1)+" "+n.Text, st)
	}
}
