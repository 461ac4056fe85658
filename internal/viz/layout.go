package viz

import (
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/savibeshop/savibe/internal/content"
	"github.com/savibeshop/savibe/internal/ui"
)

const (
	maxColumn    = 72
	twoColumnMin = 60
	heroSlide    = 800 * time.Millisecond
	heroShift    = 10
	cardSlide    = 500 * time.Millisecond
)

// reveals holds the entrance state of every animated block on the page.
type reveals struct {
	logo     ui.Reveal
	intro    ui.Reveal
	features []ui.Reveal
	contacts []ui.Reveal
}

func newReveals(p *content.Page, step time.Duration) reveals {
	rv := reveals{
		intro: ui.Reveal{Delay: 200 * time.Millisecond},
	}
	if step > 0 {
		rv.features = ui.Stagger(len(p.FeatureSet), step)
		rv.contacts = ui.Stagger(len(p.Contacts), step)
		return rv
	}
	rv.features = make([]ui.Reveal, len(p.FeatureSet))
	for i, f := range p.FeatureSet {
		rv.features[i].Delay = time.Duration(f.DelayMs) * time.Millisecond
	}
	rv.contacts = make([]ui.Reveal, len(p.Contacts))
	for i, c := range p.Contacts {
		rv.contacts[i].Delay = time.Duration(c.DelayMs) * time.Millisecond
	}
	return rv
}

// elapse applies the time since the first frame and reports whether every
// block has settled in place.
func (rv *reveals) elapse(since time.Duration) bool {
	rv.logo = rv.logo.Elapsed(since)
	rv.intro = rv.intro.Elapsed(since)
	settled := ui.ElapseAll(rv.features, since)
	settled = ui.ElapseAll(rv.contacts, since) && settled
	last := max(rv.intro.Delay+heroSlide, maxDelay(rv.features)+cardSlide, maxDelay(rv.contacts)+cardSlide)
	return settled && rv.logo.Visible && rv.intro.Visible && since >= last
}

func maxDelay(rs []ui.Reveal) time.Duration {
	var d time.Duration
	for _, r := range rs {
		d = max(d, r.Delay)
	}
	return d
}

// layout renders the scrolling page body into a Layer as tall as it needs
// and records the first row of every section.
type layout struct {
	page    *content.Page
	theme   Theme
	rv      reveals
	since   time.Duration
	year    int
	width   int
	height  int
	col     int
	left    int
	y       int
	doc     *Layer
	anchors map[string]int
}

func buildPage(p *content.Page, th Theme, rv reveals, since time.Duration, year, width, height int) (*Layer, map[string]int) {
	col := min(width-4, maxColumn)
	if col < 10 {
		col = max(width, 0)
	}
	l := &layout{
		page:    p,
		theme:   th,
		rv:      rv,
		since:   since,
		year:    year,
		width:   width,
		height:  height,
		col:     col,
		left:    (width - col) / 2,
		doc:     NewLayer(width, 0),
		anchors: map[string]int{},
	}
	l.hero()
	l.features()
	l.about()
	l.contact()
	l.footer()
	return l.doc, l.anchors
}

func (l *layout) style(fg string) cellStyle { return cellStyle{fg: fg} }

func (l *layout) blank(n int) { l.y += n; l.doc.grow(l.y) }

// centered writes text in the middle of the content column.
func (l *layout) centered(text string, st cellStyle, shift int) {
	x := l.left + (l.col-runewidth.StringWidth(text))/2 + shift
	l.doc.Put(x, l.y, text, st)
	l.y++
}

func (l *layout) centeredSpans(spans []span, shift int) {
	w := 0
	for _, s := range spans {
		w += runewidth.StringWidth(s.text)
	}
	l.doc.PutSpans(l.left+(l.col-w)/2+shift, l.y, spans)
	l.y++
}

// paragraph word-wraps text to width and centers each line.
func (l *layout) paragraph(text string, width int, st cellStyle, shift int) {
	for _, line := range wrap(text, width) {
		l.centered(line, st, shift)
	}
}

func wrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	return strings.Split(ansi.Wordwrap(text, width, ""), "\n")
}

func (l *layout) anchor(href string) {
	l.anchors[strings.TrimPrefix(href, "#")] = l.y
}

func (l *layout) hero() {
	th := l.theme
	l.anchor("#home")
	top := l.y
	l.blank(2)

	if l.rv.logo.Visible {
		shift := -l.rv.logo.Progress(l.since, heroSlide, heroShift)
		glass := cellStyle{bg: Blend(string(th.Text), string(th.Background), 0.12)}
		name := " " + l.page.Brand + " "
		w := runewidth.StringWidth(name) + 8
		x := l.left + (l.col-w)/2 + shift
		for i := 0; i < 3; i++ {
			l.doc.Fill(x, l.y+i, w, glass)
		}
		spans := gradientSpans(name, string(th.Primary), string(th.Secondary), true)
		for i := range spans {
			spans[i].st.bg = glass.bg
		}
		l.doc.PutSpans(x+4, l.y+1, spans)
	}
	l.blank(4)

	if l.rv.intro.Visible {
		shift := l.rv.intro.Progress(l.since, heroSlide, heroShift)
		hero := l.page.Hero
		for _, line := range wrap(hero.Title, l.col) {
			l.centeredSpans(gradientSpans(line, string(th.Text), string(th.Accent), true), shift)
		}
		l.blank(1)
		tag := cellStyle{fg: string(th.Muted), bg: Blend("#000000", string(th.Background), 0.2)}
		for _, line := range wrap(hero.Tagline, l.col-2) {
			l.centered(" "+line+" ", tag, shift)
		}
		l.blank(1)
		l.paragraph(hero.Intro, min(l.col, 60), l.style(string(th.Text)), shift)
		l.blank(1)
		if hero.CTAText != "" {
			cta := gradientSpans("  "+hero.CTAText+" →  ", "#FFFFFF", "#FFFFFF", true)
			bg := gradientSpans(strings.Repeat(" ", len(cta)), string(th.Primary), string(th.Secondary), false)
			for i := range cta {
				cta[i].st.bg = bg[i].st.fg
			}
			l.centeredSpans(cta, shift)
		}
	}

	// The hero fills at least one screen, like the min-h-screen section.
	if rest := top + l.height - l.y; rest > 0 {
		l.blank(rest)
	} else {
		l.blank(2)
	}
}

func (l *layout) heading(s content.Section) {
	th := l.theme
	spans := []span{{text: s.Heading + " ", st: cellStyle{fg: string(th.Text), bold: true}}}
	spans = append(spans, gradientSpans(s.Highlight, string(th.Primary), string(th.Secondary), true)...)
	l.centeredSpans(spans, 0)
	if s.Subtitle != "" {
		l.blank(1)
		l.paragraph(s.Subtitle, min(l.col, 60), l.style(string(th.Muted)), 0)
	}
	l.blank(2)
}

func (l *layout) features() {
	l.anchor("#features")
	l.blank(1)
	l.heading(l.page.Features)

	cols := 1
	if l.col >= twoColumnMin {
		cols = 2
	}
	gap := 2
	cardW := (l.col - gap*(cols-1)) / cols

	for i := 0; i < len(l.page.FeatureSet); i += cols {
		rowH := 0
		for c := 0; c < cols && i+c < len(l.page.FeatureSet); c++ {
			x := l.left + c*(cardW+gap)
			h := l.card(x, l.y, cardW, l.page.FeatureSet[i+c], l.rv.features[i+c])
			rowH = max(rowH, h)
		}
		l.blank(rowH + 2)
	}
}

// card draws one feature card and returns its height. A card still sliding
// in sits one row lower, inside the gap below it.
func (l *layout) card(x, y, w int, f content.Feature, rv ui.Reveal) int {
	th := l.theme
	inner := max(w-4, 1)
	desc := wrap(f.Description, inner)
	h := len(desc) + 4
	if !rv.Visible {
		return h
	}
	y += rv.Progress(l.since, cardSlide, 1)

	body := cellStyle{fg: string(th.CardText), bg: string(th.Card)}
	border := cellStyle{fg: string(th.Primary), bg: string(th.Card)}
	l.doc.Put(x, y, "╭"+strings.Repeat("─", w-2)+"╮", border)
	for i := 1; i < h-1; i++ {
		l.doc.Put(x, y+i, "│", border)
		l.doc.Fill(x+1, y+i, w-2, body)
		l.doc.Put(x+w-1, y+i, "│", border)
	}
	l.doc.Put(x, y+h-1, "╰"+strings.Repeat("─", w-2)+"╯", border)

	icon := cellStyle{fg: content.IconColor(f.Icon), bg: string(th.Card), bold: true}
	n := l.doc.Put(x+2, y+1, content.Glyph(f.Icon)+" ", icon)
	title := body
	title.bold = true
	l.doc.Put(x+2+n, y+1, ansi.Truncate(f.Title, inner-n, "…"), title)
	for i, line := range desc {
		l.doc.Put(x+2, y+2+i, line, body)
	}
	return h
}

func (l *layout) about() {
	th := l.theme
	a := l.page.About
	l.anchor("#about")
	l.blank(1)
	l.heading(content.Section{Heading: a.Heading, Highlight: a.Highlight})

	glass := cellStyle{fg: string(th.Text), bg: Blend(string(th.Text), string(th.Background), 0.1)}
	inner := min(l.col-4, 64)
	panelW := inner + 4
	x := l.left + (l.col-panelW)/2

	var lines []string
	for i, p := range a.Paragraphs {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, wrap(p, inner)...)
	}
	lines = append([]string{""}, lines...)
	lines = append(lines, "")

	for _, line := range lines {
		l.doc.Fill(x, l.y, panelW, glass)
		l.doc.Put(x+2, l.y, line, glass)
		l.y++
	}
	l.blank(1)

	if a.Stat.Value != "" {
		l.centeredSpans(gradientSpans(a.Stat.Value, string(th.Primary), string(th.Secondary), true), 0)
		l.centered(a.Stat.Label, l.style(string(th.Muted)), 0)
	}
	l.blank(2)
}

func (l *layout) contact() {
	th := l.theme
	l.anchor("#contact")
	l.blank(1)
	l.heading(l.page.Contact)

	for i, c := range l.page.Contacts {
		rv := l.rv.contacts[i]
		if rv.Visible {
			bg := string(th.Primary)
			if len(c.Colors) > 0 {
				bg = c.Colors[0]
			}
			btn := "  " + content.Glyph(c.Icon) + "  " + c.Label + "  "
			y := l.y + rv.Progress(l.since, cardSlide, 1)
			w := runewidth.StringWidth(btn)
			x := l.left + (l.col-w)/2
			l.doc.Put(x, y, btn, cellStyle{fg: "#FFFFFF", bg: bg, bold: true})
			href := ansi.Truncate(c.Href, l.col, "…")
			l.doc.Put(l.left+(l.col-runewidth.StringWidth(href))/2, y+1, href, cellStyle{fg: string(th.Muted), under: true})
		}
		l.blank(3)
	}
	l.blank(1)
}

func (l *layout) footer() {
	th := l.theme
	l.centered(strings.Repeat("─", l.col), l.style(string(th.Muted)), 0)
	l.blank(1)
	l.paragraph(l.page.FooterText(l.year), l.col, l.style(string(th.Muted)), 0)
	l.blank(1)
	l.centered("m menu · j/k scroll · 1-9 jump · +/- particles · p palette · t theme · q quit",
		cellStyle{fg: Blend(string(th.Muted), string(th.Background), 0.6)}, 0)
	l.blank(1)
}
