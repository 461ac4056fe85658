package viz

import (
	"image/gif"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/savibeshop/savibe/internal/animator"
	"github.com/savibeshop/savibe/internal/content"
	"github.com/savibeshop/savibe/internal/particles"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newAnimator(count int) *animator.Animator {
	cfg := animator.DefaultConfig()
	cfg.Count = count
	return animator.New(cfg, animator.WithSource(particles.NewSource(3)))
}

func newTestPage(t *testing.T) Page {
	t.Helper()
	m := NewPage(PageOptions{Animator: newAnimator(20), Year: 2025})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return next.(Page)
}

func update(t *testing.T, m tea.Model, msg tea.Msg) (tea.Model, tea.Cmd) {
	t.Helper()
	return m.Update(msg)
}

func tick(m Page, at time.Time) TickMsg {
	return TickMsg{Time: at, Generation: m.anim.Field().Generation, Chain: m.chain}
}

func TestLayerPut(t *testing.T) {
	tests := []struct {
		name string
		x    int
		text string
		want string
		n    int
	}{
		{"plain", 1, "abc", " abc      ", 3},
		{"clipped right", 8, "abcd", "        ab", 2},
		{"clipped left", -2, "abcd", "cd        ", 2},
		{"wide rune", 0, "日本", "日本      ", 4},
		{"wide rune at edge", 9, "日", "          ", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLayer(10, 1)
			if n := l.Put(tt.x, 0, tt.text, cellStyle{}); n != tt.n {
				t.Errorf("Put returned %d, want %d", n, tt.n)
			}
			if got := l.Text(0); got != tt.want {
				t.Errorf("row = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLayerGrowsAndBlits(t *testing.T) {
	doc := NewLayer(5, 0)
	doc.Put(0, 3, "deep", cellStyle{})
	if doc.Height != 4 {
		t.Fatalf("height = %d, want 4", doc.Height)
	}
	screen := NewLayer(5, 2)
	screen.Blit(doc, 2, 0, 2)
	if got := screen.Text(1); got != "deep " {
		t.Errorf("blitted row = %q", got)
	}
	if got := screen.Text(0); got != "     " {
		t.Errorf("empty row = %q", got)
	}
}

func TestComposeShowsParticlesThroughLayer(t *testing.T) {
	c := NewCanvas(4, 1)
	c.SetColor(0, 0, "#ff0000")
	c.SetColor(6, 0, "#ff0000")
	l := NewLayer(4, 1)
	l.Put(3, 0, "x", cellStyle{fg: "#ffffff"})

	got := []rune(ansi.Strip(Compose(c, l, "#000000")))
	if len(got) != 4 {
		t.Fatalf("composed %q", string(got))
	}
	if got[0] != rune(blankBraille|0x1) {
		t.Errorf("cell 0 = %q, want particle", got[0])
	}
	if got[1] != ' ' {
		t.Errorf("cell 1 = %q, want blank", got[1])
	}
	if got[3] != 'x' {
		t.Errorf("cell 3 = %q, layer text should cover the particle", got[3])
	}
}

func TestDrawMarkers(t *testing.T) {
	c := NewCanvas(10, 5)
	f := particles.Field{Particles: []particles.Particle{
		{Position: particles.Vec2{X: 0, Y: 0}, Size: 1, Color: "#8B5CF6", Opacity: 0.5},
		{Position: particles.Vec2{X: 99.9, Y: 99.9}, Size: 3.5, Color: "#EC4899", Opacity: 0.5},
	}}
	c.DrawMarkers(f.Markers(), "#000000", 0)
	if c.Count() != 2 {
		t.Errorf("lit cells = %d, want 2", c.Count())
	}
	if got := c.Colors[0][0]; got != Blend("#8B5CF6", "#000000", 0.5) {
		t.Errorf("color = %s", got)
	}
}

func TestBlend(t *testing.T) {
	tests := []struct {
		fg, bg  string
		opacity float64
		want    string
	}{
		{"#ffffff", "#000000", 1, "#ffffff"},
		{"#ffffff", "#000000", 0, "#000000"},
		{"#ffffff", "#000000", 0.5, "#808080"},
		{"#fff", "#000", 0.5, "#808080"},
		{"", "#3b0764", 0.5, "#3b0764"},
		{"purple", "#000000", 0.5, "#000000"},
		{"#ffffff", "night", 0.5, "#ffffff"},
	}
	for _, tt := range tests {
		if got := Blend(tt.fg, tt.bg, tt.opacity); got != tt.want {
			t.Errorf("Blend(%s, %s, %v) = %s, want %s", tt.fg, tt.bg, tt.opacity, got, tt.want)
		}
	}
}

func TestGradientSpans(t *testing.T) {
	spans := gradientSpans("abc", "#000000", "#ffffff", true)
	if len(spans) != 3 {
		t.Fatalf("spans = %d", len(spans))
	}
	if spans[0].st.fg != "#000000" || spans[2].st.fg != "#ffffff" {
		t.Errorf("ends = %s..%s", spans[0].st.fg, spans[2].st.fg)
	}
	if gradientSpans("", "#000000", "#ffffff", false) != nil {
		t.Error("expected nil for empty text")
	}

	for _, sp := range gradientSpans("ab", "bogus", "#ec4899", false) {
		if sp.st.fg != "#ec4899" {
			t.Errorf("undecodable start should take the end color, got %s", sp.st.fg)
		}
	}
	for _, sp := range gradientSpans("ab", "bogus", "", false) {
		if sp.st.fg != "" {
			t.Errorf("no decodable end should leave the default foreground, got %s", sp.st.fg)
		}
	}
}

func TestReveals(t *testing.T) {
	p := content.Default()

	rv := newReveals(p, 0)
	if rv.features[3].Delay != 300*time.Millisecond || rv.contacts[2].Delay != 200*time.Millisecond {
		t.Errorf("content delays not used: %v %v", rv.features[3].Delay, rv.contacts[2].Delay)
	}
	if rv.elapse(150 * time.Millisecond) {
		t.Error("settled too early")
	}
	if !rv.features[1].Visible || rv.features[2].Visible {
		t.Errorf("at 150ms features visible = %v %v", rv.features[1].Visible, rv.features[2].Visible)
	}
	if !rv.elapse(2 * time.Second) {
		t.Error("expected settled after 2s")
	}

	stepped := newReveals(p, 50*time.Millisecond)
	if stepped.features[3].Delay != 150*time.Millisecond {
		t.Errorf("stagger delay = %v", stepped.features[3].Delay)
	}
}

func TestBuildPageAnchors(t *testing.T) {
	p := content.Default()
	doc, anchors := buildPage(p, ThemeSavibe, newReveals(p, 0), 0, 2025, 80, 24)

	order := []string{"home", "features", "about", "contact"}
	for i, a := range order {
		y, ok := anchors[a]
		if !ok {
			t.Fatalf("missing anchor %s", a)
		}
		if i > 0 && y <= anchors[order[i-1]] {
			t.Errorf("anchor %s at %d not below %s", a, y, order[i-1])
		}
	}
	if anchors["features"] < 23 {
		t.Errorf("hero should fill the first screen, features at %d", anchors["features"])
	}

	var all strings.Builder
	for y := 0; y < doc.Height; y++ {
		all.WriteString(doc.Text(y) + "\n")
	}
	text := all.String()
	if !strings.Contains(text, "© 2025 SavibeShop") {
		t.Error("footer missing")
	}
	if strings.Contains(text, "Kualitas Terkurasi") {
		t.Error("feature card drawn before its reveal")
	}
}

func TestPageLoadsOnFirstFrame(t *testing.T) {
	m := newTestPage(t)
	if strings.Contains(ansi.Strip(m.View()), "Trendy") {
		t.Error("hero text visible before first frame")
	}

	start := time.Unix(100, 0)
	next, cmd := update(t, m, tick(m, start))
	m = next.(Page)
	if cmd == nil {
		t.Fatal("expected next tick")
	}
	if !m.loaded || m.anim.Ticks() != 1 {
		t.Errorf("loaded=%v ticks=%d", m.loaded, m.anim.Ticks())
	}

	next, _ = update(t, m, tick(m, start.Add(2*time.Second)))
	m = next.(Page)
	if !m.settled {
		t.Error("expected reveals settled after 2s")
	}
	view := ansi.Strip(m.View())
	if !strings.Contains(view, "Trendy Styles") {
		t.Error("hero title not rendered")
	}
	if !strings.Contains(view, "SavibeShop") {
		t.Error("brand not rendered")
	}
}

func TestPageDropsStaleTicks(t *testing.T) {
	m := newTestPage(t)
	stale := tick(m, time.Unix(1, 0))

	next, cmd := update(t, m, key("+"))
	m = next.(Page)
	if cmd == nil {
		t.Fatal("expected a new tick chain")
	}
	if got := m.anim.Field().Len(); got != 45 {
		t.Errorf("count = %d, want 45", got)
	}
	if m.anim.Field().Generation != 2 {
		t.Errorf("generation = %d", m.anim.Field().Generation)
	}

	next, cmd = update(t, m, stale)
	m = next.(Page)
	if cmd != nil || m.anim.Ticks() != 0 {
		t.Errorf("stale tick advanced the field: ticks=%d", m.anim.Ticks())
	}

	next, _ = update(t, m, tick(m, time.Unix(2, 0)))
	if next.(Page).anim.Ticks() != 1 {
		t.Error("current tick ignored")
	}
}

func TestPageParticleKeys(t *testing.T) {
	m := newTestPage(t)

	next, _ := update(t, m, key("-"))
	if got := next.(Page).anim.Config().Count; got != 0 {
		t.Errorf("count after - = %d, want 0 (clamped)", got)
	}

	next, _ = update(t, next, key("p"))
	m = next.(Page)
	if !slices.Equal(m.anim.Config().Palette, DefaultPalettes[1]) {
		t.Errorf("palette = %v", m.anim.Config().Palette)
	}

	gen := m.anim.Field().Generation
	next, _ = update(t, m, key("r"))
	if next.(Page).anim.Field().Generation != gen+1 {
		t.Error("reseed did not start a new generation")
	}

	next, _ = update(t, next, key("t"))
	if next.(Page).theme.Name != ThemeNoir.Name {
		t.Errorf("theme = %s", next.(Page).theme.Name)
	}
}

func TestPageNavigation(t *testing.T) {
	m := newTestPage(t)

	next, _ := update(t, m, key("j"))
	m = next.(Page)
	if m.scroll != 1 || m.nav.Scrolled {
		t.Errorf("scroll=%d scrolled=%v", m.scroll, m.nav.Scrolled)
	}

	for i := 0; i < 3; i++ {
		next, _ = update(t, m, key("j"))
		m = next.(Page)
	}
	if !m.nav.Scrolled {
		t.Errorf("navbar should be solid at row %d", m.scroll)
	}

	next, _ = update(t, m, key("G"))
	m = next.(Page)
	if m.scroll != m.maxScroll() || m.scroll == 0 {
		t.Errorf("end scroll = %d, max %d", m.scroll, m.maxScroll())
	}
	next, _ = update(t, m, key("j"))
	if next.(Page).scroll != m.scroll {
		t.Error("scrolled past the end")
	}

	next, _ = update(t, m, key("g"))
	m = next.(Page)
	if m.scroll != 0 || m.nav.Scrolled {
		t.Errorf("home scroll=%d scrolled=%v", m.scroll, m.nav.Scrolled)
	}

	_, anchors := m.body()
	next, _ = update(t, m, key("3"))
	m = next.(Page)
	if m.scroll != min(anchors["about"], m.maxScroll()) {
		t.Errorf("jump to about: scroll=%d anchor=%d", m.scroll, anchors["about"])
	}
}

func TestPageMenu(t *testing.T) {
	m := newTestPage(t)

	next, _ := update(t, m, key("m"))
	m = next.(Page)
	if !m.nav.Open {
		t.Fatal("menu should open")
	}
	if !strings.Contains(ansi.Strip(m.View()), "1 Home") {
		t.Error("menu entries not drawn")
	}

	next, _ = update(t, m, key("j"))
	m = next.(Page)
	if m.cursor != 1 || m.scroll != 0 {
		t.Errorf("cursor=%d scroll=%d", m.cursor, m.scroll)
	}

	next, _ = update(t, m, key("enter"))
	m = next.(Page)
	_, anchors := m.body()
	if m.nav.Open {
		t.Error("menu should close after following a link")
	}
	if m.scroll != anchors["features"] {
		t.Errorf("scroll = %d, want features at %d", m.scroll, anchors["features"])
	}

	next, _ = update(t, m, key("m"))
	next, _ = update(t, next, key("esc"))
	if next.(Page).nav.Open {
		t.Error("esc should close the menu")
	}
}

func TestPageQuit(t *testing.T) {
	m := newTestPage(t)
	_, cmd := update(t, m, key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestLivePauseAndResume(t *testing.T) {
	m := NewLive(LiveOptions{Animator: newAnimator(10)})
	next, _ := update(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})
	m = next.(Live)

	first := TickMsg{Time: time.Unix(1, 0), Generation: 1, Chain: m.chain}
	next, cmd := update(t, m, first)
	m = next.(Live)
	if cmd == nil || m.anim.Ticks() != 1 {
		t.Fatalf("ticks = %d", m.anim.Ticks())
	}

	next, _ = update(t, m, key("space"))
	m = next.(Live)
	if m.running {
		t.Fatal("space should pause")
	}
	next, cmd = update(t, m, TickMsg{Time: time.Unix(2, 0), Generation: 1, Chain: m.chain})
	m = next.(Live)
	if cmd != nil || m.anim.Ticks() != 1 {
		t.Error("paused field advanced")
	}

	next, cmd = update(t, m, key("space"))
	m = next.(Live)
	if !m.running || cmd == nil {
		t.Fatal("space should resume with a new tick chain")
	}
	next, cmd = update(t, m, first)
	if cmd != nil || next.(Live).anim.Ticks() != 1 {
		t.Error("tick from the abandoned chain was applied")
	}

	if !strings.Contains(ansi.Strip(m.View()), "RUNNING") {
		t.Error("status bar missing")
	}
}

func TestLiveRecordsGIF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.gif")
	m := NewLive(LiveOptions{Animator: newAnimator(5), GIFPath: path})

	next, _ := update(t, m, key("g"))
	m = next.(Live)
	if m.recorder == nil {
		t.Fatal("g should start recording")
	}
	for i := 0; i < 3; i++ {
		next, _ = update(t, m, TickMsg{Time: time.Unix(int64(i), 0), Generation: 1, Chain: m.chain})
		m = next.(Live)
	}
	next, _ = update(t, m, key("g"))
	m = next.(Live)
	if m.recorder != nil {
		t.Fatal("second g should stop recording")
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("gif not written: %v", err)
	}
	defer f.Close()
	g, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(g.Image) != 3 {
		t.Errorf("frames = %d, want 3", len(g.Image))
	}
}

func TestNextPalette(t *testing.T) {
	p, i := nextPalette(DefaultPalettes, DefaultPalettes[len(DefaultPalettes)-1])
	if i != 0 || !slices.Equal(p, DefaultPalettes[0]) {
		t.Errorf("wrap = %d", i)
	}
	if _, i := nextPalette(DefaultPalettes, particles.Palette{"#123456"}); i != 0 {
		t.Errorf("unknown palette should restart the cycle, got %d", i)
	}
}
