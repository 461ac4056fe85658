package export

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/savibeshop/savibe/internal/content"
	"github.com/savibeshop/savibe/internal/particles"
	"github.com/savibeshop/savibe/internal/ui"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"glyph":     content.Glyph,
	"iconColor": content.IconColor,
	"gradient":  gradientCSS,
	"pct":       func(v float64) string { return fmt.Sprintf("%.3f%%", v) },
	"seconds":   func(ms int) string { return fmt.Sprintf("%.1fs", float64(ms)/1000) },
}).ParseFS(templatesFS, "templates/*.tmpl"))

// MarkerView is a marker formatted for inline styles.
type MarkerView struct {
	Left, Top    float64
	Scale        float64
	Color        string
	Opacity      float64
	FloatSeconds string
}

// PageData feeds the page template.
type PageData struct {
	Page       *content.Page
	Year       int
	Footer     string
	Markers    []MarkerView
	Generation uint64
	// ScrollThreshold is the scroll offset in pixels past which the navbar
	// turns solid.
	ScrollThreshold int
	// Live pages subscribe to StreamURL and move their markers on every tick.
	// An event from another generation replaces every marker.
	Live      bool
	StreamURL string
}

func NewPageData(page *content.Page, f particles.Field, year int) PageData {
	ms := f.Markers()
	views := make([]MarkerView, len(ms))
	for i, m := range ms {
		views[i] = MarkerView{
			Left:         m.Left,
			Top:          m.Top,
			Scale:        m.Scale,
			Color:        string(m.Color),
			Opacity:      m.Opacity,
			FloatSeconds: fmt.Sprintf("%.2fs", m.FloatPeriod.Seconds()),
		}
	}
	return PageData{
		Page:            page,
		Year:            year,
		Footer:          page.FooterText(year),
		Markers:         views,
		Generation:      f.Generation,
		ScrollThreshold: ui.DefaultScrollThreshold,
	}
}

// WriteHTML renders the landing page.
func WriteHTML(w io.Writer, data PageData) error {
	if err := templates.ExecuteTemplate(w, "page.html.tmpl", data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

func gradientCSS(colors []string) template.CSS {
	switch len(colors) {
	case 0:
		return template.CSS("background: #8B5CF6")
	case 1:
		return template.CSS("background: " + sanitizeColor(colors[0]))
	}
	cs := make([]string, len(colors))
	for i, c := range colors {
		cs[i] = sanitizeColor(c)
	}
	return template.CSS("background: linear-gradient(135deg, " + strings.Join(cs, ", ") + ")")
}

// sanitizeColor keeps only hex color characters.
func sanitizeColor(c string) string {
	if _, _, _, err := particles.Color(c).RGB(); err != nil {
		return "#8B5CF6"
	}
	return c
}
