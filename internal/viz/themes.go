package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the page colors.
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Card       lipgloss.Color
	CardText   lipgloss.Color
	NavSolid   lipgloss.Color
	NavText    lipgloss.Color
}

// Available themes
var (
	ThemeSavibe = Theme{
		Name:       "savibe",
		Primary:    lipgloss.Color("#C084FC"), // purple-400
		Secondary:  lipgloss.Color("#F472B6"), // pink-400
		Accent:     lipgloss.Color("#D8B4FE"),
		Background: lipgloss.Color("#3B0764"),
		Text:       lipgloss.Color("#FFFFFF"),
		Muted:      lipgloss.Color("#E9D5FF"),
		Card:       lipgloss.Color("#F8FAFC"),
		CardText:   lipgloss.Color("#1E293B"),
		NavSolid:   lipgloss.Color("#F8FAFC"),
		NavText:    lipgloss.Color("#334155"),
	}

	ThemeNoir = Theme{
		Name:       "noir",
		Primary:    lipgloss.Color("#FFFFFF"),
		Secondary:  lipgloss.Color("#A1A1AA"),
		Accent:     lipgloss.Color("#E4E4E7"),
		Background: lipgloss.Color("#09090B"),
		Text:       lipgloss.Color("#FAFAFA"),
		Muted:      lipgloss.Color("#71717A"),
		Card:       lipgloss.Color("#27272A"),
		CardText:   lipgloss.Color("#F4F4F5"),
		NavSolid:   lipgloss.Color("#18181B"),
		NavText:    lipgloss.Color("#FAFAFA"),
	}

	ThemePastel = Theme{
		Name:       "pastel",
		Primary:    lipgloss.Color("#A78BFA"),
		Secondary:  lipgloss.Color("#F9A8D4"),
		Accent:     lipgloss.Color("#818CF8"),
		Background: lipgloss.Color("#FDF4FF"),
		Text:       lipgloss.Color("#4C1D95"),
		Muted:      lipgloss.Color("#7E22CE"),
		Card:       lipgloss.Color("#FFFFFF"),
		CardText:   lipgloss.Color("#3B0764"),
		NavSolid:   lipgloss.Color("#F5D0FE"),
		NavText:    lipgloss.Color("#4C1D95"),
	}

	ThemeSunset = Theme{
		Name:       "sunset",
		Primary:    lipgloss.Color("#ff6b6b"), // Coral
		Secondary:  lipgloss.Color("#feca57"),
		Accent:     lipgloss.Color("#ff9ff3"),
		Background: lipgloss.Color("#2d1b2e"),
		Text:       lipgloss.Color("#fff5f5"),
		Muted:      lipgloss.Color("#8b6b8c"),
		Card:       lipgloss.Color("#fff5f5"),
		CardText:   lipgloss.Color("#2d1b2e"),
		NavSolid:   lipgloss.Color("#fff5f5"),
		NavText:    lipgloss.Color("#2d1b2e"),
	}

	Themes = []Theme{
		ThemeSavibe,
		ThemeNoir,
		ThemePastel,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, and whether it exists.
func GetTheme(name string) (Theme, bool) {
	for _, t := range Themes {
		if t.Name == name {
			return t, true
		}
	}
	return ThemeSavibe, false
}

// NextTheme returns the theme after t, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
