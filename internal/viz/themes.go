package viz

import "github.com/charmbracelet/lipgloss"

// Theme colours the canvas layers and the stats panel.
type Theme struct {
	Name   string
	Bodies lipgloss.Color
	Tree   lipgloss.Color
	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Warn   lipgloss.Color
}

var (
	ThemeNight = Theme{
		Name:   "night",
		Bodies: lipgloss.Color("#ffffff"),
		Tree:   lipgloss.Color("#3a3a66"),
		Accent: lipgloss.Color("#00ccff"),
		Text:   lipgloss.Color("#e0e0ff"),
		Muted:  lipgloss.Color("#666688"),
		Warn:   lipgloss.Color("#ffaa00"),
	}

	ThemeRetro = Theme{
		Name:   "retro",
		Bodies: lipgloss.Color("#00ff00"),
		Tree:   lipgloss.Color("#005500"),
		Accent: lipgloss.Color("#88ff88"),
		Text:   lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#007700"),
		Warn:   lipgloss.Color("#ffff00"),
	}

	ThemeSunset = Theme{
		Name:   "sunset",
		Bodies: lipgloss.Color("#feca57"),
		Tree:   lipgloss.Color("#8b6b8c"),
		Accent: lipgloss.Color("#ff6b6b"),
		Text:   lipgloss.Color("#fff5f5"),
		Muted:  lipgloss.Color("#8b6b8c"),
		Warn:   lipgloss.Color("#ff4757"),
	}

	Themes = []Theme{ThemeNight, ThemeRetro, ThemeSunset}
)

// GetTheme returns the named theme, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme returns the theme after t in Themes, wrapping around.
func NextTheme(t Theme) Theme {
	for i, candidate := range Themes {
		if candidate.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
