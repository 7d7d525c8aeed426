package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name    string
	Points  lipgloss.Color
	Lines   lipgloss.Color
	Preview lipgloss.Color
	Cursor  lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
}

// Available themes
var (
	ThemeNeon = Theme{
		Name:    "neon",
		Points:  lipgloss.Color("#00f3ff"), // cyan
		Lines:   lipgloss.Color("#bc13fe"), // purple
		Preview: lipgloss.Color("#ffffff"),
		Cursor:  lipgloss.Color("#00f3ff"),
		Accent:  lipgloss.Color("#bc13fe"),
		Text:    lipgloss.Color("#e0e0e0"),
		Muted:   lipgloss.Color("#666688"),
	}

	ThemeRetroGreen = Theme{
		Name:    "retro",
		Points:  lipgloss.Color("#00ff00"), // Green phosphor
		Lines:   lipgloss.Color("#005500"),
		Preview: lipgloss.Color("#88ff88"),
		Cursor:  lipgloss.Color("#88ff88"),
		Accent:  lipgloss.Color("#00cc00"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Points:  lipgloss.Color("#ffffff"),
		Lines:   lipgloss.Color("#555555"),
		Preview: lipgloss.Color("#0088ff"),
		Cursor:  lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#0088ff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
	}

	ThemeOcean = Theme{
		Name:    "ocean",
		Points:  lipgloss.Color("#00a8cc"),
		Lines:   lipgloss.Color("#0077be"), // Ocean blue
		Preview: lipgloss.Color("#ffd700"),
		Cursor:  lipgloss.Color("#ffd700"),
		Accent:  lipgloss.Color("#00a8cc"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#4488aa"),
	}

	ThemeSunset = Theme{
		Name:    "sunset",
		Points:  lipgloss.Color("#feca57"),
		Lines:   lipgloss.Color("#ff6b6b"), // Coral
		Preview: lipgloss.Color("#ff9ff3"),
		Cursor:  lipgloss.Color("#ff9ff3"),
		Accent:  lipgloss.Color("#ff6b6b"),
		Text:    lipgloss.Color("#fff5f5"),
		Muted:   lipgloss.Color("#8b6b8c"),
	}

	// All available themes
	Themes = []Theme{
		ThemeNeon,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to neon.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeNeon
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
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
