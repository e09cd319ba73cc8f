package viz

import "github.com/charmbracelet/lipgloss"

// Theme colours the player.
type Theme struct {
	Name    string
	Graph   lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Running lipgloss.Color
	Paused  lipgloss.Color
}

var (
	ThemeMeadow = Theme{
		Name:    "meadow",
		Graph:   lipgloss.Color("#69b3a2"),
		Accent:  lipgloss.Color("#ffd166"),
		Text:    lipgloss.Color("#f0f0f0"),
		Muted:   lipgloss.Color("#6b7d78"),
		Running: lipgloss.Color("#00ff88"),
		Paused:  lipgloss.Color("#ffaa00"),
	}

	ThemeCyberpunk = Theme{
		Name:    "cyberpunk",
		Graph:   lipgloss.Color("#ff00ff"),
		Accent:  lipgloss.Color("#00ffff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#666666"),
		Running: lipgloss.Color("#00ff00"),
		Paused:  lipgloss.Color("#ff8800"),
	}

	ThemeRetro = Theme{
		Name:    "retro",
		Graph:   lipgloss.Color("#00ff00"),
		Accent:  lipgloss.Color("#88ff88"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Running: lipgloss.Color("#88ff88"),
		Paused:  lipgloss.Color("#ffff00"),
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Graph:   lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#0088ff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Running: lipgloss.Color("#00ff00"),
		Paused:  lipgloss.Color("#ffaa00"),
	}

	Themes = []Theme{ThemeMeadow, ThemeCyberpunk, ThemeRetro, ThemeMinimal}
)

// themeIndex returns the position of name in Themes, or 0.
func themeIndex(name string) int {
	for i, t := range Themes {
		if t.Name == name {
			return i
		}
	}
	return 0
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
