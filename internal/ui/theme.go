package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/ducktail/internal/classify"
	"github.com/five82/ducktail/internal/engine"
)

// Theme defines the palette for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string
	Surface    string
	FocusBg    string

	// Border colors
	Border      string
	BorderFocus string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string
	Debug   string
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	// Text
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style

	// Components
	Header lipgloss.Style
	Footer lipgloss.Style
	Logo   lipgloss.Style
	Badge  lipgloss.Style

	// Log markup classes
	classes map[string]lipgloss.Style
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	fg := func(c string) lipgloss.Style { return lipgloss.NewStyle().Foreground(lipgloss.Color(c)) }

	return Styles{
		Text:        fg(t.Text),
		MutedText:   fg(t.Muted),
		FaintText:   fg(t.Faint),
		AccentText:  fg(t.Accent),
		SuccessText: fg(t.Success).Bold(true),
		WarningText: fg(t.Warning),
		DangerText:  fg(t.Danger).Bold(true),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)).
			Bold(true),

		Badge: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Warning)).
			Foreground(lipgloss.Color(t.Background)).
			Bold(true).
			Padding(0, 1),

		classes: map[string]lipgloss.Style{
			classify.SeverityError.Class(): fg(t.Danger).Bold(true),
			classify.SeverityWarn.Class():  fg(t.Warning).Bold(true),
			classify.SeverityInfo.Class():  fg(t.Success),
			classify.SeverityDebug.Class(): fg(t.Debug),
			classify.AddressClass:          fg(t.Info).Underline(true),
			engine.HighlightClass: lipgloss.NewStyle().
				Background(lipgloss.Color(t.Warning)).
				Foreground(lipgloss.Color(t.Background)).
				Bold(true),
		},
	}
}

// forClasses resolves the style for text nested inside the given class
// stack, outermost first. Inner classes take precedence.
func (s Styles) forClasses(stack []string) lipgloss.Style {
	style := lipgloss.NewStyle()
	for i := len(stack) - 1; i >= 0; i-- {
		if cs, ok := s.classes[stack[i]]; ok {
			style = style.Inherit(cs)
		}
	}
	return style.Inherit(s.Text)
}

// Theme definitions

var themes = map[string]Theme{
	"Nightfox": nightfoxTheme(),
	"Kanagawa": kanagawaTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Nightfox", "Kanagawa", "Slate"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return nightfoxTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func nightfoxTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name:        "Nightfox",
		Background:  "#131a24", // bg0
		Surface:     "#192330", // bg1
		FocusBg:     "#29394f", // bg3
		Border:      "#39506d", // bg4
		BorderFocus: "#719cd6", // blue
		Text:        "#cdcecf", // fg1
		Muted:       "#738091", // comment
		Faint:       "#71839b", // fg3
		Accent:      "#719cd6", // blue
		Success:     "#81b29a", // green
		Warning:     "#dbc074", // yellow
		Danger:      "#c94f6d", // red
		Info:        "#63cdcf", // cyan
		Debug:       "#9d79d6", // magenta
	}
}

func kanagawaTheme() Theme {
	// Kanagawa palette: https://github.com/rebelot/kanagawa.nvim
	return Theme{
		Name:        "Kanagawa",
		Background:  "#16161D", // sumiInk0
		Surface:     "#1F1F28", // sumiInk3
		FocusBg:     "#2A2A37", // sumiInk4
		Border:      "#54546D", // sumiInk6
		BorderFocus: "#7E9CD8", // crystalBlue
		Text:        "#DCD7BA", // fujiWhite
		Muted:       "#C8C093", // oldWhite
		Faint:       "#727169", // fujiGray
		Accent:      "#7E9CD8", // crystalBlue
		Success:     "#98BB6C", // springGreen
		Warning:     "#E6C384", // carpYellow
		Danger:      "#E46876", // waveRed
		Info:        "#7FB4CA", // springBlue
		Debug:       "#957FB8", // oniViolet
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name:        "Slate",
		Background:  "#020617", // slate-950
		Surface:     "#0f172a", // slate-900
		FocusBg:     "#283548",
		Border:      "#334155", // slate-700
		BorderFocus: "#38bdf8", // sky-400
		Text:        "#f1f5f9", // slate-100
		Muted:       "#94a3b8", // slate-400
		Faint:       "#64748b", // slate-500
		Accent:      "#38bdf8", // sky-400
		Success:     "#22c55e", // green-500
		Warning:     "#f59e0b", // amber-500
		Danger:      "#ef4444", // red-500
		Info:        "#06b6d4", // cyan-500
		Debug:       "#a78bfa", // violet-400
	}
}
