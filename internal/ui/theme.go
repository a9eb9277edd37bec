package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/uetail/internal/logline"
	"github.com/five82/uetail/internal/target"
)

// Theme defines colors and styles for the UI.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	Surface    string // Main content panels

	// Selection list
	SelectionBg   string // Selected row background
	SelectionText string // Selected row text

	// Border colors
	Border string // Default border

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string
	Magenta string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		// Text styles
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		// Component styles
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)).
			Italic(true),

		// Target kinds
		Project: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)).
			Bold(true),

		Build: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Magenta)).
			Bold(true),

		// Log body
		LogNormal: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		LogWarning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		LogError: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)),

		Timestamp: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),
	}
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

	// Components
	Selected lipgloss.Style
	Status   lipgloss.Style

	// Target kinds
	Project lipgloss.Style
	Build   lipgloss.Style

	// Log body
	LogNormal  lipgloss.Style
	LogWarning lipgloss.Style
	LogError   lipgloss.Style
	Timestamp  lipgloss.Style
}

// SeverityStyle returns the body style for a log line severity.
func (s Styles) SeverityStyle(sev logline.Severity) lipgloss.Style {
	switch sev {
	case logline.SeverityError:
		return s.LogError
	case logline.SeverityWarning:
		return s.LogWarning
	default:
		return s.LogNormal
	}
}

// KindStyle returns the accent style for a target kind.
func (s Styles) KindStyle(kind target.Kind) lipgloss.Style {
	if kind == target.KindBuild {
		return s.Build
	}
	return s.Project
}

// WithBackground returns a copy of Styles with all text styles having the specified background.
// This ensures styled text has explicit backgrounds instead of transparent/inherit.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)

	return Styles{
		// Text styles with background
		Text:        s.Text.Background(bg),
		MutedText:   s.MutedText.Background(bg),
		FaintText:   s.FaintText.Background(bg),
		AccentText:  s.AccentText.Background(bg),
		SuccessText: s.SuccessText.Background(bg),
		WarningText: s.WarningText.Background(bg),

		// Component styles with background
		Selected: s.Selected,
		Status:   s.Status.Background(bg),

		Project: s.Project.Background(bg),
		Build:   s.Build.Background(bg),

		LogNormal:  s.LogNormal.Background(bg),
		LogWarning: s.LogWarning.Background(bg),
		LogError:   s.LogError.Background(bg),
		Timestamp:  s.Timestamp.Background(bg),
	}
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
		Name: "Nightfox",

		// Base colors
		Background: "#131a24", // bg0
		Surface:    "#192330", // bg1

		// Selection list
		SelectionBg:   "#2b3b51", // sel0
		SelectionText: "#cdcecf", // fg1

		// Border colors
		Border: "#39506d", // bg4

		// Text colors
		Text:    "#cdcecf", // fg1 (cool gray)
		Muted:   "#738091", // comment (3.3:1 contrast)
		Faint:   "#71839b", // fg3 (3.1:1 contrast)
		Accent:  "#719cd6", // blue
		Success: "#81b29a", // green
		Warning: "#dbc074", // yellow
		Danger:  "#c94f6d", // red
		Info:    "#63cdcf", // cyan
		Magenta: "#9d79d6", // magenta
	}
}

func kanagawaTheme() Theme {
	// Kanagawa palette: https://github.com/rebelot/kanagawa.nvim
	return Theme{
		Name: "Kanagawa",

		// Base colors
		Background: "#16161D", // sumiInk0
		Surface:    "#1F1F28", // sumiInk3

		// Selection list
		SelectionBg:   "#2D4F67", // waveBlue1
		SelectionText: "#DCD7BA", // fujiWhite

		// Border colors
		Border: "#54546D", // sumiInk6

		// Text colors
		Text:    "#DCD7BA", // fujiWhite (warm parchment)
		Muted:   "#C8C093", // oldWhite (7.6:1 contrast)
		Faint:   "#727169", // fujiGray (2.8:1 contrast)
		Accent:  "#7E9CD8", // crystalBlue
		Success: "#98BB6C", // springGreen
		Warning: "#E6C384", // carpYellow
		Danger:  "#E46876", // waveRed
		Info:    "#7FB4CA", // springBlue
		Magenta: "#957FB8", // oniViolet
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	// UI hierarchy from shadcn/ui theming
	return Theme{
		Name: "Slate",

		// Base colors
		Background: "#020617", // slate-950
		Surface:    "#0f172a", // slate-900

		// Selection list
		SelectionBg:   "#0284c7", // sky-600
		SelectionText: "#f8fafc", // slate-50

		// Border colors
		Border: "#334155", // slate-700

		// Text colors
		Text:    "#f1f5f9", // slate-100
		Muted:   "#94a3b8", // slate-400
		Faint:   "#64748b", // slate-500
		Accent:  "#38bdf8", // sky-400
		Success: "#22c55e", // green-500
		Warning: "#f59e0b", // amber-500
		Danger:  "#ef4444", // red-500
		Info:    "#06b6d4", // cyan-500
		Magenta: "#d946ef", // fuchsia-500
	}
}
