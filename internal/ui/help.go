package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// mouseHint is appended to the help overlay.
const mouseHint = "Mouse click on a category (e.g., LogRenderer:) to filter"

// renderHelp renders the help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	sections := []helpSection{
		{
			title: "Scrolling",
			items: []helpItem{
				{"Up/Down", "Scroll 1 line"},
				{"PgUp/PgDn", "Scroll 10 lines"},
				{"Home", "Oldest line"},
				{"End", "Follow tail"},
			},
		},
		{
			title: "View",
			items: []helpItem{
				{"c", "Clear"},
				{"f", "Clear filter"},
				{"t", "Toggle timestamps"},
				{"w", "Toggle wrap"},
				{"y", "Copy visible lines"},
				{"T", "Cycle theme"},
			},
		},
		{
			title: "General",
			items: []helpItem{
				{"s", "Back to target selection"},
				{"h/esc", "Close help"},
				{"q", "Quit"},
			},
		},
	}

	var b strings.Builder

	b.WriteString(styles.Text.Bold(true).Render("Commands"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 36)))
	b.WriteString("\n\n")

	for _, section := range sections {
		b.WriteString(styles.AccentText.Bold(true).Render(section.title))
		b.WriteString("\n")

		for _, item := range section.items {
			keyStyle := lipgloss.NewStyle().
				Foreground(lipgloss.Color(m.theme.Warning)).
				Width(12)
			b.WriteString(keyStyle.Render(item.key))
			b.WriteString(styles.Text.Render(item.desc))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(styles.MutedText.Italic(true).Render(mouseHint))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(min(64, max(20, m.width-4)))

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

type helpSection struct {
	title string
	items []helpItem
}

type helpItem struct {
	key  string
	desc string
}
