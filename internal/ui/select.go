package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/uetail/internal/target"
)

const selectTitle = "Select target (Enter) | Quit: Q"

// handleSelectKey processes keyboard input on the target list.
func (m Model) handleSelectKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		m.enterView()
	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveSelection(-pageStep)
	case key.Matches(msg, m.keys.PageDown):
		m.moveSelection(pageStep)
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selected = max(len(m.targets)-1, 0)
	}
	return m, nil
}

func (m *Model) moveSelection(delta int) {
	m.selected += delta
	m.clampSelection()
}

// targetLabel is the kind tag shown before a target name.
func targetLabel(t target.Target) string {
	if t.Kind == target.KindBuild {
		return " [Build]   "
	}
	return " [Project] "
}

// listWindow returns the first index to draw so that selected stays within
// a list of height rows.
func listWindow(total, height, selected int) int {
	if height <= 0 || total <= height {
		return 0
	}
	start := selected - height/2
	return max(0, min(start, total-height))
}

// renderSelect renders the target list.
func (m Model) renderSelect() string {
	styles := m.theme.Styles()
	vp := bodyViewport(m.width, m.height)
	height := vp.ContentHeight()
	width := vp.ContentWidth()

	rows := make([]string, 0, height)
	if len(m.targets) == 0 {
		rows = append(rows, styles.MutedText.Render("No targets. Add projects to projects.toml or start an editor."))
	}

	start := listWindow(len(m.targets), height, m.selected)
	for i := start; i < len(m.targets) && len(rows) < height; i++ {
		rows = append(rows, m.renderTarget(m.targets[i], i == m.selected, width, styles))
	}

	header := lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Bold(true).
		Width(m.width).
		MaxWidth(m.width).
		Render(" uetail")

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(m.renderBox(selectTitle, rows, vp.Width, vp.Height))
	b.WriteString("\n")
	b.WriteString(m.renderFooter(m.status, m.keys.selectHelp()))
	return b.String()
}

// renderTarget renders one list row: kind tag, name, discovered marker, path.
func (m Model) renderTarget(t target.Target, selected bool, width int, styles Styles) string {
	kind := styles.KindStyle(t.Kind)
	name := styles.Text
	path := styles.FaintText
	if selected {
		sel := styles.Selected
		kind = kind.Background(sel.GetBackground())
		name = sel.Bold(true)
		path = path.Background(sel.GetBackground())
	}

	text := kind.Render(targetLabel(t)) + name.Render(t.DisplayName())
	if t.Discovered {
		text += kind.Render("  [discovered]")
	}

	remaining := width - lipgloss.Width(text) - 2
	if remaining > 8 && t.Path != "" {
		text += path.Render("  " + truncateMiddle(t.Path, remaining))
	}
	if selected {
		text = lipgloss.NewStyle().Background(styles.Selected.GetBackground()).Width(width).Render(text)
	}
	return text
}
