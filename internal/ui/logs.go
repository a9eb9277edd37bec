package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/uetail/internal/view"
)

// renderLogs renders the bordered log body.
func (m Model) renderLogs() string {
	vp := bodyViewport(m.width, m.height)
	styles := m.theme.Styles()

	lines := m.engine.Filtered()
	scroll := m.engine.Cursor.ScrollFromBottom
	rows := bodyRows(lines, vp.ContentWidth(), vp.ContentHeight(), scroll, m.prefs.ShowTimestamp, m.prefs.WrapLines, styles)
	if start, end := view.Window(len(lines), vp.ContentHeight(), scroll); start == end && len(rows) > 0 {
		rows[0] = m.emptyMessage(styles)
	}
	return m.renderBox("Logs", rows, vp.Width, vp.Height)
}

// emptyMessage is shown in place of the first row while nothing is visible.
func (m Model) emptyMessage(styles Styles) string {
	if m.engine.Cursor.Filter != "" && m.engine.Lines.Len() > 0 {
		return styles.MutedText.Render("No lines in category " + m.engine.Cursor.Filter)
	}
	if m.waiting {
		return styles.MutedText.Render(m.spinner.View() + " Waiting for log file")
	}
	return styles.MutedText.Render("Waiting for new lines")
}

// renderBox draws rows inside a rounded border with title set into the top
// edge. Rows are clipped or padded to the inner width.
func (m Model) renderBox(title string, rows []string, width, height int) string {
	border := lipgloss.RoundedBorder()
	edge := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Border))
	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent)).Bold(true)

	inner := max(width-2, 0)

	var b strings.Builder

	label := " " + title + " "
	fill := inner - 1 - lipgloss.Width(label)
	if fill < 0 {
		label = ""
		fill = inner
	}
	b.WriteString(edge.Render(border.TopLeft))
	if label != "" {
		b.WriteString(edge.Render(border.Top))
		b.WriteString(titleStyle.Render(label))
	}
	b.WriteString(edge.Render(strings.Repeat(border.Top, fill)))
	b.WriteString(edge.Render(border.TopRight))
	b.WriteString("\n")

	for i := 0; i < max(height-2, 0); i++ {
		row := ""
		if i < len(rows) {
			row = ansi.Truncate(rows[i], inner, "")
		}
		pad := inner - lipgloss.Width(row)
		b.WriteString(edge.Render(border.Left))
		b.WriteString(row)
		if pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
		b.WriteString(edge.Render(border.Right))
		b.WriteString("\n")
	}

	b.WriteString(edge.Render(border.BottomLeft))
	b.WriteString(edge.Render(strings.Repeat(border.Bottom, inner)))
	b.WriteString(edge.Render(border.BottomRight))
	return b.String()
}
