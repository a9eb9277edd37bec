package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/five82/uetail/internal/cook"
)

// minGaugeWidth is the narrowest progress bar worth drawing.
const minGaugeWidth = 8

// renderHeader renders the one-row header: target name on the left, cook
// gauge or filter label on the right.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	leftWidth, rightWidth := splitHeader(m.width)

	t, _, _ := m.engine.Active()
	left := bg.Render(" "+t.DisplayName(), styles.KindStyle(t.Kind)) +
		bg.Render(" | H -> Help", styles.MutedText)

	var right string
	if p := m.engine.Progress(); p.Active {
		right = m.renderGauge(p, rightWidth, styles, bg)
	} else if f := m.engine.Cursor.Filter; f != "" {
		right = bg.Render("Filter: "+f+" (clear: F)", styles.WarningText)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		bg.FillLine(truncateStyled(left, leftWidth), leftWidth),
		lipgloss.NewStyle().Background(bg.Color()).Width(rightWidth).Align(lipgloss.Right).Render(truncateStyled(right, rightWidth)),
	)
}

// gaugeLabel is the textual cook progress.
func gaugeLabel(p cook.State) string {
	if p.Total == 0 {
		return "COOK in progress"
	}
	pct := int(p.Ratio()*100 + 0.5)
	return fmt.Sprintf("COOK %3d%%  (%s / %s | remain %s)",
		pct,
		humanize.Comma(int64(p.Completed)),
		humanize.Comma(int64(p.Total)),
		humanize.Comma(int64(p.Remaining)))
}

// renderGauge draws the cook label, followed by a bar when there is room.
func (m Model) renderGauge(p cook.State, width int, styles Styles, bg BgStyle) string {
	label := gaugeLabel(p)
	out := bg.Render(label, styles.SuccessText)
	if p.Total == 0 {
		return out
	}
	barWidth := width - lipgloss.Width(label) - 2
	if barWidth < minGaugeWidth {
		return out
	}
	g := m.gauge
	g.Width = barWidth
	return g.ViewAs(p.Ratio()) + bg.Space() + out + bg.Space()
}
