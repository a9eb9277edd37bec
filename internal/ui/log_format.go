package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"github.com/five82/uetail/internal/logline"
	"github.com/five82/uetail/internal/view"
)

// truncationTail marks a line cut off in no-wrap mode.
const truncationTail = "..."

// plainLine returns the unstyled text of a rendered line: optional timestamp
// prefix, category token, then the display text.
func plainLine(l logline.LogLine, showTimestamp bool) string {
	var b strings.Builder
	if showTimestamp {
		b.WriteString(view.TimestampPrefix(l))
	}
	if label := view.CategoryLabel(l); label != "" {
		b.WriteString(label)
		b.WriteString(" ")
	}
	b.WriteString(l.Display())
	return b.String()
}

// layoutLine splits a line into screen rows of at most width cells. With
// wrap off the line is a single row ending in "..." when cut.
func layoutLine(l logline.LogLine, width int, showTimestamp, wrapLines bool) []string {
	text := plainLine(l, showTimestamp)
	if width <= 0 {
		return []string{""}
	}
	if !wrapLines {
		return []string{ansi.Truncate(text, width, truncationTail)}
	}
	wrapped := wrap.String(wordwrap.String(text, width), width)
	rows := strings.Split(wrapped, "\n")
	for i, r := range rows {
		rows[i] = strings.TrimRight(r, " ")
	}
	return rows
}

// styleRow colors one screen row of l. The first row carries the timestamp
// and the underlined category token.
func styleRow(row string, l logline.LogLine, first, showTimestamp bool, styles Styles) string {
	body := styles.SeverityStyle(l.Severity)
	if !first {
		return body.Render(row)
	}

	var b strings.Builder
	rest := row
	if showTimestamp {
		if prefix := view.TimestampPrefix(l); prefix != "" && strings.HasPrefix(rest, prefix) {
			b.WriteString(styles.Timestamp.Render(prefix))
			rest = rest[len(prefix):]
		}
	}
	if label := view.CategoryLabel(l); label != "" && strings.HasPrefix(rest, label) {
		b.WriteString(body.Underline(true).Render(label))
		rest = rest[len(label):]
	}
	if rest != "" {
		b.WriteString(body.Render(rest))
	}
	return b.String()
}

// rowSplitter returns the row layout used to render and hit-test the body.
func rowSplitter(width int, showTimestamp, wrapLines bool) view.SplitFunc {
	return func(l logline.LogLine) []string {
		return layoutLine(l, width, showTimestamp, wrapLines)
	}
}

// bodyRows lays out the displayed lines into exactly height styled rows,
// scrolled back by scroll lines.
func bodyRows(lines []logline.LogLine, width, height, scroll int, showTimestamp, wrapLines bool, styles Styles) []string {
	if height <= 0 {
		return nil
	}
	rows := make([]string, 0, height)
	for _, r := range view.Layout(lines, height, scroll, rowSplitter(width, showTimestamp, wrapLines)) {
		rows = append(rows, styleRow(r.Text, lines[r.Line], r.First, showTimestamp, styles))
	}
	for len(rows) < height {
		rows = append(rows, "")
	}
	return rows
}
