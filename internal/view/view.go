// Package view holds the scrollback window and the cursor that addresses it.
//
// Rendering and pointer hit-testing both go through Window, so a row on
// screen and a row under the mouse always refer to the same line.
package view

import (
	"github.com/mattn/go-runewidth"

	"github.com/five82/uetail/internal/logline"
)

// DefaultCapacity is the number of lines kept in memory.
const DefaultCapacity = 20000

// Scrollback is a capacity-capped, arrival-ordered sequence of lines.
type Scrollback struct {
	buf      []logline.LogLine
	start    int
	capacity int
}

// NewScrollback returns an empty buffer. A non-positive capacity selects
// DefaultCapacity.
func NewScrollback(capacity int) *Scrollback {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Scrollback{capacity: capacity}
}

// Push appends line and evicts the oldest lines beyond capacity. It returns
// the number of lines evicted.
func (b *Scrollback) Push(line logline.LogLine) int {
	b.buf = append(b.buf, line)
	evicted := 0
	if n := len(b.buf) - b.start; n > b.capacity {
		evicted = n - b.capacity
		// Release references held by the evicted prefix.
		for i := b.start; i < b.start+evicted; i++ {
			b.buf[i] = logline.LogLine{}
		}
		b.start += evicted
	}
	if b.start >= b.capacity {
		n := copy(b.buf, b.buf[b.start:])
		clear(b.buf[n:])
		b.buf = b.buf[:n]
		b.start = 0
	}
	return evicted
}

// Lines returns the retained lines, oldest first. The slice is only valid
// until the next Push or Clear.
func (b *Scrollback) Lines() []logline.LogLine {
	return b.buf[b.start:]
}

// Len returns the number of retained lines.
func (b *Scrollback) Len() int {
	return len(b.buf) - b.start
}

// Cap returns the capacity.
func (b *Scrollback) Cap() int {
	return b.capacity
}

// Clear drops every line.
func (b *Scrollback) Clear() {
	clear(b.buf)
	b.buf = b.buf[:0]
	b.start = 0
}

// Cursor is the viewer's position in the scrollback. ScrollFromBottom of zero
// pins the view to the live tail. An empty Filter shows every line; category
// tokens are never empty.
type Cursor struct {
	ScrollFromBottom int
	Filter           string
}

// Scroll moves the view delta lines back in history (negative moves toward
// the tail), clamped to [0, limit].
func (c *Cursor) Scroll(delta, limit int) {
	s := c.ScrollFromBottom + delta
	if s > limit {
		s = limit
	}
	if s < 0 {
		s = 0
	}
	c.ScrollFromBottom = s
}

// Evicted keeps a scrolled-back window in place after n lines were dropped
// from the front of the buffer.
func (c *Cursor) Evicted(n int) {
	if n <= 0 || c.ScrollFromBottom == 0 {
		return
	}
	c.ScrollFromBottom = max(0, c.ScrollFromBottom-n)
}

// SetFilter restricts the view to category and jumps to the tail.
func (c *Cursor) SetFilter(category string) {
	c.Filter = category
	c.ScrollFromBottom = 0
}

// ClearFilter removes the category filter.
func (c *Cursor) ClearFilter() {
	c.Filter = ""
}

// Window returns the half-open index range [start, end) shown for total lines
// in a viewport of height rows scrolled back by scroll lines.
func Window(total, height, scroll int) (start, end int) {
	end = max(0, total-scroll)
	start = max(0, end-max(0, height))
	return start, end
}

// VisibleSlice returns the lines a viewport of height rows shows.
func VisibleSlice(lines []logline.LogLine, height, scroll int) []logline.LogLine {
	start, end := Window(len(lines), height, scroll)
	return lines[start:end]
}

// ApplyFilter returns the lines whose category equals category, in order.
// An empty category returns lines unchanged.
func ApplyFilter(lines []logline.LogLine, category string) []logline.LogLine {
	if category == "" {
		return lines
	}
	out := make([]logline.LogLine, 0, len(lines)/4)
	for _, l := range lines {
		if l.HasCategory && l.Category == category {
			out = append(out, l)
		}
	}
	return out
}

// TimestampPrefix is the text rendered before a line when timestamps are
// shown. It is empty for lines without a timestamp.
func TimestampPrefix(l logline.LogLine) string {
	if !l.HasTimestamp {
		return ""
	}
	return "[" + l.Timestamp + "] "
}

// CategoryLabel is the rendered category token, colon included.
func CategoryLabel(l logline.LogLine) string {
	if !l.HasCategory {
		return ""
	}
	return l.Category + ":"
}

// CategorySpan returns the display columns [start, end) that the category
// token occupies on a rendered row.
func CategorySpan(l logline.LogLine, showTimestamp bool) (start, end int, ok bool) {
	if !l.HasCategory {
		return 0, 0, false
	}
	if showTimestamp {
		start = runewidth.StringWidth(TimestampPrefix(l))
	}
	return start, start + runewidth.StringWidth(CategoryLabel(l)), true
}

// Viewport is the bordered body rectangle in screen cells. Content starts one
// cell inside each edge.
type Viewport struct {
	X, Y          int
	Width, Height int
}

// ContentHeight is the number of rows inside the border.
func (v Viewport) ContentHeight() int {
	return max(0, v.Height-2)
}

// ContentWidth is the number of columns inside the border.
func (v Viewport) ContentWidth() int {
	return max(0, v.Width-2)
}

// contains reports whether a screen cell lies inside the border.
func (v Viewport) contains(row, col int) bool {
	return col >= v.X+1 && col < v.X+v.Width-1 &&
		row >= v.Y+1 && row < v.Y+v.Height-1
}

// Row is one screen row of the log body.
type Row struct {
	Line  int // index into the displayed lines
	First bool
	Text  string
}

// SplitFunc breaks a line into the screen rows it renders as. It must return
// at least one row. A nil SplitFunc renders every line as a single row.
type SplitFunc func(logline.LogLine) []string

// Layout returns the screen rows of a viewport height rows tall scrolled back
// by scroll lines. The lines come from Window; when they split into more rows
// than fit, the newest rows are kept.
func Layout(lines []logline.LogLine, height, scroll int, split SplitFunc) []Row {
	if height <= 0 {
		return nil
	}
	start, end := Window(len(lines), height, scroll)
	rows := make([]Row, 0, end-start)
	for i := start; i < end; i++ {
		if split == nil {
			rows = append(rows, Row{Line: i, First: true})
			continue
		}
		for j, text := range split(lines[i]) {
			rows = append(rows, Row{Line: i, First: j == 0, Text: text})
		}
	}
	if len(rows) > height {
		rows = rows[len(rows)-height:]
	}
	return rows
}

// HitTest maps a screen cell to the category token under it. lines is the
// filtered sequence being displayed and split is the row layout used to
// render it. Only the first row of a line carries its category.
func HitTest(lines []logline.LogLine, row, col int, vp Viewport, scroll int, showTimestamp bool, split SplitFunc) (string, bool) {
	if !vp.contains(row, col) {
		return "", false
	}
	rows := Layout(lines, vp.ContentHeight(), scroll, split)
	r := row - (vp.Y + 1)
	if r >= len(rows) || !rows[r].First {
		return "", false
	}
	line := lines[rows[r].Line]
	catStart, catEnd, ok := CategorySpan(line, showTimestamp)
	if !ok {
		return "", false
	}
	x := col - (vp.X + 1)
	if x < catStart || x >= catEnd {
		return "", false
	}
	return line.Category, true
}

// Click applies a left click at (row, col) to the cursor. A click on a
// category token sets the filter to that category and returns true.
func (c *Cursor) Click(lines []logline.LogLine, row, col int, vp Viewport, showTimestamp bool, split SplitFunc) bool {
	category, ok := HitTest(ApplyFilter(lines, c.Filter), row, col, vp, c.ScrollFromBottom, showTimestamp, split)
	if !ok {
		return false
	}
	c.SetFilter(category)
	return true
}
