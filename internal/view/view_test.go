package view

import (
	"fmt"
	"testing"

	"github.com/five82/uetail/internal/logline"
)

func numbered(n int) []logline.LogLine {
	out := make([]logline.LogLine, n)
	for i := range out {
		out[i] = logline.Parse(fmt.Sprintf("line %d", i))
	}
	return out
}

func TestScrollback_CapacityKeepsLastLines(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		pushes   int
	}{
		{"under capacity", 10, 7},
		{"exactly capacity", 10, 10},
		{"one over", 10, 11},
		{"many times over", 10, 95},
		{"capacity one", 1, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewScrollback(tt.capacity)
			totalEvicted := 0
			for i, l := range numbered(tt.pushes) {
				totalEvicted += b.Push(l)
				if b.Len() > tt.capacity {
					t.Fatalf("after push %d: len %d exceeds capacity %d", i, b.Len(), tt.capacity)
				}
			}

			wantLen := min(tt.pushes, tt.capacity)
			if b.Len() != wantLen {
				t.Fatalf("Len() = %d, want %d", b.Len(), wantLen)
			}
			if totalEvicted != tt.pushes-wantLen {
				t.Fatalf("evicted %d, want %d", totalEvicted, tt.pushes-wantLen)
			}
			for i, l := range b.Lines() {
				want := fmt.Sprintf("line %d", tt.pushes-wantLen+i)
				if l.Raw != want {
					t.Fatalf("Lines()[%d] = %q, want %q", i, l.Raw, want)
				}
			}
		})
	}
}

func TestScrollback_DefaultCapacity(t *testing.T) {
	if got := NewScrollback(0).Cap(); got != DefaultCapacity {
		t.Fatalf("Cap() = %d, want %d", got, DefaultCapacity)
	}
}

func TestScrollback_Clear(t *testing.T) {
	b := NewScrollback(3)
	for _, l := range numbered(5) {
		b.Push(l)
	}
	b.Clear()
	if b.Len() != 0 {
		t.Fatalf("Len() after Clear = %d", b.Len())
	}
	b.Push(logline.Parse("again"))
	if got := b.Lines(); len(got) != 1 || got[0].Raw != "again" {
		t.Fatalf("Lines() after Clear+Push = %v", got)
	}
}

func TestCursor_EvictionCoupling(t *testing.T) {
	tests := []struct {
		name    string
		scroll  int
		evicted int
		want    int
	}{
		{"pinned stays pinned", 0, 3, 0},
		{"scrolled back shifts", 10, 3, 7},
		{"never negative", 2, 5, 0},
		{"no eviction", 4, 0, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Cursor{ScrollFromBottom: tt.scroll}
			c.Evicted(tt.evicted)
			if c.ScrollFromBottom != tt.want {
				t.Fatalf("ScrollFromBottom = %d, want %d", c.ScrollFromBottom, tt.want)
			}
		})
	}
}

func TestCursor_Scroll(t *testing.T) {
	tests := []struct {
		name   string
		start  int
		delta  int
		limit  int
		expect int
	}{
		{"up", 0, 1, 50, 1},
		{"page up", 5, 10, 50, 15},
		{"clamped to limit", 45, 10, 50, 50},
		{"down", 10, -1, 50, 9},
		{"clamped to zero", 3, -10, 50, 0},
		{"empty buffer", 0, 10, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Cursor{ScrollFromBottom: tt.start}
			c.Scroll(tt.delta, tt.limit)
			if c.ScrollFromBottom != tt.expect {
				t.Fatalf("ScrollFromBottom = %d, want %d", c.ScrollFromBottom, tt.expect)
			}
		})
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name                  string
		total, height, scroll int
		start, end            int
	}{
		{"pinned", 100, 10, 0, 90, 100},
		{"scrolled", 100, 10, 5, 85, 95},
		{"fewer lines than rows", 4, 10, 0, 0, 4},
		{"scrolled past top", 100, 10, 100, 0, 0},
		{"scroll beyond total", 10, 5, 50, 0, 0},
		{"empty", 0, 10, 0, 0, 0},
		{"zero height", 10, 0, 0, 10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := Window(tt.total, tt.height, tt.scroll)
			if start != tt.start || end != tt.end {
				t.Fatalf("Window(%d, %d, %d) = [%d, %d), want [%d, %d)",
					tt.total, tt.height, tt.scroll, start, end, tt.start, tt.end)
			}
		})
	}
}

func TestApplyFilter(t *testing.T) {
	lines := []logline.LogLine{
		logline.Parse("LogRenderer: a"),
		logline.Parse("LogCook: b"),
		logline.Parse("no category here"),
		logline.Parse("LogRenderer: c"),
	}

	got := ApplyFilter(lines, "LogRenderer")
	if len(got) != 2 || got[0].Message != "a" || got[1].Message != "c" {
		t.Fatalf("ApplyFilter(LogRenderer) = %v", got)
	}
	if got := ApplyFilter(lines, ""); len(got) != len(lines) {
		t.Fatalf("ApplyFilter(\"\") returned %d lines, want %d", len(got), len(lines))
	}
	if got := ApplyFilter(lines, "LogMissing"); len(got) != 0 {
		t.Fatalf("ApplyFilter(LogMissing) = %v", got)
	}
}

func TestCategorySpan(t *testing.T) {
	line := logline.Parse("[2024.01.01-12.00.00:000][  0]LogRenderer: Warning: slow")
	tsLen := len("[2024.01.01-12.00.00:000] ")

	start, end, ok := CategorySpan(line, true)
	if !ok || start != tsLen || end != tsLen+len("LogRenderer:") {
		t.Fatalf("CategorySpan(shown) = %d, %d, %v", start, end, ok)
	}
	start, end, ok = CategorySpan(line, false)
	if !ok || start != 0 || end != len("LogRenderer:") {
		t.Fatalf("CategorySpan(hidden) = %d, %d, %v", start, end, ok)
	}
	if _, _, ok := CategorySpan(logline.Parse("plain text"), true); ok {
		t.Fatalf("CategorySpan on line without category reported ok")
	}
}

func TestHitTest(t *testing.T) {
	lines := []logline.LogLine{
		logline.Parse("[ts1]LogInit: first"),
		logline.Parse("[ts2]LogCook: second"),
		logline.Parse("plain third"),
	}
	// Body at (0, 1), 40 wide, 5 tall: three content rows at screen rows 2..4.
	vp := Viewport{X: 0, Y: 1, Width: 40, Height: 5}
	tsLen := len("[ts2] ")

	tests := []struct {
		name     string
		row, col int
		showTS   bool
		want     string
		wantHit  bool
	}{
		{"first char of category", 3, 1, false, "LogCook", true},
		{"colon of category", 3, len("LogCook:"), false, "LogCook", true},
		{"just past colon", 3, 1 + len("LogCook:"), false, "", false},
		{"timestamp shown shifts span", 3, 1 + tsLen, true, "LogCook", true},
		{"timestamp area is not category", 3, 1, true, "", false},
		{"other row", 2, 1, false, "LogInit", true},
		{"row without category", 4, 1, false, "", false},
		{"on the border", 3, 0, false, "", false},
		{"top border", 1, 3, false, "", false},
		{"below content", 5, 3, false, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := HitTest(lines, tt.row, tt.col, vp, 0, tt.showTS, nil)
			if hit != tt.wantHit || got != tt.want {
				t.Fatalf("HitTest(%d, %d) = %q, %v, want %q, %v", tt.row, tt.col, got, hit, tt.want, tt.wantHit)
			}
		})
	}
}

func TestHitTest_UsesRenderWindow(t *testing.T) {
	var lines []logline.LogLine
	for i := 0; i < 20; i++ {
		lines = append(lines, logline.Parse(fmt.Sprintf("Cat%d: message", i)))
	}
	vp := Viewport{Width: 30, Height: 6}

	for _, scroll := range []int{0, 3, 10} {
		visible := VisibleSlice(lines, vp.ContentHeight(), scroll)
		for r, want := range visible {
			got, ok := HitTest(lines, 1+r, 1, vp, scroll, false, nil)
			if !ok || got != want.Category {
				t.Fatalf("scroll %d row %d: HitTest = %q, %v, want %q", scroll, r, got, ok, want.Category)
			}
		}
	}
}

func TestCursor_Click(t *testing.T) {
	lines := []logline.LogLine{
		logline.Parse("LogInit: one"),
		logline.Parse("LogCook: two"),
	}
	vp := Viewport{Width: 40, Height: 4}

	c := Cursor{ScrollFromBottom: 1}
	// Row 1 is the first content row; scrolled back by one it shows LogInit.
	if !c.Click(lines, 1, 2, vp, false, nil) {
		t.Fatalf("click on category did not hit")
	}
	if c.Filter != "LogInit" || c.ScrollFromBottom != 0 {
		t.Fatalf("cursor after click = %+v", c)
	}

	before := c
	if c.Click(lines, 1, 20, vp, false, nil) {
		t.Fatalf("click on message reported a hit")
	}
	if c != before {
		t.Fatalf("cursor changed on miss: %+v -> %+v", before, c)
	}
}

// chunker splits the raw text of a line into rows of n bytes.
func chunker(n int) SplitFunc {
	return func(l logline.LogLine) []string {
		var rows []string
		s := l.Raw
		for len(s) > n {
			rows = append(rows, s[:n])
			s = s[n:]
		}
		return append(rows, s)
	}
}

func TestLayout(t *testing.T) {
	lines := []logline.LogLine{
		logline.Parse("LogA: short"),
		logline.Parse("LogB: 0123456789abcdefghijklmnopqrst"),
		logline.Parse("LogC: tail"),
	}

	rows := Layout(lines, 5, 0, chunker(20))
	want := []Row{
		{Line: 0, First: true, Text: "LogA: short"},
		{Line: 1, First: true, Text: "LogB: 0123456789abcd"},
		{Line: 1, First: false, Text: "efghijklmnopqrst"},
		{Line: 2, First: true, Text: "LogC: tail"},
	}
	if len(rows) != len(want) {
		t.Fatalf("Layout() = %+v, want %+v", rows, want)
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Fatalf("row %d = %+v, want %+v", i, rows[i], want[i])
		}
	}

	// Overflowing rows keep the newest ones.
	rows = Layout(lines, 2, 0, chunker(20))
	if len(rows) != 2 || rows[0].Line != 1 || rows[0].First || rows[1].Line != 2 {
		t.Fatalf("Layout() overflow = %+v", rows)
	}

	if rows := Layout(lines, 0, 0, nil); rows != nil {
		t.Fatalf("Layout() with zero height = %+v", rows)
	}
}

func TestHitTest_WrappedLine(t *testing.T) {
	lines := []logline.LogLine{
		logline.Parse("LogA: short"),
		logline.Parse("LogB: 0123456789abcdefghijklmnopqrst"),
		logline.Parse("LogC: tail"),
	}
	// Content rows are screen rows 1..5.
	vp := Viewport{Width: 30, Height: 7}

	tests := []struct {
		name    string
		split   SplitFunc
		row     int
		want    string
		wantHit bool
	}{
		{"line before wrap", chunker(20), 1, "LogA", true},
		{"first row of wrapped line", chunker(20), 2, "LogB", true},
		{"continuation row", chunker(20), 3, "", false},
		{"line after wrap", chunker(20), 4, "LogC", true},
		{"empty row below", chunker(20), 5, "", false},
		{"overflow drops head", chunker(8), 1, "", false},
		{"overflow keeps tail", chunker(8), 4, "LogC", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := HitTest(lines, tt.row, 1, vp, 0, false, tt.split)
			if hit != tt.wantHit || got != tt.want {
				t.Fatalf("HitTest(row %d) = %q, %v, want %q, %v", tt.row, got, hit, tt.want, tt.wantHit)
			}
		})
	}
}
