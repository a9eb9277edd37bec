package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/uetail/internal/logline"
)

const sampleLine = "[2024.01.01-12.00.00:000][  0]LogRenderer: Warning: shader compile slow"

func TestPlainLine(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		showTS bool
		want   string
	}{
		{"category", sampleLine, false, "LogRenderer: Warning: shader compile slow"},
		{"timestamp", sampleLine, true, "[2024.01.01-12.00.00:000] LogRenderer: Warning: shader compile slow"},
		{"unstructured", "plain text line", true, "plain text line"},
		{"timestamp only", "[2024.01.01-12.00.00:000] hello world", false, "hello world"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := plainLine(logline.Parse(tt.raw), tt.showTS); got != tt.want {
				t.Fatalf("plainLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLayoutLine_NoWrapTruncates(t *testing.T) {
	l := logline.Parse("LogTemp: " + strings.Repeat("x", 40))
	rows := layoutLine(l, 20, false, false)
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if lipgloss.Width(rows[0]) != 20 || !strings.HasSuffix(rows[0], "...") {
		t.Fatalf("row = %q, want 20 cells ending in ...", rows[0])
	}

	short := layoutLine(logline.Parse("LogTemp: ok"), 20, false, false)
	if short[0] != "LogTemp: ok" {
		t.Fatalf("short row = %q", short[0])
	}
}

func TestLayoutLine_WrapKeepsEveryCharacter(t *testing.T) {
	l := logline.Parse("LogTemp: the quick brown fox jumps over the lazy dog " + strings.Repeat("z", 30))
	rows := layoutLine(l, 16, false, true)
	if len(rows) < 2 {
		t.Fatalf("rows = %d, want wrapping", len(rows))
	}
	for _, r := range rows {
		if w := lipgloss.Width(r); w > 16 {
			t.Fatalf("row %q is %d cells wide", r, w)
		}
	}
	joined := strings.ReplaceAll(strings.Join(rows, ""), " ", "")
	want := strings.ReplaceAll(plainLine(l, false), " ", "")
	if joined != want {
		t.Fatalf("wrapped text = %q, want %q", joined, want)
	}
}

func TestStyleRow_PreservesText(t *testing.T) {
	styles := GetTheme("Nightfox").Styles()
	l := logline.Parse(sampleLine)
	row := layoutLine(l, 200, true, false)[0]

	got := ansi.Strip(styleRow(row, l, true, true, styles))
	if got != row {
		t.Fatalf("styled row text = %q, want %q", got, row)
	}
}

func TestBodyRows_KeepsNewestAndPads(t *testing.T) {
	styles := GetTheme("Nightfox").Styles()
	lines := []logline.LogLine{
		logline.Parse("LogA: one"),
		logline.Parse("LogB: two"),
		logline.Parse("LogC: three"),
	}

	rows := bodyRows(lines, 40, 2, 0, false, true, styles)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if got := ansi.Strip(rows[1]); got != "LogC: three" {
		t.Fatalf("last row = %q", got)
	}

	rows = bodyRows(lines[:1], 40, 4, 0, false, true, styles)
	if len(rows) != 4 || rows[3] != "" {
		t.Fatalf("rows = %q, want 4 with padding", rows)
	}
}
