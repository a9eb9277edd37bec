// Package cook tracks the progress of a cook command from raw log text.
package cook

import "strings"

const (
	markerCompleted = "cook command completed"
	markerStarted   = "cook command started"

	labelCompleted = "cooked packages "
	labelRemaining = "packages remain "
	labelTotal     = "total "
)

// State is the last known cook progress.
type State struct {
	Active    bool
	Completed uint64
	Remaining uint64
	Total     uint64
}

// Ratio returns Completed/Total clamped to [0,1], or 0 when Total is unknown.
func (s State) Ratio() float64 {
	if s.Total == 0 {
		return 0
	}
	r := float64(s.Completed) / float64(s.Total)
	if r > 1 {
		return 1
	}
	return r
}

// Tracker is a small state machine fed one raw line at a time.
// Unmatched lines are no-ops.
type Tracker struct {
	state State
}

// State returns a copy of the current progress.
func (t *Tracker) State() State {
	return t.state
}

// Reset forgets all progress, used when switching targets.
func (t *Tracker) Reset() {
	t.state = State{}
}

// Observe updates the tracker from one raw log line.
func (t *Tracker) Observe(raw string) {
	lower := strings.ToLower(raw)
	if strings.Contains(lower, markerCompleted) {
		// Counters are kept so the last numbers stay visible.
		t.state.Active = false
		return
	}
	if strings.Contains(lower, markerStarted) {
		t.state = State{Active: true}
		return
	}
	completed, remaining, total, ok := ParseProgress(raw)
	if !ok {
		return
	}
	t.state = State{
		Active:    true,
		Completed: completed,
		Remaining: remaining,
		Total:     total,
	}
}

// ParseProgress extracts counters from a progress line like
//
//	LogCook: Display: Cooked packages 816 Packages Remain 4532 Total 5348
//
// ok is false unless at least one of completed or remaining was found.
// total falls back to completed+remaining when absent.
func ParseProgress(line string) (completed, remaining, total uint64, ok bool) {
	lower := strings.ToLower(line)
	completed, hasCompleted := numberAfter(lower, labelCompleted)
	remaining, hasRemaining := numberAfter(lower, labelRemaining)
	if !hasCompleted && !hasRemaining {
		return 0, 0, 0, false
	}
	total, hasTotal := numberAfter(lower, labelTotal)
	if !hasTotal || total == 0 {
		total = completed + remaining
	}
	return completed, remaining, total, true
}

// numberAfter finds label in s, skips whitespace and parses the run of ASCII
// digits that follows.
func numberAfter(s, label string) (uint64, bool) {
	idx := strings.Index(s, label)
	if idx < 0 {
		return 0, false
	}
	i := idx + len(label)
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	start := i
	var n uint64
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		d := uint64(s[i] - '0')
		if n > (^uint64(0)-d)/10 {
			return 0, false
		}
		n = n*10 + d
		i++
	}
	if i == start {
		return 0, false
	}
	return n, true
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v'
}
