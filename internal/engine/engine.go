// Package engine owns everything the consumer loop mutates: the scrollback,
// the cursor, cook progress, and the active tail session.
//
// A State is not safe for concurrent use. It is driven from a single
// goroutine (the UI update loop); tail workers reach it only through the
// session's event channel, drained by Drain.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/five82/uetail/internal/cook"
	"github.com/five82/uetail/internal/logline"
	"github.com/five82/uetail/internal/logtail"
	"github.com/five82/uetail/internal/target"
	"github.com/five82/uetail/internal/view"
)

const (
	// DefaultTickInterval is how often the consumer drains events.
	DefaultTickInterval = 100 * time.Millisecond

	// DefaultBudget is the maximum number of events applied per tick.
	DefaultBudget = 1000

	// ThrottleMessage is shown when a tick exhausts its budget.
	ThrottleMessage = "High log throughput: throttling display to keep UI responsive"
)

// Tailer is the consumer's handle on a running tail session.
type Tailer interface {
	Events() <-chan logtail.Event
	Reset() bool
	Stop() error
}

// StartFunc starts tailing path. Events must carry opts.Session.
type StartFunc func(ctx context.Context, path string, opts logtail.Options) Tailer

func startSession(ctx context.Context, path string, opts logtail.Options) Tailer {
	return logtail.Start(ctx, path, opts)
}

// Options configure a State.
type Options struct {
	Budget   int
	Capacity int
	Tail     logtail.Options
	Start    StartFunc
	Logger   *slog.Logger
}

// State is the engine. The zero value is not usable; call New.
type State struct {
	Lines  *view.Scrollback
	Cursor view.Cursor
	Status string

	cook    cook.Tracker
	budget  int
	tail    logtail.Options
	start   StartFunc
	logger  *slog.Logger
	target  target.Target
	logPath string
	session Tailer
	id      uuid.UUID
}

// New returns an idle engine with no target selected.
func New(opts Options) *State {
	if opts.Budget <= 0 {
		opts.Budget = DefaultBudget
	}
	if opts.Start == nil {
		opts.Start = startSession
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &State{
		Lines:  view.NewScrollback(opts.Capacity),
		budget: opts.Budget,
		tail:   opts.Tail,
		start:  opts.Start,
		logger: opts.Logger,
	}
}

// Select stops the current session, if any, and starts tailing t. When the
// log path cannot be derived the error is returned, shown in Status, and the
// current session is left running.
func (s *State) Select(ctx context.Context, t target.Target) error {
	path, err := t.LogPath()
	if err != nil {
		s.Status = fmt.Sprintf("Cannot open %s: %v", t.DisplayName(), err)
		s.logger.Warn("target selection failed", "key", t.Key, "error", err)
		return fmt.Errorf("select %s: %w", t.Key, err)
	}

	s.stopSession()
	s.resetView()

	s.target = t
	s.logPath = path
	s.id = uuid.New()
	opts := s.tail
	opts.Session = s.id
	opts.Logger = s.logger
	s.session = s.start(ctx, path, opts)
	s.Status = "Watching: " + path

	s.logger.Info("target selected", "key", t.Key, "kind", t.Kind, "path", path, "session", s.id)
	return nil
}

// Deselect stops the session and clears the view, filter and status.
func (s *State) Deselect() {
	s.stopSession()
	s.resetView()
	s.target = target.Target{}
	s.logPath = ""
	s.Status = ""
}

// Close stops the active session.
func (s *State) Close() {
	s.stopSession()
}

func (s *State) stopSession() {
	if s.session == nil {
		return
	}
	if err := s.session.Stop(); err != nil {
		s.logger.Warn("tail session stop failed", "session", s.id, "error", err)
	}
	s.session = nil
	s.id = uuid.Nil
}

func (s *State) resetView() {
	s.Lines.Clear()
	s.Cursor = view.Cursor{}
	s.cook.Reset()
}

// Active reports the selected target and its log path.
func (s *State) Active() (target.Target, string, bool) {
	return s.target, s.logPath, s.session != nil
}

// Progress returns the current cook progress.
func (s *State) Progress() cook.State {
	return s.cook.State()
}

// Clear empties the view and asks the worker to skip to end of file.
func (s *State) Clear() {
	if s.session != nil {
		s.session.Reset()
	}
	s.Lines.Clear()
	s.Cursor.ScrollFromBottom = 0
}

// Scroll moves delta lines back in history; negative moves toward the tail.
func (s *State) Scroll(delta int) {
	s.Cursor.Scroll(delta, s.Lines.Len())
}

// ScrollTop jumps to the oldest line.
func (s *State) ScrollTop() {
	s.Cursor.ScrollFromBottom = s.Lines.Len()
}

// ScrollBottom pins the view to the live tail.
func (s *State) ScrollBottom() {
	s.Cursor.ScrollFromBottom = 0
}

// SetFilter restricts the view to category. An empty category clears it.
func (s *State) SetFilter(category string) {
	if category == "" {
		s.Cursor.ClearFilter()
		return
	}
	s.Cursor.SetFilter(category)
}

// Click applies a mouse click on the log body laid out by split.
func (s *State) Click(row, col int, vp view.Viewport, showTimestamp bool, split view.SplitFunc) bool {
	return s.Cursor.Click(s.Lines.Lines(), row, col, vp, showTimestamp, split)
}

// Filtered returns the lines matching the current filter.
func (s *State) Filtered() []logline.LogLine {
	return view.ApplyFilter(s.Lines.Lines(), s.Cursor.Filter)
}

// Visible returns the lines shown in a viewport of height rows.
func (s *State) Visible(height int) []logline.LogLine {
	return view.VisibleSlice(s.Filtered(), height, s.Cursor.ScrollFromBottom)
}

// DrainResult summarizes one Drain call.
type DrainResult struct {
	Applied   int
	Throttled bool
}

// Drain applies up to the budget of pending events without blocking.
func (s *State) Drain() DrainResult {
	var res DrainResult
	if s.session == nil {
		return res
	}
	events := s.session.Events()
	for res.Applied < s.budget {
		select {
		case ev, ok := <-events:
			if !ok {
				return res
			}
			s.Apply(ev)
			res.Applied++
		default:
			return res
		}
	}
	res.Throttled = true
	s.Status = ThrottleMessage
	s.logger.Debug("event budget exhausted", "budget", s.budget, "pending", len(events))
	return res
}

// Apply folds one event into the state. Events from a retired session are
// ignored.
func (s *State) Apply(ev logtail.Event) {
	if ev.Session != s.id {
		return
	}
	switch ev.Kind {
	case logtail.EventLine:
		s.cook.Observe(ev.Line.Raw)
		s.Cursor.Evicted(s.Lines.Push(ev.Line))
	case logtail.EventError:
		s.Status = ev.Message
	case logtail.EventTick:
	}
}
