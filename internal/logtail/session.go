package logtail

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/five82/uetail/internal/logline"
)

// Options configure a worker or session.
type Options struct {
	Session      uuid.UUID
	PollInterval time.Duration
	Stat         StatFunc
	Open         OpenFunc
	Logger       *slog.Logger

	// Backfill replays up to this many complete lines from the end of an
	// existing file before tailing. Zero starts at end of file.
	Backfill int

	// DisableNotify skips the filesystem watcher; polling alone drives reads.
	DisableNotify bool
}

func (o Options) withDefaults() Options {
	if o.PollInterval <= 0 {
		o.PollInterval = DefaultPollInterval
	}
	if o.Stat == nil {
		o.Stat = StatFile
	}
	if o.Open == nil {
		o.Open = openFile
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Session binds one worker goroutine to one file with a private event channel
// and a private control channel. Stop cancels the worker and waits for it.
type Session struct {
	ID   uuid.UUID
	Path string

	events  chan Event
	control chan Command
	cancel  context.CancelFunc
	group   *errgroup.Group
	logger  *slog.Logger

	stopOnce sync.Once
	stopErr  error
}

// Start launches a worker for path. The worker starts at the current end of
// file, or opts.Backfill lines before it.
func Start(ctx context.Context, path string, opts Options) *Session {
	opts = opts.withDefaults()
	if opts.Session == uuid.Nil {
		opts.Session = uuid.New()
	}

	ctx, cancel := context.WithCancel(ctx)
	group, gctx := errgroup.WithContext(ctx)

	s := &Session{
		ID:      opts.Session,
		Path:    path,
		events:  make(chan Event, eventBuffer),
		control: make(chan Command, 4),
		cancel:  cancel,
		group:   group,
		logger:  opts.Logger.With("session", opts.Session, "path", path),
	}

	var wake chan struct{}
	if !opts.DisableNotify {
		wake = make(chan struct{}, 1)
		group.Go(func() error {
			return notifyWrites(gctx, path, wake, s.logger)
		})
	}

	group.Go(func() error {
		offset, backlog := startPosition(path, opts)
		w := NewWorker(path, offset, opts)
		for _, text := range backlog {
			if !w.send(gctx, s.events, Event{Kind: EventLine, Line: logline.Parse(text)}) {
				return nil
			}
		}
		return w.Run(gctx, s.control, wake, s.events)
	})

	s.logger.Info("tail session started")
	return s
}

// startPosition decides where a fresh worker begins reading.
func startPosition(path string, opts Options) (int64, []string) {
	if opts.Backfill > 0 {
		lines, offset, err := Tail(path, opts.Backfill)
		if err == nil {
			return offset, lines
		}
		opts.Logger.Warn("backfill failed", "path", path, "error", err)
	}
	st, err := opts.Stat(path)
	if err != nil {
		return 0, nil
	}
	return st.Size, nil
}

// Events returns the receive side of the event channel.
func (s *Session) Events() <-chan Event {
	return s.events
}

// Reset asks the worker to skip to end of file. It never blocks; a reset
// that cannot be queued is redundant with one already pending.
func (s *Session) Reset() bool {
	select {
	case s.control <- CommandReset:
		return true
	default:
		return false
	}
}

// Stop cancels the worker and blocks until every session goroutine has
// returned. It is safe to call more than once.
func (s *Session) Stop() error {
	s.stopOnce.Do(func() {
		s.cancel()
		err := s.group.Wait()
		if err != nil && !errors.Is(err, context.Canceled) {
			s.stopErr = err
		}
		s.logger.Info("tail session stopped")
	})
	return s.stopErr
}
