package logtail

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/five82/uetail/internal/logline"
)

const (
	// DefaultPollInterval is how often a worker stats its file.
	DefaultPollInterval = 150 * time.Millisecond

	// readChunk bounds a single read; larger backlogs are read in several
	// chunks within the same interval.
	readChunk = 1 << 20
)

// FileState is the subset of file metadata the worker tracks.
type FileState struct {
	Size       int64
	ModTime    time.Time
	Created    time.Time
	HasCreated bool
}

// StatFunc returns the current state of the file at path.
type StatFunc func(path string) (FileState, error)

// OpenFunc opens the file at path for reading.
type OpenFunc func(path string) (io.ReadSeekCloser, error)

// StatFile is the default StatFunc, backed by os.Stat plus a best-effort
// creation time lookup.
func StatFile(path string) (FileState, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return FileState{}, err
	}
	created, ok := creationTime(path, fi)
	return FileState{
		Size:       fi.Size(),
		ModTime:    fi.ModTime(),
		Created:    created,
		HasCreated: ok,
	}, nil
}

func openFile(path string) (io.ReadSeekCloser, error) {
	return os.Open(path)
}

// Worker tails one file. It is owned by a single goroutine; all methods
// other than Run are meant for that goroutine or for tests.
type Worker struct {
	path     string
	session  uuid.UUID
	interval time.Duration
	stat     StatFunc
	open     OpenFunc
	logger   *slog.Logger

	offset  int64
	decoder Decoder

	lastCreated  time.Time
	hasCreated   bool
	lastModified time.Time
	hasModified  bool

	lastErr string
}

// NewWorker returns a worker for path starting at offset.
func NewWorker(path string, offset int64, opts Options) *Worker {
	opts = opts.withDefaults()
	return &Worker{
		path:     path,
		session:  opts.Session,
		interval: opts.PollInterval,
		stat:     opts.Stat,
		open:     opts.Open,
		logger:   opts.Logger.With("path", path),
		offset:   offset,
	}
}

// Offset returns the number of bytes already consumed.
func (w *Worker) Offset() int64 {
	return w.offset
}

// Apply executes a control command.
func (w *Worker) Apply(cmd Command) {
	switch cmd {
	case CommandReset:
		if st, err := w.stat(w.path); err == nil {
			w.offset = st.Size
		}
		w.decoder.Reset()
		w.logger.Debug("tail reset", "offset", w.offset)
	}
}

// Poll runs one interval: rotation checks, then reads everything appended
// since the last call. emit is called for each completed line and returns
// false to abort early. Transient I/O errors are returned; the worker state
// stays consistent so the next Poll retries.
func (w *Worker) Poll(emit func(logline.LogLine) bool) error {
	st, err := w.stat(w.path)
	if err != nil {
		w.hasCreated = false
		w.hasModified = false
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat log: %w", err)
	}

	recreated := w.hasCreated && st.HasCreated && !st.Created.Equal(w.lastCreated)
	backwards := w.hasModified && !st.ModTime.IsZero() && st.ModTime.Before(w.lastModified)
	if recreated || backwards {
		w.logger.Info("log file replaced", "recreated", recreated, "mtime_backwards", backwards)
		w.offset = 0
		w.decoder.Reset()
	}
	if st.HasCreated {
		w.lastCreated, w.hasCreated = st.Created, true
	}
	if !st.ModTime.IsZero() {
		w.lastModified, w.hasModified = st.ModTime, true
	}

	if st.Size < w.offset {
		w.logger.Info("log file truncated", "size", st.Size, "offset", w.offset)
		w.offset = 0
		w.decoder.Reset()
	}
	if st.Size == w.offset {
		return nil
	}
	return w.read(st.Size, emit)
}

func (w *Worker) read(size int64, emit func(logline.LogLine) bool) error {
	f, err := w.open(w.path)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Seek(w.offset, io.SeekStart); err != nil {
		return fmt.Errorf("seek log: %w", err)
	}

	remaining := size - w.offset
	buf := make([]byte, min(remaining, readChunk))
	for remaining > 0 {
		want := min(remaining, int64(len(buf)))
		n, err := io.ReadFull(f, buf[:want])
		if n > 0 {
			w.offset += int64(n)
			remaining -= int64(n)
			for _, text := range w.decoder.Feed(buf[:n]) {
				if !emit(logline.Parse(text)) {
					return nil
				}
			}
		}
		if err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
				// Shrunk between stat and read; the next Poll sees it.
				return nil
			}
			return fmt.Errorf("read log: %w", err)
		}
	}
	return nil
}

// Run polls until ctx is cancelled or cmds is closed. Lines are delivered on
// out. wake may be nil; a receive on it triggers an early poll.
func (w *Worker) Run(ctx context.Context, cmds <-chan Command, wake <-chan struct{}, out chan<- Event) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Debug("tail worker started", "session", w.session, "offset", w.offset)
	defer w.logger.Debug("tail worker stopped", "session", w.session)

	if !w.send(ctx, out, Event{Kind: EventTick}) {
		return nil
	}

	for {
		select {
		case cmd, ok := <-cmds:
			if !ok {
				return nil
			}
			w.Apply(cmd)
		default:
		}

		cancelled := false
		err := w.Poll(func(line logline.LogLine) bool {
			if !w.send(ctx, out, Event{Kind: EventLine, Line: line}) {
				cancelled = true
				return false
			}
			return true
		})
		if cancelled {
			return nil
		}
		if !w.reportError(ctx, out, err) {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		case <-wake:
		}
	}
}

// reportError surfaces a changed error state once instead of every interval.
func (w *Worker) reportError(ctx context.Context, out chan<- Event, err error) bool {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	if msg == w.lastErr {
		return true
	}
	w.lastErr = msg
	if msg == "" {
		return true
	}
	w.logger.Warn("tail read failed", "error", err)
	return w.send(ctx, out, Event{Kind: EventError, Message: msg})
}

func (w *Worker) send(ctx context.Context, out chan<- Event, ev Event) bool {
	ev.Session = w.session
	select {
	case out <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
