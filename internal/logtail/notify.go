package logtail

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// notifyWrites watches the directory containing path and signals wake when
// the file is written, created, or renamed. Polling stays authoritative; this
// only shortens the delay before the next poll. A missing directory or a
// watcher failure is logged and leaves the worker on polling alone.
func notifyWrites(ctx context.Context, path string, wake chan<- struct{}, logger *slog.Logger) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Debug("file watcher unavailable", "error", err)
		return nil
	}
	defer func() { _ = fsw.Close() }()

	target := filepath.Clean(path)
	if err := fsw.Add(filepath.Dir(target)); err != nil {
		logger.Debug("cannot watch log directory", "error", err)
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
				continue
			}
			select {
			case wake <- struct{}{}:
			default:
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Debug("file watcher error", "error", err)
		}
	}
}
