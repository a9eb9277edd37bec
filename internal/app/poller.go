package app

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/five82/uetail/internal/config"
	"github.com/five82/uetail/internal/state"
	"github.com/five82/uetail/internal/target"
)

const (
	defaultDiscoveryInterval = 3 * time.Second
	maxBackoff               = 30 * time.Second
)

// Sources describe where the target list comes from.
type Sources struct {
	Config   config.Config
	Discover bool
	Lister   target.ProcessLister // nil uses target.ListProcesses
}

// Poller refreshes the target list in the background while active.
type Poller struct {
	store    *state.Store
	src      Sources
	interval time.Duration
	logger   *slog.Logger

	active atomic.Bool
	kick   chan struct{}
}

// StartPoller launches a background goroutine that refreshes the store at a
// fixed cadence, backing off while refreshes fail. It returns immediately
// with the poller active.
func StartPoller(ctx context.Context, store *state.Store, src Sources, interval time.Duration, logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = defaultDiscoveryInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	p := &Poller{
		store:    store,
		src:      src,
		interval: interval,
		logger:   logger,
		kick:     make(chan struct{}, 1),
	}
	p.active.Store(true)

	go func() {
		timer := time.NewTimer(0)
		defer timer.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			case <-p.kick:
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
			}

			failures := 0
			if p.active.Load() {
				failures = refresh(ctx, store, src, logger)
			}
			timer.Reset(calculateBackoff(failures, interval))
		}
	}()
	return p
}

// SetActive pauses or resumes refreshing. Resuming triggers an immediate
// refresh.
func (p *Poller) SetActive(active bool) {
	if p.active.Swap(active) == active || !active {
		return
	}
	select {
	case p.kick <- struct{}{}:
	default:
	}
}

// refresh rebuilds the target list and returns the number of consecutive
// failures recorded in the store.
func refresh(ctx context.Context, store *state.Store, src Sources, logger *slog.Logger) int {
	configured, cfgErr := src.Config.Targets()
	if cfgErr != nil {
		logger.Warn("project glob expansion failed", "error", cfgErr)
	}

	var discovered []target.Target
	var discErr error
	if src.Discover {
		discovered, discErr = target.Discover(ctx, src.Lister)
		if discErr != nil {
			logger.Warn("editor discovery failed", "error", discErr)
		}
	}

	targets := target.Merge(configured, discovered)
	if targets == nil {
		targets = []target.Target{}
	}
	store.Update(targets, errors.Join(cfgErr, discErr))

	snap := store.Snapshot()
	logger.Debug("targets refreshed", "count", len(snap.Targets), "discovered", snap.Discovered())
	return snap.ConsecutiveFailures
}

// calculateBackoff doubles base for every consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
