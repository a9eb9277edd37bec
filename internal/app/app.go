package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/uetail/internal/config"
	"github.com/five82/uetail/internal/engine"
	"github.com/five82/uetail/internal/logging"
	"github.com/five82/uetail/internal/logtail"
	"github.com/five82/uetail/internal/prefs"
	"github.com/five82/uetail/internal/state"
	"github.com/five82/uetail/internal/ui"
)

// Options configure the application.
type Options struct {
	ConfigPath string // empty searches next to the executable, then the working directory
	PrefsPath  string // empty uses ~/.config/uetail/prefs.toml
	LogFile    string // empty uses logging.DefaultPath
	LogLevel   string

	PollInterval  time.Duration // tail worker poll cadence; zero uses the default
	TickInterval  time.Duration // UI drain cadence; zero uses the default
	DiscoverEvery time.Duration // discovery refresh cadence; zero uses the default
	NoDiscover    bool

	Budget   int // events applied per tick; zero uses the default
	Capacity int // scrollback lines; zero uses the default
	Backfill int // complete lines shown from an existing log on selection
}

// Run boots the TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	logPath := opts.LogFile
	if logPath == "" {
		logPath = logging.DefaultPath
	}
	logger, closeLog := logging.Setup(logPath, logging.ParseLevel(opts.LogLevel))
	defer func() { _ = closeLog() }()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load projects config: %w", err)
	}
	logger.Info("config loaded",
		"path", cfg.Path,
		"projects", len(cfg.Projects),
		"builds", len(cfg.Builds),
		"globs", len(cfg.ProjectGlobs))

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, err := prefs.Load(prefsPath)
	if err != nil {
		logger.Warn("preferences unreadable, using defaults", "path", prefsPath, "error", err)
	}

	store := &state.Store{}
	src := Sources{Config: cfg, Discover: !opts.NoDiscover}

	// Populate the list before the first frame.
	_ = refresh(ctx, store, src, logger)
	poller := StartPoller(ctx, store, src, opts.DiscoverEvery, logger)

	eng := engine.New(engine.Options{
		Budget:   opts.Budget,
		Capacity: opts.Capacity,
		Tail: logtail.Options{
			PollInterval: opts.PollInterval,
			Backfill:     opts.Backfill,
		},
		Logger: logger,
	})
	defer eng.Close()

	err = ui.Run(ui.Options{
		Context:   ctx,
		Store:     store,
		Engine:    eng,
		Discovery: poller,
		Prefs:     userPrefs,
		PrefsPath: prefsPath,
		Tick:      opts.TickInterval,
		Logger:    logger,
	})
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
