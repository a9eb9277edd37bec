package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/uetail/internal/app"
	"github.com/five82/uetail/internal/engine"
	"github.com/five82/uetail/internal/logging"
	"github.com/five82/uetail/internal/logtail"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "uetail: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	cmd := &cobra.Command{
		Use:   "uetail",
		Short: "Follow Unreal editor and build logs in the terminal",
		Long: `uetail tails the log of an Unreal project or packaged build, colors
warnings and errors, tracks cook progress, and filters by log category.

Targets come from projects.toml (or .yaml/.json) next to the executable or
in the working directory, plus any editor found running on this machine.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "projects file (default: search next to the executable, then the working directory)")
	flags.StringVar(&opts.PrefsPath, "prefs", "", "preferences file (default ~/.config/uetail/prefs.toml)")
	flags.StringVar(&opts.LogFile, "log-file", logging.DefaultPath, "diagnostic log file")
	flags.StringVar(&opts.LogLevel, "log-level", "info", "diagnostic log level: debug, info, warn, error")
	flags.DurationVar(&opts.PollInterval, "poll", logtail.DefaultPollInterval, "log file poll interval")
	flags.DurationVar(&opts.TickInterval, "tick", engine.DefaultTickInterval, "display refresh interval")
	flags.DurationVar(&opts.DiscoverEvery, "discover-every", 0, "running editor discovery interval (default 3s)")
	flags.BoolVar(&opts.NoDiscover, "no-discover", false, "do not look for running editors")
	flags.IntVar(&opts.Budget, "budget", engine.DefaultBudget, "maximum log events applied per refresh")
	flags.IntVar(&opts.Capacity, "scrollback", 0, "lines kept in memory (default 20000)")
	flags.IntVar(&opts.Backfill, "backfill", 0, "show the last N lines of an existing log on selection")

	return cmd
}
