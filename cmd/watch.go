package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zjrosen/almanac/internal/app"
	"github.com/zjrosen/almanac/internal/log"
	"github.com/zjrosen/almanac/internal/pubsub"
	"github.com/zjrosen/almanac/internal/watcher"
)

var watchLogs bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload data packs when their files change",
	Long: `Watch the configured data_dirs and reload them whenever a YAML file changes.
Each reload prints the ingredients that were added and removed.

Example:
  almanac watch --logs   # also print debug log lines`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := loadApp(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		onChange, stopWatcher, err := startWatcher()
		if err != nil {
			return err
		}
		defer stopWatcher()

		var logs <-chan log.LogEvent
		if watchLogs {
			logs = log.Subscribe(ctx)
		}

		fmt.Printf("Watching %s\n", strings.Join(cfg.DataDirs, ", "))
		fmt.Println("Press Ctrl+C to stop")
		return reloadLoop(ctx, a, onChange, nil, logs, true)
	},
}

// startWatcher watches the configured data pack directories.
func startWatcher() (<-chan struct{}, func(), error) {
	if len(cfg.DataDirs) == 0 {
		return nil, nil, errors.New("no data_dirs configured to watch")
	}
	w, err := watcher.New(watcher.Config{Dirs: cfg.DataDirs, DebounceDur: cfg.Watch.Debounce})
	if err != nil {
		return nil, nil, err
	}
	onChange, err := w.Start()
	if err != nil {
		_ = w.Stop()
		return nil, nil, err
	}
	return onChange, func() { _ = w.Stop() }, nil
}

// reloadLoop reloads a on every change signal until ctx is done or errCh
// delivers. It runs on the goroutine that created a.
func reloadLoop(ctx context.Context, a *app.App, onChange <-chan struct{}, errCh <-chan error, logs <-chan log.LogEvent, verbose bool) error {
	events := a.Events().Subscribe(ctx)
	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nShutting down...")
			return nil

		case err := <-errCh:
			return err

		case <-onChange:
			if _, err := a.ReloadDirs(ctx); err != nil {
				// Keep the last good state; the next save retries.
				fmt.Fprintf(os.Stderr, "reload failed: %v\n", err)
				log.ErrorErr(log.CatWatcher, "Data pack reload failed", err)
			}

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if verbose {
				printChange(ev)
			}

		case ev, ok := <-logs:
			if !ok {
				logs = nil
				continue
			}
			fmt.Fprint(os.Stderr, ev.Payload)
		}
	}
}

func printChange(ev pubsub.Event[app.Change]) {
	ts := ev.Timestamp.Format("15:04:05")
	switch ev.Type {
	case pubsub.AddedEvent:
		for _, uid := range ev.Payload.UIDs {
			fmt.Printf("%s + %s\n", ts, uid)
		}
	case pubsub.RemovedEvent:
		for _, uid := range ev.Payload.UIDs {
			fmt.Printf("%s - %s\n", ts, uid)
		}
	case pubsub.ReloadedEvent:
		fmt.Printf("%s reloaded: %d added, %d removed\n", ts, ev.Payload.Added, ev.Payload.Removed)
	}
}

func init() {
	watchCmd.Flags().BoolVar(&watchLogs, "logs", false, "print log lines (requires --debug)")
	rootCmd.AddCommand(watchCmd)
}
