package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/jsphweid/engraver/constants"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var watchOut string

func init() {
	watchCmd.Flags().StringVarP(&watchOut, "out", "o", "", "output svg path (default out dir)")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch <score.yaml>",
	Short: "Re-engraves a score whenever it changes",
	Long:  `Engraves a score, then engraves it again every time the file is written, until interrupted.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := watchOut
		if out == "" {
			if err := os.MkdirAll(constants.GetOutDir(), 0777); err != nil {
				return errors.Wrap(err, "could not create out dir")
			}
			out = outPath(constants.GetOutDir(), args[0], ".svg")
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return watch(ctx, args[0], out, time.Duration(config.DebounceMillis)*time.Millisecond)
	},
}

// watch engraves in to out once, then after every burst of writes to in.
// Editors often replace the file instead of writing it, so the directory is
// watched and events are filtered by name.
func watch(ctx context.Context, in, out string, delay time.Duration) error {
	if err := engraveFile(in, out); err != nil {
		slog.Warn("could not engrave", "path", in, "err", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "could not create watcher")
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(in)); err != nil {
		return errors.Wrapf(err, "could not watch %v", in)
	}

	debounced := debounce.New(delay)
	target := filepath.Clean(in)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || !(event.Has(fsnotify.Write) || event.Has(fsnotify.Create)) {
				continue
			}
			slog.Debug("score changed", "event", event)
			debounced(func() {
				if err := engraveFile(in, out); err != nil {
					slog.Warn("could not engrave", "path", in, "err", err)
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", "err", err)
		}
	}
}
