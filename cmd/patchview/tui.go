package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/patchview/internal/config"
	"github.com/jmylchreest/patchview/internal/portal"
	"github.com/jmylchreest/patchview/internal/theme"
	"github.com/jmylchreest/patchview/internal/tui"
)

// logFileEnv names a file that receives logs while the TUI owns the screen.
const logFileEnv = "PATCHVIEW_LOG_FILE"

var tuiCmd = &cobra.Command{
	Use:   "tui [patch-file]",
	Short: "Launch the interactive theme picker",
	Long: `Launch the terminal theme picker with a live diff preview.

The preview shows the given patch file, or a built-in sample.

Key bindings:
  t           Open the theme picker (configurable)
  m           Toggle dark/light mode
  y           Copy a deep link for the current theme
  ↑/↓         Move through themes while the picker is open
  enter       Apply the highlighted theme
  esc         Close the picker
  ?           Show help
  q           Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	var patch string
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read patch: %w", err)
		}
		patch = string(data)
	}

	l, closeLog, err := tuiLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	return tui.Run(tui.RunOptions{
		Config:   getConfig(),
		Store:    prefsStore,
		Desktop:  watchDesktop(ctx, l),
		Defaults: resolveDefaults(ctx),
		Patch:    patch,
		Logger:   l,
	})
}

// watchDesktop follows the desktop colour scheme while a "system" default
// mode is configured. It returns nil when there is nothing to follow.
func watchDesktop(ctx context.Context, l *slog.Logger) <-chan theme.Mode {
	if cfg.ColorScheme() != config.ColorSchemeSystem {
		return nil
	}

	client, err := portal.Connect(l)
	if err != nil {
		l.Debug("desktop portal unavailable", "error", err)
		return nil
	}

	modes := make(chan theme.Mode, 1)
	err = client.Watch(ctx, func(m theme.Mode) {
		select {
		case modes <- m:
		default:
			// Drop the stale value so the latest wins
			select {
			case <-modes:
			default:
			}
			modes <- m
		}
	})
	if err != nil {
		l.Warn("failed to watch desktop colour scheme", "error", err)
		return nil
	}
	return modes
}

// tuiLogger returns a logger that does not write to the terminal: logs go to
// $PATCHVIEW_LOG_FILE when verbose, otherwise nowhere.
func tuiLogger() (*slog.Logger, func(), error) {
	path := os.Getenv(logFileEnv)
	if !globalOpts.verbose || path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	handler := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
	})
	return slog.New(handler), func() { _ = f.Close() }, nil
}
