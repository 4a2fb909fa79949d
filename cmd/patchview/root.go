// Package main provides the CLI entrypoint for patchview.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/patchview/internal/appearance"
	"github.com/jmylchreest/patchview/internal/config"
	"github.com/jmylchreest/patchview/internal/dom"
	"github.com/jmylchreest/patchview/internal/portal"
	"github.com/jmylchreest/patchview/internal/store"
	"github.com/jmylchreest/patchview/internal/theme"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		prefsFile  string
		configPath string
	}
	logger *slog.Logger

	// prefsStore is the preferences file shared by all commands
	prefsStore *store.FileKV
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "patchview",
	Short: "Theme and colour mode picker for the patch viewer",
	Long: `patchview manages the theme and light/dark mode of the git patch viewer.

The preference is stored in a small JSON file shared with every running
picker, so a change made from the command line shows up immediately in an
open TUI.

Running patchview without a subcommand launches the interactive picker.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Setup logging
		setupLogger()

		// Load configuration
		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Use custom preferences file if specified, otherwise the configured
		// or default path
		prefsPath := globalOpts.prefsFile
		if prefsPath == "" {
			prefsPath, err = cfg.PreferencesPath()
			if err != nil {
				return fmt.Errorf("failed to resolve preferences path: %w", err)
			}
		}

		prefsStore, err = store.OpenFileKV(prefsPath)
		if err != nil {
			return fmt.Errorf("failed to open preferences: %w", err)
		}
		logger.Debug("opened preferences", "path", prefsPath)

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if prefsStore != nil {
			return prefsStore.Close()
		}
		return nil
	},
	// Default to TUI when no subcommand is provided
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.prefsFile, "prefs-file", "",
		"Path to preferences file (default: ~/.local/share/patchview/preferences.json)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/patchview/config.toml)")
}

// setupLogger installs a charmbracelet/log handler behind slog.
func setupLogger() {
	level := log.WarnLevel
	if globalOpts.verbose {
		level = log.DebugLevel
	}

	// Log to stderr so stdout is clean for output
	handler := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: globalOpts.verbose,
		TimeFormat:      time.Kitchen,
		Level:           level,
	})
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// resolveDefaults turns the configured defaults into a preference. A
// "system" default mode asks the desktop portal, then the terminal.
func resolveDefaults(ctx context.Context) store.Preference {
	p := store.Preference{Theme: cfg.Appearance.DefaultTheme}

	switch cfg.ColorScheme() {
	case config.ColorSchemeLight:
		p.Mode = theme.ModeLight
	case config.ColorSchemeDark:
		p.Mode = theme.ModeDark
	default:
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()

		var reader portal.SchemeReader
		if client, err := portal.Connect(logger); err != nil {
			logger.Debug("desktop portal unavailable", "error", err)
		} else {
			reader = client
		}
		p.Mode = portal.ResolveMode(ctx, reader, logger)
	}

	return p
}

// newController builds a headless document with the viewer chrome and an
// initialized controller over the preferences file.
func newController(ctx context.Context, viewer appearance.Viewer) (*appearance.Controller, *dom.Document) {
	doc := dom.NewDocument()
	appearance.BuildChrome(doc)

	opts := []appearance.Option{
		appearance.WithKeys(cfg.StorageKeys()),
		appearance.WithDefaults(resolveDefaults(ctx)),
		appearance.WithLogger(logger),
		appearance.WithShortcut(cfg.Appearance.Shortcut),
	}
	if viewer != nil {
		opts = append(opts, appearance.WithViewer(viewer))
	}

	ctl := appearance.New(doc, prefsStore, opts...)
	ctl.Init()
	return ctl, doc
}

// getConfig returns the global config instance.
func getConfig() *config.Config {
	return cfg
}
