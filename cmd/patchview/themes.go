package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/patchview/internal/output"
	"github.com/jmylchreest/patchview/internal/store"
	"github.com/jmylchreest/patchview/internal/theme"
)

var themesOpts struct {
	filter    string
	format    string
	template  string
	separator string
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available themes",
	Long: `List the theme catalog grouped by category.

The current theme is marked with '*' in plain and dmenu output.

Template variables (for --template):
  {{.Index}}          - 1-based position in the listing
  {{.Theme.ID}}       - Theme id
  {{.Theme.Name}}     - Display name
  {{.Theme.Color}}    - Accent colour (#rrggbb)
  {{.Category}}       - Category heading
  {{.Current}}        - true for the stored theme
  {{marker .Current}} - "*" for the stored theme, " " otherwise

Examples:
  # All themes
  patchview themes

  # Themes whose name contains "night"
  patchview themes --filter night

  # Machine-readable output
  patchview themes --format json

  # Pick a theme with a launcher
  patchview themes --format dmenu | fuzzel -d | patchview theme -`,
	RunE: runThemes,
}

func init() {
	rootCmd.AddCommand(themesCmd)

	themesCmd.Flags().StringVarP(&themesOpts.filter, "filter", "f", "",
		"Only show themes whose name contains this text (case-insensitive)")
	themesCmd.Flags().StringVar(&themesOpts.format, "format", "plain",
		"Output format (plain, json, yaml, toml, dmenu, ids)")
	themesCmd.Flags().StringVar(&themesOpts.template, "template", "",
		"Go template for each theme (plain and dmenu formats)")
	themesCmd.Flags().StringVar(&themesOpts.separator, "separator", output.DefaultSeparator,
		"Separator between name and id in dmenu format")
}

func runThemes(cmd *cobra.Command, args []string) error {
	catalog := theme.Default()
	current := store.Load(prefsStore, cfg.StorageKeys(), catalog, store.Preference{
		Theme: cfg.Appearance.DefaultTheme,
		Mode:  theme.DefaultMode,
	})

	return writeThemes(os.Stdout, catalog, themesOpts.filter, output.FormatType(themesOpts.format), output.FormatterOptions{
		Template:  themesOpts.template,
		Separator: themesOpts.separator,
		Current:   current.Theme,
	})
}

// writeThemes writes the catalog entries matching filter in the given
// format.
func writeThemes(w io.Writer, catalog *theme.Catalog, filter string, format output.FormatType, opts output.FormatterOptions) error {
	formatter, err := output.NewFormatter(format, opts)
	if err != nil {
		return err
	}
	return formatter.Format(w, output.Filter(catalog.Groups(), filter))
}
