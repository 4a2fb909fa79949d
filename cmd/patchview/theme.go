package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/patchview/internal/appearance"
	"github.com/jmylchreest/patchview/internal/output"
	"github.com/jmylchreest/patchview/internal/theme"
)

var themeOpts struct {
	fromURL   string
	field     string
	separator string
}

var themeCmd = &cobra.Command{
	Use:   "theme [id|-]",
	Short: "Show or set the current theme",
	Long: `Without arguments, prints the current theme id.

With an id, selects that theme and stores it. Use 'patchview themes' to list
the available ids. An id of "-" reads a line from stdin, accepting the
lines printed by 'patchview themes --format dmenu'.

Fields (for --field):
  id, name, color, category, class

Examples:
  patchview theme
  patchview theme tokyo-night
  patchview theme --field color
  patchview themes --format dmenu | fuzzel -d | patchview theme -
  patchview themes --format dmenu --separator '::' | fuzzel -d | patchview theme --separator '::' -
  patchview theme --from-url 'https://patches.example.com/view?theme=nord'`,
	Args:              cobra.MaximumNArgs(1),
	RunE:              runTheme,
	ValidArgsFunction: completeThemeIDs,
}

func init() {
	rootCmd.AddCommand(themeCmd)

	themeCmd.Flags().StringVar(&themeOpts.fromURL, "from-url", "",
		"Apply the theme named by a viewer deep link")
	themeCmd.Flags().StringVar(&themeOpts.field, "field", "id",
		"Field of the current theme to print")
	themeCmd.Flags().StringVar(&themeOpts.separator, "separator", output.DefaultSeparator,
		"Separator between name and id when reading a dmenu line from stdin")
}

func runTheme(cmd *cobra.Command, args []string) error {
	ctl, _ := newController(cmd.Context(), nil)

	switch {
	case themeOpts.fromURL != "":
		id := appearance.ThemeFromURL(themeOpts.fromURL)
		if id == "" {
			return fmt.Errorf("no %q parameter in %s", appearance.ThemeParam, themeOpts.fromURL)
		}
		if !ctl.SetThemeFromURL(id) {
			logger.Warn("ignoring unknown theme from link", "theme", id)
		}

	case len(args) == 1:
		id := args[0]
		if id == "-" {
			var err error
			if id, err = readSelection(os.Stdin, themeOpts.separator); err != nil {
				return err
			}
		}
		if !ctl.SetTheme(id) {
			return unknownThemeError(id, theme.Default())
		}
	}

	current, _ := theme.Default().Lookup(ctl.CurrentTheme())
	fmt.Fprintln(os.Stdout, output.FormatField(current, themeOpts.field))
	return nil
}

// readSelection reads the first line of r and returns the theme id in it.
// sep is the separator the dmenu listing was written with.
func readSelection(r io.Reader, sep string) (string, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read selection: %w", err)
		}
		return "", fmt.Errorf("no selection on stdin")
	}
	id := output.ParseDmenuLine(scanner.Text(), sep)
	if id == "" {
		return "", fmt.Errorf("no selection on stdin")
	}
	return id, nil
}

// completeThemeIDs completes catalog ids for the theme argument.
func completeThemeIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []string
	for _, t := range theme.Default().Themes() {
		out = append(out, t.ID+"\t"+t.Name)
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// unknownThemeError reports id as unknown, suggesting the closest catalog
// id when there is one.
func unknownThemeError(id string, catalog *theme.Catalog) error {
	if s := suggestTheme(id, catalog); s != "" {
		return fmt.Errorf("unknown theme %q (did you mean %q?)", id, s)
	}
	return fmt.Errorf("unknown theme %q (see 'patchview themes')", id)
}

// suggestTheme returns the catalog id that best fuzzy-matches id, or "".
func suggestTheme(id string, catalog *theme.Catalog) string {
	matches := fuzzy.Find(id, catalog.IDs())
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}
