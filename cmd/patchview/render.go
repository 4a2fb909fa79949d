package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/patchview/internal/theme"
	"github.com/jmylchreest/patchview/internal/tui"
)

var renderCmd = &cobra.Command{
	Use:   "render [patch-file]",
	Short: "Print the viewer chrome as HTML",
	Long: `Print the viewer document as HTML with the stored theme and mode
applied: the theme button, mode toggle, populated theme list and the diff
container holding the given patch (or a built-in sample).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	var patch string
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read patch: %w", err)
		}
		patch = string(data)
	}

	ctl, doc := newController(cmd.Context(), nil)
	// The preview is built after Init so its lines carry the stored mode.
	tui.NewPreview(doc, theme.Default(), patch)
	logger.Debug("rendering document", "theme", ctl.CurrentTheme(), "mode", ctl.CurrentMode())

	return doc.Render(os.Stdout)
}
