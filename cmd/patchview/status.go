package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/patchview/internal/appearance"
	"github.com/jmylchreest/patchview/internal/dom"
)

var statusOpts struct {
	json bool
}

// Status is the output of 'patchview status'.
type Status struct {
	Theme       string    `json:"theme"`
	ThemeName   string    `json:"theme_name"`
	Color       string    `json:"color"`
	Mode        string    `json:"mode"`
	RootClasses []string  `json:"root_classes"`
	ModeTitle   string    `json:"mode_title"`
	File        string    `json:"file"`
	UpdatedAt   time.Time `json:"updated_at,omitzero"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the applied theme and mode",
	Long: `Show the stored preference as the viewer applies it: theme, mode, the
classes on the document root and when the preference last changed.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVar(&statusOpts.json, "json", false,
		"Output as JSON")
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctl, doc := newController(cmd.Context(), nil)
	st := buildStatus(ctl, doc)
	st.File = prefsStore.Path()
	st.UpdatedAt = prefsStore.UpdatedAt()

	return writeStatus(os.Stdout, st, statusOpts.json, time.Now())
}

// buildStatus reads the presentation back out of the document.
func buildStatus(ctl *appearance.Controller, doc *dom.Document) Status {
	st := Status{
		Theme:       ctl.CurrentTheme(),
		Mode:        ctl.CurrentMode().String(),
		RootClasses: doc.Root().Classes(),
	}
	if btn := doc.GetElementByID(appearance.IDThemeButton); btn != nil {
		if n := btn.Query(appearance.ClassThemeName); n != nil {
			st.ThemeName = n.TextContent()
		}
		if p := btn.Query(appearance.ClassThemePreview); p != nil {
			st.Color = p.Style("background")
		}
	}
	if toggle := doc.GetElementByID(appearance.IDModeToggle); toggle != nil {
		st.ModeTitle, _ = toggle.Attr("title")
	}
	return st
}

func writeStatus(w io.Writer, st Status, asJSON bool, now time.Time) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	}

	changed := "never"
	if !st.UpdatedAt.IsZero() {
		changed = humanize.RelTime(st.UpdatedAt, now, "ago", "from now")
	}

	fmt.Fprintf(w, "Theme:   %s (%s, %s)\n", st.ThemeName, st.Theme, st.Color)
	fmt.Fprintf(w, "Mode:    %s\n", st.Mode)
	fmt.Fprintf(w, "Classes: %v\n", st.RootClasses)
	fmt.Fprintf(w, "File:    %s\n", st.File)
	fmt.Fprintf(w, "Changed: %s\n", changed)
	return nil
}
