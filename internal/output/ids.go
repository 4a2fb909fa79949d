package output

import (
	"fmt"
	"io"

	"github.com/jmylchreest/patchview/internal/theme"
)

// IDsFormatter outputs just the theme ids, one per line.
// Useful for piping to other commands (e.g., patchview theme -).
type IDsFormatter struct{}

// NewIDsFormatter creates a new IDs formatter.
func NewIDsFormatter() *IDsFormatter {
	return &IDsFormatter{}
}

// Format writes theme ids to the writer, one per line.
func (f *IDsFormatter) Format(w io.Writer, groups []theme.Group) error {
	for _, g := range groups {
		for _, t := range g.Themes {
			if _, err := fmt.Fprintln(w, t.ID); err != nil {
				return err
			}
		}
	}
	return nil
}
