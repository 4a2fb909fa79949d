package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var modeCmd = &cobra.Command{
	Use:   "mode",
	Short: "Show the current colour mode",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctl, _ := newController(cmd.Context(), nil)
		fmt.Fprintln(os.Stdout, ctl.CurrentMode())
		return nil
	},
}

var modeToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Switch between dark and light mode",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctl, _ := newController(cmd.Context(), nil)
		fmt.Fprintln(os.Stdout, ctl.ToggleMode())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modeCmd)
	modeCmd.AddCommand(modeToggleCmd)
}
