package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"taskrt/internal/events"
	"taskrt/internal/plugin"
)

var pluginsCmd = &cobra.Command{
	Use:   "plugins",
	Short: "List registered plugin prototypes and event drivers",
	Run: func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "plugins:")
		for _, n := range plugin.Default().Names() {
			fmt.Fprintf(out, "  %s\n", n)
		}
		fmt.Fprintln(out, "event drivers:")
		for _, n := range events.Drivers() {
			fmt.Fprintf(out, "  %s\n", n)
		}
	},
}
