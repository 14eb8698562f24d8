package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"taskrt/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "taskrt",
	Short: "taskrt - plugin runtime for task state",
	Long:  `taskrt loads a runtime model document, attaches its plugins to the task state and drives them through their lifecycle.`,
	PersistentPreRun: func(*cobra.Command, []string) {
		logging.InitFromEnv()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(pluginsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
