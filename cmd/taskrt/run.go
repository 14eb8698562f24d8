package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"taskrt/internal/config"
	"taskrt/internal/engine"
)

var (
	runConfig string
	runModel  string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the model and serve health and metrics until interrupted",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.LoadRuntime(runConfig)
		if err != nil {
			return err
		}
		if runModel != "" {
			cfg.Model = runModel
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		e, err := engine.Bootstrap(ctx, cfg)
		if err != nil {
			return err
		}
		return e.Run(ctx)
	},
}

func init() {
	runCmd.Flags().StringVarP(&runConfig, "config", "c", "taskrt.yml", "runtime configuration file")
	runCmd.Flags().StringVarP(&runModel, "model", "f", "", "model document (overrides the config file)")
}
