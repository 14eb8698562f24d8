package main

import (
	"github.com/spf13/cobra"

	"taskrt/internal/importer"
)

var describeModel string

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Import and configure a model, then print its task and plugin state",
	RunE: func(cmd *cobra.Command, _ []string) error {
		imp, err := importer.FromFile(describeModel, nil)
		if err != nil {
			return err
		}
		m, err := imp.Build(cmd.Context())
		if err != nil {
			return err
		}
		cerr := m.Configure(cmd.Context())
		m.Describe(cmd.OutOrStdout())
		return cerr
	},
}

func init() {
	describeCmd.Flags().StringVarP(&describeModel, "model", "f", "model.yml", "model document")
}
