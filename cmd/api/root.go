package main

import (
	"github.com/spf13/cobra"
)

// NewRootCmd assembles the laudoapi command tree.
func NewRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "laudoapi",
		Short:        "Thyroid ultrasound report service",
		SilenceUsage: true,
		// Running without a subcommand starts the server.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath)
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file (environment variables override it)")

	root.AddCommand(
		newServeCmd(&configPath),
		newRenderCmd(),
		newTextCmd(),
	)
	return root
}
