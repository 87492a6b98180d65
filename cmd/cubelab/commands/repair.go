package commands

import (
	"github.com/spf13/cobra"

	"github.com/cubestudio/cubelab/cmd/cubelab/handlers"
)

// Repair returns the command for post-restart network and config repair.
//
// Optional flags:
//
//	--config, -c: Path to run configuration YAML file (default: auto-detect cubelab.yaml)
func Repair() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "repair",
		Short: "Repair network plumbing after a host restart",
		Long: `Repair the development environment after a docker daemon or host restart.

A restart detaches containers from the shared network and hands out new
addresses. This command re-attaches the infra containers and the cluster
node, re-discovers the MySQL address, and rewrites the connection field in
the platform config file. It touches nothing else.

Examples:
  # Repair using cubelab.yaml in the current directory
  cubelab repair`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Repair(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: cubelab.yaml)")

	return cmd
}
