package commands

import (
	"github.com/spf13/cobra"

	"github.com/cubestudio/cubelab/cmd/cubelab/handlers"
)

// Up returns the command for the full environment cold start.
//
// Optional flags:
//
//	--config, -c: Path to run configuration YAML file (default: auto-detect cubelab.yaml)
//	--recreate:   Delete and re-create an existing cluster (prompts when interactive)
//
// Environment variables:
//
//	CUBELAB_RECREATE: Legacy switch equivalent to --recreate
func Up() *cobra.Command {
	var configPath string
	var recreate bool

	cmd := &cobra.Command{
		Use:   "up",
		Short: "Bootstrap the full development environment",
		Long: `Bootstrap the full Cube Studio development environment.

This command starts the infra container stack (MySQL, Redis, frontend),
creates a local kind cluster, and provisions the in-cluster services:
object storage, dashboard, workflow engine, namespaces, and service
exposure. Every step is idempotent, so re-running 'up' against a healthy
environment only reports no-ops.

If no config file is specified, it looks for cubelab.yaml in the current
directory.

Examples:
  # Bootstrap using cubelab.yaml in the current directory
  cubelab up

  # Bootstrap using a specific config file
  cubelab up -c staging.yaml

  # Throw away the existing cluster and start over
  cubelab up --recreate`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Up(cmd.Context(), configPath, recreate)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: cubelab.yaml)")
	cmd.Flags().BoolVar(&recreate, "recreate", false, "Delete and re-create an existing cluster")

	return cmd
}
