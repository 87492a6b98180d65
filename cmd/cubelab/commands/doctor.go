package commands

import (
	"github.com/spf13/cobra"

	"github.com/cubestudio/cubelab/cmd/cubelab/handlers"
)

// Doctor returns the command for diagnosing the local environment.
//
// Optional flags:
//
//	--config, -c: Path to run configuration YAML file (default: auto-detect cubelab.yaml)
func Doctor() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the local environment",
		Long: `Diagnose the local Cube Studio development environment.

Checks the required client tools, the docker daemon, the shared network,
the infra containers, and the kind cluster, and reports what is missing.
Nothing is mutated.

Examples:
  # Diagnose the environment
  cubelab doctor`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Doctor(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: cubelab.yaml)")

	return cmd
}
