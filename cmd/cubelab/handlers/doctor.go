package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/cubestudio/cubelab/internal/bootstrap"
	"github.com/cubestudio/cubelab/internal/config"
	"github.com/cubestudio/cubelab/internal/platform/docker"
	"github.com/cubestudio/cubelab/internal/platform/kind"
	"github.com/cubestudio/cubelab/internal/util/prerequisites"
)

// DoctorStatus is the result of probing the local environment.
type DoctorStatus struct {
	Tools         *prerequisites.CheckResults
	DaemonUp      bool
	NetworkExists bool
	Containers    map[string]bool
	ClusterExists bool
}

// Doctor handles the doctor command. It probes the environment and reports;
// nothing is mutated. A missing required tool makes the command fail so
// scripts can gate on the exit code.
func Doctor(ctx context.Context, configPath string) error {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	status := probeEnvironment(ctx, cfg, docker.NewCLI(), kind.NewCLI())
	fmt.Print(renderDoctor(cfg, status))

	if status.Tools.HasErrors() {
		return status.Tools.Error()
	}
	return nil
}

// probeEnvironment collects the doctor checks. Probe failures are reported
// as "not found" rather than aborting: doctor's whole point is running in
// broken environments.
func probeEnvironment(ctx context.Context, cfg *config.Config, runtime bootstrap.ContainerRuntime, cluster bootstrap.ClusterManager) *DoctorStatus {
	status := &DoctorStatus{
		Tools:      prerequisites.CheckAll(),
		Containers: map[string]bool{},
	}

	if err := runtime.Ping(ctx); err == nil {
		status.DaemonUp = true
	}
	if !status.DaemonUp {
		return status
	}

	if exists, err := runtime.NetworkExists(ctx, cfg.NetworkName); err == nil {
		status.NetworkExists = exists
	}
	for _, name := range []string{config.MySQLContainer, config.RedisContainer, config.FrontendContainer} {
		running, err := runtime.ContainerRunning(ctx, name)
		status.Containers[name] = err == nil && running
	}
	if exists, err := cluster.Exists(ctx, cfg.ClusterName); err == nil {
		status.ClusterExists = exists
	}

	return status
}

// renderDoctor formats the doctor report.
func renderDoctor(cfg *config.Config, status *DoctorStatus) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\ncubelab environment: %s\n\n", cfg.ClusterName)

	b.WriteString("  Client tools\n")
	for _, result := range status.Tools.Results {
		if result.Found {
			extra := result.Version
			if extra == "" {
				extra = result.Path
			}
			fmt.Fprintf(&b, "  %s %-10s %s\n", "[OK]", result.Tool.Name, extra)
			continue
		}
		mark := "[!!]"
		if !result.Tool.Required {
			mark = "[??]"
		}
		fmt.Fprintf(&b, "  %s %-10s not found (%s)\n", mark, result.Tool.Name, result.Tool.InstallURL)
	}
	b.WriteString("\n")

	b.WriteString("  Environment\n")
	writeRow(&b, status.DaemonUp, "docker daemon")
	if !status.DaemonUp {
		b.WriteString("\n  Start the docker daemon, then run 'cubelab doctor' again.\n\n")
		return b.String()
	}
	writeRow(&b, status.NetworkExists, fmt.Sprintf("network %s", cfg.NetworkName))
	for _, name := range []string{config.MySQLContainer, config.RedisContainer, config.FrontendContainer} {
		writeRow(&b, status.Containers[name], fmt.Sprintf("container %s", name))
	}
	writeRow(&b, status.ClusterExists, fmt.Sprintf("kind cluster %s", cfg.ClusterName))
	b.WriteString("\n")

	if !status.NetworkExists || !status.ClusterExists {
		b.WriteString("  Run 'cubelab up' to bootstrap the environment.\n\n")
	}

	return b.String()
}

func writeRow(b *strings.Builder, ok bool, label string) {
	mark := "[OK]"
	if !ok {
		mark = "[!!]"
	}
	fmt.Fprintf(b, "  %s %s\n", mark, label)
}
