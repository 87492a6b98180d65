package handlers

import (
	"context"
	"fmt"

	"github.com/cubestudio/cubelab/internal/bootstrap"
	"github.com/cubestudio/cubelab/internal/config"
	"github.com/cubestudio/cubelab/internal/sequencer"
	"github.com/cubestudio/cubelab/internal/ui"
)

// Repair handles the repair command: re-attach containers to the shared
// network and point the platform config at the re-discovered MySQL address.
func Repair(ctx context.Context, configPath string) error {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	b := bootstrap.New(cfg, config.LoadTimeouts(), bootstrap.DefaultClients())
	runner := sequencer.New(ui.NewStatusObserver())

	result, err := runner.Run(ctx, b.RepairSteps())
	if err != nil {
		ui.PrintFailureHints(cfg.ClusterName)
		return err
	}

	ui.PrintSummary(buildRepairSummary(cfg, b.Snapshot(), result))
	return nil
}

func buildRepairSummary(cfg *config.Config, snap bootstrap.Snapshot, result *sequencer.Result) ui.Summary {
	s := ui.Summary{Title: "Network plumbing repaired"}

	if snap.MySQLAddr != "" {
		s.Endpoints = append(s.Endpoints, ui.Endpoint{
			Name: "MySQL",
			URL:  fmt.Sprintf("%s:%d", snap.MySQLAddr, config.MySQLPort),
			Note: "written to " + cfg.PlatformConfig,
		})
	}

	for _, w := range result.Warnings() {
		s.Warnings = append(s.Warnings, fmt.Sprintf("%s: %v", w.Name, w.Err))
	}

	return s
}
