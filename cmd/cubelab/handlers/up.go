// Package handlers implements the command execution logic for the cubelab
// CLI. The commands package parses flags; handlers do the work.
package handlers

import (
	"context"
	"fmt"

	"github.com/cubestudio/cubelab/internal/bootstrap"
	"github.com/cubestudio/cubelab/internal/config"
	"github.com/cubestudio/cubelab/internal/sequencer"
	"github.com/cubestudio/cubelab/internal/ui"
)

// Up handles the up command: the full environment cold start.
func Up(ctx context.Context, configPath string, recreate bool) error {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if recreate {
		cfg.Recreate = true
	}

	b := bootstrap.New(cfg, config.LoadTimeouts(), bootstrap.DefaultClients())
	runner := sequencer.New(ui.NewStatusObserver())

	result, err := runner.Run(ctx, b.UpSteps())
	if err != nil {
		ui.PrintFailureHints(cfg.ClusterName)
		return err
	}

	ui.PrintSummary(buildUpSummary(b.Report(), result))
	return nil
}

// buildUpSummary turns a finished run into the operator-facing summary.
func buildUpSummary(report bootstrap.Report, result *sequencer.Result) ui.Summary {
	s := ui.Summary{Title: "Cube Studio development environment is up"}

	if report.DashboardURL != "" {
		s.Endpoints = append(s.Endpoints, ui.Endpoint{Name: "Dashboard", URL: report.DashboardURL, Note: "accept the self-signed certificate"})
	}
	if report.StorageURL != "" {
		s.Endpoints = append(s.Endpoints, ui.Endpoint{Name: "Object storage", URL: report.StorageURL})
	}
	if report.WorkflowURL != "" {
		s.Endpoints = append(s.Endpoints, ui.Endpoint{Name: "Workflow UI", URL: report.WorkflowURL})
	}
	if report.Snapshot.MySQLAddr != "" {
		s.Endpoints = append(s.Endpoints, ui.Endpoint{Name: "MySQL", URL: fmt.Sprintf("%s:%d", report.Snapshot.MySQLAddr, config.MySQLPort), Note: "docker network " + config.DefaultNetworkName})
	}
	if report.Snapshot.RedisAddr != "" {
		s.Endpoints = append(s.Endpoints, ui.Endpoint{Name: "Redis", URL: fmt.Sprintf("%s:%d", report.Snapshot.RedisAddr, config.RedisPort)})
	}

	if report.Credentials != nil {
		s.Credentials = append(s.Credentials, ui.Credential{
			Name:     "Dashboard admin",
			User:     report.Credentials.User,
			Password: report.Credentials.Password,
		})
	}

	for _, w := range result.Warnings() {
		s.Warnings = append(s.Warnings, fmt.Sprintf("%s: %v", w.Name, w.Err))
	}

	return s
}
