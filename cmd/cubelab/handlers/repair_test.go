package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cubestudio/cubelab/internal/bootstrap"
	"github.com/cubestudio/cubelab/internal/config"
	"github.com/cubestudio/cubelab/internal/sequencer"
)

func TestRepair_MissingConfigFile(t *testing.T) {
	err := Repair(context.Background(), "/nonexistent/cubelab.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestBuildRepairSummary(t *testing.T) {
	cfg := config.Default()
	snap := bootstrap.Snapshot{MySQLAddr: "172.30.0.9"}
	result := &sequencer.Result{State: sequencer.StateCompleted}

	s := buildRepairSummary(cfg, snap, result)

	assert.Equal(t, "Network plumbing repaired", s.Title)
	require.Len(t, s.Endpoints, 1)
	assert.Equal(t, "172.30.0.9:3306", s.Endpoints[0].URL)
	assert.Contains(t, s.Endpoints[0].Note, cfg.PlatformConfig)
}

func TestBuildRepairSummary_NoAddress(t *testing.T) {
	cfg := config.Default()
	result := &sequencer.Result{State: sequencer.StateCompleted}

	s := buildRepairSummary(cfg, bootstrap.Snapshot{}, result)

	assert.Empty(t, s.Endpoints)
}
