package handlers

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cubestudio/cubelab/internal/bootstrap"
	"github.com/cubestudio/cubelab/internal/sequencer"
)

func TestUp_MissingConfigFile(t *testing.T) {
	err := Up(context.Background(), "/nonexistent/cubelab.yaml", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestBuildUpSummary(t *testing.T) {
	report := bootstrap.Report{
		Snapshot: bootstrap.Snapshot{
			NodeAddr:  "172.30.0.4",
			MySQLAddr: "172.30.0.2",
			RedisAddr: "172.30.0.3",
		},
		Credentials: &bootstrap.AdminCredentials{
			User:     "admin",
			Password: "s3cret",
		},
		DashboardURL: "https://172.30.0.4:30280",
		StorageURL:   "http://172.30.0.4:30900",
		WorkflowURL:  "https://172.30.0.4:30246",
	}
	result := &sequencer.Result{State: sequencer.StateCompleted}

	s := buildUpSummary(report, result)

	assert.Equal(t, "Cube Studio development environment is up", s.Title)
	assert.Len(t, s.Endpoints, 5)
	assert.Equal(t, "https://172.30.0.4:30280", s.Endpoints[0].URL)
	assert.Equal(t, "172.30.0.2:3306", s.Endpoints[3].URL)
	require.Len(t, s.Credentials, 1)
	assert.Equal(t, "s3cret", s.Credentials[0].Password)
	assert.Empty(t, s.Warnings)
}

func TestBuildUpSummary_DiscoveryMiss(t *testing.T) {
	result := &sequencer.Result{
		State: sequencer.StateCompleted,
		Steps: []sequencer.StepResult{
			{Name: "address discovery", Outcome: sequencer.OutcomeSkipped, Err: fmt.Errorf("no address for cube-mysql")},
		},
	}

	s := buildUpSummary(bootstrap.Report{}, result)

	assert.Empty(t, s.Endpoints, "no endpoints without discovered addresses")
	assert.Empty(t, s.Credentials)
	require.Len(t, s.Warnings, 1)
	assert.Contains(t, s.Warnings[0], "address discovery")
}
