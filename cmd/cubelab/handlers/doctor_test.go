package handlers

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cubestudio/cubelab/internal/config"
	"github.com/cubestudio/cubelab/internal/util/prerequisites"
)

type fakeDoctorRuntime struct {
	pingErr       error
	networkExists bool
	running       map[string]bool
}

func (f *fakeDoctorRuntime) Ping(context.Context) error { return f.pingErr }

func (f *fakeDoctorRuntime) NetworkExists(context.Context, string) (bool, error) {
	return f.networkExists, nil
}

func (f *fakeDoctorRuntime) CreateNetwork(context.Context, string) error { return nil }

func (f *fakeDoctorRuntime) Connect(context.Context, string, string) error { return nil }

func (f *fakeDoctorRuntime) ContainerRunning(_ context.Context, name string) (bool, error) {
	return f.running[name], nil
}

func (f *fakeDoctorRuntime) ComposeUp(context.Context, string) error { return nil }

func (f *fakeDoctorRuntime) ContainerAddress(context.Context, string, string) (string, error) {
	return "", nil
}

type fakeDoctorCluster struct {
	exists bool
}

func (f *fakeDoctorCluster) Exists(context.Context, string) (bool, error) { return f.exists, nil }
func (f *fakeDoctorCluster) Create(context.Context, string, string) error { return nil }
func (f *fakeDoctorCluster) Delete(context.Context, string) error         { return nil }
func (f *fakeDoctorCluster) Kubeconfig(context.Context, string) ([]byte, error) {
	return nil, nil
}

func TestProbeEnvironment_DaemonDown(t *testing.T) {
	cfg := config.Default()
	runtime := &fakeDoctorRuntime{pingErr: fmt.Errorf("cannot connect to the docker daemon")}

	status := probeEnvironment(context.Background(), cfg, runtime, &fakeDoctorCluster{})

	assert.False(t, status.DaemonUp)
	assert.Empty(t, status.Containers, "no container probes without a daemon")
}

func TestProbeEnvironment_HealthyEnvironment(t *testing.T) {
	cfg := config.Default()
	runtime := &fakeDoctorRuntime{
		networkExists: true,
		running: map[string]bool{
			config.MySQLContainer:    true,
			config.RedisContainer:    true,
			config.FrontendContainer: true,
		},
	}

	status := probeEnvironment(context.Background(), cfg, runtime, &fakeDoctorCluster{exists: true})

	assert.True(t, status.DaemonUp)
	assert.True(t, status.NetworkExists)
	assert.True(t, status.ClusterExists)
	for name, running := range status.Containers {
		assert.True(t, running, "expected %s running", name)
	}
}

func TestRenderDoctor_DaemonDown(t *testing.T) {
	cfg := config.Default()
	status := &DoctorStatus{
		Tools:      &prerequisites.CheckResults{},
		Containers: map[string]bool{},
	}

	out := renderDoctor(cfg, status)

	assert.Contains(t, out, "[!!] docker daemon")
	assert.Contains(t, out, "Start the docker daemon")
	assert.NotContains(t, out, "network "+cfg.NetworkName, "no environment rows without a daemon")
}

func TestRenderDoctor_MissingPieces(t *testing.T) {
	cfg := config.Default()
	status := &DoctorStatus{
		Tools:    &prerequisites.CheckResults{},
		DaemonUp: true,
		Containers: map[string]bool{
			config.MySQLContainer: true,
		},
	}

	out := renderDoctor(cfg, status)

	assert.Contains(t, out, "[OK] docker daemon")
	assert.Contains(t, out, "[OK] container "+config.MySQLContainer)
	assert.Contains(t, out, "[!!] container "+config.RedisContainer)
	assert.Contains(t, out, "[!!] kind cluster "+cfg.ClusterName)
	assert.Contains(t, out, "Run 'cubelab up'")
}

func TestRenderDoctor_MissingRequiredTool(t *testing.T) {
	cfg := config.Default()
	missing := prerequisites.Tool{Name: "kind", Required: true, InstallURL: "https://kind.sigs.k8s.io"}
	status := &DoctorStatus{
		Tools: &prerequisites.CheckResults{
			Results: []prerequisites.CheckResult{{Tool: missing}},
			Missing: []prerequisites.Tool{missing},
		},
		DaemonUp:   true,
		Containers: map[string]bool{},
	}

	out := renderDoctor(cfg, status)

	assert.Contains(t, out, "[!!] kind")
	assert.Contains(t, out, "https://kind.sigs.k8s.io")
	assert.True(t, status.Tools.HasErrors())
}
