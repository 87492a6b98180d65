package bootstrap

import (
	"context"
	"fmt"

	"github.com/cubestudio/cubelab/internal/addons/helm"
	"github.com/cubestudio/cubelab/internal/k8s"
	"github.com/cubestudio/cubelab/internal/platform/docker"
	"github.com/cubestudio/cubelab/internal/platform/kind"
	"github.com/cubestudio/cubelab/internal/platform/s3"
	"github.com/cubestudio/cubelab/internal/ui"
	"github.com/cubestudio/cubelab/internal/util/prerequisites"
)

// ContainerRuntime is the container-runtime surface the sequence needs:
// the shared network, the compose stack, and address discovery.
type ContainerRuntime interface {
	Ping(ctx context.Context) error
	NetworkExists(ctx context.Context, name string) (bool, error)
	CreateNetwork(ctx context.Context, name string) error
	Connect(ctx context.Context, network, container string) error
	ContainerRunning(ctx context.Context, name string) (bool, error)
	ComposeUp(ctx context.Context, composeFile string) error
	ContainerAddress(ctx context.Context, network, container string) (string, error)
}

// ClusterManager manages the lifecycle of the local cluster.
type ClusterManager interface {
	Exists(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, name, configPath string) error
	Delete(ctx context.Context, name string) error
	Kubeconfig(ctx context.Context, name string) ([]byte, error)
}

// KubeClient is the Kubernetes API surface used once the cluster is up.
type KubeClient interface {
	Apply(ctx context.Context, manifest string) error
	EnsureNamespace(ctx context.Context, name string, labels map[string]string) (bool, error)
	EnsureSecret(ctx context.Context, namespace, name string, data map[string][]byte) error
	EnsureNodePortService(ctx context.Context, namespace, name string, selector map[string]string, port, nodePort int32) error
	ServiceExists(ctx context.Context, namespace, name string) (bool, error)
	NodesReady(ctx context.Context) (bool, error)
	DeploymentReady(ctx context.Context, namespace, name string) (bool, error)
}

// ObjectStore bootstraps the platform's default buckets.
type ObjectStore interface {
	Healthy(ctx context.Context) bool
	EnsureBuckets(ctx context.Context, buckets []string) error
}

// ChartInstaller installs or upgrades a chart release.
type ChartInstaller interface {
	InstallOrUpgrade(ctx context.Context, releaseName, repoURL, chartName, version string, values map[string]interface{}) error
}

// Clients bundles everything the sequence talks to. The Kubernetes, chart,
// and storage clients are built lazily: their endpoints only exist after
// earlier steps have run.
type Clients struct {
	Runtime ContainerRuntime
	Cluster ClusterManager

	NewKube  func(kubeconfig []byte) (KubeClient, error)
	NewChart func(kubeconfig []byte, namespace string) (ChartInstaller, error)
	NewStore func(endpoint string) (ObjectStore, error)

	// CheckTools verifies the required client binaries before any mutation.
	CheckTools func() error

	// Confirm asks the operator before destructive cluster recreation.
	Confirm func(clusterName string) (bool, error)
}

// helmInstaller adapts the helm client to ChartInstaller.
type helmInstaller struct {
	client *helm.Client
}

func (h *helmInstaller) InstallOrUpgrade(ctx context.Context, releaseName, repoURL, chartName, version string, values map[string]interface{}) error {
	_, err := h.client.InstallOrUpgrade(ctx, releaseName, repoURL, chartName, version, values)
	return err
}

// DefaultClients wires the production clients: docker and kind CLIs,
// client-go, helm, and the S3 client pointed at the in-cluster MinIO.
func DefaultClients() Clients {
	return Clients{
		Runtime: docker.NewCLI(),
		Cluster: kind.NewCLI(),
		NewKube: func(kubeconfig []byte) (KubeClient, error) {
			return k8s.NewClientFromBytes(kubeconfig)
		},
		NewChart: func(kubeconfig []byte, namespace string) (ChartInstaller, error) {
			client, err := helm.NewClient(kubeconfig, namespace)
			if err != nil {
				return nil, err
			}
			return &helmInstaller{client: client}, nil
		},
		NewStore: func(endpoint string) (ObjectStore, error) {
			return s3.NewClient(endpoint, minioRegion, minioAccessKey, minioSecretKey)
		},
		CheckTools: func() error {
			results := prerequisites.CheckDefault()
			if err := results.Error(); err != nil {
				return fmt.Errorf("prerequisites: %w", err)
			}
			return nil
		},
		Confirm: ui.ConfirmRecreate,
	}
}
