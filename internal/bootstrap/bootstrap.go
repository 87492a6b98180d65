// Package bootstrap defines the ordered step sequences that bring the local
// Cube Studio development environment up and repair it after a host restart.
//
// All state discovered during a run (container addresses, generated
// credentials) lives in the Bootstrapper and dies with the process.
package bootstrap

import (
	"fmt"

	"github.com/cubestudio/cubelab/internal/config"
)

// MinIO endpoint constants. The in-cluster MinIO runs with fixed development
// credentials; they match the manifest in manifests/minio.yaml.
const (
	minioRegion    = "us-east-1"
	minioAccessKey = "minio"
	minioSecretKey = "minio2440"
)

// Dashboard chart release settings.
const (
	dashboardNamespace    = "kube-system"
	dashboardRelease      = "dashboard"
	dashboardRepoURL      = "https://kubernetes.github.io/dashboard/"
	dashboardChart        = "kubernetes-dashboard"
	dashboardChartVersion = "6.0.8"
)

// workflowNamespace hosts the Argo workflow engine.
const workflowNamespace = "pipeline"

// Snapshot holds the container addresses discovered on the shared docker
// network during a run. Empty fields mean discovery missed; dependent steps
// degrade to warnings.
type Snapshot struct {
	NodeAddr  string
	MySQLAddr string
	RedisAddr string
}

// AdminCredentials are the per-run dashboard admin credentials. The plain
// password is only ever shown in the final summary; the cluster stores the
// bcrypt hash.
type AdminCredentials struct {
	User         string
	Password     string
	PasswordHash string
}

// Report is what a finished run hands to the presentation layer.
type Report struct {
	Snapshot    Snapshot
	Credentials *AdminCredentials

	DashboardURL string
	StorageURL   string
	WorkflowURL  string
}

// Bootstrapper builds the up and repair step sequences against a set of
// external-system clients.
type Bootstrapper struct {
	cfg      *config.Config
	timeouts *config.Timeouts
	clients  Clients

	snap       Snapshot
	kubeconfig []byte
	kube       KubeClient
	creds      *AdminCredentials
}

// New creates a Bootstrapper. Nil timeouts fall back to the environment
// defaults.
func New(cfg *config.Config, timeouts *config.Timeouts, clients Clients) *Bootstrapper {
	if timeouts == nil {
		timeouts = config.LoadTimeouts()
	}
	return &Bootstrapper{
		cfg:      cfg,
		timeouts: timeouts,
		clients:  clients,
	}
}

// Snapshot returns the addresses discovered so far.
func (b *Bootstrapper) Snapshot() Snapshot {
	return b.snap
}

// Report summarizes the run for the operator.
func (b *Bootstrapper) Report() Report {
	r := Report{
		Snapshot:    b.snap,
		Credentials: b.creds,
	}
	if b.snap.NodeAddr != "" {
		r.DashboardURL = fmt.Sprintf("https://%s:%d", b.snap.NodeAddr, config.DashboardNodePort)
		r.StorageURL = fmt.Sprintf("http://%s:%d", b.snap.NodeAddr, config.MinioNodePort)
		r.WorkflowURL = fmt.Sprintf("https://%s:%d", b.snap.NodeAddr, config.WorkflowNodePort)
	}
	return r
}

// requireKube guards steps that need the Kubernetes client built by the
// node-ready step.
func (b *Bootstrapper) requireKube() (KubeClient, error) {
	if b.kube == nil {
		return nil, fmt.Errorf("kubernetes client not initialized")
	}
	return b.kube, nil
}
