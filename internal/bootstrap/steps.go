package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cubestudio/cubelab/internal/config"
	"github.com/cubestudio/cubelab/internal/configfile"
	"github.com/cubestudio/cubelab/internal/platform/kind"
	"github.com/cubestudio/cubelab/internal/sequencer"
	"github.com/cubestudio/cubelab/internal/util/retry"
)

// UpSteps returns the full cold-start sequence. Every step is idempotent or
// guard-checked, so re-running the sequence against a converged environment
// only produces no-ops.
func (b *Bootstrapper) UpSteps() []sequencer.Step {
	return []sequencer.Step{
		b.prerequisitesStep(),
		b.networkStep(),
		b.infraStep(),
		b.clusterStep(),
		b.nodeReadyStep(),
		b.attachStep(),
		b.discoveryStep(false),
		b.platformConfigStep(),
		b.namespacesStep(),
		b.kubeconfigSecretStep(),
		b.minioStep(),
		b.bucketsStep(),
		b.dashboardStep(),
		b.workflowStep(),
		b.overlayStep(),
		b.exposeStep(),
	}
}

// RepairSteps returns the post-restart repair sequence: re-attach containers
// to the shared network, re-discover the MySQL address, and rewrite the
// platform config connection field.
func (b *Bootstrapper) RepairSteps() []sequencer.Step {
	return []sequencer.Step{
		b.attachStep(),
		b.discoveryStep(true),
		b.platformConfigStep(),
	}
}

// applyWithRetry applies a manifest with exponential backoff. The API server
// of a just-created kind cluster drops the occasional request while its
// webhooks and discovery settle; a cancelled context is not retried.
func (b *Bootstrapper) applyWithRetry(ctx context.Context, kube KubeClient, manifest string) error {
	return retry.WithExponentialBackoff(ctx, func() error {
		if err := ctx.Err(); err != nil {
			return retry.Fatal(err)
		}
		return kube.Apply(ctx, manifest)
	}, retry.WithMaxRetries(b.timeouts.RetryMaxAttempts), retry.WithInitialDelay(b.timeouts.RetryInitialDelay))
}

// prerequisitesStep fails before any mutation when a required client tool is
// missing or the docker daemon is down.
func (b *Bootstrapper) prerequisitesStep() sequencer.Step {
	return sequencer.Step{
		Name: "prerequisites",
		Action: func(ctx context.Context) error {
			if err := b.clients.CheckTools(); err != nil {
				return err
			}
			return b.clients.Runtime.Ping(ctx)
		},
	}
}

func (b *Bootstrapper) networkStep() sequencer.Step {
	return sequencer.Step{
		Name: "docker network",
		Guard: func(ctx context.Context) (bool, error) {
			return b.clients.Runtime.NetworkExists(ctx, b.cfg.NetworkName)
		},
		Action: func(ctx context.Context) error {
			return b.clients.Runtime.CreateNetwork(ctx, b.cfg.NetworkName)
		},
	}
}

// infraContainers are the compose-managed containers the environment needs.
func infraContainers() []string {
	return []string{config.MySQLContainer, config.RedisContainer, config.FrontendContainer}
}

func (b *Bootstrapper) infraStep() sequencer.Step {
	allRunning := func(ctx context.Context) (bool, error) {
		for _, name := range infraContainers() {
			running, err := b.clients.Runtime.ContainerRunning(ctx, name)
			if err != nil || !running {
				return false, err
			}
		}
		return true, nil
	}

	return sequencer.Step{
		Name:  "infra stack",
		Guard: allRunning,
		Action: func(ctx context.Context) error {
			return b.clients.Runtime.ComposeUp(ctx, b.cfg.ComposeFile)
		},
		Readiness: &sequencer.Readiness{
			Check:    allRunning,
			Interval: b.timeouts.PollInterval,
			Timeout:  b.timeouts.ComposeUp,
		},
	}
}

// clusterStep reuses an existing cluster unless Recreate is set, in which
// case the operator confirms before the old cluster is deleted.
func (b *Bootstrapper) clusterStep() sequencer.Step {
	return sequencer.Step{
		Name: "kind cluster",
		Guard: func(ctx context.Context) (bool, error) {
			exists, err := b.clients.Cluster.Exists(ctx, b.cfg.ClusterName)
			if err != nil {
				return false, err
			}
			return exists && !b.cfg.Recreate, nil
		},
		Action: func(ctx context.Context) error {
			exists, err := b.clients.Cluster.Exists(ctx, b.cfg.ClusterName)
			if err != nil {
				return err
			}
			if exists {
				confirmed, err := b.clients.Confirm(b.cfg.ClusterName)
				if err != nil {
					return fmt.Errorf("confirmation prompt: %w", err)
				}
				if !confirmed {
					return fmt.Errorf("cluster recreation declined")
				}
				if err := b.clients.Cluster.Delete(ctx, b.cfg.ClusterName); err != nil {
					return err
				}
			}
			return b.clients.Cluster.Create(ctx, b.cfg.ClusterName, "")
		},
	}
}

// nodeReadyStep exports the cluster credentials, builds the Kubernetes
// client, and polls until the node reports Ready.
func (b *Bootstrapper) nodeReadyStep() sequencer.Step {
	return sequencer.Step{
		Name: "node ready",
		Action: func(ctx context.Context) error {
			kubeconfig, err := b.clients.Cluster.Kubeconfig(ctx, b.cfg.ClusterName)
			if err != nil {
				return err
			}
			kube, err := b.clients.NewKube(kubeconfig)
			if err != nil {
				return fmt.Errorf("kubernetes client: %w", err)
			}
			b.kubeconfig = kubeconfig
			b.kube = kube
			return nil
		},
		Readiness: &sequencer.Readiness{
			Check: func(ctx context.Context) (bool, error) {
				return b.kube.NodesReady(ctx)
			},
			Interval: b.timeouts.PollInterval,
			Timeout:  b.timeouts.NodeReady,
		},
	}
}

// attachStep connects the infra containers and the cluster node to the
// shared network. Already-connected containers are left alone.
func (b *Bootstrapper) attachStep() sequencer.Step {
	return sequencer.Step{
		Name: "network attach",
		Action: func(ctx context.Context) error {
			containers := append(infraContainers(), kind.NodeContainer(b.cfg.ClusterName))
			for _, name := range containers {
				if err := b.clients.Runtime.Connect(ctx, b.cfg.NetworkName, name); err != nil {
					return fmt.Errorf("attach %s to %s: %w", name, b.cfg.NetworkName, err)
				}
			}
			return nil
		},
	}
}

// discoveryStep records container addresses on the shared network in the
// snapshot. Discovery is best-effort: misses degrade the step to a warning,
// and dependent steps skip themselves.
func (b *Bootstrapper) discoveryStep(mysqlOnly bool) sequencer.Step {
	return sequencer.Step{
		Name:      "address discovery",
		AllowSkip: true,
		Action: func(ctx context.Context) error {
			lookup := func(container string) string {
				addr, err := b.clients.Runtime.ContainerAddress(ctx, b.cfg.NetworkName, container)
				if err != nil {
					return ""
				}
				return addr
			}

			b.snap.MySQLAddr = lookup(config.MySQLContainer)
			if !mysqlOnly {
				b.snap.RedisAddr = lookup(config.RedisContainer)
				b.snap.NodeAddr = lookup(kind.NodeContainer(b.cfg.ClusterName))
			}

			var missing []string
			if b.snap.MySQLAddr == "" {
				missing = append(missing, config.MySQLContainer)
			}
			if !mysqlOnly {
				if b.snap.RedisAddr == "" {
					missing = append(missing, config.RedisContainer)
				}
				if b.snap.NodeAddr == "" {
					missing = append(missing, kind.NodeContainer(b.cfg.ClusterName))
				}
			}
			if len(missing) > 0 {
				return sequencer.Skip("no address on network %s for: %s", b.cfg.NetworkName, strings.Join(missing, ", "))
			}
			return nil
		},
	}
}

// platformConfigStep rewrites the MySQL connection field in the platform
// config file. A discovery miss or a missing field is a warning, never a
// failure: the file belongs to the platform and may legitimately differ.
func (b *Bootstrapper) platformConfigStep() sequencer.Step {
	return sequencer.Step{
		Name:      "platform config",
		AllowSkip: true,
		Action: func(ctx context.Context) error {
			if b.snap.MySQLAddr == "" {
				return sequencer.Skip("mysql address not discovered, leaving %s untouched", b.cfg.PlatformConfig)
			}
			value := fmt.Sprintf("%s:%d", b.snap.MySQLAddr, config.MySQLPort)
			found, err := configfile.RewriteFile(b.cfg.PlatformConfig, config.MySQLServiceField, value)
			if err != nil {
				return err
			}
			if !found {
				return sequencer.Skip("field %s not found in %s", config.MySQLServiceField, b.cfg.PlatformConfig)
			}
			return nil
		},
	}
}

func (b *Bootstrapper) namespacesStep() sequencer.Step {
	return sequencer.Step{
		Name: "namespaces",
		Action: func(ctx context.Context) error {
			kube, err := b.requireKube()
			if err != nil {
				return err
			}
			labels := map[string]string{"app.kubernetes.io/managed-by": "cubelab"}
			for _, ns := range b.cfg.Namespaces {
				if _, err := kube.EnsureNamespace(ctx, ns, labels); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// kubeconfigSecretStep copies the cluster credentials into a secret so
// in-cluster platform components can reach the API server the same way the
// operator does.
func (b *Bootstrapper) kubeconfigSecretStep() sequencer.Step {
	return sequencer.Step{
		Name: "kubeconfig secret",
		Action: func(ctx context.Context) error {
			kube, err := b.requireKube()
			if err != nil {
				return err
			}
			return kube.EnsureSecret(ctx, config.InfraNamespace, "kubernetes-config", map[string][]byte{
				"config": b.kubeconfig,
			})
		},
	}
}

func (b *Bootstrapper) minioStep() sequencer.Step {
	return sequencer.Step{
		Name: "object storage",
		Action: func(ctx context.Context) error {
			kube, err := b.requireKube()
			if err != nil {
				return err
			}
			return b.applyWithRetry(ctx, kube, minioManifest)
		},
		Readiness: &sequencer.Readiness{
			Check: func(ctx context.Context) (bool, error) {
				return b.kube.DeploymentReady(ctx, config.InfraNamespace, "minio")
			},
			Interval: b.timeouts.PollInterval,
			Timeout:  b.timeouts.DeployReady,
		},
	}
}

// bucketsStep creates the platform's default buckets through the storage
// NodePort. It needs the node address, so a discovery miss skips it.
func (b *Bootstrapper) bucketsStep() sequencer.Step {
	return sequencer.Step{
		Name:      "storage buckets",
		AllowSkip: true,
		Action: func(ctx context.Context) error {
			if b.snap.NodeAddr == "" {
				return sequencer.Skip("node address not discovered, cannot reach object storage")
			}
			endpoint := fmt.Sprintf("http://%s:%d", b.snap.NodeAddr, config.MinioNodePort)
			store, err := b.clients.NewStore(endpoint)
			if err != nil {
				return fmt.Errorf("storage client: %w", err)
			}
			err = retry.Poll(ctx, b.timeouts.PollInterval, b.timeouts.DeployReady, func(ctx context.Context) (bool, error) {
				return store.Healthy(ctx), nil
			})
			if err != nil {
				return fmt.Errorf("storage endpoint %s: %w", endpoint, err)
			}
			return retry.WithExponentialBackoff(ctx, func() error {
				return store.EnsureBuckets(ctx, b.cfg.Buckets)
			}, retry.WithMaxRetries(b.timeouts.RetryMaxAttempts), retry.WithInitialDelay(b.timeouts.RetryInitialDelay))
		},
	}
}

// dashboardStep installs the dashboard chart, applies the admin RBAC, and
// stores freshly generated admin credentials (bcrypt hash only) in the
// cluster.
func (b *Bootstrapper) dashboardStep() sequencer.Step {
	return sequencer.Step{
		Name: "dashboard",
		Action: func(ctx context.Context) error {
			kube, err := b.requireKube()
			if err != nil {
				return err
			}

			chart, err := b.clients.NewChart(b.kubeconfig, dashboardNamespace)
			if err != nil {
				return fmt.Errorf("chart client: %w", err)
			}
			values := map[string]interface{}{
				"protocolHttp": false,
				"service": map[string]interface{}{
					"externalPort": 8443,
				},
			}
			if err := chart.InstallOrUpgrade(ctx, dashboardRelease, dashboardRepoURL, dashboardChart, dashboardChartVersion, values); err != nil {
				return fmt.Errorf("dashboard release: %w", err)
			}

			if err := b.applyWithRetry(ctx, kube, dashboardRBACManifest); err != nil {
				return err
			}

			creds, err := generateAdminCredentials()
			if err != nil {
				return err
			}
			b.creds = creds
			return kube.EnsureSecret(ctx, dashboardNamespace, "dashboard-admin", map[string][]byte{
				"username":      []byte(creds.User),
				"password-hash": []byte(creds.PasswordHash),
			})
		},
	}
}

func (b *Bootstrapper) workflowStep() sequencer.Step {
	return sequencer.Step{
		Name: "workflow engine",
		Action: func(ctx context.Context) error {
			kube, err := b.requireKube()
			if err != nil {
				return err
			}
			return b.applyWithRetry(ctx, kube, argoManifest)
		},
		Readiness: &sequencer.Readiness{
			Check: func(ctx context.Context) (bool, error) {
				ready, err := b.kube.DeploymentReady(ctx, workflowNamespace, "workflow-controller")
				if err != nil || !ready {
					return false, err
				}
				return b.kube.DeploymentReady(ctx, workflowNamespace, "argo-server")
			},
			Interval: b.timeouts.PollInterval,
			Timeout:  b.timeouts.DeployReady,
		},
	}
}

// overlayStep rewrites the MySQL and Redis connection fields in the
// deployment overlay, then applies it. Both addresses must have been
// discovered; otherwise the stale overlay is left unapplied with a warning.
func (b *Bootstrapper) overlayStep() sequencer.Step {
	return sequencer.Step{
		Name:      "deployment overlay",
		AllowSkip: true,
		Action: func(ctx context.Context) error {
			kube, err := b.requireKube()
			if err != nil {
				return err
			}
			if b.snap.MySQLAddr == "" || b.snap.RedisAddr == "" {
				return sequencer.Skip("backing service addresses not discovered, overlay not applied")
			}

			rewrites := []struct {
				field string
				value string
			}{
				{config.MySQLServiceField, fmt.Sprintf("%s:%d", b.snap.MySQLAddr, config.MySQLPort)},
				{config.RedisServiceField, fmt.Sprintf("%s:%d", b.snap.RedisAddr, config.RedisPort)},
			}
			for _, r := range rewrites {
				found, err := configfile.RewriteFile(b.cfg.OverlayFile, r.field, r.value)
				if err != nil {
					return err
				}
				if !found {
					return sequencer.Skip("field %s not found in %s", r.field, b.cfg.OverlayFile)
				}
			}

			data, err := os.ReadFile(b.cfg.OverlayFile) // #nosec G304 - path is operator-provided
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", b.cfg.OverlayFile, err)
			}
			return b.applyWithRetry(ctx, kube, string(data))
		},
	}
}

// exposeStep creates the NodePort services with the documented fixed ports.
// The storage NodePort ships with the MinIO manifest.
func (b *Bootstrapper) exposeStep() sequencer.Step {
	return sequencer.Step{
		Name: "expose services",
		Guard: func(ctx context.Context) (bool, error) {
			kube, err := b.requireKube()
			if err != nil {
				return false, err
			}
			for _, svc := range []struct{ namespace, name string }{
				{dashboardNamespace, "dashboard-external"},
				{workflowNamespace, "workflow-external"},
			} {
				exists, err := kube.ServiceExists(ctx, svc.namespace, svc.name)
				if err != nil || !exists {
					return false, err
				}
			}
			return true, nil
		},
		Action: func(ctx context.Context) error {
			kube, err := b.requireKube()
			if err != nil {
				return err
			}
			err = kube.EnsureNodePortService(ctx, dashboardNamespace, "dashboard-external",
				map[string]string{"app.kubernetes.io/name": dashboardChart}, 8443, config.DashboardNodePort)
			if err != nil {
				return err
			}
			return kube.EnsureNodePortService(ctx, workflowNamespace, "workflow-external",
				map[string]string{"app": "argo-server"}, 2746, config.WorkflowNodePort)
		},
	}
}
