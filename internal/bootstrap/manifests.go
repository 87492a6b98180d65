package bootstrap

import _ "embed"

// In-cluster service manifests applied during bootstrap. They are trimmed to
// what the local development environment needs; production deployments of
// these services are out of scope here.
var (
	//go:embed manifests/minio.yaml
	minioManifest string

	//go:embed manifests/argo.yaml
	argoManifest string

	//go:embed manifests/dashboard-rbac.yaml
	dashboardRBACManifest string
)
