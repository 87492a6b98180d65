package config

// Defaults for the local development environment. The fixed NodePorts match
// the ports the platform documentation tells operators to open.
const (
	// DefaultClusterName is the kind cluster name.
	DefaultClusterName = "cube-studio"

	// DefaultNetworkName is the shared docker network the infra containers
	// and the kind node are attached to.
	DefaultNetworkName = "cube-dev"

	// DefaultConfigFile is the run configuration auto-detected in the
	// working directory.
	DefaultConfigFile = "cubelab.yaml"

	// RecreateEnvVar is the legacy switch forcing destructive cluster
	// recreation. Recognized for compatibility with the original scripts;
	// new code should set Config.Recreate instead.
	RecreateEnvVar = "CUBELAB_RECREATE"
)

// Infra container names as started by the compose file.
const (
	MySQLContainer    = "cube-mysql"
	RedisContainer    = "cube-redis"
	FrontendContainer = "cube-frontend"
)

// Backing service ports inside the docker network.
const (
	MySQLPort = 3306
	RedisPort = 6379
	MinioPort = 9000
)

// Fixed external NodePorts for the exposed service objects.
const (
	DashboardNodePort = 30280
	MinioNodePort     = 30900
	WorkflowNodePort  = 30246
)

// Connection fields rewritten in place. MySQLServiceField lives in the
// platform config file; the overlay carries both.
const (
	MySQLServiceField = "MYSQL_SERVICE"
	RedisServiceField = "REDIS_SERVICE"
)

// InfraNamespace holds the platform's backing services inside the cluster.
const InfraNamespace = "infra"

// DefaultNamespaces are the platform namespaces created during bootstrap.
func DefaultNamespaces() []string {
	return []string{InfraNamespace, "pipeline", "automl", "service"}
}

// DefaultBuckets are the object-storage buckets the platform expects.
func DefaultBuckets() []string {
	return []string{"cube-studio", "mlpipeline"}
}
