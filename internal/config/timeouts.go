package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable timeout values.
// These values can be customized via environment variables.
type Timeouts struct {
	NodeReady    time.Duration // Timeout for the kind node Ready condition
	DeployReady  time.Duration // Timeout for in-cluster deployments to become ready
	ComposeUp    time.Duration // Timeout for the infra container stack to come up
	ClusterOp    time.Duration // Timeout for kind create/delete operations
	PollInterval time.Duration // Interval between readiness checks

	RetryMaxAttempts  int           // Maximum number of retry attempts for transient failures
	RetryInitialDelay time.Duration // Initial delay between retries
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - CUBELAB_TIMEOUT_NODE_READY (default: 5m)
//   - CUBELAB_TIMEOUT_DEPLOY_READY (default: 10m)
//   - CUBELAB_TIMEOUT_COMPOSE_UP (default: 3m)
//   - CUBELAB_TIMEOUT_CLUSTER_OP (default: 10m)
//   - CUBELAB_POLL_INTERVAL (default: 5s)
//   - CUBELAB_RETRY_MAX_ATTEMPTS (default: 5)
//   - CUBELAB_RETRY_INITIAL_DELAY (default: 1s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		NodeReady:         parseDuration("CUBELAB_TIMEOUT_NODE_READY", 5*time.Minute),
		DeployReady:       parseDuration("CUBELAB_TIMEOUT_DEPLOY_READY", 10*time.Minute),
		ComposeUp:         parseDuration("CUBELAB_TIMEOUT_COMPOSE_UP", 3*time.Minute),
		ClusterOp:         parseDuration("CUBELAB_TIMEOUT_CLUSTER_OP", 10*time.Minute),
		PollInterval:      parseDuration("CUBELAB_POLL_INTERVAL", 5*time.Second),
		RetryMaxAttempts:  parseInt("CUBELAB_RETRY_MAX_ATTEMPTS", 5),
		RetryInitialDelay: parseDuration("CUBELAB_RETRY_INITIAL_DELAY", 1*time.Second),
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}

	return d
}

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return n
}
