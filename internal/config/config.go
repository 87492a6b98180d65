// Package config loads the cubelab run configuration and timeout settings.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the run configuration for a bootstrap or repair run.
type Config struct {
	ClusterName string `yaml:"cluster_name"`
	NetworkName string `yaml:"network_name"`

	// ComposeFile starts the infra stack (MySQL, Redis, frontend).
	ComposeFile string `yaml:"compose_file"`

	// PlatformConfig is the platform config file whose MySQL connection
	// field is rewritten in place.
	PlatformConfig string `yaml:"platform_config"`

	// OverlayFile is the deployment overlay whose MySQL and Redis
	// connection fields are rewritten before it is applied.
	OverlayFile string `yaml:"overlay_file"`

	Namespaces []string `yaml:"namespaces"`
	Buckets    []string `yaml:"buckets"`

	// Recreate forces destructive recreation of an existing cluster.
	// Replaces the CUBELAB_RECREATE environment variable of the original
	// scripts; the variable is still folded in by LoadFile.
	Recreate bool `yaml:"recreate"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		ClusterName:    DefaultClusterName,
		NetworkName:    DefaultNetworkName,
		ComposeFile:    "docker-compose.yml",
		PlatformConfig: "config/config.py",
		OverlayFile:    "deploy/overlay.yaml",
		Namespaces:     DefaultNamespaces(),
		Buckets:        DefaultBuckets(),
	}
}

// LoadFile reads and parses the configuration from a YAML file.
// An empty path falls back to cubelab.yaml if present, defaults otherwise.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err != nil {
			cfg := Default()
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path) // #nosec G304 - path is operator-provided
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	if cfg.ClusterName == "" {
		return nil, fmt.Errorf("cluster_name is required")
	}
	if cfg.NetworkName == "" {
		return nil, fmt.Errorf("network_name is required")
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides folds the legacy environment switch into the struct.
func applyEnvOverrides(cfg *Config) {
	if isAffirmative(os.Getenv(RecreateEnvVar)) {
		cfg.Recreate = true
	}
}

func isAffirmative(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}
