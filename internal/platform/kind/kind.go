// Package kind manages the local Kubernetes cluster through the kind CLI.
package kind

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// commandRunner abstracts command execution so tests can fake CLI output.
type commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return out, fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return out, nil
}

// CLI talks to the cluster manager through the kind binary.
type CLI struct {
	run commandRunner
}

// NewCLI creates a kind CLI client.
func NewCLI() *CLI {
	return &CLI{run: runCommand}
}

// Exists reports whether a cluster with the given name exists.
func (c *CLI) Exists(ctx context.Context, name string) (bool, error) {
	out, err := c.run(ctx, "kind", "get", "clusters")
	if err != nil {
		// kind exits non-zero when no clusters exist at all
		if strings.Contains(strings.ToLower(err.Error()), "no kind clusters") {
			return false, nil
		}
		return false, err
	}
	for _, line := range strings.Split(string(out), "\n") {
		if strings.TrimSpace(line) == name {
			return true, nil
		}
	}
	return false, nil
}

// Create creates a cluster. Passing a non-empty configPath forwards a kind
// cluster config file.
func (c *CLI) Create(ctx context.Context, name, configPath string) error {
	args := []string{"create", "cluster", "--name", name, "--wait", "60s"}
	if configPath != "" {
		args = append(args, "--config", configPath)
	}
	if _, err := c.run(ctx, "kind", args...); err != nil {
		return fmt.Errorf("create cluster: %w", err)
	}
	return nil
}

// Delete removes the cluster. Deleting a cluster that does not exist is a
// no-op for kind, so Delete is safe to call unconditionally.
func (c *CLI) Delete(ctx context.Context, name string) error {
	if _, err := c.run(ctx, "kind", "delete", "cluster", "--name", name); err != nil {
		return fmt.Errorf("delete cluster: %w", err)
	}
	return nil
}

// Kubeconfig exports the cluster's credentials file.
func (c *CLI) Kubeconfig(ctx context.Context, name string) ([]byte, error) {
	out, err := c.run(ctx, "kind", "get", "kubeconfig", "--name", name)
	if err != nil {
		return nil, fmt.Errorf("get kubeconfig: %w", err)
	}
	return out, nil
}

// NodeContainer returns the docker container name of the cluster's control
// plane node. kind names it deterministically from the cluster name.
func NodeContainer(clusterName string) string {
	return clusterName + "-control-plane"
}
