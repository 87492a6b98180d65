// Package docker drives the docker CLI for the pieces of the environment
// that live outside the cluster: the shared network, the infra container
// stack, and address discovery on that network.
package docker

import (
	"context"
	"encoding/json"
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

// CLI talks to the container runtime through the docker binary.
type CLI struct {
	run commandRunner
}

// NewCLI creates a docker CLI client.
func NewCLI() *CLI {
	return &CLI{run: runCommand}
}

// Ping verifies the docker daemon is reachable.
func (c *CLI) Ping(ctx context.Context) error {
	if _, err := c.run(ctx, "docker", "info", "--format", "{{.ServerVersion}}"); err != nil {
		return fmt.Errorf("docker daemon not reachable: %w", err)
	}
	return nil
}

// NetworkExists reports whether the named network exists.
func (c *CLI) NetworkExists(ctx context.Context, name string) (bool, error) {
	out, err := c.run(ctx, "docker", "network", "ls", "--format", "{{.Name}}")
	if err != nil {
		return false, err
	}
	for _, line := range strings.Split(string(out), "\n") {
		if strings.TrimSpace(line) == name {
			return true, nil
		}
	}
	return false, nil
}

// CreateNetwork creates a bridge network. An "already exists" response from
// the daemon is treated as success.
func (c *CLI) CreateNetwork(ctx context.Context, name string) error {
	_, err := c.run(ctx, "docker", "network", "create", name)
	if err != nil && strings.Contains(err.Error(), "already exists") {
		return nil
	}
	return err
}

// Connect attaches a container to a network. Already-connected is success.
func (c *CLI) Connect(ctx context.Context, network, container string) error {
	_, err := c.run(ctx, "docker", "network", "connect", network, container)
	if err != nil && strings.Contains(err.Error(), "already exists in network") {
		return nil
	}
	return err
}

// ContainerRunning reports whether the named container is running.
func (c *CLI) ContainerRunning(ctx context.Context, name string) (bool, error) {
	out, err := c.run(ctx, "docker", "ps", "--filter", "name="+name, "--filter", "status=running", "--format", "{{.Names}}")
	if err != nil {
		return false, err
	}
	for _, line := range strings.Split(string(out), "\n") {
		if strings.TrimSpace(line) == name {
			return true, nil
		}
	}
	return false, nil
}

// ComposeUp starts the infra stack defined by the compose file in detached
// mode. Compose is idempotent: containers that already run are left alone.
func (c *CLI) ComposeUp(ctx context.Context, composeFile string) error {
	_, err := c.run(ctx, "docker", "compose", "-f", composeFile, "up", "-d")
	return err
}

// ContainerAddress discovers a container's IPv4 address on the given
// network. Returns an empty string, not an error, when the container has no
// address there; absence of a match is expected right after a daemon restart.
func (c *CLI) ContainerAddress(ctx context.Context, network, container string) (string, error) {
	out, err := c.run(ctx, "docker", "inspect", container)
	if err != nil {
		return "", err
	}
	return parseNetworkAddress(out, network)
}

// inspectEntry is the subset of `docker inspect` output we read.
type inspectEntry struct {
	NetworkSettings struct {
		Networks map[string]struct {
			IPAddress string `json:"IPAddress"`
		} `json:"Networks"`
	} `json:"NetworkSettings"`
}

// parseNetworkAddress extracts the container's address on network from
// `docker inspect` JSON. Best-effort: malformed or unexpected output yields
// an empty address, not an error.
func parseNetworkAddress(inspectJSON []byte, network string) (string, error) {
	var entries []inspectEntry
	if err := json.Unmarshal(inspectJSON, &entries); err != nil {
		return "", nil
	}
	if len(entries) == 0 {
		return "", nil
	}

	net, ok := entries[0].NetworkSettings.Networks[network]
	if !ok {
		return "", nil
	}
	return net.IPAddress, nil
}
