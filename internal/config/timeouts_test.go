package config

import (
	"testing"
	"time"
)

func TestLoadTimeouts_Defaults(t *testing.T) {
	timeouts := LoadTimeouts()

	if timeouts.NodeReady != 5*time.Minute {
		t.Errorf("expected NodeReady 5m, got %v", timeouts.NodeReady)
	}
	if timeouts.DeployReady != 10*time.Minute {
		t.Errorf("expected DeployReady 10m, got %v", timeouts.DeployReady)
	}
	if timeouts.PollInterval != 5*time.Second {
		t.Errorf("expected PollInterval 5s, got %v", timeouts.PollInterval)
	}
	if timeouts.RetryMaxAttempts != 5 {
		t.Errorf("expected RetryMaxAttempts 5, got %d", timeouts.RetryMaxAttempts)
	}
}

func TestLoadTimeouts_EnvOverride(t *testing.T) {
	t.Setenv("CUBELAB_TIMEOUT_NODE_READY", "90s")
	t.Setenv("CUBELAB_RETRY_MAX_ATTEMPTS", "9")

	timeouts := LoadTimeouts()

	if timeouts.NodeReady != 90*time.Second {
		t.Errorf("expected NodeReady 90s, got %v", timeouts.NodeReady)
	}
	if timeouts.RetryMaxAttempts != 9 {
		t.Errorf("expected RetryMaxAttempts 9, got %d", timeouts.RetryMaxAttempts)
	}
}

func TestLoadTimeouts_InvalidEnvFallsBack(t *testing.T) {
	t.Setenv("CUBELAB_TIMEOUT_DEPLOY_READY", "not-a-duration")
	t.Setenv("CUBELAB_RETRY_MAX_ATTEMPTS", "not-a-number")

	timeouts := LoadTimeouts()

	if timeouts.DeployReady != 10*time.Minute {
		t.Errorf("expected default DeployReady, got %v", timeouts.DeployReady)
	}
	if timeouts.RetryMaxAttempts != 5 {
		t.Errorf("expected default RetryMaxAttempts, got %d", timeouts.RetryMaxAttempts)
	}
}
