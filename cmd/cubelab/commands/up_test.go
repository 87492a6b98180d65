package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUp(t *testing.T) {
	cmd := Up()

	require.NotNil(t, cmd)
	assert.Equal(t, "up", cmd.Use)
	assert.NotNil(t, cmd.RunE, "up command should have RunE function")
}

func TestUp_ConfigFlag(t *testing.T) {
	cmd := Up()

	flag := cmd.Flags().Lookup("config")
	require.NotNil(t, flag, "config flag should exist")
	assert.Equal(t, "c", flag.Shorthand)
	assert.Equal(t, "", flag.DefValue)
}

func TestUp_RecreateFlag(t *testing.T) {
	cmd := Up()

	flag := cmd.Flags().Lookup("recreate")
	require.NotNil(t, flag, "recreate flag should exist")
	assert.Equal(t, "false", flag.DefValue)
}

func TestRepair(t *testing.T) {
	cmd := Repair()

	require.NotNil(t, cmd)
	assert.Equal(t, "repair", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	flag := cmd.Flags().Lookup("config")
	require.NotNil(t, flag)
	assert.Equal(t, "c", flag.Shorthand)
}

func TestDoctor(t *testing.T) {
	cmd := Doctor()

	require.NotNil(t, cmd)
	assert.Equal(t, "doctor", cmd.Use)
	assert.NotNil(t, cmd.RunE)
}
