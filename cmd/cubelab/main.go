// Package main is the entry point for the cubelab CLI.
//
// cubelab bootstraps and repairs a local Cube Studio development
// environment: the infra container stack, a kind Kubernetes cluster, and
// the in-cluster platform services.
//
// Commands: up, repair, doctor, version, completion.
//
// For detailed usage information, run:
//
//	cubelab --help
package main

import (
	"fmt"
	"os"

	"github.com/cubestudio/cubelab/cmd/cubelab/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
