package ui

import (
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// ConfirmRecreate asks the operator to confirm destructive cluster
// recreation. Non-interactive sessions (pipes, CI) confirm implicitly, so
// scripted runs never hang on a prompt.
func ConfirmRecreate(clusterName string) (bool, error) {
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return true, nil
	}

	var confirmed bool
	err := huh.NewConfirm().
		Title("Delete and recreate cluster " + clusterName + "?").
		Description("All workloads and data inside the cluster will be lost.").
		Affirmative("Recreate").
		Negative("Abort").
		Value(&confirmed).
		Run()
	if err != nil {
		return false, err
	}
	return confirmed, nil
}
