package sequencer

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrSkip marks a step as skipped rather than failed. Returned (wrapped)
// by actions whose preconditions were not discovered at runtime.
var ErrSkip = errors.New("step skipped")

// Skip returns an error that makes an AllowSkip step degrade to a warning.
func Skip(format string, v ...any) error {
	return fmt.Errorf("%w: %s", ErrSkip, fmt.Sprintf(format, v...))
}

// Readiness describes the polling budget for a step that needs external
// convergence after its action runs.
type Readiness struct {
	// Check reports whether the step's outcome has converged.
	Check func(ctx context.Context) (bool, error)

	// Interval between checks.
	Interval time.Duration

	// Timeout bounds the whole polling window. Exhausting it is fatal.
	Timeout time.Duration
}

// Step is one ordered unit of work in a bootstrap sequence.
//
// A step must either be fully idempotent or carry a Guard; the runner never
// re-runs steps, so idempotence only matters across whole-process re-runs.
type Step struct {
	// Name labels the step in status output.
	Name string

	// Guard, if set, is evaluated before Action. When it returns true the
	// resource already exists and the step becomes a logged no-op.
	Guard func(ctx context.Context) (bool, error)

	// Action performs the mutation. May be nil for pure wait steps.
	Action func(ctx context.Context) error

	// Readiness, if set, is polled after Action until it holds or its
	// budget is exhausted.
	Readiness *Readiness

	// AllowSkip lets the action degrade to a warning via Skip instead of
	// failing the run.
	AllowSkip bool
}

// Outcome classifies how a step ended.
type Outcome string

const (
	// OutcomeDone means the action ran (and converged, if applicable).
	OutcomeDone Outcome = "done"
	// OutcomeNoOp means the guard held and the action was not invoked.
	OutcomeNoOp Outcome = "no-op"
	// OutcomeSkipped means the action bailed out with Skip.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeFailed means the step failed and terminated the run.
	OutcomeFailed Outcome = "failed"
)

// StepResult records the outcome of a single executed step.
type StepResult struct {
	Name     string
	Outcome  Outcome
	Err      error
	Duration time.Duration
}
