package sequencer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cubestudio/cubelab/internal/util/retry"
)

// RunState is the runner's position in its lifecycle.
type RunState string

const (
	// StateNotStarted means Run has not been called.
	StateNotStarted RunState = "NotStarted"
	// StateRunning means a step is executing.
	StateRunning RunState = "Running"
	// StateCompleted is the terminal success state.
	StateCompleted RunState = "Completed"
	// StateFailed is the terminal failure state.
	StateFailed RunState = "Failed"
)

// Result summarizes a finished run.
type Result struct {
	State RunState
	Steps []StepResult
}

// Warnings returns the results of steps that degraded to a warning.
func (r *Result) Warnings() []StepResult {
	var out []StepResult
	for _, s := range r.Steps {
		if s.Outcome == OutcomeSkipped {
			out = append(out, s)
		}
	}
	return out
}

// Runner executes a fixed, ordered list of steps.
type Runner struct {
	observer Observer
	state    RunState
}

// New creates a runner reporting to observer. A nil observer falls back to
// console logging.
func New(observer Observer) *Runner {
	if observer == nil {
		observer = NewConsoleObserver()
	}
	return &Runner{observer: observer, state: StateNotStarted}
}

// State returns the runner's current lifecycle state.
func (r *Runner) State() RunState {
	return r.state
}

// Run executes steps in order. The first unrecoverable failure terminates
// the run with a non-nil error and a Failed result; skipped steps only
// produce warnings. The returned result is non-nil in both cases.
func (r *Runner) Run(ctx context.Context, steps []Step) (*Result, error) {
	start := time.Now()
	result := &Result{State: StateRunning}
	r.state = StateRunning

	r.observer.Printf("Starting sequence with %d steps...", len(steps))

	for i, step := range steps {
		label := fmt.Sprintf("%s (%d/%d)", step.Name, i+1, len(steps))
		stepStart := time.Now()

		r.observer.Event(Event{Type: EventStepStarted, Step: step.Name, Message: "starting"})

		outcome, err := r.runStep(ctx, step)
		sr := StepResult{
			Name:     step.Name,
			Outcome:  outcome,
			Err:      err,
			Duration: time.Since(stepStart),
		}
		result.Steps = append(result.Steps, sr)

		switch outcome {
		case OutcomeNoOp:
			r.observer.Event(Event{Type: EventStepNoOp, Step: step.Name, Message: "already satisfied, nothing to do"})
		case OutcomeSkipped:
			r.observer.Event(Event{Type: EventStepSkipped, Step: step.Name, Message: fmt.Sprintf("warning: %v", err)})
		case OutcomeFailed:
			r.observer.Event(Event{Type: EventStepFailed, Step: step.Name, Message: fmt.Sprintf("failed: %v", err)})
			r.state = StateFailed
			result.State = StateFailed
			r.observer.Event(Event{Type: EventRunFailed, Message: fmt.Sprintf("aborted at step %s", label)})
			return result, fmt.Errorf("step %q failed: %w", step.Name, err)
		default:
			r.observer.Event(Event{
				Type:    EventStepCompleted,
				Step:    step.Name,
				Message: fmt.Sprintf("completed in %v", sr.Duration.Round(time.Millisecond)),
			})
		}
	}

	r.state = StateCompleted
	result.State = StateCompleted
	r.observer.Event(Event{
		Type:    EventRunCompleted,
		Message: fmt.Sprintf("sequence completed in %v", time.Since(start).Round(time.Millisecond)),
	})
	return result, nil
}

// runStep executes one step: guard, action, then bounded readiness polling.
func (r *Runner) runStep(ctx context.Context, step Step) (Outcome, error) {
	if step.Guard != nil {
		satisfied, err := step.Guard(ctx)
		if err != nil {
			return OutcomeFailed, fmt.Errorf("guard check: %w", err)
		}
		if satisfied {
			return OutcomeNoOp, nil
		}
	}

	if step.Action != nil {
		if err := step.Action(ctx); err != nil {
			if step.AllowSkip && errors.Is(err, ErrSkip) {
				return OutcomeSkipped, err
			}
			return OutcomeFailed, err
		}
	}

	if step.Readiness != nil {
		err := retry.Poll(ctx, step.Readiness.Interval, step.Readiness.Timeout, step.Readiness.Check)
		if err != nil {
			if retry.IsTimeout(err) {
				return OutcomeFailed, fmt.Errorf("readiness: %w", err)
			}
			return OutcomeFailed, err
		}
	}

	return OutcomeDone, nil
}
