package sequencer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quietObserver struct{}

func (quietObserver) Printf(string, ...any) {}
func (quietObserver) Event(Event)           {}

func TestRun_AllStepsCompleted(t *testing.T) {
	t.Parallel()
	var order []string
	steps := []Step{
		{Name: "first", Action: func(context.Context) error { order = append(order, "first"); return nil }},
		{Name: "second", Action: func(context.Context) error { order = append(order, "second"); return nil }},
	}

	r := New(quietObserver{})
	result, err := r.Run(context.Background(), steps)

	require.NoError(t, err)
	assert.Equal(t, StateCompleted, result.State)
	assert.Equal(t, StateCompleted, r.State())
	assert.Equal(t, []string{"first", "second"}, order)
	require.Len(t, result.Steps, 2)
	assert.Equal(t, OutcomeDone, result.Steps[0].Outcome)
	assert.Equal(t, OutcomeDone, result.Steps[1].Outcome)
}

func TestRun_GuardPreventsAction(t *testing.T) {
	t.Parallel()
	actionRan := false
	steps := []Step{{
		Name:   "guarded",
		Guard:  func(context.Context) (bool, error) { return true, nil },
		Action: func(context.Context) error { actionRan = true; return nil },
	}}

	r := New(quietObserver{})
	result, err := r.Run(context.Background(), steps)

	require.NoError(t, err)
	assert.False(t, actionRan, "mutating action must not run when the guard holds")
	assert.Equal(t, OutcomeNoOp, result.Steps[0].Outcome)
}

func TestRun_GuardFalseRunsAction(t *testing.T) {
	t.Parallel()
	actionRan := false
	steps := []Step{{
		Name:   "guarded",
		Guard:  func(context.Context) (bool, error) { return false, nil },
		Action: func(context.Context) error { actionRan = true; return nil },
	}}

	r := New(quietObserver{})
	_, err := r.Run(context.Background(), steps)

	require.NoError(t, err)
	assert.True(t, actionRan)
}

func TestRun_FailureAbortsRemainingSteps(t *testing.T) {
	t.Parallel()
	secondRan := false
	steps := []Step{
		{Name: "boom", Action: func(context.Context) error { return errors.New("boom") }},
		{Name: "never", Action: func(context.Context) error { secondRan = true; return nil }},
	}

	r := New(quietObserver{})
	result, err := r.Run(context.Background(), steps)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, StateFailed, result.State)
	assert.Equal(t, StateFailed, r.State())
	assert.False(t, secondRan, "no step may run after a fatal failure")
	require.Len(t, result.Steps, 1)
	assert.Equal(t, OutcomeFailed, result.Steps[0].Outcome)
}

func TestRun_SkipDegradesToWarning(t *testing.T) {
	t.Parallel()
	steps := []Step{
		{
			Name:      "discovery-dependent",
			AllowSkip: true,
			Action:    func(context.Context) error { return Skip("address not discovered") },
		},
		{Name: "after", Action: func(context.Context) error { return nil }},
	}

	r := New(quietObserver{})
	result, err := r.Run(context.Background(), steps)

	require.NoError(t, err, "a skipped step must not fail the run")
	assert.Equal(t, StateCompleted, result.State)
	assert.Equal(t, OutcomeSkipped, result.Steps[0].Outcome)
	assert.Equal(t, OutcomeDone, result.Steps[1].Outcome)
	require.Len(t, result.Warnings(), 1)
	assert.Equal(t, "discovery-dependent", result.Warnings()[0].Name)
}

func TestRun_SkipWithoutAllowSkipIsFatal(t *testing.T) {
	t.Parallel()
	steps := []Step{{
		Name:   "strict",
		Action: func(context.Context) error { return Skip("nope") },
	}}

	r := New(quietObserver{})
	result, err := r.Run(context.Background(), steps)

	require.Error(t, err)
	assert.Equal(t, StateFailed, result.State)
}

func TestRun_ReadinessPollsUntilTrue(t *testing.T) {
	t.Parallel()
	checks := 0
	steps := []Step{{
		Name: "converging",
		Readiness: &Readiness{
			Check: func(context.Context) (bool, error) {
				checks++
				return checks >= 3, nil
			},
			Interval: time.Millisecond,
			Timeout:  time.Second,
		},
	}}

	r := New(quietObserver{})
	result, err := r.Run(context.Background(), steps)

	require.NoError(t, err)
	assert.Equal(t, StateCompleted, result.State)
	assert.Equal(t, 3, checks)
}

func TestRun_ReadinessTimeoutIsFatal(t *testing.T) {
	t.Parallel()
	steps := []Step{
		{
			Name: "never-ready",
			Readiness: &Readiness{
				Check:    func(context.Context) (bool, error) { return false, nil },
				Interval: time.Millisecond,
				Timeout:  5 * time.Millisecond,
			},
		},
		{Name: "never", Action: func(context.Context) error { t.Error("must not run"); return nil }},
	}

	r := New(quietObserver{})
	result, err := r.Run(context.Background(), steps)

	require.Error(t, err)
	assert.Equal(t, StateFailed, result.State)
}

func TestRun_GuardErrorIsFatal(t *testing.T) {
	t.Parallel()
	steps := []Step{{
		Name:  "bad-guard",
		Guard: func(context.Context) (bool, error) { return false, errors.New("cannot check") },
	}}

	r := New(quietObserver{})
	_, err := r.Run(context.Background(), steps)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "guard check")
}

func TestRun_Idempotence(t *testing.T) {
	t.Parallel()
	// Simulates a guarded create: the second run sees the resource and
	// must not create it again.
	created := 0
	exists := false
	mkSteps := func() []Step {
		return []Step{{
			Name:  "create-once",
			Guard: func(context.Context) (bool, error) { return exists, nil },
			Action: func(context.Context) error {
				created++
				exists = true
				return nil
			},
		}}
	}

	r1 := New(quietObserver{})
	_, err := r1.Run(context.Background(), mkSteps())
	require.NoError(t, err)

	r2 := New(quietObserver{})
	result, err := r2.Run(context.Background(), mkSteps())
	require.NoError(t, err)

	assert.Equal(t, 1, created, "re-running the sequence must not create duplicates")
	assert.Equal(t, OutcomeNoOp, result.Steps[0].Outcome)
}

func TestRunnerInitialState(t *testing.T) {
	t.Parallel()
	r := New(nil)
	assert.Equal(t, StateNotStarted, r.State())
}
