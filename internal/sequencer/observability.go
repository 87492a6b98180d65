package sequencer

import (
	"fmt"
	"log"
	"strings"
	"time"
)

// Observer receives structured progress events while a sequence runs.
type Observer interface {
	// Printf emits a free-form progress line.
	Printf(format string, v ...any)

	// Event emits a structured event.
	Event(event Event)
}

// Event represents a structured sequencing event.
type Event struct {
	Type      EventType         // Type of event
	Step      string            // Step name
	Message   string            // Human-readable message
	Timestamp time.Time         // When the event occurred
	Fields    map[string]string // Additional contextual fields
}

// EventType represents the type of sequencing event.
type EventType string

const (
	// EventStepStarted indicates a step has started.
	EventStepStarted EventType = "step.started"
	// EventStepCompleted indicates a step completed successfully.
	EventStepCompleted EventType = "step.completed"
	// EventStepNoOp indicates the guard held and the step did nothing.
	EventStepNoOp EventType = "step.noop"
	// EventStepSkipped indicates the step degraded to a warning.
	EventStepSkipped EventType = "step.skipped"
	// EventStepFailed indicates a step failed, terminating the run.
	EventStepFailed EventType = "step.failed"
	// EventRunCompleted indicates the whole sequence completed.
	EventRunCompleted EventType = "run.completed"
	// EventRunFailed indicates the whole sequence failed.
	EventRunFailed EventType = "run.failed"
)

// ConsoleObserver implements Observer using the standard log package.
type ConsoleObserver struct{}

// NewConsoleObserver creates a new console-based observer.
func NewConsoleObserver() *ConsoleObserver {
	return &ConsoleObserver{}
}

// Printf implements Observer.
func (o *ConsoleObserver) Printf(format string, v ...any) {
	log.Printf(format, v...)
}

// Event implements Observer.
func (o *ConsoleObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	parts := []string{string(event.Type)}
	if event.Step != "" {
		parts = append(parts, fmt.Sprintf("[%s]", event.Step))
	}
	parts = append(parts, event.Message)

	if len(event.Fields) > 0 {
		var fieldParts []string
		for k, v := range event.Fields {
			fieldParts = append(fieldParts, fmt.Sprintf("%s=%s", k, v))
		}
		parts = append(parts, fmt.Sprintf("(%s)", strings.Join(fieldParts, ", ")))
	}

	log.Print(strings.Join(parts, " "))
}
