package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/cubestudio/cubelab/internal/sequencer"
)

// StatusObserver implements sequencer.Observer with one colored status line
// per step. Colors are dropped automatically when stdout is not a terminal.
type StatusObserver struct {
	out     io.Writer
	colored bool
}

// NewStatusObserver creates an observer writing to stdout.
func NewStatusObserver() *StatusObserver {
	return &StatusObserver{
		out:     os.Stdout,
		colored: isatty.IsTerminal(os.Stdout.Fd()),
	}
}

// Printf implements sequencer.Observer.
func (o *StatusObserver) Printf(format string, v ...any) {
	fmt.Fprintf(o.out, format+"\n", v...)
}

// Event implements sequencer.Observer.
func (o *StatusObserver) Event(event sequencer.Event) {
	switch event.Type {
	case sequencer.EventStepStarted:
		o.line(runMark, dimStyle, event.Step, event.Message)
	case sequencer.EventStepCompleted:
		o.line(checkMark, okStyle, event.Step, event.Message)
	case sequencer.EventStepNoOp:
		o.line(noopMark, dimStyle, event.Step, event.Message)
	case sequencer.EventStepSkipped:
		o.line(warnMark, warnStyle, event.Step, event.Message)
	case sequencer.EventStepFailed:
		o.line(crossMark, failStyle, event.Step, event.Message)
	case sequencer.EventRunCompleted:
		fmt.Fprintln(o.out, o.render(okStyle, event.Message))
	case sequencer.EventRunFailed:
		fmt.Fprintln(o.out, o.render(failStyle, event.Message))
	default:
		fmt.Fprintln(o.out, event.Message)
	}
}

func (o *StatusObserver) line(mark string, style lipgloss.Style, step, message string) {
	if step != "" {
		fmt.Fprintf(o.out, "%s %s %s\n", o.render(style, mark), step, o.render(dimStyle, message))
		return
	}
	fmt.Fprintf(o.out, "%s %s\n", o.render(style, mark), message)
}

func (o *StatusObserver) render(style lipgloss.Style, s string) string {
	if !o.colored {
		return s
	}
	return style.Render(s)
}
