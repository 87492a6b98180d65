package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cubestudio/cubelab/internal/sequencer"
)

func TestStatusObserver_PlainOutput(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	o := &StatusObserver{out: &buf, colored: false}

	o.Event(sequencer.Event{Type: sequencer.EventStepCompleted, Step: "kind cluster", Message: "completed in 30s"})
	o.Event(sequencer.Event{Type: sequencer.EventStepNoOp, Step: "docker network", Message: "already satisfied, nothing to do"})
	o.Event(sequencer.Event{Type: sequencer.EventStepSkipped, Step: "config rewrite", Message: "warning: address not discovered"})
	o.Event(sequencer.Event{Type: sequencer.EventRunCompleted, Message: "sequence completed in 2m"})

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "[OK] kind cluster") {
		t.Errorf("unexpected completed line: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "[--] docker network") {
		t.Errorf("unexpected no-op line: %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "[??] config rewrite") {
		t.Errorf("unexpected warning line: %q", lines[2])
	}
	if !strings.Contains(out, "sequence completed") {
		t.Errorf("missing run completion line:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("plain output must not contain ANSI escapes")
	}
}

func TestStatusObserver_Printf(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	o := &StatusObserver{out: &buf, colored: false}

	o.Printf("Starting sequence with %d steps...", 16)

	if got := buf.String(); got != "Starting sequence with 16 steps...\n" {
		t.Errorf("unexpected output: %q", got)
	}
}
