package paging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestEventFromOutcome(t *testing.T) {
	evicted := Page(3)

	tests := []struct {
		out  Outcome
		want EventKind
	}{
		{Outcome{Kind: OutcomeHit, Page: 1}, EventHit},
		{Outcome{Kind: OutcomeFault, Page: 2}, EventFault},
		{Outcome{Kind: OutcomeFault, Page: 4, Evicted: &evicted}, EventReplacement},
	}

	for _, tt := range tests {
		ev := eventFromOutcome(tt.out)
		if ev.Kind != tt.want {
			t.Errorf("Outcome %+v: expected %s, got %s", tt.out, tt.want, ev.Kind)
		}
		if ev.Page != tt.out.Page {
			t.Errorf("Expected page %d, got %d", tt.out.Page, ev.Page)
		}
	}
}

func TestLogObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	sim := newTestSimulator(t, "fifo", 1, 1)
	sim.Subscribe(NewLogObserver(logger))

	sim.PrepareSequence([]Page{1, 2})
	sim.NextStep()
	sim.NextStep()
	sim.NextStep()

	out := buf.String()
	for _, want := range []string{
		"memory initialized",
		"page loaded into empty slot",
		"page replaced",
		"evicted=1",
		"end of sequence reached",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected log output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestSubscribeIgnoresNil(t *testing.T) {
	sim := newTestSimulator(t, "lru", 1, 1)
	sim.Subscribe(nil)

	if _, err := sim.Access(1); err != nil {
		t.Fatalf("Access failed: %v", err)
	}
}
