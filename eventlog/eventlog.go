// Package eventlog records the simulator's event stream and exports it as a
// compact, optionally compressed binary file.
package eventlog

import (
	"io"

	"github.com/sibexico/pagesim/paging"
)

// EventLog is an append-only paging.Observer
type EventLog struct {
	events    []paging.Event
	lastStats paging.StatsSnapshot
}

// New creates an empty event log
func New() *EventLog {
	return &EventLog{events: make([]paging.Event, 0, 64)}
}

func (l *EventLog) OnAccess(ev paging.Event) {
	l.events = append(l.events, ev)
}

func (l *EventLog) OnBoundary(ev paging.Event) {
	l.events = append(l.events, ev)
}

func (l *EventLog) OnReset(ev paging.Event) {
	l.events = append(l.events, ev)
}

func (l *EventLog) OnStatsChanged(snap paging.StatsSnapshot) {
	l.lastStats = snap
}

// Events returns a copy of the recorded events
func (l *EventLog) Events() []paging.Event {
	out := make([]paging.Event, len(l.events))
	copy(out, l.events)
	return out
}

// Len returns the number of recorded events
func (l *EventLog) Len() int {
	return len(l.events)
}

// LastStats returns the most recent stats notification
func (l *EventLog) LastStats() paging.StatsSnapshot {
	return l.lastStats
}

// Count returns the number of recorded events of kind
func (l *EventLog) Count(kind paging.EventKind) int {
	n := 0
	for _, ev := range l.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

// EncodeTo encodes the log to w
func (l *EventLog) EncodeTo(w io.Writer, c Compression) error {
	return Encode(w, l.events, c)
}

// Export writes the log to path
func (l *EventLog) Export(path string, c Compression) error {
	return ExportFile(path, l.events, c)
}
