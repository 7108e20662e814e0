package paging

import (
	"context"
	"log/slog"
)

// OutcomeKind classifies a single access
type OutcomeKind uint8

const (
	OutcomeHit OutcomeKind = iota + 1
	OutcomeFault
)

// String returns string representation of OutcomeKind
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeHit:
		return "HIT"
	case OutcomeFault:
		return "FAULT"
	default:
		return "UNKNOWN"
	}
}

// Outcome is the result of one access
type Outcome struct {
	Kind    OutcomeKind
	Page    Page
	Frame   int
	Slot    int
	Evicted *Page // set only when a resident page was replaced
}

// Replaced reports whether the access evicted a page
func (o Outcome) Replaced() bool {
	return o.Evicted != nil
}

// EventKind identifies an entry in the event stream
type EventKind uint8

const (
	EventHit EventKind = iota + 1
	EventFault
	EventReplacement
	EventBoundary
	EventReset
)

// String returns string representation of EventKind
func (k EventKind) String() string {
	switch k {
	case EventHit:
		return "HIT"
	case EventFault:
		return "FAULT"
	case EventReplacement:
		return "REPLACEMENT"
	case EventBoundary:
		return "BOUNDARY"
	case EventReset:
		return "RESET"
	default:
		return "UNKNOWN"
	}
}

// Boundary tells which end of the sequence a step ran into
type Boundary uint8

const (
	BoundaryNone Boundary = iota
	BoundaryStart
	BoundaryEnd
)

// String returns string representation of Boundary
func (b Boundary) String() string {
	switch b {
	case BoundaryStart:
		return "start"
	case BoundaryEnd:
		return "end"
	default:
		return "none"
	}
}

// Event is one entry of the append-only event stream.
// Frame and Slot are -1 for events not tied to a location.
type Event struct {
	Seq      uint64
	Kind     EventKind
	Page     Page
	Frame    int
	Slot     int
	Evicted  *Page
	Replay   bool // emitted while rebuilding state for a backward step
	Boundary Boundary
}

func eventFromOutcome(o Outcome) Event {
	ev := Event{
		Page:    o.Page,
		Frame:   o.Frame,
		Slot:    o.Slot,
		Evicted: o.Evicted,
	}
	switch {
	case o.Kind == OutcomeHit:
		ev.Kind = EventHit
	case o.Replaced():
		ev.Kind = EventReplacement
	default:
		ev.Kind = EventFault
	}
	return ev
}

// Observer is notified by the simulator; it must not call back into it
type Observer interface {
	OnAccess(ev Event)
	OnBoundary(ev Event)
	OnReset(ev Event)
	OnStatsChanged(snap StatsSnapshot)
}

// LogObserver writes events as structured log lines
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an observer logging to logger
func NewLogObserver(logger *slog.Logger) *LogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnAccess(ev Event) {
	level := slog.LevelInfo
	if ev.Replay {
		level = slog.LevelDebug
	}
	attrs := []slog.Attr{
		slog.Uint64("seq", ev.Seq),
		slog.Int("page", int(ev.Page)),
		slog.Int("frame", ev.Frame),
		slog.Int("slot", ev.Slot),
		slog.Bool("replay", ev.Replay),
	}
	switch ev.Kind {
	case EventHit:
		o.logger.LogAttrs(context.Background(), level, "page hit", attrs...)
	case EventReplacement:
		attrs = append(attrs, slog.Int("evicted", int(*ev.Evicted)))
		o.logger.LogAttrs(context.Background(), level, "page replaced", attrs...)
	default:
		o.logger.LogAttrs(context.Background(), level, "page loaded into empty slot", attrs...)
	}
}

func (o *LogObserver) OnBoundary(ev Event) {
	msg := "end of sequence reached"
	if ev.Boundary == BoundaryStart {
		msg = "at beginning of sequence"
	}
	o.logger.Info(msg, slog.Uint64("seq", ev.Seq))
}

func (o *LogObserver) OnReset(ev Event) {
	o.logger.Info("memory initialized", slog.Uint64("seq", ev.Seq))
}

func (o *LogObserver) OnStatsChanged(snap StatsSnapshot) {
	o.logger.Debug("stats",
		slog.Uint64("hits", snap.Hits),
		slog.Uint64("faults", snap.Faults),
		slog.Float64("hit_ratio", snap.HitRatioPercent),
		slog.Float64("fault_ratio", snap.FaultRatioPercent),
	)
}
