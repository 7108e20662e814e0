package paging

// Simulator owns the memory grid, replacement state, counters and the
// stepping cursor of one session. It is not safe for concurrent use; every
// method runs to completion before returning.
type Simulator struct {
	config   *Config
	policy   Policy
	segments *SegmentTable
	metrics  *Metrics // nil when metrics are disabled

	// Replaced wholesale on every reset
	grid     *MemoryGrid
	replacer Replacer
	stats    Stats

	// Stepping state
	sequence []Page
	cursor   int

	observers []Observer
	nextSeq   uint64
}

// PolicyState exposes the replacement state for rendering.
// Cursor is -1 under LRU; Recency is nil under FIFO.
type PolicyState struct {
	Policy  Policy
	Cursor  int
	Recency []Page
}

// NewSimulator creates a simulator with a freshly zeroed grid
func NewSimulator(config *Config) (*Simulator, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	policy, err := ParsePolicy(config.Policy)
	if err != nil {
		return nil, err
	}

	segments, err := NewSegmentTable(config.Segments)
	if err != nil {
		return nil, err
	}

	s := &Simulator{
		config:   config.Clone(),
		policy:   policy,
		segments: segments,
		cursor:   -1,
	}
	if config.EnableMetrics {
		s.metrics = NewMetrics()
	}
	s.reset()

	return s, nil
}

// Subscribe registers an observer for all subsequent events
func (s *Simulator) Subscribe(o Observer) {
	if o == nil {
		return
	}
	s.observers = append(s.observers, o)
}

// reset replaces grid, policy state and stats with fresh ones
func (s *Simulator) reset() {
	s.grid = NewMemoryGrid(s.config.NumFrames, s.config.FrameSize)
	r, err := NewReplacer(s.policy, s.grid.TotalSlots())
	if err != nil {
		// policy is validated before it is ever stored
		panic(err)
	}
	s.replacer = r
	s.stats = Stats{}
}

// Reset clears the grid and counters and rewinds the stepping cursor.
// A prepared sequence is kept.
func (s *Simulator) Reset() {
	s.reset()
	s.cursor = -1
	if s.metrics != nil {
		s.metrics.RecordReset()
	}
	s.emit(Event{Kind: EventReset, Frame: -1, Slot: -1})
	s.notifyStats()
}

// SetPolicy switches the replacement policy and resets the simulation
func (s *Simulator) SetPolicy(policy Policy) error {
	if !policy.Valid() {
		return ErrInvalidConfiguration("SetPolicy", "unknown replacement policy: "+policy.String())
	}
	s.policy = policy
	s.config.Policy = policy.String()
	s.Reset()
	return nil
}

// Access requests a single page
func (s *Simulator) Access(page Page) (Outcome, error) {
	out, err := s.access(page, false)
	if err != nil {
		return Outcome{}, err
	}
	s.notifyStats()
	return out, nil
}

// RunSequence accesses every page in order without touching stepping state
func (s *Simulator) RunSequence(pages []Page) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(pages))
	for _, page := range pages {
		out, err := s.Access(page)
		if err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, out)
	}
	return outcomes, nil
}

func (s *Simulator) access(page Page, replay bool) (Outcome, error) {
	var out Outcome

	if idx, ok := s.grid.Locate(page); ok {
		s.stats.Hits++
		s.replacer.Touch(page)
		frame, slot := s.grid.Position(idx)
		out = Outcome{Kind: OutcomeHit, Page: page, Frame: frame, Slot: slot}
	} else {
		placement, err := PlaceOnFault(s.grid, s.replacer, page)
		if err != nil {
			return Outcome{}, err
		}
		s.stats.Faults++
		out = Outcome{Kind: OutcomeFault, Page: page, Frame: placement.Frame, Slot: placement.Slot}
		if placement.Replaced {
			evicted := placement.Evicted
			out.Evicted = &evicted
		}
	}

	if s.metrics != nil && !replay {
		s.metrics.RecordOutcome(out)
	}

	ev := eventFromOutcome(out)
	ev.Replay = replay
	s.emit(ev)

	return out, nil
}

// Translate maps a segment-relative address to a physical address
func (s *Simulator) Translate(segment, offset int) (int, error) {
	return s.segments.Translate(segment, offset)
}

// Snapshot returns the current counters and ratios
func (s *Simulator) Snapshot() StatsSnapshot {
	return s.stats.Snapshot()
}

// Stats returns the raw counters
func (s *Simulator) Stats() Stats {
	return s.stats
}

// Frames returns a copy of the grid, one row per frame
func (s *Simulator) Frames() [][]Slot {
	return s.grid.Frames()
}

// PageTable lists resident pages with their frame and slot
func (s *Simulator) PageTable() []PageTableEntry {
	return s.grid.PageTable()
}

// Segments returns the configured segment table
func (s *Simulator) Segments() []Segment {
	return s.segments.Segments()
}

// Policy returns the active replacement policy
func (s *Simulator) Policy() Policy {
	return s.policy
}

// PolicyState returns a copy of the replacement state
func (s *Simulator) PolicyState() PolicyState {
	state := PolicyState{Policy: s.policy, Cursor: -1}
	switch r := s.replacer.(type) {
	case *FIFOReplacer:
		state.Cursor = r.Cursor()
	case *LRUReplacer:
		state.Recency = r.Order()
	}
	return state
}

// Metrics returns session metrics, or nil when disabled
func (s *Simulator) Metrics() *Metrics {
	return s.metrics
}

// Config returns a copy of the active configuration
func (s *Simulator) Config() *Config {
	return s.config.Clone()
}

func (s *Simulator) emit(ev Event) {
	s.nextSeq++
	ev.Seq = s.nextSeq
	for _, o := range s.observers {
		switch ev.Kind {
		case EventBoundary:
			o.OnBoundary(ev)
		case EventReset:
			o.OnReset(ev)
		default:
			o.OnAccess(ev)
		}
	}
}

func (s *Simulator) notifyStats() {
	if len(s.observers) == 0 {
		return
	}
	snap := s.stats.Snapshot()
	for _, o := range s.observers {
		o.OnStatsChanged(snap)
	}
}
