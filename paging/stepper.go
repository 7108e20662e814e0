package paging

// StepIndicator reports "step Current of Total"; Current is 0 before the
// first step
type StepIndicator struct {
	Current int
	Total   int
}

// StepResult is the outcome of NextStep or PrevStep.
// When Boundary is not BoundaryNone nothing was mutated.
type StepResult struct {
	Outcome   *Outcome  // set by a successful NextStep
	Replayed  []Outcome // set by a successful PrevStep, in sequence order
	Boundary  Boundary
	Indicator StepIndicator
}

// BoundaryReached reports whether the step ran past either end
func (r StepResult) BoundaryReached() bool {
	return r.Boundary != BoundaryNone
}

// PrepareSequence stores pages for stepping and resets the simulation
func (s *Simulator) PrepareSequence(pages []Page) {
	s.sequence = make([]Page, len(pages))
	copy(s.sequence, pages)
	s.Reset()
}

// Sequence returns a copy of the prepared sequence
func (s *Simulator) Sequence() []Page {
	out := make([]Page, len(s.sequence))
	copy(out, s.sequence)
	return out
}

// StepIndicator returns the current stepping position
func (s *Simulator) StepIndicator() StepIndicator {
	return StepIndicator{Current: s.cursor + 1, Total: len(s.sequence)}
}

// NextStep processes the next page of the prepared sequence
func (s *Simulator) NextStep() (StepResult, error) {
	if s.cursor+1 >= len(s.sequence) {
		return s.boundary(BoundaryEnd), nil
	}

	out, err := s.access(s.sequence[s.cursor+1], false)
	if err != nil {
		return StepResult{Indicator: s.StepIndicator()}, err
	}
	s.cursor++
	s.notifyStats()

	return StepResult{Outcome: &out, Indicator: s.StepIndicator()}, nil
}

// PrevStep moves the cursor back by one and rebuilds state by replaying
// the sequence from index 0 through the new cursor. Stepping back from the
// first processed element is a boundary.
func (s *Simulator) PrevStep() (StepResult, error) {
	if s.cursor <= 0 {
		return s.boundary(BoundaryStart), nil
	}

	s.cursor--
	s.reset()

	replayed := make([]Outcome, 0, s.cursor+1)
	for i := 0; i <= s.cursor; i++ {
		out, err := s.access(s.sequence[i], true)
		if err != nil {
			return StepResult{Replayed: replayed, Indicator: s.StepIndicator()}, err
		}
		replayed = append(replayed, out)
	}

	if s.metrics != nil {
		s.metrics.RecordReplay(len(replayed))
	}
	s.notifyStats()

	return StepResult{Replayed: replayed, Indicator: s.StepIndicator()}, nil
}

func (s *Simulator) boundary(b Boundary) StepResult {
	if s.metrics != nil {
		s.metrics.RecordBoundary()
	}
	s.emit(Event{Kind: EventBoundary, Frame: -1, Slot: -1, Boundary: b})
	return StepResult{Boundary: b, Indicator: s.StepIndicator()}
}
