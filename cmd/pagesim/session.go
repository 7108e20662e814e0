package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/sibexico/pagesim/paging"
)

const helpText = `commands:
  access N            request page N
  run 1,2,3           process a sequence in one go
  prepare 1,2,3       load a sequence for stepping
  next | prev         step forward / back
  translate S O       segment S, offset O to physical address
  policy fifo|lru     switch policy (resets memory)
  frames | table | segments | stats | reset | help | quit`

// session renders simulator state for an interactive user
type session struct {
	sim    *paging.Simulator
	out    io.Writer
	logger *slog.Logger
}

func newSession(sim *paging.Simulator, out io.Writer, logger *slog.Logger) *session {
	return &session{sim: sim, out: out, logger: logger}
}

// run reads commands line by line until EOF or quit
func (s *session) run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if !s.handle(scanner.Text()) {
			return nil
		}
	}
	return scanner.Err()
}

// handle executes one command line and reports whether to continue
func (s *session) handle(line string) bool {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	var err error
	switch strings.ToLower(cmd) {
	case "":
	case "quit", "exit", "q":
		return false
	case "help", "h":
		fmt.Fprintln(s.out, helpText)
	case "access", "a":
		err = s.access(arg)
	case "run":
		err = s.runSequence(arg)
	case "prepare":
		err = s.prepare(arg)
	case "next", "n":
		err = s.next()
	case "prev", "p":
		err = s.prev()
	case "translate", "t":
		err = s.translate(arg)
	case "policy":
		err = s.setPolicy(arg)
	case "frames":
		s.printFrames()
	case "table":
		s.printPageTable()
	case "segments":
		s.printSegments()
	case "stats":
		s.printStats()
	case "reset":
		s.sim.Reset()
		s.printFrames()
	default:
		fmt.Fprintf(s.out, "unknown command %q, try help\n", cmd)
	}

	if err != nil {
		s.logger.Error("command failed", slog.String("command", cmd), slog.Any("error", err))
		fmt.Fprintf(s.out, "error: %v\n", err)
	}
	return true
}

func (s *session) access(arg string) error {
	page, err := parsePage(arg)
	if err != nil {
		return err
	}
	out, err := s.sim.Access(page)
	if err != nil {
		return err
	}
	s.printOutcome(out)
	return nil
}

func (s *session) runSequence(arg string) error {
	pages, err := parsePages(arg)
	if err != nil {
		return err
	}
	outcomes, err := s.sim.RunSequence(pages)
	for _, out := range outcomes {
		s.printOutcome(out)
	}
	if err != nil {
		return err
	}
	s.printStats()
	return nil
}

func (s *session) prepare(arg string) error {
	pages := parsePagesLenient(arg)
	if len(pages) == 0 {
		return paging.ErrParse("prepare", arg, fmt.Errorf("no page numbers found"))
	}
	s.sim.PrepareSequence(pages)
	fmt.Fprintln(s.out, "Sequence loaded. Use 'next' to step through.")
	s.printIndicator(s.sim.StepIndicator())
	return nil
}

func (s *session) next() error {
	res, err := s.sim.NextStep()
	if err != nil {
		return err
	}
	if res.BoundaryReached() {
		fmt.Fprintln(s.out, "End of sequence reached.")
		return nil
	}
	s.printOutcome(*res.Outcome)
	s.printIndicator(res.Indicator)
	return nil
}

func (s *session) prev() error {
	res, err := s.sim.PrevStep()
	if err != nil {
		return err
	}
	if res.BoundaryReached() {
		fmt.Fprintln(s.out, "At beginning of sequence.")
		return nil
	}
	s.printFrames()
	s.printIndicator(res.Indicator)
	return nil
}

func (s *session) translate(arg string) error {
	segment, offset, err := parseAddress(arg)
	if err != nil {
		return err
	}
	physical, err := s.sim.Translate(segment, offset)
	if err != nil {
		return err
	}
	base := physical - offset
	fmt.Fprintf(s.out, "Physical Address = Base + Offset = %d + %d = %d\n", base, offset, physical)
	return nil
}

func (s *session) setPolicy(arg string) error {
	policy, err := paging.ParsePolicy(arg)
	if err != nil {
		return err
	}
	if err := s.sim.SetPolicy(policy); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Policy set to %s.\n", policy)
	return nil
}

func (s *session) printOutcome(out paging.Outcome) {
	switch {
	case out.Kind == paging.OutcomeHit:
		fmt.Fprintf(s.out, "Page %d hit.\n", out.Page)
	case out.Replaced():
		fmt.Fprintf(s.out, "Page %d replaced with %d using %s at Frame %d, Slot %d.\n",
			*out.Evicted, out.Page, s.sim.Policy(), out.Frame, out.Slot)
	default:
		fmt.Fprintf(s.out, "Page %d loaded into empty slot at Frame %d, Slot %d.\n",
			out.Page, out.Frame, out.Slot)
	}
}

func (s *session) printFrames() {
	for f, frame := range s.sim.Frames() {
		cells := make([]string, len(frame))
		for i, slot := range frame {
			if slot.Occupied {
				cells[i] = fmt.Sprintf("Page %d", slot.Page)
			} else {
				cells[i] = "[Empty]"
			}
		}
		fmt.Fprintf(s.out, "Frame %d: %s\n", f, strings.Join(cells, " | "))
	}
}

func (s *session) printPageTable() {
	fmt.Fprintln(s.out, "Logical Page\tPhysical Frame")
	for _, e := range s.sim.PageTable() {
		fmt.Fprintf(s.out, "%d\tFrame %d\n", e.Page, e.Frame)
	}
}

func (s *session) printSegments() {
	fmt.Fprintln(s.out, "Segment\tBase\tLimit")
	for i, seg := range s.sim.Segments() {
		fmt.Fprintf(s.out, "%d\t%d\t%d\n", i, seg.Base, seg.Limit)
	}
}

func (s *session) printStats() {
	snap := s.sim.Snapshot()
	fmt.Fprintf(s.out, "Hits: %d, Faults: %d, Hit Ratio: %.2f%%, Fault Ratio: %.2f%%\n",
		snap.Hits, snap.Faults, snap.HitRatioPercent, snap.FaultRatioPercent)
}

func (s *session) printIndicator(ind paging.StepIndicator) {
	if ind.Total == 0 {
		return
	}
	fmt.Fprintf(s.out, "Step %d of %d\n", ind.Current, ind.Total)
}
