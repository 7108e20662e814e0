package paging

import "fmt"

// Segment is a region of physical memory
type Segment struct {
	Base  int `json:"base"`
	Limit int `json:"limit"`
}

// SegmentTable translates segment-relative addresses.
// The table is fixed at construction.
type SegmentTable struct {
	segments []Segment
}

// NewSegmentTable copies and validates segs
func NewSegmentTable(segs []Segment) (*SegmentTable, error) {
	for i, s := range segs {
		if err := s.validate(); err != nil {
			return nil, ErrInvalidConfiguration("NewSegmentTable", fmt.Sprintf("segment %d: %v", i, err))
		}
	}
	table := &SegmentTable{segments: make([]Segment, len(segs))}
	copy(table.segments, segs)
	return table, nil
}

func (s Segment) validate() error {
	if s.Base < 0 {
		return fmt.Errorf("base must be non-negative, got %d", s.Base)
	}
	if s.Limit <= 0 {
		return fmt.Errorf("limit must be greater than 0, got %d", s.Limit)
	}
	return nil
}

// Translate returns base+offset for a valid segment/offset pair
func (t *SegmentTable) Translate(segment, offset int) (int, error) {
	if segment < 0 || segment >= len(t.segments) {
		return 0, ErrAddressBounds("Translate", segment, offset, -1)
	}
	seg := t.segments[segment]
	if offset < 0 || offset >= seg.Limit {
		return 0, ErrAddressBounds("Translate", segment, offset, seg.Limit)
	}
	return seg.Base + offset, nil
}

// Len returns the number of segments
func (t *SegmentTable) Len() int {
	return len(t.segments)
}

// Segments returns a copy of the table
func (t *SegmentTable) Segments() []Segment {
	out := make([]Segment, len(t.segments))
	copy(out, t.segments)
	return out
}
