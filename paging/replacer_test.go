package paging

import (
	"errors"
	"testing"
)

// TestFIFOReplacerCursor checks the cursor only moves on eviction
func TestFIFOReplacerCursor(t *testing.T) {
	grid := NewMemoryGrid(3, 1)
	r := NewFIFOReplacer(grid.TotalSlots())

	for _, p := range []Page{1, 2, 3} {
		pl, err := PlaceOnFault(grid, r, p)
		if err != nil {
			t.Fatalf("PlaceOnFault(%d) failed: %v", p, err)
		}
		if pl.Replaced {
			t.Errorf("Expected no eviction while filling, got evicted %d", pl.Evicted)
		}
		if r.Cursor() != 0 {
			t.Errorf("Expected cursor 0 during fill, got %d", r.Cursor())
		}
	}

	pl, err := PlaceOnFault(grid, r, 4)
	if err != nil {
		t.Fatalf("PlaceOnFault(4) failed: %v", err)
	}
	if !pl.Replaced || pl.Evicted != 1 {
		t.Errorf("Expected page 1 evicted, got %+v", pl)
	}
	if pl.Frame != 0 || pl.Slot != 0 {
		t.Errorf("Expected placement at (0,0), got (%d,%d)", pl.Frame, pl.Slot)
	}
	if r.Cursor() != 1 {
		t.Errorf("Expected cursor 1, got %d", r.Cursor())
	}

	// Cursor wraps around
	PlaceOnFault(grid, r, 5)
	PlaceOnFault(grid, r, 6)
	if r.Cursor() != 0 {
		t.Errorf("Expected cursor to wrap to 0, got %d", r.Cursor())
	}
}

// TestFIFOMultiSlotFrames evicts in flattened row-major order
func TestFIFOMultiSlotFrames(t *testing.T) {
	grid := NewMemoryGrid(2, 2)
	r := NewFIFOReplacer(grid.TotalSlots())

	for _, p := range []Page{1, 2, 3, 4} {
		PlaceOnFault(grid, r, p)
	}

	expected := []struct {
		page, evicted Page
		frame, slot   int
	}{
		{5, 1, 0, 0},
		{6, 2, 0, 1},
		{7, 3, 1, 0},
		{8, 4, 1, 1},
	}
	for _, e := range expected {
		pl, err := PlaceOnFault(grid, r, e.page)
		if err != nil {
			t.Fatalf("PlaceOnFault(%d) failed: %v", e.page, err)
		}
		if pl.Evicted != e.evicted || pl.Frame != e.frame || pl.Slot != e.slot {
			t.Errorf("Page %d: expected evict %d at (%d,%d), got %+v", e.page, e.evicted, e.frame, e.slot, pl)
		}
	}
}

// TestLRUReplacerOrder tests recency bookkeeping
func TestLRUReplacerOrder(t *testing.T) {
	r := NewLRUReplacer(3)
	r.Admit(1)
	r.Admit(2)
	r.Admit(3)
	r.Touch(1)

	order := r.Order()
	expected := []Page{2, 3, 1}
	if len(order) != len(expected) {
		t.Fatalf("Expected order %v, got %v", expected, order)
	}
	for i := range expected {
		if order[i] != expected[i] {
			t.Errorf("Expected order %v, got %v", expected, order)
			break
		}
	}

	// Touching an unknown page is ignored
	r.Touch(42)
	if r.Size() != 3 {
		t.Errorf("Expected size 3, got %d", r.Size())
	}
}

// TestLRUVictim tests victim selection against the grid
func TestLRUVictim(t *testing.T) {
	grid := NewMemoryGrid(3, 1)
	r := NewLRUReplacer(3)

	for _, p := range []Page{1, 2, 3} {
		PlaceOnFault(grid, r, p)
	}
	r.Touch(1)

	pl, err := PlaceOnFault(grid, r, 4)
	if err != nil {
		t.Fatalf("PlaceOnFault failed: %v", err)
	}
	if pl.Evicted != 2 {
		t.Errorf("Expected victim 2, got %d", pl.Evicted)
	}
	if pl.Frame != 1 {
		t.Errorf("Expected placement in frame 1, got %d", pl.Frame)
	}

	order := r.Order()
	if order[len(order)-1] != 4 {
		t.Errorf("Expected new page at back of recency queue, got %v", order)
	}
	if r.Size() != 3 {
		t.Errorf("Expected size 3, got %d", r.Size())
	}
}

// TestPlaceOnFaultUnreachable checks a full grid with no victim is reported
func TestPlaceOnFaultUnreachable(t *testing.T) {
	grid := NewMemoryGrid(1, 1)
	grid.Place(0, 7)

	// Replacer never saw page 7, so it has nothing to evict
	r := NewLRUReplacer(1)

	_, err := PlaceOnFault(grid, r, 8)
	if err == nil {
		t.Fatal("Expected unreachable state error")
	}
	if !IsErrorCode(err, ErrCodeUnreachableState) {
		t.Errorf("Expected ErrCodeUnreachableState, got %v", GetErrorCode(err))
	}
	if !errors.Is(err, ErrUnreachableState) {
		t.Error("Expected errors.Is to match ErrUnreachableState")
	}
	if slot := grid.At(0); slot.Page != 7 {
		t.Errorf("Expected grid untouched, got page %d", slot.Page)
	}
}

func TestNewReplacer(t *testing.T) {
	r, err := NewReplacer(PolicyFIFO, 4)
	if err != nil {
		t.Fatalf("NewReplacer failed: %v", err)
	}
	if _, ok := r.(*FIFOReplacer); !ok {
		t.Errorf("Expected *FIFOReplacer, got %T", r)
	}

	r, err = NewReplacer(PolicyLRU, 4)
	if err != nil {
		t.Fatalf("NewReplacer failed: %v", err)
	}
	if r.Policy() != PolicyLRU {
		t.Errorf("Expected LRU, got %s", r.Policy())
	}

	if _, err := NewReplacer(Policy(0), 4); !IsErrorCode(err, ErrCodeInvalidConfig) {
		t.Errorf("Expected invalid config error for unknown policy, got %v", err)
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{"fifo", PolicyFIFO, false},
		{"FIFO", PolicyFIFO, false},
		{" lru ", PolicyLRU, false},
		{"optimal", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParsePolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePolicy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePolicy(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
