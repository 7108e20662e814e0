package paging

// Page is an opaque page identifier
type Page int

// Slot holds at most one page
type Slot struct {
	Page     Page
	Occupied bool
}

// MemoryGrid is a fixed numFrames x frameSize arrangement of slots.
// Slots are stored row-major: flat index = frame*frameSize + slot.
type MemoryGrid struct {
	numFrames int
	frameSize int
	slots     []Slot
	resident  map[Page]int // page -> flat index
}

// NewMemoryGrid creates an empty grid
func NewMemoryGrid(numFrames, frameSize int) *MemoryGrid {
	total := numFrames * frameSize
	return &MemoryGrid{
		numFrames: numFrames,
		frameSize: frameSize,
		slots:     make([]Slot, total),
		resident:  make(map[Page]int, total),
	}
}

// TotalSlots returns numFrames * frameSize
func (g *MemoryGrid) TotalSlots() int {
	return len(g.slots)
}

// Used returns the number of occupied slots
func (g *MemoryGrid) Used() int {
	return len(g.resident)
}

// Full reports whether every slot is occupied
func (g *MemoryGrid) Full() bool {
	return g.Used() == len(g.slots)
}

// Position converts a flat index to (frame, slot)
func (g *MemoryGrid) Position(index int) (int, int) {
	return index / g.frameSize, index % g.frameSize
}

// Contains reports whether page is resident
func (g *MemoryGrid) Contains(page Page) bool {
	_, ok := g.resident[page]
	return ok
}

// Locate returns the flat index of a resident page
func (g *MemoryGrid) Locate(page Page) (int, bool) {
	idx, ok := g.resident[page]
	return idx, ok
}

// FirstEmpty returns the first empty slot in row-major order
func (g *MemoryGrid) FirstEmpty() (int, bool) {
	if g.Full() {
		return 0, false
	}
	for i, s := range g.slots {
		if !s.Occupied {
			return i, true
		}
	}
	return 0, false
}

// At returns the slot at a flat index
func (g *MemoryGrid) At(index int) Slot {
	return g.slots[index]
}

// Place stores page at index and returns the page it displaced, if any.
// Callers must not place a page that is already resident elsewhere.
func (g *MemoryGrid) Place(index int, page Page) (Page, bool) {
	old := g.slots[index]
	if old.Occupied {
		delete(g.resident, old.Page)
	}
	g.slots[index] = Slot{Page: page, Occupied: true}
	g.resident[page] = index
	return old.Page, old.Occupied
}

// Frames returns a deep copy of the grid, one row per frame
func (g *MemoryGrid) Frames() [][]Slot {
	frames := make([][]Slot, g.numFrames)
	for f := range frames {
		row := make([]Slot, g.frameSize)
		copy(row, g.slots[f*g.frameSize:(f+1)*g.frameSize])
		frames[f] = row
	}
	return frames
}

// PageTableEntry maps a resident page to its location
type PageTableEntry struct {
	Page  Page
	Frame int
	Slot  int
}

// PageTable lists resident pages in row-major order
func (g *MemoryGrid) PageTable() []PageTableEntry {
	entries := make([]PageTableEntry, 0, len(g.resident))
	for i, s := range g.slots {
		if !s.Occupied {
			continue
		}
		frame, slot := g.Position(i)
		entries = append(entries, PageTableEntry{Page: s.Page, Frame: frame, Slot: slot})
	}
	return entries
}
