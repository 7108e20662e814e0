package paging

// FIFOReplacer evicts slots in rotating order.
// The cursor only moves after an eviction; filling empty slots leaves it at 0,
// so the first eviction on a freshly filled grid hits the oldest slot.
type FIFOReplacer struct {
	totalSlots int
	cursor     int
}

// NewFIFOReplacer creates a new FIFO replacer
func NewFIFOReplacer(totalSlots int) *FIFOReplacer {
	return &FIFOReplacer{totalSlots: totalSlots}
}

// Policy returns PolicyFIFO
func (f *FIFOReplacer) Policy() Policy {
	return PolicyFIFO
}

// Admit is a no-op for FIFO
func (f *FIFOReplacer) Admit(Page) {}

// Touch is a no-op for FIFO
func (f *FIFOReplacer) Touch(Page) {}

// Victim returns the slot under the cursor
func (f *FIFOReplacer) Victim(*MemoryGrid) (int, bool) {
	if f.totalSlots == 0 {
		return 0, false
	}
	return f.cursor, true
}

// Replaced advances the cursor past the slot just written
func (f *FIFOReplacer) Replaced(int, Page) {
	f.cursor = (f.cursor + 1) % f.totalSlots
}

// Cursor returns the flat index of the next eviction
func (f *FIFOReplacer) Cursor() int {
	return f.cursor
}
