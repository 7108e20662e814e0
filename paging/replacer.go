package paging

// Replacer holds the policy-specific state used to pick victims.
// Implementations: FIFOReplacer (cursor) and LRUReplacer (recency queue).
type Replacer interface {
	// Policy returns the policy this replacer implements
	Policy() Policy

	// Admit records a page loaded into an empty slot
	Admit(page Page)

	// Touch records a hit on a resident page
	Touch(page Page)

	// Victim selects the flat index to evict from a full grid
	// Returns the index and true if a victim was found, false otherwise
	Victim(grid *MemoryGrid) (int, bool)

	// Replaced records that page now occupies index after an eviction
	Replaced(index int, page Page)
}

// NewReplacer creates a replacer for policy over totalSlots slots
func NewReplacer(policy Policy, totalSlots int) (Replacer, error) {
	switch policy {
	case PolicyFIFO:
		return NewFIFOReplacer(totalSlots), nil
	case PolicyLRU:
		return NewLRUReplacer(totalSlots), nil
	default:
		return nil, ErrInvalidConfiguration("NewReplacer", "unknown replacement policy: "+policy.String())
	}
}

// Placement describes where a faulting page was loaded
type Placement struct {
	Frame    int
	Slot     int
	Evicted  Page
	Replaced bool // true when Evicted holds a page removed from the grid
}

// PlaceOnFault loads a non-resident page into the grid.
// An empty slot (row-major) is always preferred; only a full grid consults
// the replacer for a victim.
func PlaceOnFault(grid *MemoryGrid, r Replacer, page Page) (Placement, error) {
	if idx, ok := grid.FirstEmpty(); ok {
		grid.Place(idx, page)
		r.Admit(page)
		frame, slot := grid.Position(idx)
		return Placement{Frame: frame, Slot: slot}, nil
	}

	idx, ok := r.Victim(grid)
	if !ok || idx < 0 || idx >= grid.TotalSlots() || !grid.At(idx).Occupied {
		return Placement{}, ErrNoVictim("PlaceOnFault", page, r.Policy())
	}

	evicted, _ := grid.Place(idx, page)
	r.Replaced(idx, page)

	frame, slot := grid.Position(idx)
	return Placement{Frame: frame, Slot: slot, Evicted: evicted, Replaced: true}, nil
}
