package paging

import "strings"

// Policy selects the replacement algorithm used once the grid is full
type Policy uint8

const (
	PolicyFIFO Policy = iota + 1
	PolicyLRU
)

// String returns string representation of Policy
func (p Policy) String() string {
	switch p {
	case PolicyFIFO:
		return "FIFO"
	case PolicyLRU:
		return "LRU"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether p is one of the supported policies
func (p Policy) Valid() bool {
	return p == PolicyFIFO || p == PolicyLRU
}

// ParsePolicy resolves a policy name (case-insensitive).
// Unknown names are rejected here so that no run ever starts with an
// unrecognized policy.
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fifo":
		return PolicyFIFO, nil
	case "lru":
		return PolicyLRU, nil
	default:
		return 0, ErrInvalidConfiguration("ParsePolicy", "unknown replacement policy: "+name)
	}
}
