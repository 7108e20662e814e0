package paging

// Stats counts hits and faults since the last reset
type Stats struct {
	Hits   uint64
	Faults uint64
}

// StatsSnapshot is a point-in-time view with derived ratios
type StatsSnapshot struct {
	Hits              uint64
	Faults            uint64
	HitRatioPercent   float64
	FaultRatioPercent float64
}

// Total returns hits + faults
func (s Stats) Total() uint64 {
	return s.Hits + s.Faults
}

// Snapshot derives hit/fault ratios rounded to two decimals
func (s Stats) Snapshot() StatsSnapshot {
	snap := StatsSnapshot{Hits: s.Hits, Faults: s.Faults}
	total := s.Total()
	if total == 0 {
		return snap
	}
	snap.HitRatioPercent = ratioPercent(s.Hits, total)
	snap.FaultRatioPercent = ratioPercent(s.Faults, total)
	return snap
}

// ratioPercent returns 100*part/total rounded half away from zero to two
// decimals, using integer arithmetic only. total must be non-zero.
func ratioPercent(part, total uint64) float64 {
	hundredths := (20000*part + total) / (2 * total)
	return float64(hundredths) / 100
}
