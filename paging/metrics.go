package paging

import (
	"log/slog"
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Histogram tracks a bounded distribution of samples with percentile support
type Histogram struct {
	samples []float64
	mu      sync.Mutex
	maxSize int // Maximum samples to retain
}

// NewHistogram creates a new histogram with a max sample size
func NewHistogram(maxSize int) *Histogram {
	if maxSize <= 0 {
		maxSize = 10000
	}
	return &Histogram{
		samples: make([]float64, 0, maxSize),
		maxSize: maxSize,
	}
}

// Record adds a sample, dropping the oldest one when full
func (h *Histogram) Record(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.samples) >= h.maxSize {
		copy(h.samples, h.samples[1:])
		h.samples = h.samples[:len(h.samples)-1]
	}

	h.samples = append(h.samples, v)
}

// Percentile calculates the given percentile (0-100)
func (h *Histogram) Percentile(p float64) float64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.samples) == 0 {
		return 0
	}

	// Samples stay in arrival order for Record
	sorted := make([]float64, len(h.samples))
	copy(sorted, h.samples)
	sort.Float64s(sorted)

	rank := (p / 100.0) * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))

	if lower == upper {
		return sorted[lower]
	}

	// Linear interpolation between lower and upper
	weight := rank - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Mean calculates the average sample
func (h *Histogram) Mean() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.samples) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range h.samples {
		sum += v
	}
	return sum / float64(len(h.samples))
}

// Max returns the largest sample
func (h *Histogram) Max() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.samples) == 0 {
		return 0
	}

	max := h.samples[0]
	for _, v := range h.samples {
		if v > max {
			max = v
		}
	}
	return max
}

// Count returns the number of samples
func (h *Histogram) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.samples)
}

// Reset clears all samples
func (h *Histogram) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.samples = h.samples[:0]
}

// HistogramSnapshot holds summary statistics of a histogram
type HistogramSnapshot struct {
	Count int
	Max   float64
	Mean  float64
	P50   float64
	P95   float64
	P99   float64
}

// Snapshot captures current histogram statistics
func (h *Histogram) Snapshot() HistogramSnapshot {
	return HistogramSnapshot{
		Count: h.Count(),
		Max:   h.Max(),
		Mean:  h.Mean(),
		P50:   h.Percentile(50),
		P95:   h.Percentile(95),
		P99:   h.Percentile(99),
	}
}

// Metrics tracks session-wide counters. Unlike Stats they survive resets.
type Metrics struct {
	// Access Metrics
	accesses     atomic.Uint64
	hits         atomic.Uint64
	faults       atomic.Uint64
	replacements atomic.Uint64

	// Stepping Metrics
	boundaries atomic.Uint64
	replays    atomic.Uint64
	resets     atomic.Uint64

	replayDepth *Histogram // accesses re-run per backward step

	startTime time.Time
	mu        sync.RWMutex
}

// NewMetrics creates a new metrics tracker
func NewMetrics() *Metrics {
	return &Metrics{
		startTime:   time.Now(),
		replayDepth: NewHistogram(1000),
	}
}

// RecordOutcome counts one access
func (m *Metrics) RecordOutcome(o Outcome) {
	m.accesses.Add(1)
	if o.Kind == OutcomeHit {
		m.hits.Add(1)
		return
	}
	m.faults.Add(1)
	if o.Replaced() {
		m.replacements.Add(1)
	}
}

func (m *Metrics) RecordBoundary() {
	m.boundaries.Add(1)
}

func (m *Metrics) RecordReset() {
	m.resets.Add(1)
}

// RecordReplay records a backward step that re-ran depth accesses
func (m *Metrics) RecordReplay(depth int) {
	m.replays.Add(1)
	m.replayDepth.Record(float64(depth))
}

// Getters

func (m *Metrics) GetAccesses() uint64 {
	return m.accesses.Load()
}

func (m *Metrics) GetHits() uint64 {
	return m.hits.Load()
}

func (m *Metrics) GetFaults() uint64 {
	return m.faults.Load()
}

func (m *Metrics) GetReplacements() uint64 {
	return m.replacements.Load()
}

func (m *Metrics) GetBoundaries() uint64 {
	return m.boundaries.Load()
}

func (m *Metrics) GetReplays() uint64 {
	return m.replays.Load()
}

func (m *Metrics) GetResets() uint64 {
	return m.resets.Load()
}

func (m *Metrics) GetHitRate() float64 {
	hits := m.hits.Load()
	total := m.accesses.Load()
	if total == 0 {
		return 0.0
	}
	return float64(hits) / float64(total)
}

// GetReplayDepth returns snapshot of the replay depth distribution
func (m *Metrics) GetReplayDepth() HistogramSnapshot {
	return m.replayDepth.Snapshot()
}

func (m *Metrics) GetUptime() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return time.Since(m.startTime)
}

// LogMetrics logs all metrics using structured logging
func (m *Metrics) LogMetrics(logger *slog.Logger) {
	depth := m.GetReplayDepth()

	logger.Info("Simulator Metrics",
		slog.Group("access",
			slog.Uint64("total", m.GetAccesses()),
			slog.Uint64("hits", m.GetHits()),
			slog.Uint64("faults", m.GetFaults()),
			slog.Uint64("replacements", m.GetReplacements()),
			slog.Float64("hit_rate", m.GetHitRate()),
		),
		slog.Group("stepping",
			slog.Uint64("boundaries", m.GetBoundaries()),
			slog.Uint64("replays", m.GetReplays()),
			slog.Uint64("resets", m.GetResets()),
			slog.Group("replay_depth",
				slog.Int("count", depth.Count),
				slog.Float64("mean", depth.Mean),
				slog.Float64("p50", depth.P50),
				slog.Float64("p95", depth.P95),
				slog.Float64("p99", depth.P99),
				slog.Float64("max", depth.Max),
			),
		),
		slog.Duration("uptime", m.GetUptime()),
	)
}

// Reset resets all metrics (useful for testing)
func (m *Metrics) Reset() {
	m.accesses.Store(0)
	m.hits.Store(0)
	m.faults.Store(0)
	m.replacements.Store(0)
	m.boundaries.Store(0)
	m.replays.Store(0)
	m.resets.Store(0)
	m.replayDepth.Reset()

	m.mu.Lock()
	m.startTime = time.Now()
	m.mu.Unlock()
}
