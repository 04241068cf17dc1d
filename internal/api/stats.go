package api

import (
	"sort"
	"sync"
	"time"
)

// statsWindow is how long handler latency samples are kept.
const statsWindow = time.Hour

type sample struct {
	timestamp time.Time
	micros    int64
}

// StatsSnapshot is a point-in-time aggregate of latency samples for one
// operation.
type StatsSnapshot struct {
	Count int     `json:"count"`
	MinUs int64   `json:"min_us"`
	MaxUs int64   `json:"max_us"`
	AvgUs float64 `json:"avg_us"`
	P50Us float64 `json:"p50_us"`
	P95Us float64 `json:"p95_us"`
	P99Us float64 `json:"p99_us"`
}

// OpStats tracks recent outline and navigation latencies per operation
// within a rolling window.
type OpStats struct {
	mu      sync.Mutex
	samples map[string][]sample
	maxAge  time.Duration
	now     func() time.Time
}

func NewOpStats(maxAge time.Duration) *OpStats {
	if maxAge <= 0 {
		maxAge = statsWindow
	}
	return &OpStats{
		samples: make(map[string][]sample),
		maxAge:  maxAge,
		now:     time.Now,
	}
}

// Record adds one sample for op.
func (s *OpStats) Record(op string, d time.Duration) {
	micros := d.Microseconds()
	if micros < 0 {
		micros = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.samples[op] = append(prune(s.samples[op], now.Add(-s.maxAge)), sample{
		timestamp: now,
		micros:    micros,
	})
}

// Snapshot aggregates the live samples of every operation seen in the
// window.
func (s *OpStats) Snapshot() map[string]StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.maxAge)
	out := make(map[string]StatsSnapshot, len(s.samples))
	for op, samples := range s.samples {
		samples = prune(samples, cutoff)
		if len(samples) == 0 {
			delete(s.samples, op)
			continue
		}
		s.samples[op] = samples
		out[op] = summarize(samples)
	}
	return out
}

func summarize(samples []sample) StatsSnapshot {
	values := make([]int64, 0, len(samples))
	var sum int64
	for _, sm := range samples {
		values = append(values, sm.micros)
		sum += sm.micros
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	return StatsSnapshot{
		Count: len(values),
		MinUs: values[0],
		MaxUs: values[len(values)-1],
		AvgUs: float64(sum) / float64(len(values)),
		P50Us: percentile(values, 50),
		P95Us: percentile(values, 95),
		P99Us: percentile(values, 99),
	}
}

// prune drops samples older than cutoff. Samples are in arrival order.
func prune(samples []sample, cutoff time.Time) []sample {
	i := sort.Search(len(samples), func(i int) bool {
		return !samples[i].timestamp.Before(cutoff)
	})
	return samples[i:]
}

func percentile(sortedValues []int64, pct float64) float64 {
	if len(sortedValues) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sortedValues[0])
	}
	if pct >= 100 {
		return float64(sortedValues[len(sortedValues)-1])
	}

	index := (float64(len(sortedValues)-1) * pct) / 100.0
	lower := int(index)
	upper := lower + 1
	if upper >= len(sortedValues) {
		return float64(sortedValues[lower])
	}
	weight := index - float64(lower)
	lo := float64(sortedValues[lower])
	hi := float64(sortedValues[upper])
	return lo + ((hi - lo) * weight)
}
